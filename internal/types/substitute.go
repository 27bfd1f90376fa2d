package types

// Substitution maps generic placeholders (by position) to concrete
// types, and inference variables to their solved values. Applying one
// moves a Ty from a declaration/inference family into an
// inferred/instantiated family (§4.7, Supplemented feature grounded on
// the original implementation's substitution pass).
type Substitution struct {
	bases     *Bases
	targetFam Family
	generics  []Ty               // index = placeholder position
	vars      map[InferVar]Ty    // solved base-type variables
	permVars  map[InferVar]PermKind
}

// NewSubstitution builds a substitution targeting family into bases.
func NewSubstitution(bases *Bases, target Family) *Substitution {
	return &Substitution{bases: bases, targetFam: target, vars: map[InferVar]Ty{}, permVars: map[InferVar]PermKind{}}
}

// BindGeneric records the concrete type instantiating placeholder i.
func (s *Substitution) BindGeneric(index uint32, t Ty) {
	for uint32(len(s.generics)) <= index {
		s.generics = append(s.generics, Ty{})
	}
	s.generics[index] = t
}

// BindVar records the solved value of a base-type inference variable.
func (s *Substitution) BindVar(v InferVar, t Ty) { s.vars[v] = t }

// BindPerm records the solved value of a permission inference variable.
func (s *Substitution) BindPerm(v InferVar, k PermKind) { s.permVars[v] = k }

// Apply rewrites t into the substitution's target family, replacing
// placeholders with their bound generics and resolved variables with
// their solved values. Unbound variables are left as ReprVar in the
// target family (used for diagnostics over partially-solved programs).
func (s *Substitution) Apply(t Ty) Ty {
	out := t
	out.Family = s.targetFam

	if t.Repr == ReprVar {
		if resolved, ok := s.vars[t.Var]; ok {
			out = resolved
			out.Family = s.targetFam
		}
	} else {
		base := s.bases.Get(t.Base)
		if base.Kind == BasePlaceholder && int(base.Placeholder) < len(s.generics) {
			bound := s.generics[base.Placeholder]
			if bound.Repr != 0 || bound.Base != 0 {
				out = bound
				out.Family = s.targetFam
			}
		} else if base.Kind == BaseNamed && len(base.Generics) > 0 {
			rewritten := make([]Ty, len(base.Generics))
			for i, g := range base.Generics {
				rewritten[i] = s.Apply(g)
			}
			out.Base = s.bases.Add(BaseData{Kind: BaseNamed, Entity: base.Entity, Generics: rewritten})
		}
	}

	out.Perm = s.applyPerm(t.Perm)
	return out
}

func (s *Substitution) applyPerm(p Permission) Permission {
	if p.Repr == ReprVar {
		if kind, ok := s.permVars[p.Var]; ok {
			return KnownPermission(kind)
		}
	}
	return p
}
