// Package sema implements the unification-based type checker of §4.8:
// each function body is checked against its declared signature by
// unifying inference variables over base types, with an occurs check
// to reject infinite types and BaseError used as a sentinel so one
// mismatch never cascades into a wall of follow-on diagnostics (§7).
//
// No unification algorithm was retrieved from the teacher or the rest
// of the example pack (the teacher's sema package is a contract/
// generics/borrow checker, not a Hindley-Milner unifier — see
// DESIGN.md), so this package is written directly against the
// standard library.
package sema

import (
	"lark/internal/diag"
	"lark/internal/entity"
	"lark/internal/source"
	"lark/internal/types"
)

// Checker holds the union-find-style substitution built while checking
// one module's functions. Unify/resolve operate across every function
// checked through this Checker; Check creates one Checker per module,
// so nothing is shared across files.
type Checker struct {
	ents  *entity.Table
	bases *types.Bases
	bag   *diag.Bag

	nextVar types.InferVar
	subst   map[types.InferVar]types.Ty

	named map[entity.ID]types.BaseHandle
}

// New creates a Checker writing diagnostics to bag and interning base
// types into bases.
func New(ents *entity.Table, bases *types.Bases, bag *diag.Bag) *Checker {
	return &Checker{
		ents:  ents,
		bases: bases,
		bag:   bag,
		subst: make(map[types.InferVar]types.Ty),
		named: make(map[entity.ID]types.BaseHandle),
	}
}

// Fresh allocates a new, unbound inference variable.
func (c *Checker) Fresh() types.Ty {
	c.nextVar++
	return types.VarTy(types.BaseInference, c.nextVar)
}

// NamedTy returns the (memoized) type for a resolved entity — a
// builtin lang item or a user struct — always owned, since only Own
// is constrained by this checker (Open Question resolution).
func (c *Checker) NamedTy(ent entity.ID) types.Ty {
	handle, ok := c.named[ent]
	if !ok {
		handle = c.bases.Add(types.BaseData{Kind: types.BaseNamed, Entity: ent})
		c.named[ent] = handle
	}
	return types.KnownTy(types.BaseInferred, handle, types.KnownPermission(types.PermOwn))
}

// ErrorTy returns the error sentinel type, used once a mismatch has
// already been reported so later checks over the same expression don't
// also fire.
func (c *Checker) ErrorTy() types.Ty {
	return types.KnownTy(types.BaseInferred, types.NoBase, types.KnownPermission(types.PermOwn))
}

// Resolve follows the substitution chain for an inference variable to
// its current binding, or returns t unchanged if it's already known or
// still unbound.
func (c *Checker) Resolve(t types.Ty) types.Ty {
	for t.Repr == types.ReprVar {
		bound, ok := c.subst[t.Var]
		if !ok {
			return t
		}
		t = bound
	}
	return t
}

func (c *Checker) bind(v types.InferVar, t types.Ty) { c.subst[v] = t }

// Unify equates a and b, binding inference variables as needed and
// recursing structurally into generic arguments. It reports
// TyMismatch at sp on a genuine structural clash, and TyOccursCheck if
// binding would create an infinite type. BaseError on either side is
// treated as compatible with anything, so a prior error never cascades.
func (c *Checker) Unify(a, b types.Ty, sp source.Span) bool {
	a = c.Resolve(a)
	b = c.Resolve(b)

	if a.Repr == types.ReprVar {
		if b.Repr == types.ReprVar && a.Var == b.Var {
			return true
		}
		if c.occurs(a.Var, b) {
			d := diag.NewError(diag.TyOccursCheck, sp, "type refers to itself")
			c.bag.Add(&d)
			return false
		}
		c.bind(a.Var, b)
		return true
	}
	if b.Repr == types.ReprVar {
		return c.Unify(b, a, sp)
	}

	ab, bb := c.bases.Get(a.Base), c.bases.Get(b.Base)
	if ab.Kind == types.BaseError || bb.Kind == types.BaseError {
		return true
	}
	if ab.Kind != bb.Kind {
		c.mismatch(sp)
		return false
	}
	switch ab.Kind {
	case types.BaseNamed:
		if ab.Entity != bb.Entity || len(ab.Generics) != len(bb.Generics) {
			c.mismatch(sp)
			return false
		}
		ok := true
		for i := range ab.Generics {
			if !c.Unify(ab.Generics[i], bb.Generics[i], sp) {
				ok = false
			}
		}
		return ok
	case types.BasePlaceholder:
		if ab.Placeholder != bb.Placeholder {
			c.mismatch(sp)
			return false
		}
		return true
	default:
		return true
	}
}

func (c *Checker) mismatch(sp source.Span) {
	d := diag.NewError(diag.TyMismatch, sp, "mismatched types")
	c.bag.Add(&d)
}

func (c *Checker) occurs(v types.InferVar, t types.Ty) bool {
	t = c.Resolve(t)
	if t.Repr == types.ReprVar {
		return t.Var == v
	}
	b := c.bases.Get(t.Base)
	for _, g := range b.Generics {
		if c.occurs(v, g) {
			return true
		}
	}
	return false
}
