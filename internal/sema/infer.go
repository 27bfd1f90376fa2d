package sema

import (
	"lark/internal/diag"
	"lark/internal/entity"
	"lark/internal/hir"
	"lark/internal/types"
)

// Result is everything a check of one Module produced: the checked
// type of every expression (keyed by function entity + ExprID, since
// ExprID is only unique within its owning arena) and the signature
// recorded for every function, for downstream queries like hover_at
// and signature (§4.10).
type Result struct {
	Bases      *types.Bases
	ExprTypes  map[exprKey]types.Ty
	Signatures map[entity.ID]types.Signature
}

type exprKey struct {
	fn   entity.ID
	expr hir.ExprID
}

// ExprType looks up the checked type of one expression within fn.
func (r *Result) ExprType(fn entity.ID, id hir.ExprID) (types.Ty, bool) {
	t, ok := r.ExprTypes[exprKey{fn, id}]
	return t, ok
}

// Check type-checks every function in mod, unifying each body against
// its declared signature and reporting diagnostics to bag. Struct
// field names left unresolved by hir.Lower are resolved here, against
// the receiver's checked type; a method call is always reported as an
// unknown method, since structs declare only fields.
//
// Check owns a private Bases arena for this one run: base-type handles
// are never compared across files, so each file gets its own arena
// rather than sharing one mutable arena across concurrently-checked
// files (§5's query isolation).
func Check(mod *hir.Module, ents *entity.Table, bag *diag.Bag) *Result {
	bases := types.NewBases()
	c := New(ents, bases, bag)
	res := &Result{
		Bases:      bases,
		ExprTypes:  make(map[exprKey]types.Ty),
		Signatures: make(map[entity.ID]types.Signature),
	}

	for _, fn := range mod.Funcs {
		sig := types.Signature{Output: c.NamedTy(fn.ReturnTypeEntity)}
		for _, p := range fn.Params {
			sig.Inputs = append(sig.Inputs, c.NamedTy(p.TypeEntity))
		}
		res.Signatures[fn.Entity] = sig
	}

	for _, fn := range mod.Funcs {
		ck := &funcChecker{c: c, mod: mod, fn: fn, res: res}
		ck.varTypes = make([]types.Ty, len(fn.Vars))
		for _, p := range fn.Params {
			ck.varTypes[p.Var] = c.NamedTy(p.TypeEntity)
		}
		bodyTy := ck.infer(fn.Body)
		c.Unify(bodyTy, c.NamedTy(fn.ReturnTypeEntity), fn.Arena.Get(fn.Body).Span)
	}

	// Final pass: resolve every recorded type through the completed
	// substitution. Per §4.8's state machine, a variable that is still
	// unbound at this point ("Unsolved" has no terminal state of its
	// own) is reported as an ambiguous type and replaced with the error
	// sentinel, so callers never see a dangling inference variable.
	for k, t := range res.ExprTypes {
		resolved := c.Resolve(t)
		if resolved.Repr == types.ReprVar {
			if fn, ok := mod.FuncByEntity(k.fn); ok {
				d := diag.NewError(diag.TyAmbiguous, fn.Arena.Get(k.expr).Span, "ambiguous type")
				bag.Add(&d)
			}
			resolved = c.ErrorTy()
		}
		res.ExprTypes[k] = resolved
	}
	return res
}

type funcChecker struct {
	c        *Checker
	mod      *hir.Module
	fn       *hir.FuncDef
	res      *Result
	varTypes []types.Ty
}

func (ck *funcChecker) record(id hir.ExprID, t types.Ty) types.Ty {
	ck.res.ExprTypes[exprKey{ck.fn.Entity, id}] = t
	return t
}

func (ck *funcChecker) infer(id hir.ExprID) types.Ty {
	e := ck.fn.Arena.Get(id)
	switch e.Kind {
	case hir.ExprVariable:
		return ck.record(id, ck.varTypes[e.Var])

	case hir.ExprLiteralInt:
		return ck.record(id, ck.c.NamedTy(ck.c.ents.InternLangItem("i32")))

	case hir.ExprLiteralBool:
		return ck.record(id, ck.c.NamedTy(ck.c.ents.InternLangItem("bool")))

	case hir.ExprUnit:
		return ck.record(id, ck.c.NamedTy(ck.c.ents.InternLangItem("unit")))

	case hir.ExprCall:
		callee, ok := ck.mod.FuncByEntity(e.CalleeEntity)
		if !ok {
			for _, a := range e.Args {
				ck.infer(a)
			}
			return ck.record(id, ck.c.ErrorTy())
		}
		if len(e.Args) != len(callee.Params) {
			d := diag.NewError(diag.TyArityMismatch, e.Span, "wrong number of arguments")
			ck.c.bag.Add(&d)
		}
		for i, a := range e.Args {
			argTy := ck.infer(a)
			if i < len(callee.Params) {
				ck.c.Unify(argTy, ck.c.NamedTy(callee.Params[i].TypeEntity), ck.fn.Arena.Get(a).Span)
			}
		}
		// §4.8.5: substitute a fresh inference variable for the call's
		// result and equate it with the callee's output, rather than
		// adopting the output type directly.
		callTy := ck.c.Fresh()
		ck.c.Unify(callTy, ck.c.NamedTy(callee.ReturnTypeEntity), e.Span)
		return ck.record(id, callTy)

	case hir.ExprMethodCall:
		ck.infer(e.Receiver)
		for _, a := range e.Args {
			ck.infer(a)
		}
		d := diag.NewError(diag.TyUnknownMember, e.Span, "unknown method '"+e.Method+"'")
		ck.c.bag.Add(&d)
		return ck.record(id, ck.c.ErrorTy())

	case hir.ExprFieldAccess:
		recvTy := ck.c.Resolve(ck.infer(e.Receiver))
		if recvTy.Repr == types.ReprKnown {
			base := ck.c.bases.Get(recvTy.Base)
			if base.Kind == types.BaseNamed {
				if structDef, ok := ck.mod.StructByEntity(base.Entity); ok {
					for _, f := range structDef.Fields {
						if f.Name == e.Field {
							return ck.record(id, ck.c.NamedTy(f.TypeEntity))
						}
					}
				}
			}
		}
		d := diag.NewError(diag.TyUnknownMember, e.Span, "unknown field '"+e.Field+"'")
		ck.c.bag.Add(&d)
		return ck.record(id, ck.c.ErrorTy())

	case hir.ExprBinary:
		l := ck.infer(e.Left)
		r := ck.infer(e.Right)
		ck.c.Unify(l, r, e.Span)
		if e.Op == "==" {
			return ck.record(id, ck.c.NamedTy(ck.c.ents.InternLangItem("bool")))
		}
		return ck.record(id, l)

	case hir.ExprIf:
		condTy := ck.infer(e.Cond)
		ck.c.Unify(condTy, ck.c.NamedTy(ck.c.ents.InternLangItem("bool")), ck.fn.Arena.Get(e.Cond).Span)
		thenTy := ck.infer(e.Then)
		elseTy := ck.infer(e.Else)
		ck.c.Unify(thenTy, elseTy, e.Span)
		return ck.record(id, thenTy)

	case hir.ExprSequence:
		ck.infer(e.First)
		return ck.record(id, ck.infer(e.Second))

	case hir.ExprLet:
		initTy := ck.infer(e.Init)
		if e.DeclaredType != entity.NoID {
			ck.c.Unify(initTy, ck.c.NamedTy(e.DeclaredType), e.Span)
		}
		ck.varTypes[e.Var] = initTy
		return ck.record(id, ck.infer(e.Body))

	case hir.ExprAssign:
		placeTy := ck.infer(e.Place)
		valueTy := ck.infer(e.Value)
		ck.c.Unify(placeTy, valueTy, e.Span)
		return ck.record(id, ck.c.NamedTy(ck.c.ents.InternLangItem("unit")))

	case hir.ExprError:
		return ck.record(id, ck.c.ErrorTy())

	default:
		return ck.record(id, ck.c.ErrorTy())
	}
}
