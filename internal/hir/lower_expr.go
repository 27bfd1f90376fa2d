package hir

import (
	"lark/internal/diag"
	"lark/internal/entity"
	"lark/internal/parser"
)

// lowerer threads the per-function state needed while lowering a body:
// the arena/var list being filled in, the file's item index for
// call-callee resolution, and the entity table and diagnostic sink
// shared across the whole file.
type lowerer struct {
	def    *FuncDef
	scopes *Scopes
	items  map[string]entity.ID
	ents   *entity.Table
	bag    *diag.Bag
}

func (lw *lowerer) errorAt(n parser.ExprNode, label string) ExprID {
	sp := n.Span()
	d := diag.NewError(diag.SynUnexpectedToken, sp, label)
	lw.bag.Add(&d)
	return lw.def.Arena.Alloc(Expr{Kind: ExprError, Span: sp})
}

func (lw *lowerer) expr(n parser.ExprNode, scope ScopeID) ExprID {
	switch e := n.(type) {
	case parser.IdentExpr:
		v, ok := lw.scopes.Resolve(scope, e.Name)
		if !ok {
			sp := e.Span()
			d := diag.NewError(diag.ResUnknownName, sp, "unknown name '"+e.Name+"'")
			lw.bag.Add(&d)
			return lw.def.Arena.Alloc(Expr{Kind: ExprError, Span: sp})
		}
		return lw.def.Arena.Alloc(Expr{Kind: ExprVariable, Span: e.Span(), Var: v})

	case parser.LiteralExpr:
		if e.Kind == parser.LiteralInt {
			return lw.def.Arena.Alloc(Expr{Kind: ExprLiteralInt, Span: e.Span(), IntVal: e.Int})
		}
		return lw.def.Arena.Alloc(Expr{Kind: ExprLiteralBool, Span: e.Span(), BoolVal: e.Bool})

	case parser.UnitExpr:
		return lw.def.Arena.Alloc(Expr{Kind: ExprUnit, Span: e.Span()})

	case parser.CallExpr:
		ident, ok := e.Callee.(parser.IdentExpr)
		if !ok {
			return lw.errorAt(n, "only named functions can be called")
		}
		callee, ok := lw.items[ident.Name]
		if ok && lw.ents.Get(callee).ItemKind != entity.ItemFunction {
			ok = false
		}
		if !ok {
			sp := ident.Span()
			d := diag.NewError(diag.ResUnknownName, sp, "unknown function '"+ident.Name+"'")
			lw.bag.Add(&d)
			callee = lw.ents.InternError(sp)
		}
		args := make([]ExprID, len(e.Args))
		for i, a := range e.Args {
			args[i] = lw.expr(a, scope)
		}
		return lw.def.Arena.Alloc(Expr{Kind: ExprCall, Span: e.Span(), CalleeName: ident.Name, CalleeEntity: callee, Args: args})

	case parser.MethodCallExpr:
		recv := lw.expr(e.Receiver, scope)
		args := make([]ExprID, len(e.Args))
		for i, a := range e.Args {
			args[i] = lw.expr(a, scope)
		}
		return lw.def.Arena.Alloc(Expr{Kind: ExprMethodCall, Span: e.Span(), Receiver: recv, Method: e.Method, Args: args})

	case parser.FieldExpr:
		recv := lw.expr(e.Receiver, scope)
		return lw.def.Arena.Alloc(Expr{Kind: ExprFieldAccess, Span: e.Span(), Receiver: recv, Field: e.Field})

	case parser.BinaryExpr:
		l := lw.expr(e.Left, scope)
		r := lw.expr(e.Right, scope)
		return lw.def.Arena.Alloc(Expr{Kind: ExprBinary, Span: e.Span(), Op: e.Op, Left: l, Right: r})

	case parser.IfExpr:
		cond := lw.expr(e.Cond, scope)
		then := lw.expr(e.Then, scope)
		els := lw.expr(e.Else, scope)
		return lw.def.Arena.Alloc(Expr{Kind: ExprIf, Span: e.Span(), Cond: cond, Then: then, Else: els})

	case parser.SeqExpr:
		first := lw.expr(e.First, scope)
		second := lw.expr(e.Second, scope)
		return lw.def.Arena.Alloc(Expr{Kind: ExprSequence, Span: e.Span(), First: first, Second: second})

	case parser.LetExpr:
		init := lw.expr(e.Init, scope)
		declaredType := entity.NoID
		if e.TypeName != "" {
			declaredType = resolveTypeName(e.TypeName, e.Span(), lw.items, lw.ents, lw.bag)
		}
		child := lw.scopes.Child(scope)
		lw.def.Vars = append(lw.def.Vars, VarInfo{Name: e.Name})
		v := VarID(len(lw.def.Vars) - 1)
		lw.scopes.Define(child, e.Name, v)
		body := lw.expr(e.Body, child)
		return lw.def.Arena.Alloc(Expr{Kind: ExprLet, Span: e.Span(), Var: v, Init: init, Body: body, DeclaredType: declaredType})

	case parser.AssignExpr:
		place := lw.expr(e.Place, scope)
		value := lw.expr(e.Value, scope)
		return lw.def.Arena.Alloc(Expr{Kind: ExprAssign, Span: e.Span(), Place: place, Value: value})

	case parser.ErrorExpr:
		return lw.def.Arena.Alloc(Expr{Kind: ExprError, Span: e.Span()})

	default:
		return lw.errorAt(n, "unrecognized expression")
	}
}
