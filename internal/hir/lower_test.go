package hir

import (
	"testing"

	"lark/internal/diag"
	"lark/internal/entity"
	"lark/internal/parser"
	"lark/internal/source"
)

func lower(t *testing.T, text string) (*Module, *diag.Bag) {
	t.Helper()
	m := source.NewMap()
	file := m.SetText("t.lark", text)
	ents := entity.NewTable()
	res := parser.ParseFile(file, text, ents)
	bag := diag.NewBag(64)
	mod := Lower(res, ents, bag)
	bag.Merge(res.Bag)
	return mod, bag
}

func TestLowerResolvesParamToVariable(t *testing.T) {
	mod, bag := lower(t, "fn id(a: i32) -> i32 { a }")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	if len(mod.Funcs) != 1 {
		t.Fatalf("expected one function")
	}
	fn := mod.Funcs[0]
	body := fn.Arena.Get(fn.Body)
	if body.Kind != ExprVariable || body.Var != fn.Params[0].Var {
		t.Fatalf("expected body to be a reference to the parameter, got %+v", body)
	}
}

func TestLowerUnknownNameProducesDiagnostic(t *testing.T) {
	_, bag := lower(t, "fn f() -> i32 { y }")
	if !bag.HasErrors() {
		t.Fatalf("expected a diagnostic for the unknown name 'y'")
	}
}

func TestLowerResolvesCallToSiblingFunction(t *testing.T) {
	mod, bag := lower(t, "fn one() -> i32 { 1 }\nfn two() -> i32 { one() }")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	var two *FuncDef
	for _, f := range mod.Funcs {
		if len(f.Params) == 0 && f.Arena.Get(f.Body).Kind == ExprCall {
			two = f
		}
	}
	if two == nil {
		t.Fatalf("expected to find 'two' with a Call body")
	}
	call := two.Arena.Get(two.Body)
	if call.CalleeName != "one" {
		t.Fatalf("expected call to 'one', got %+v", call)
	}
}

func TestLowerLetIntroducesScopedVariable(t *testing.T) {
	mod, bag := lower(t, "fn f() -> i32 { let x = 1; x }")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	fn := mod.Funcs[0]
	let := fn.Arena.Get(fn.Body)
	if let.Kind != ExprLet {
		t.Fatalf("expected a Let node, got %v", let.Kind)
	}
	bodyRef := fn.Arena.Get(let.Body)
	if bodyRef.Kind != ExprVariable || bodyRef.Var != let.Var {
		t.Fatalf("expected the let body to reference the bound variable, got %+v", bodyRef)
	}
}
