package sema

import (
	"testing"

	"lark/internal/diag"
	"lark/internal/entity"
	"lark/internal/hir"
	"lark/internal/parser"
	"lark/internal/source"
	"lark/internal/types"
)

func check(t *testing.T, text string) (*hir.Module, *Result, *diag.Bag) {
	t.Helper()
	m := source.NewMap()
	file := m.SetText("t.lark", text)
	ents := entity.NewTable()
	res := parser.ParseFile(file, text, ents)
	bag := diag.NewBag(64)
	mod := hir.Lower(res, ents, bag)
	bag.Merge(res.Bag)
	result := Check(mod, ents, bag)
	return mod, result, bag
}

func TestCheckAcceptsMatchingReturnType(t *testing.T) {
	_, _, bag := check(t, "fn id(a: i32) -> i32 { a }")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
}

func TestCheckRejectsMismatchedReturnType(t *testing.T) {
	_, _, bag := check(t, "fn f() -> bool { 1 }")
	if !bag.HasErrors() {
		t.Fatalf("expected a type mismatch diagnostic")
	}
}

func TestCheckRejectsArityMismatch(t *testing.T) {
	_, _, bag := check(t, "fn one(a: i32) -> i32 { a }\nfn two() -> i32 { one() }")
	if !bag.HasErrors() {
		t.Fatalf("expected an arity mismatch diagnostic")
	}
}

func TestCheckResolvesStructFieldAccess(t *testing.T) {
	mod, result, bag := check(t, "struct Point { x: i32, y: i32 }\nfn getX(p: Point) -> i32 { p.x }")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	var fn *hir.FuncDef
	for _, f := range mod.Funcs {
		if len(f.Params) == 1 {
			fn = f
		}
	}
	if fn == nil {
		t.Fatalf("expected to find getX")
	}
	ty, ok := result.ExprType(fn.Entity, fn.Body)
	if !ok {
		t.Fatalf("expected a recorded type for the field access")
	}
	if ty.Repr != types.ReprKnown {
		t.Fatalf("expected a known type, got %+v", ty)
	}
}

func TestCheckReportsUnknownField(t *testing.T) {
	_, _, bag := check(t, "struct Point { x: i32 }\nfn getY(p: Point) -> i32 { p.y }")
	if !bag.HasErrors() {
		t.Fatalf("expected an unknown-field diagnostic")
	}
}

func TestCheckIfBranchesMustAgree(t *testing.T) {
	_, _, bag := check(t, "fn f() -> i32 { if true { 1 } else { false } }")
	if !bag.HasErrors() {
		t.Fatalf("expected a mismatch between if branches")
	}
}

func TestCheckAcceptsMatchingLetAnnotation(t *testing.T) {
	_, _, bag := check(t, "fn f() -> i32 { let x: i32 = 1\nx }")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
}

func TestCheckRejectsMismatchedLetAnnotation(t *testing.T) {
	_, _, bag := check(t, "fn f() -> bool { let x: bool = 1\nx }")
	if !bag.HasErrors() {
		t.Fatalf("expected a type mismatch diagnostic for 'let x: bool = 1'")
	}
}

func TestCheckSuppressesCascadeAfterUnknownName(t *testing.T) {
	_, _, bag := check(t, "fn f() -> i32 { y }")
	errs := 0
	for _, d := range bag.Items() {
		if d.Severity == diag.SevError {
			errs++
		}
	}
	if errs != 1 {
		t.Fatalf("expected exactly one error, got %d: %v", errs, bag.Items())
	}
}
