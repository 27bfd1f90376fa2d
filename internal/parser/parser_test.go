package parser

import (
	"testing"

	"lark/internal/diag"
	"lark/internal/entity"
	"lark/internal/source"
)

func parse(t *testing.T, text string) Result {
	t.Helper()
	m := source.NewMap()
	file := m.SetText("t.lark", text)
	ents := entity.NewTable()
	return ParseFile(file, text, ents)
}

func TestParseStructFields(t *testing.T) {
	res := parse(t, "struct Point { x: i32, y: i32 }")
	if res.Bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", res.Bag.Items())
	}
	if len(res.Items) != 1 || res.Items[0].Struct == nil {
		t.Fatalf("expected one struct item, got %+v", res.Items)
	}
	fields := res.Items[0].Struct.Fields
	if len(fields) != 2 || fields[0].Name != "x" || fields[1].Name != "y" {
		t.Fatalf("unexpected fields: %+v", fields)
	}
}

func TestFnAndDefAreAliases(t *testing.T) {
	fn := parse(t, "fn add(a: i32, b: i32) -> i32 { a + b }")
	def := parse(t, "def add(a: i32, b: i32) -> i32 { a + b }")
	if fn.Bag.HasErrors() || def.Bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: fn=%v def=%v", fn.Bag.Items(), def.Bag.Items())
	}
	if len(fn.Items) != 1 || len(def.Items) != 1 {
		t.Fatalf("expected exactly one item from each spelling")
	}
	if fn.Items[0].Func == nil || def.Items[0].Func == nil {
		t.Fatalf("expected both 'fn' and 'def' to parse as functions")
	}
}

func TestParseIsWhitespaceInsensitive(t *testing.T) {
	tight := parse(t, "fn f(a:i32)->i32{a}")
	spaced := parse(t, "fn   f ( a : i32 )  ->  i32  {\n  a\n}\n")
	if tight.Bag.HasErrors() || spaced.Bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: tight=%v spaced=%v", tight.Bag.Items(), spaced.Bag.Items())
	}
	if len(tight.Items) != 1 || len(spaced.Items) != 1 {
		t.Fatalf("expected one item from each layout")
	}
	tf, sf := tight.Items[0].Func, spaced.Items[0].Func
	if tf.ReturnType != sf.ReturnType || len(tf.Params) != len(sf.Params) {
		t.Fatalf("layout must not change parsed structure: %+v vs %+v", tf, sf)
	}
}

func TestUnknownMacroRecoversAndContinues(t *testing.T) {
	res := parse(t, "bogus thing\nstruct Point { x: i32 }")
	if !res.Bag.HasErrors() {
		t.Fatalf("expected a diagnostic for the unknown item keyword")
	}
	if len(res.Items) != 1 || res.Items[0].Struct == nil {
		t.Fatalf("expected the parser to recover and still parse the struct: %+v", res.Items)
	}
}

func TestBodyStatementsSeparateOnNewlineAlone(t *testing.T) {
	res := parse(t, "fn f() -> i32 {\n1\n2\n}")
	if res.Bag.HasErrors() || len(res.Items) != 1 || res.Items[0].Func == nil {
		t.Fatalf("unexpected parse: diags=%v items=%+v", res.Bag.Items(), res.Items)
	}
	bag := diag.NewBag(16)
	body := res.Items[0].Func.ParseBody(bag)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics parsing body: %v", bag.Items())
	}
	seq, ok := body.(SeqExpr)
	if !ok {
		t.Fatalf("expected a newline-separated sequence, got %T", body)
	}
	if _, ok := seq.First.(LiteralExpr); !ok {
		t.Fatalf("expected the first statement to be a literal, got %T", seq.First)
	}
	if _, ok := seq.Second.(LiteralExpr); !ok {
		t.Fatalf("expected the second statement to be a literal, got %T", seq.Second)
	}
}

func TestLetAcceptsOptionalTypeAnnotation(t *testing.T) {
	res := parse(t, "fn f() -> i32 {\nlet x: i32 = 1\nx\n}")
	if res.Bag.HasErrors() || len(res.Items) != 1 {
		t.Fatalf("unexpected parse: diags=%v", res.Bag.Items())
	}
	bag := diag.NewBag(16)
	body := res.Items[0].Func.ParseBody(bag)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics parsing body: %v", bag.Items())
	}
	let, ok := body.(LetExpr)
	if !ok {
		t.Fatalf("expected a let binding, got %T", body)
	}
	if let.TypeName != "i32" {
		t.Fatalf("expected the annotation 'i32' to be captured, got %q", let.TypeName)
	}
}

func TestParseIsDeterministic(t *testing.T) {
	text := "struct P { x: i32 }\nfn f(p: P) -> i32 { p.x }"
	a := parse(t, text)
	b := parse(t, text)
	if len(a.Items) != len(b.Items) {
		t.Fatalf("non-deterministic item count")
	}
	for i := range a.Items {
		if a.Items[i].Entity != b.Items[i].Entity {
			t.Fatalf("item %d: non-deterministic entity id", i)
		}
	}
}
