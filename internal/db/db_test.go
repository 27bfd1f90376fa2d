package db

import (
	"context"
	"testing"

	"lark/internal/entity"
	"lark/internal/source"
)

func TestItemsInFileListsDeclarations(t *testing.T) {
	p := New()
	file := p.SetFileText("t.lark", "struct Point { x: i32 }\nfn origin() -> Point { origin() }")
	s := p.Snapshot()

	items, err := s.ItemsInFile(file)
	if err != nil {
		t.Fatalf("ItemsInFile: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d: %+v", len(items), items)
	}
	if items[0].Kind != entity.ItemStruct || items[0].Name != "Point" {
		t.Fatalf("expected first item to be struct Point, got %+v", items[0])
	}
}

func TestChildEntitiesReturnsStructFields(t *testing.T) {
	p := New()
	file := p.SetFileText("t.lark", "struct Point { x: i32, y: i32 }\nfn f() -> i32 { 1 }")
	s := p.Snapshot()

	items, err := s.ItemsInFile(file)
	if err != nil {
		t.Fatalf("ItemsInFile: %v", err)
	}
	children, err := s.ChildEntities(items[0].Entity)
	if err != nil {
		t.Fatalf("ChildEntities: %v", err)
	}
	if len(children) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(children))
	}
}

func TestSignatureReflectsDeclaredTypes(t *testing.T) {
	p := New()
	file := p.SetFileText("t.lark", "fn id(a: i32) -> i32 { a }")
	s := p.Snapshot()

	items, err := s.ItemsInFile(file)
	if err != nil {
		t.Fatalf("ItemsInFile: %v", err)
	}
	sig, ok, err := s.Signature(items[0].Entity)
	if err != nil {
		t.Fatalf("Signature: %v", err)
	}
	if !ok {
		t.Fatalf("expected a signature")
	}
	if len(sig.Inputs) != 1 {
		t.Fatalf("expected one input, got %d", len(sig.Inputs))
	}
}

func TestErrorsForProjectSurfacesUnknownName(t *testing.T) {
	p := New()
	file := p.SetFileText("t.lark", "fn f() -> i32 { y }")
	s := p.Snapshot()

	bag, err := s.ErrorsForProject(context.Background(), []source.FileID{file})
	if err != nil {
		t.Fatalf("ErrorsForProject: %v", err)
	}
	if !bag.HasErrors() {
		t.Fatalf("expected at least one diagnostic")
	}
}

func TestHoverAtPositionFindsEnclosingFunction(t *testing.T) {
	p := New()
	p.SetFileText("t.lark", "fn f(a: i32) -> i32 {\n  a\n}")
	s := p.Snapshot()

	hover, err := s.HoverAtPosition("t.lark", 2, 3)
	if err != nil {
		t.Fatalf("HoverAtPosition: %v", err)
	}
	if !hover.Found {
		t.Fatalf("expected a hover result inside the function body")
	}
}

func TestHoverAtPositionMissesOutsideAnyExpression(t *testing.T) {
	p := New()
	p.SetFileText("t.lark", "fn f() -> i32 { 1 }")
	s := p.Snapshot()

	hover, err := s.HoverAtPosition("t.lark", 1, 1)
	if err != nil {
		t.Fatalf("HoverAtPosition: %v", err)
	}
	if hover.Found {
		t.Fatalf("expected no hover result over the 'fn' keyword itself")
	}
}

func TestHoverAtPositionUnknownPath(t *testing.T) {
	p := New()
	p.SetFileText("t.lark", "fn f() -> i32 { 1 }")
	s := p.Snapshot()

	hover, err := s.HoverAtPosition("missing.lark", 1, 1)
	if err != nil {
		t.Fatalf("HoverAtPosition: %v", err)
	}
	if hover.Found {
		t.Fatalf("expected no hover result for an unregistered path")
	}
}

func TestEditingOneFileKeepsAnotherFilesSignature(t *testing.T) {
	p := New()
	a := p.SetFileText("a.lark", "fn a() -> i32 { 1 }")
	p.SetFileText("b.lark", "fn b() -> i32 { 2 }")

	s1 := p.Snapshot()
	itemsA1, err := s1.ItemsInFile(a)
	if err != nil {
		t.Fatalf("ItemsInFile: %v", err)
	}
	sigA1, ok, err := s1.Signature(itemsA1[0].Entity)
	if err != nil || !ok {
		t.Fatalf("Signature: %v ok=%v", err, ok)
	}

	p.SetFileText("b.lark", "fn b() -> bool { true }")

	s2 := p.Snapshot()
	itemsA2, err := s2.ItemsInFile(a)
	if err != nil {
		t.Fatalf("ItemsInFile: %v", err)
	}
	sigA2, ok, err := s2.Signature(itemsA2[0].Entity)
	if err != nil || !ok {
		t.Fatalf("Signature: %v ok=%v", err, ok)
	}
	if sigA1.Output.Base != sigA2.Output.Base {
		t.Fatalf("expected a's checked type to be stable across an unrelated edit")
	}
}
