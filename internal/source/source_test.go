package source

import "testing"

func TestLineReturnsTextWithoutNewline(t *testing.T) {
	m := NewMap()
	id := m.SetText("t.lark", "fn f() {\n  1\n}\n")
	if got := m.Line(id, 1); got != "fn f() {" {
		t.Fatalf("line 1 = %q", got)
	}
	if got := m.Line(id, 2); got != "  1" {
		t.Fatalf("line 2 = %q", got)
	}
	if got := m.Line(id, 3); got != "}" {
		t.Fatalf("line 3 = %q", got)
	}
}

func TestLineOutOfRangeIsEmpty(t *testing.T) {
	m := NewMap()
	id := m.SetText("t.lark", "a\n")
	if got := m.Line(id, 99); got != "" {
		t.Fatalf("expected empty line, got %q", got)
	}
}

func TestLineCountMatchesNewlines(t *testing.T) {
	m := NewMap()
	id := m.SetText("t.lark", "a\nb\nc")
	if got := m.LineCount(id); got != 3 {
		t.Fatalf("expected 3 lines, got %d", got)
	}
}

func TestSpanStringFormatsRealAndEOF(t *testing.T) {
	sp := Real(1, 2, 5)
	if got := sp.String(); got != "1:2-5" {
		t.Fatalf("Real span string = %q", got)
	}
	eof := EOFSpan(1, 10)
	if got := eof.String(); got != "1:eof@10" {
		t.Fatalf("EOF span string = %q", got)
	}
	if got := Synthetic.String(); got != "synthetic" {
		t.Fatalf("synthetic span string = %q", got)
	}
}
