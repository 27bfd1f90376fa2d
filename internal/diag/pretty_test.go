package diag

import (
	"strings"
	"testing"

	"lark/internal/source"
)

func TestPrettyRendersHeaderAndUnderline(t *testing.T) {
	m := source.NewMap()
	file := m.SetText("t.lark", "fn f() { y }\n")
	bag := NewBag(8)
	d := NewError(ResUnknownName, source.Real(file, 9, 10), "unknown name 'y'")
	bag.Add(&d)

	var out strings.Builder
	Pretty(&out, bag, m, PrettyOpts{Color: false, Context: 0})

	rendered := out.String()
	if !strings.Contains(rendered, "t.lark:1:10: error RES3000: unknown name 'y'") {
		t.Fatalf("missing header, got:\n%s", rendered)
	}
	if !strings.Contains(rendered, "^") {
		t.Fatalf("missing underline, got:\n%s", rendered)
	}
}
