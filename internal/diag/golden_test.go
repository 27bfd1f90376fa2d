package diag

import (
	"testing"

	"lark/internal/source"
)

func TestFormatGoldenDiagnostics(t *testing.T) {
	m := source.NewMap()
	file := m.SetText("sample.lark", "a\nb\n")

	diags := []*Diagnostic{
		{
			Severity: SevError,
			Code:     SynUnexpectedToken,
			Label:    "first line\nsecond",
			Primary:  source.Real(file, 0, 1),
			Notes: []Note{
				{Span: source.Real(file, 2, 3), Msg: "note line"},
			},
		},
		{
			Severity: SevWarning,
			Code:     TyMismatch,
			Label:    "another",
			Primary:  source.Real(file, 2, 3),
		},
	}

	expected := "error SYN2000 sample.lark:1:1 first line second\n" +
		"note SYN2000 sample.lark:2:1 note line\n" +
		"warning TY4000 sample.lark:2:1 another"

	if got := FormatGoldenDiagnostics(diags, m, true); got != expected {
		t.Fatalf("unexpected golden diagnostics:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}
}
