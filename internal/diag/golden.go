package diag

import (
	"fmt"
	"sort"
	"strings"

	"lark/internal/source"
)

type goldenDiagnostic struct {
	Severity string
	Code     string
	Name     string
	Line     uint32
	Column   uint32
	Label    string
}

// FormatGoldenDiagnostics renders diagnostics into a stable, single
// line-per-entry representation suitable for golden-file tests. Notes
// are optionally included; entries are sorted deterministically so the
// output is identical run-to-run regardless of insertion order.
func FormatGoldenDiagnostics(diags []*Diagnostic, m *source.Map, includeNotes bool) string {
	if m == nil || len(diags) == 0 {
		return ""
	}

	rendered := make([]goldenDiagnostic, 0, len(diags))
	for _, d := range diags {
		rendered = appendDiagnostic(rendered, d, m, includeNotes)
	}

	sort.SliceStable(rendered, func(i, j int) bool {
		di, dj := rendered[i], rendered[j]
		if di.Name != dj.Name {
			return di.Name < dj.Name
		}
		if di.Line != dj.Line {
			return di.Line < dj.Line
		}
		if di.Column != dj.Column {
			return di.Column < dj.Column
		}
		if di.Severity != dj.Severity {
			return di.Severity < dj.Severity
		}
		if di.Code != dj.Code {
			return di.Code < dj.Code
		}
		return di.Label < dj.Label
	})

	var b strings.Builder
	for i, d := range rendered {
		fmt.Fprintf(&b, "%s %s %s:%d:%d %s", d.Severity, d.Code, d.Name, d.Line, d.Column, d.Label)
		if i < len(rendered)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func appendDiagnostic(out []goldenDiagnostic, d *Diagnostic, m *source.Map, includeNotes bool) []goldenDiagnostic {
	if loc, ok := resolveSpan(m, d.Primary); ok {
		out = append(out, goldenDiagnostic{
			Severity: severityLabel(d.Severity),
			Code:     d.Code.ID(),
			Name:     loc.Name,
			Line:     loc.Line,
			Column:   loc.Column,
			Label:    sanitizeLabel(d.Label),
		})
	}

	if includeNotes {
		for _, note := range d.Notes {
			nloc, ok := resolveSpan(m, note.Span)
			if !ok {
				continue
			}
			out = append(out, goldenDiagnostic{
				Severity: "note",
				Code:     d.Code.ID(),
				Name:     nloc.Name,
				Line:     nloc.Line,
				Column:   nloc.Column,
				Label:    sanitizeLabel(note.Msg),
			})
		}
	}

	return out
}

type resolvedSpan struct {
	Name   string
	Line   uint32
	Column uint32
}

func resolveSpan(m *source.Map, span source.Span) (loc resolvedSpan, ok bool) {
	defer func() {
		if recover() != nil {
			loc = resolvedSpan{}
			ok = false
		}
	}()

	file := m.Get(span.File)
	start, _ := m.Resolve(span)
	return resolvedSpan{Name: file.Name, Line: start.Line, Column: start.Col}, true
}

func severityLabel(sev Severity) string {
	switch sev {
	case SevError:
		return "error"
	case SevWarning:
		return "warning"
	default:
		return "info"
	}
}

func sanitizeLabel(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\r", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
