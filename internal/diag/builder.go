package diag

import "lark/internal/source"

// New builds a diagnostic at the given severity.
func New(sev Severity, code Code, primary source.Span, label string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Primary:  primary,
		Label:    label,
	}
}

// NewError builds an error-severity diagnostic.
func NewError(code Code, primary source.Span, label string) Diagnostic {
	return New(SevError, code, primary, label)
}

// NewWarning builds a warning-severity diagnostic.
func NewWarning(code Code, primary source.Span, label string) Diagnostic {
	return New(SevWarning, code, primary, label)
}

// WithNote appends an auxiliary note and returns the updated diagnostic.
func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Msg: msg})
	return d
}
