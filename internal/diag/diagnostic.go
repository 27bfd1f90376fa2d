package diag

import "lark/internal/source"

// Note provides auxiliary context for a diagnostic message.
type Note struct {
	Span source.Span
	Msg  string
}

// Diagnostic captures a single issue and any supporting notes.
//
// There is no quick-fix machinery here: nothing in the external
// interface (§6, §4.10) exposes code actions, so the teacher's
// Fix/FixEdit/Thunk layer has no caller in this module and was dropped.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Label    string
	Primary  source.Span
	Notes    []Note
}
