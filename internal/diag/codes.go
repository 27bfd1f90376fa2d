package diag

import "fmt"

// Code identifies a diagnostic's kind. Codes are grouped by the phase
// that raises them: lexing (1000s), parsing (2000s), name resolution
// (3000s), and type checking (4000s) — a smaller renumbering of the
// teacher compiler's phase-grouped code space, sized to this module's
// much narrower diagnostic surface.
type Code uint16

const (
	UnknownCode Code = 0

	// Lexical (§4.4).
	LexUnrecognizedChar  Code = 1000
	LexUnterminatedString Code = 1001

	// Syntactic (§4.5).
	SynUnexpectedToken  Code = 2000
	SynExpectedIdent    Code = 2001
	SynUnclosedDelim    Code = 2002
	SynUnknownMacro     Code = 2003

	// Name resolution (§4.6).
	ResUnknownName   Code = 3000
	ResDuplicateName Code = 3001

	// Type checking (§4.8).
	TyMismatch       Code = 4000
	TyUnknownMember  Code = 4001
	TyArityMismatch  Code = 4002
	TyNotCallable    Code = 4003
	TyOccursCheck    Code = 4004
	TyAmbiguous      Code = 4005
)

var codeIDs = map[Code]string{
	UnknownCode:           "E0000",
	LexUnrecognizedChar:   "LEX1000",
	LexUnterminatedString: "LEX1001",
	SynUnexpectedToken:    "SYN2000",
	SynExpectedIdent:      "SYN2001",
	SynUnclosedDelim:      "SYN2002",
	SynUnknownMacro:       "SYN2003",
	ResUnknownName:        "RES3000",
	ResDuplicateName:      "RES3001",
	TyMismatch:            "TY4000",
	TyUnknownMember:       "TY4001",
	TyArityMismatch:       "TY4002",
	TyNotCallable:         "TY4003",
	TyOccursCheck:         "TY4004",
	TyAmbiguous:           "TY4005",
}

// ID returns the stable textual identifier for a code (e.g. "LEX1000").
func (c Code) ID() string {
	if id, ok := codeIDs[c]; ok {
		return id
	}
	return fmt.Sprintf("E%04d", uint16(c))
}

func (c Code) String() string { return c.ID() }
