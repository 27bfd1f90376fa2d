// Package token defines the lexical token kinds produced by the lexer
// (§3, §4.4). Lark's token kinds are deliberately coarse: the parser
// distinguishes specific sigils and keywords by comparing Token.Text,
// not by Kind, since the macro registry treats keywords as ordinary
// identifiers that happen to name a macro.
package token

import "lark/internal/source"

// Kind categorises a token. The set is exactly the one named in §3.
type Kind uint8

const (
	// Identifier is a run of XID_Start followed by XID_Continue runes.
	Identifier Kind = iota
	// Sigil is a maximal-munch operator/punctuation run.
	Sigil
	// Number is an integer literal.
	Number
	// String is a double-quoted string literal.
	String
	// Whitespace is a run of spaces/tabs (not newlines).
	Whitespace
	// Comment is a `//`-led run to end of line.
	Comment
	// Newline is a single line-break token; newlines are significant
	// and never merged with surrounding whitespace (§4.4).
	Newline
	// EOF is the sentinel that always terminates the token sequence.
	EOF
)

func (k Kind) String() string {
	switch k {
	case Identifier:
		return "Identifier"
	case Sigil:
		return "Sigil"
	case Number:
		return "Number"
	case String:
		return "String"
	case Whitespace:
		return "Whitespace"
	case Comment:
		return "Comment"
	case Newline:
		return "Newline"
	case EOF:
		return "EOF"
	default:
		return "Unknown"
	}
}

// Token is a spanned lexeme; its text is always recoverable from Span,
// but Text is carried alongside for convenience (matches the teacher's
// token.Token shape).
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsTrivia reports whether the token is skipped during normal parsing
// (whitespace and comments, but not newlines, which are significant).
func (t Token) IsTrivia() bool {
	return t.Kind == Whitespace || t.Kind == Comment
}
