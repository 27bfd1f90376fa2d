// Package lexer implements the deterministic DFA described in §4.4: it
// turns one file's text into a finite, non-empty sequence of tokens
// terminated by EOF. Unrecognised characters are reported as diagnostics
// and skipped rather than aborting the scan, so a single bad byte never
// empties the token stream (§7, "Diagnostic totality").
package lexer

import (
	"unicode"
	"unicode/utf8"

	"lark/internal/diag"
	"lark/internal/source"
	"lark/internal/token"
)

// sigils are tried longest-first so maximal munch falls out of list order.
var sigils = []string{
	"->", "==",
	"+", "-", "*", "/", "=", "<", ">", "!",
	"(", ")", "{", "}", "[", "]",
	",", ":", ";", ".",
}

// Tokenize scans the full text of file and returns its token sequence.
// The sequence always ends with exactly one EOF token. Diagnostics for
// unrecognised characters are appended to bag.
func Tokenize(file source.FileID, text string, bag *diag.Bag) []token.Token {
	c := newCursor(file, text)
	var out []token.Token
	for {
		tok, ok := next(&c, bag)
		if ok {
			out = append(out, tok)
		}
		if tok.Kind == token.EOF {
			return out
		}
	}
}

func next(c *cursor, bag *diag.Bag) (token.Token, bool) {
	if c.eof() {
		sp := source.EOFSpan(c.file, c.off)
		return token.Token{Kind: token.EOF, Span: sp}, true
	}

	ch := c.peek()
	switch {
	case ch == '\n':
		m := c.mark()
		c.bump()
		return mk(c, m, token.Newline), true
	case ch == ' ' || ch == '\t' || ch == '\r':
		m := c.mark()
		for !c.eof() && (c.peek() == ' ' || c.peek() == '\t' || c.peek() == '\r') {
			c.bump()
		}
		return mk(c, m, token.Whitespace), true
	case ch == '/' && c.peekAt(1) == '/':
		m := c.mark()
		for !c.eof() && c.peek() != '\n' {
			c.bump()
		}
		return mk(c, m, token.Comment), true
	case ch == '"':
		return scanString(c, bag)
	case isDigit(ch):
		return scanNumber(c), true
	case isIdentStartByte(ch):
		return scanIdent(c), true
	case ch >= utf8.RuneSelf:
		return scanUnicode(c, bag)
	default:
		if sig, ok := scanSigil(c); ok {
			return sig, true
		}
		m := c.mark()
		c.bump()
		sp := c.spanFrom(m)
		report(bag, diag.LexUnrecognizedChar, sp, "unrecognized token")
		return token.Token{}, false
	}
}

func mk(c *cursor, m mark, kind token.Kind) token.Token {
	sp := c.spanFrom(m)
	return token.Token{Kind: kind, Span: sp, Text: c.text[sp.Start:sp.End]}
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isIdentStartByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentContinueByte(b byte) bool {
	return isIdentStartByte(b) || isDigit(b)
}

// scanIdent consumes an Identifier. XID_Start/XID_Continue classification
// for the ASCII fast path is done byte-wise above; scanUnicode handles
// multi-byte runes by falling back to unicode.IsLetter/IsDigit, which is
// a practical approximation of the XID tables (see DESIGN.md).
func scanIdent(c *cursor) token.Token {
	m := c.mark()
	c.bump()
	for !c.eof() {
		b := c.peek()
		if b < utf8.RuneSelf {
			if !isIdentContinueByte(b) {
				break
			}
			c.bump()
			continue
		}
		r, size := utf8.DecodeRuneInString(c.text[c.off:])
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			break
		}
		c.off += uint32(size)
	}
	return mk(c, m, token.Identifier)
}

func scanUnicode(c *cursor, bag *diag.Bag) (token.Token, bool) {
	r, size := utf8.DecodeRuneInString(c.text[c.off:])
	if unicode.IsLetter(r) {
		return scanIdent(c), true
	}
	m := c.mark()
	c.off += uint32(size)
	sp := c.spanFrom(m)
	report(bag, diag.LexUnrecognizedChar, sp, "unrecognized token")
	return token.Token{}, false
}

func scanNumber(c *cursor) token.Token {
	m := c.mark()
	for !c.eof() && isDigit(c.peek()) {
		c.bump()
	}
	return mk(c, m, token.Number)
}

func scanString(c *cursor, bag *diag.Bag) (token.Token, bool) {
	m := c.mark()
	c.bump() // opening quote
	for {
		if c.eof() {
			sp := c.spanFrom(m)
			report(bag, diag.LexUnterminatedString, sp, "unterminated string literal")
			return token.Token{Kind: token.String, Span: sp, Text: c.text[sp.Start:sp.End]}, true
		}
		b := c.bump()
		if b == '\\' && !c.eof() {
			c.bump()
			continue
		}
		if b == '"' {
			break
		}
	}
	return mk(c, m, token.String), true
}

func scanSigil(c *cursor) (token.Token, bool) {
	for _, s := range sigils {
		if matches(c, s) {
			m := c.mark()
			for range s {
				c.bump()
			}
			return mk(c, m, token.Sigil), true
		}
	}
	return token.Token{}, false
}

func matches(c *cursor, s string) bool {
	for i := 0; i < len(s); i++ {
		if c.peekAt(uint32(i)) != s[i] {
			return false
		}
	}
	return true
}

// report appends a freshly built error diagnostic to bag.
func report(bag *diag.Bag, code diag.Code, sp source.Span, label string) {
	d := diag.NewError(code, sp, label)
	bag.Add(&d)
}
