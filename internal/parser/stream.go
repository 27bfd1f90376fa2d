package parser

import (
	"lark/internal/source"
	"lark/internal/token"
)

// stream is a look-ahead cursor over one file's token sequence. It
// skips whitespace, comments, and newlines uniformly: Lark's grammar is
// whitespace-insensitive (§8, "fn and def parse identically regardless
// of surrounding layout"), unlike Token.IsTrivia which preserves
// newlines as significant for callers that want them (e.g. a future
// formatter).
type stream struct {
	toks []token.Token
	pos  int

	// sawNewline reports whether the trivia most recently skipped (by
	// skipTrivia, via bump or newStream) contained a Newline token. §4.6
	// treats a newline the same as ';' as a statement separator, so
	// stmts() consults this instead of re-deriving it from token kinds.
	sawNewline bool
}

func newStream(toks []token.Token) *stream {
	s := &stream{toks: toks}
	s.skipTrivia()
	return s
}

func (s *stream) isTrivia(k token.Kind) bool {
	return k == token.Whitespace || k == token.Comment || k == token.Newline
}

func (s *stream) skipTrivia() {
	s.sawNewline = false
	for s.pos < len(s.toks) && s.isTrivia(s.toks[s.pos].Kind) {
		if s.toks[s.pos].Kind == token.Newline {
			s.sawNewline = true
		}
		s.pos++
	}
}

// newlineBefore reports whether a Newline was skipped between the last
// bumped token and the current position.
func (s *stream) newlineBefore() bool { return s.sawNewline }

// peek returns the current significant token without consuming it.
func (s *stream) peek() token.Token {
	if s.pos >= len(s.toks) {
		return s.toks[len(s.toks)-1] // EOF for a file; a captured body's closing '}' (or EOF if unclosed)
	}
	return s.toks[s.pos]
}

// at reports whether the current token is a Sigil/Identifier with text s.
func (s *stream) at(text string) bool {
	t := s.peek()
	return (t.Kind == token.Sigil || t.Kind == token.Identifier) && t.Text == text
}

func (s *stream) atEOF() bool { return s.peek().Kind == token.EOF }

// bump consumes and returns the current significant token, advancing
// past any trivia that follows it.
func (s *stream) bump() token.Token {
	t := s.peek()
	if s.pos < len(s.toks) {
		s.pos++
	}
	s.skipTrivia()
	return t
}

// span returns the current significant token's span, used to place
// error-recovery diagnostics.
func (s *stream) span() source.Span {
	return s.peek().Span
}

// captureBalanced requires the current token to be "{" and returns the
// raw token slice (trivia included) through its matching "}",
// advancing past it. The returned slice is handed to a function's body
// thunk so the body can be reparsed later without rescanning the file.
func (s *stream) captureBalanced() ([]token.Token, source.Span) {
	start := s.pos
	depth := 0
	i := s.pos
	for i < len(s.toks) {
		tk := s.toks[i]
		if tk.Kind == token.Sigil && tk.Text == "{" {
			depth++
		} else if tk.Kind == token.Sigil && tk.Text == "}" {
			depth--
			if depth == 0 {
				i++
				break
			}
		}
		i++
	}
	if i > len(s.toks) {
		i = len(s.toks)
	}
	sub := s.toks[start:i]
	var endSpan source.Span
	if i > start {
		endSpan = s.toks[i-1].Span
	}
	s.pos = i
	s.skipTrivia()
	return sub, endSpan
}
