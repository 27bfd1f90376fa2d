package lexer

import (
	"fortio.org/safecast"

	"lark/internal/source"
)

// cursor tracks a byte position within one file's text.
type cursor struct {
	file  source.FileID
	text  string
	off   uint32
	limit uint32
}

func newCursor(file source.FileID, text string) cursor {
	limit, err := safecast.Conv[uint32](len(text))
	if err != nil {
		panic("lexer: file too large")
	}
	return cursor{file: file, text: text, limit: limit}
}

func (c *cursor) eof() bool { return c.off >= c.limit }

func (c *cursor) peek() byte {
	if c.eof() {
		return 0
	}
	return c.text[c.off]
}

func (c *cursor) peekAt(n uint32) byte {
	if c.off+n >= c.limit {
		return 0
	}
	return c.text[c.off+n]
}

func (c *cursor) bump() byte {
	if c.eof() {
		return 0
	}
	b := c.text[c.off]
	c.off++
	return b
}

type mark uint32

func (c *cursor) mark() mark { return mark(c.off) }

func (c *cursor) spanFrom(m mark) source.Span {
	return source.Real(c.file, uint32(m), c.off)
}
