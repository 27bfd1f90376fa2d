// Package parser implements the macro-driven recursive-descent parser
// described in §4.5: a small registry maps a leading identifier to the
// macro that knows how to consume the rest of that item, so adding a
// new item kind never touches the top-level dispatch loop.
package parser

import (
	"lark/internal/diag"
	"lark/internal/entity"
	"lark/internal/lexer"
	"lark/internal/source"
	"lark/internal/token"
)

// Result is everything one file's parse produces: the file's own
// entity, the items found in it, and any diagnostics raised.
type Result struct {
	File  entity.ID
	Items []*ParsedEntity
	Bag   *diag.Bag
}

// Parser holds the state threaded through top-level item parsing. It
// is not reused across files.
type Parser struct {
	s    *stream
	ents *entity.Table
	file entity.ID
	bag  *diag.Bag
	reg  map[string]macro
}

// MaxErrors bounds how many diagnostics one file's parse may emit
// before the top-level loop gives up resyncing and stops (§5, a
// malformed file must still terminate parsing in bounded time).
const MaxErrors = 200

// ParseFile tokenizes and parses one file's text into its top-level
// items. fileID must already be registered in the caller's source.Map.
func ParseFile(fileID source.FileID, text string, ents *entity.Table) Result {
	bag := diag.NewBag(MaxErrors)
	toks := lexer.Tokenize(fileID, text, bag)

	fileEnt := ents.InternInputFile(fileID)
	p := &Parser{
		s:    newStream(toks),
		ents: ents,
		file: fileEnt,
		bag:  bag,
		reg:  newRegistry(),
	}

	var items []*ParsedEntity
	for !p.s.atEOF() && bag.Len() < MaxErrors {
		before := p.s.pos
		item, ok := p.parseItem()
		if ok {
			items = append(items, item)
		}
		if p.s.pos == before {
			// No macro matched and nothing was consumed recovering from
			// the error: force-advance so a single bad token can't loop
			// the parser forever.
			p.s.bump()
		}
	}

	return Result{File: fileEnt, Items: items, Bag: bag}
}

func (p *Parser) parseItem() (*ParsedEntity, bool) {
	tok := p.s.peek()
	if tok.Kind != token.Identifier {
		p.reportf(tok.Span, diag.SynUnexpectedToken, "expected an item (struct or fn)")
		return nil, false
	}
	m, ok := p.reg[tok.Text]
	if !ok {
		p.reportf(tok.Span, diag.SynUnknownMacro, "unknown item keyword '"+tok.Text+"'")
		p.resync()
		return nil, false
	}
	return m.parse(p)
}

// resync advances past tokens until the next item-starting keyword,
// matching the teacher's "scan to a stop-token set" recovery strategy.
func (p *Parser) resync() {
	for !p.s.atEOF() {
		if _, ok := p.reg[p.s.peek().Text]; ok {
			return
		}
		p.s.bump()
	}
}

func (p *Parser) reportf(sp source.Span, code diag.Code, label string) {
	d := diag.NewError(code, sp, label)
	p.bag.Add(&d)
}

func (p *Parser) expectIdent(what string) (token.Token, bool) {
	tok := p.s.peek()
	if tok.Kind != token.Identifier {
		p.reportf(tok.Span, diag.SynExpectedIdent, "expected "+what)
		return tok, false
	}
	p.s.bump()
	return tok, true
}

func (p *Parser) expectSigil(sig, what string) bool {
	if !p.s.at(sig) {
		p.reportf(p.s.span(), diag.SynUnexpectedToken, "expected "+what)
		return false
	}
	p.s.bump()
	return true
}
