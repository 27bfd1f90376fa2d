package parser

import (
	"lark/internal/diag"
	"lark/internal/entity"
)

// functionMacro backs both "fn" and "def" (Open Question resolution:
// they are spelling aliases, registered as the same macro instance).
type functionMacro struct{}

func (*functionMacro) parse(p *Parser) (*ParsedEntity, bool) {
	start := p.s.span()
	p.s.bump() // 'fn' or 'def'

	name, ok := p.expectIdent("a function name")
	if !ok {
		p.resync()
		return nil, false
	}

	if !p.expectSigil("(", "'(' to open the parameter list") {
		p.resync()
		return nil, false
	}

	var params []ParamSyntax
	for !p.s.at(")") && !p.s.atEOF() {
		pname, ok := p.expectIdent("a parameter name")
		if !ok {
			p.resync()
			return nil, false
		}
		if !p.expectSigil(":", "':' after a parameter name") {
			p.resync()
			return nil, false
		}
		ptype, ok := p.expectIdent("a parameter type")
		if !ok {
			p.resync()
			return nil, false
		}
		params = append(params, ParamSyntax{Name: pname.Text, TypeName: ptype.Text})
		if p.s.at(",") {
			p.s.bump()
		}
	}
	if !p.expectSigil(")", "')' to close the parameter list") {
		p.resync()
		return nil, false
	}

	returnType := ""
	if p.s.at("->") {
		p.s.bump()
		rtype, ok := p.expectIdent("a return type")
		if !ok {
			p.resync()
			return nil, false
		}
		returnType = rtype.Text
	}

	if !p.s.at("{") {
		p.reportf(p.s.span(), diag.SynUnexpectedToken, "expected '{' to open the function body")
		p.resync()
		return nil, false
	}
	bodyToks, end := p.s.captureBalanced()

	itemEnt := p.ents.InternItem(p.file, entity.ItemFunction, name.Text)

	return &ParsedEntity{
		Entity:             itemEnt,
		FullSpan:           start.To(end),
		CharacteristicSpan: name.Span,
		Func: &FuncSyntax{
			Params:     params,
			ReturnType: returnType,
			bodyToks:   bodyToks,
		},
	}, true
}
