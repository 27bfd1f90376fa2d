package parser

import "lark/internal/entity"

type structMacro struct{}

func (*structMacro) parse(p *Parser) (*ParsedEntity, bool) {
	start := p.s.span()
	p.s.bump() // 'struct'

	name, ok := p.expectIdent("a struct name")
	if !ok {
		p.resync()
		return nil, false
	}

	if !p.expectSigil("{", "'{' to open the struct body") {
		p.resync()
		return nil, false
	}

	var fields []FieldSyntax
	for !p.s.at("}") && !p.s.atEOF() {
		fieldStart := p.s.span()
		fname, ok := p.expectIdent("a field name")
		if !ok {
			p.resync()
			return nil, false
		}
		if !p.expectSigil(":", "':' after a field name") {
			p.resync()
			return nil, false
		}
		ftype, ok := p.expectIdent("a field type")
		if !ok {
			p.resync()
			return nil, false
		}
		fields = append(fields, FieldSyntax{Name: fname.Text, TypeName: ftype.Text, Span: fieldStart.To(ftype.Span)})
		if p.s.at(",") {
			p.s.bump()
		}
	}

	end := p.s.span()
	if !p.expectSigil("}", "'}' to close the struct body") {
		p.resync()
		return nil, false
	}

	itemEnt := p.ents.InternItem(p.file, entity.ItemStruct, name.Text)
	for _, f := range fields {
		p.ents.InternMember(itemEnt, entity.MemberField, f.Name)
	}

	return &ParsedEntity{
		Entity:             itemEnt,
		FullSpan:           start.To(end),
		CharacteristicSpan: name.Span,
		Struct:             &StructSyntax{Fields: fields},
	}, true
}
