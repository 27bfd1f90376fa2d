package parser

// macro parses one top-level item once its leading keyword has matched.
// The top-level loop picks the macro by looking the leading identifier
// up in the registry, so the interface needs only parse (§4.5's macro
// registry / Syntax capability pattern).
type macro interface {
	parse(p *Parser) (*ParsedEntity, bool)
}

// registry maps a leading identifier to the macro that owns it. "fn"
// and "def" both register the struct-same function macro instance
// (Open Question resolution, DESIGN.md): they are pure spelling
// aliases with no semantic difference.
func newRegistry() map[string]macro {
	fn := &functionMacro{}
	return map[string]macro{
		"struct": &structMacro{},
		"fn":     fn,
		"def":    fn,
	}
}
