package parser

import (
	"lark/internal/diag"
	"lark/internal/entity"
	"lark/internal/source"
	"lark/internal/token"
)

// FieldSyntax is one parsed struct field.
type FieldSyntax struct {
	Name     string
	TypeName string
	Span     source.Span
}

// StructSyntax is the eagerly parsed body of a struct item: field lists
// are short and never need incremental re-parsing on their own.
type StructSyntax struct {
	Fields []FieldSyntax
}

// ParamSyntax is one parsed function parameter.
type ParamSyntax struct {
	Name     string
	TypeName string
}

// FuncSyntax is a function's signature, parsed eagerly, plus its body
// tokens, parsed only when ParseBody is called. hir.Lower calls
// ParseBody for every function of a file, so lowering a file parses
// all of its bodies.
type FuncSyntax struct {
	Params     []ParamSyntax
	ReturnType string // "" means Unit
	bodyToks   []token.Token
}

// ParseBody lazily parses the function's body. Diagnostics produced
// while parsing are appended to bag.
func (f *FuncSyntax) ParseBody(bag *diag.Bag) ExprNode {
	return parseBody(f.bodyToks, bag)
}

// ParsedEntity is one top-level item as produced by a macro: its
// entity, its spans, and its shallow (struct) or lazy (function) body.
type ParsedEntity struct {
	Entity             entity.ID
	FullSpan           source.Span
	CharacteristicSpan source.Span
	Struct             *StructSyntax
	Func               *FuncSyntax
}
