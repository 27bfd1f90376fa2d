package hir

import (
	"lark/internal/diag"
	"lark/internal/entity"
	"lark/internal/parser"
	"lark/internal/source"
)

var builtinTypes = map[string]bool{
	"i32":  true,
	"bool": true,
	"unit": true,
}

// Lower builds a Module from one file's parse result, resolving every
// name it can: type names against the file's items plus the builtin
// lang items, call callees against the file's functions, and local
// variable references against their enclosing scope. Field and method
// names on a receiver are left unresolved here — their owner depends
// on the receiver's type, which isn't known until checking (§4.8).
func Lower(res parser.Result, ents *entity.Table, bag *diag.Bag) *Module {
	items := make(map[string]entity.ID, len(res.Items))
	for _, it := range res.Items {
		items[ents.Get(it.Entity).Text] = it.Entity
	}

	mod := &Module{File: res.File}
	for _, it := range res.Items {
		switch {
		case it.Struct != nil:
			mod.Structs = append(mod.Structs, lowerStruct(it, items, ents, bag))
		case it.Func != nil:
			mod.Funcs = append(mod.Funcs, lowerFunc(it, items, ents, bag))
		}
	}
	return mod
}

func resolveTypeName(name string, sp source.Span, items map[string]entity.ID, ents *entity.Table, bag *diag.Bag) entity.ID {
	if id, ok := items[name]; ok {
		return id
	}
	if builtinTypes[name] {
		return ents.InternLangItem(name)
	}
	d := diag.NewError(diag.ResUnknownName, sp, "unknown type '"+name+"'")
	bag.Add(&d)
	return ents.InternError(sp)
}

func lowerStruct(it *parser.ParsedEntity, items map[string]entity.ID, ents *entity.Table, bag *diag.Bag) *StructDef {
	def := &StructDef{Entity: it.Entity}
	for _, f := range it.Struct.Fields {
		fieldEnt := ents.InternMember(it.Entity, entity.MemberField, f.Name)
		typeEnt := resolveTypeName(f.TypeName, f.Span, items, ents, bag)
		def.Fields = append(def.Fields, FieldDef{
			Entity:     fieldEnt,
			Name:       f.Name,
			TypeName:   f.TypeName,
			TypeEntity: typeEnt,
		})
	}
	return def
}

func lowerFunc(it *parser.ParsedEntity, items map[string]entity.ID, ents *entity.Table, bag *diag.Bag) *FuncDef {
	fn := it.Func
	def := &FuncDef{
		Entity: it.Entity,
		Arena:  NewArena(),
	}

	scopes, root := NewScopes()

	for _, p := range fn.Params {
		typeEnt := resolveTypeName(p.TypeName, it.CharacteristicSpan, items, ents, bag)
		def.Vars = append(def.Vars, VarInfo{Name: p.Name})
		v := VarID(len(def.Vars) - 1)
		scopes.Define(root, p.Name, v)
		def.Params = append(def.Params, ParamDef{Var: v, Name: p.Name, TypeName: p.TypeName, TypeEntity: typeEnt})
	}

	returnTypeName := fn.ReturnType
	if returnTypeName == "" {
		returnTypeName = "unit"
	}
	def.ReturnTypeName = returnTypeName
	def.ReturnTypeEntity = resolveTypeName(returnTypeName, it.CharacteristicSpan, items, ents, bag)

	lw := &lowerer{def: def, scopes: scopes, items: items, ents: ents, bag: bag}
	body := fn.ParseBody(bag)
	def.Body = lw.expr(body, root)
	return def
}
