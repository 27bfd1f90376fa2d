package hir

import "lark/internal/entity"

// ParamDef is one lowered function parameter.
type ParamDef struct {
	Var        VarID
	Name       string
	TypeName   string
	TypeEntity entity.ID
}

// FuncDef is a lowered function: its signature, its own expression
// arena, and the root of its body.
type FuncDef struct {
	Entity           entity.ID
	Params           []ParamDef
	ReturnTypeName   string
	ReturnTypeEntity entity.ID
	Arena            *Arena
	Body             ExprID
	Vars             []VarInfo
}

// VarInfo is per-VarID metadata, indexed in declaration order so VarID
// 0 is the function's first parameter (or NoVar if it has none).
type VarInfo struct {
	Name string
}

// FieldDef is one lowered struct field.
type FieldDef struct {
	Entity     entity.ID
	Name       string
	TypeName   string
	TypeEntity entity.ID
}

// StructDef is a lowered struct declaration.
type StructDef struct {
	Entity entity.ID
	Fields []FieldDef
}

// Module is everything lowered from one file.
type Module struct {
	File    entity.ID
	Structs []*StructDef
	Funcs   []*FuncDef
}

// FuncByEntity finds a lowered function by its entity, if present.
func (m *Module) FuncByEntity(id entity.ID) (*FuncDef, bool) {
	for _, f := range m.Funcs {
		if f.Entity == id {
			return f, true
		}
	}
	return nil, false
}

// StructByEntity finds a lowered struct by its entity, if present.
func (m *Module) StructByEntity(id entity.ID) (*StructDef, bool) {
	for _, s := range m.Structs {
		if s.Entity == id {
			return s, true
		}
	}
	return nil, false
}
