// Package entity implements the naming tree described in §3: every
// nameable thing in a project — files, items, members, built-in
// language items, and error placeholders — is an Entity, interned so
// that two requests for "the same" entity always compare equal.
package entity

import (
	"lark/internal/intern"
	"lark/internal/source"
)

// ID is an interned handle to an Entity.
type ID uint32

// NoID marks the absence of an entity.
const NoID ID = 0

// Kind discriminates the variants of the Entity tagged union.
type Kind uint8

const (
	// KindInputFile roots the naming tree at one registered source file.
	KindInputFile Kind = iota
	// KindItemName names a top-level item (struct or function) in a file.
	KindItemName
	// KindMemberName names a member (currently only fields) of an item.
	KindMemberName
	// KindLangItem names a built-in, file-less entity (e.g. a primitive type).
	KindLangItem
	// KindError stands in for a name that failed to resolve, carrying the
	// span that produced the error so diagnostics can point back to it.
	KindError
)

// ItemKind enumerates the top-level items a file can declare.
type ItemKind uint8

const (
	ItemStruct ItemKind = iota
	ItemFunction
)

// MemberKind enumerates the members an item can declare.
type MemberKind uint8

const (
	MemberField MemberKind = iota
)

// Entity is a tagged union over the five entity variants. Only the
// fields relevant to Kind are meaningful; the rest are zero.
type Entity struct {
	Kind Kind

	// KindInputFile
	File source.FileID

	// KindItemName / KindMemberName
	Base ID
	Text string // the literal name

	ItemKind   ItemKind
	MemberKind MemberKind

	// KindLangItem
	LangName string

	// KindError
	ErrorSpan source.Span
}

// Table interns Entity values. Entities compare structurally: two
// ItemNames with the same Base, ItemKind, and Text intern to the same ID.
type Table struct {
	*intern.Table[Entity, ID]
}

// NewTable creates an empty entity table.
func NewTable() *Table {
	return &Table{intern.New[Entity, ID](Entity{})}
}

// InternInputFile returns the entity rooting file's naming tree.
func (t *Table) InternInputFile(file source.FileID) ID {
	return t.Intern(Entity{Kind: KindInputFile, File: file})
}

// InternItem returns the entity naming a top-level item.
func (t *Table) InternItem(base ID, kind ItemKind, name string) ID {
	return t.Intern(Entity{Kind: KindItemName, Base: base, ItemKind: kind, Text: name})
}

// InternMember returns the entity naming a member of an item.
func (t *Table) InternMember(base ID, kind MemberKind, name string) ID {
	return t.Intern(Entity{Kind: KindMemberName, Base: base, MemberKind: kind, Text: name})
}

// InternLangItem returns the entity for a built-in, file-less name.
func (t *Table) InternLangItem(name string) ID {
	return t.Intern(Entity{Kind: KindLangItem, LangName: name})
}

// InternError returns an Entity::Error placeholder for a span that
// failed to resolve to a real name.
func (t *Table) InternError(span source.Span) ID {
	return t.Intern(Entity{Kind: KindError, ErrorSpan: span})
}

// Get returns the Entity data for id. Panics on an invalid id.
func (t *Table) Get(id ID) Entity {
	return t.MustUntern(id)
}

// InputFile walks Base links from id up to the owning KindInputFile
// entity. KindLangItem and KindError entities have no owning file and
// return source.NoFileID, false (§3's "walked via base links to reach the owning
// file" invariant, with those two variants as the documented exception).
func (t *Table) InputFile(id ID) (source.FileID, bool) {
	for {
		e := t.Get(id)
		switch e.Kind {
		case KindInputFile:
			return e.File, true
		case KindItemName, KindMemberName:
			id = e.Base
		default:
			return source.NoFileID, false
		}
	}
}
