package entity

import (
	"testing"

	"lark/internal/source"
)

func TestInternIsStable(t *testing.T) {
	tbl := NewTable()
	file := tbl.InternInputFile(source.FileID(1))
	a := tbl.InternItem(file, ItemStruct, "Point")
	b := tbl.InternItem(file, ItemStruct, "Point")
	if a != b {
		t.Fatalf("interning the same item twice produced different ids: %v vs %v", a, b)
	}
}

func TestInputFileWalksMemberToFile(t *testing.T) {
	tbl := NewTable()
	file := tbl.InternInputFile(source.FileID(3))
	item := tbl.InternItem(file, ItemStruct, "Point")
	member := tbl.InternMember(item, MemberField, "x")

	got, ok := tbl.InputFile(member)
	if !ok || got != source.FileID(3) {
		t.Fatalf("InputFile(member) = (%v, %v), want (3, true)", got, ok)
	}
}

func TestInputFileTerminatesOnLangItemAndError(t *testing.T) {
	tbl := NewTable()
	lang := tbl.InternLangItem("i32")
	if _, ok := tbl.InputFile(lang); ok {
		t.Fatalf("InputFile(lang item) should have no owning file")
	}

	errEnt := tbl.InternError(source.Synthetic)
	if _, ok := tbl.InputFile(errEnt); ok {
		t.Fatalf("InputFile(error entity) should have no owning file")
	}
}
