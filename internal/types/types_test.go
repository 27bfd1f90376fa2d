package types

import (
	"testing"

	"lark/internal/entity"
)

func TestKnownTyIsNotError(t *testing.T) {
	ents := entity.NewTable()
	bases := NewBases()
	i32 := bases.Add(BaseData{Kind: BaseNamed, Entity: ents.InternLangItem("i32")})
	ty := KnownTy(Declaration, i32, KnownPermission(PermOwn))
	if ty.IsError(bases) {
		t.Fatalf("a known named type must not report IsError")
	}
}

func TestErrorSentinelIsError(t *testing.T) {
	bases := NewBases()
	ty := KnownTy(Declaration, NoBase, KnownPermission(PermOwn))
	if !ty.IsError(bases) {
		t.Fatalf("the reserved zero handle must be the error sentinel")
	}
}

func TestSubstitutionBindsGenericPlaceholder(t *testing.T) {
	ents := entity.NewTable()
	bases := NewBases()
	boolEnt := ents.InternLangItem("bool")
	boolTy := KnownTy(BaseInferred, bases.Add(BaseData{Kind: BaseNamed, Entity: boolEnt}), KnownPermission(PermOwn))

	placeholder := KnownTy(Declaration, bases.Add(BaseData{Kind: BasePlaceholder, Placeholder: 0}), KnownPermission(PermOwn))

	sub := NewSubstitution(bases, BaseInferred)
	sub.BindGeneric(0, boolTy)

	out := sub.Apply(placeholder)
	if out.Family != BaseInferred {
		t.Fatalf("expected family BaseInferred, got %v", out.Family)
	}
	if bases.Get(out.Base).Entity != boolEnt {
		t.Fatalf("expected placeholder to resolve to bool, got %+v", bases.Get(out.Base))
	}
}

func TestSubstitutionResolvesInferVar(t *testing.T) {
	bases := NewBases()
	ents := entity.NewTable()
	intEnt := ents.InternLangItem("i32")
	intTy := KnownTy(BaseInferred, bases.Add(BaseData{Kind: BaseNamed, Entity: intEnt}), KnownPermission(PermOwn))

	sub := NewSubstitution(bases, BaseInferred)
	sub.BindVar(InferVar(7), intTy)

	unresolved := VarTy(BaseInference, InferVar(7))
	out := sub.Apply(unresolved)
	if out.Repr != ReprKnown || bases.Get(out.Base).Entity != intEnt {
		t.Fatalf("expected variable 7 to resolve to i32, got %+v", out)
	}
}
