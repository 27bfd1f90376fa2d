// Package types implements Lark's parametrized type-family system
// (§4.7). Rather than five separate generic types, one per family, it
// follows Design Notes §9: a single Family enum plus one shared Ty
// struct whose Repr field says whether the type is still an unresolved
// inference variable or a known, structurally-built type.
package types

import "lark/internal/entity"

// Family identifies which phase of type information a Ty belongs to.
// The same struct shape is reused across all five; only which values
// are legal in Repr/Var differ by convention (inference families may
// hold ReprVar, declared/inferred families never do).
type Family uint8

const (
	// Declaration is the family of types as written in source, before
	// any inference runs (no inference variables ever appear here).
	Declaration Family = iota
	// BaseInference is the family used while checking a function body
	// against its declared signature: only base types are unified.
	BaseInference
	// FullInference additionally unifies permissions.
	FullInference
	// BaseInferred is a BaseInference result with every variable solved.
	BaseInferred
	// FullInferred is a FullInference result with every variable solved.
	FullInferred
)

func (f Family) String() string {
	switch f {
	case Declaration:
		return "Declaration"
	case BaseInference:
		return "BaseInference"
	case FullInference:
		return "FullInference"
	case BaseInferred:
		return "BaseInferred"
	case FullInferred:
		return "FullInferred"
	default:
		return "UnknownFamily"
	}
}

// Repr discriminates whether a Ty (or its Permission) is still an
// unresolved inference variable or has a known value.
type Repr uint8

const (
	// ReprVar means the field carries an InferVar index, not a value.
	ReprVar Repr = iota
	// ReprKnown means the field carries a resolved value.
	ReprKnown
)

// InferVar names an inference variable within one type-checker run.
// Variable numbering is local to a single check; it is never persisted
// or compared across runs.
type InferVar uint32

// PermKind enumerates the three permissions a place can have (§4.7).
// The checker gives every type it builds Own and generates no
// permission constraints (see Open Question resolution in DESIGN.md);
// Share and Borrow are represented so the
// data model matches the full design, but the checker never rejects a
// program over them.
type PermKind uint8

const (
	PermOwn PermKind = iota
	PermShare
	PermBorrow
)

func (p PermKind) String() string {
	switch p {
	case PermOwn:
		return "own"
	case PermShare:
		return "share"
	case PermBorrow:
		return "borrow"
	default:
		return "unknown-perm"
	}
}

// Permission is a (possibly unresolved) permission value: an inference
// variable in inference families, or a known PermKind once solved.
type Permission struct {
	Repr Repr
	Var  InferVar
	Kind PermKind
}

// KnownPermission builds an already-resolved permission.
func KnownPermission(kind PermKind) Permission {
	return Permission{Repr: ReprKnown, Kind: kind}
}

// VarPermission builds an unresolved permission variable.
func VarPermission(v InferVar) Permission {
	return Permission{Repr: ReprVar, Var: v}
}

// BaseKind discriminates the shapes a base type can take.
type BaseKind uint8

const (
	// BaseNamed is a concrete named type: a builtin lang item (i32,
	// bool, unit, ...) or a user-declared struct, optionally applied to
	// generic arguments.
	BaseNamed BaseKind = iota
	// BasePlaceholder stands for an unbound generic parameter by its
	// position in the declaring item's parameter list.
	BasePlaceholder
	// BaseError is the sentinel used once a type error has already been
	// reported, so later checks don't cascade a second diagnostic for
	// the same root cause (§7).
	BaseError
)

// BaseData is the structural content of a resolved base type.
type BaseData struct {
	Kind        BaseKind
	Entity      entity.ID // valid when Kind == BaseNamed
	Generics    []Ty      // valid when Kind == BaseNamed
	Placeholder uint32    // valid when Kind == BasePlaceholder
}

// BaseHandle indexes into a Bases arena.
type BaseHandle uint32

// NoBase is the reserved zero handle.
const NoBase BaseHandle = 0

// Bases is an append-only arena of BaseData. It is not deduplicating:
// two structurally identical BaseData values may occupy different
// handles, which is fine since the checker (sema's Unify) compares
// base types structurally by kind and entity, not by handle.
type Bases struct {
	data []BaseData
}

// NewBases creates an arena with its reserved zero entry.
func NewBases() *Bases {
	return &Bases{data: []BaseData{{Kind: BaseError}}}
}

// Add stores d and returns its handle.
func (b *Bases) Add(d BaseData) BaseHandle {
	b.data = append(b.data, d)
	return BaseHandle(len(b.data) - 1)
}

// Get returns the BaseData for a handle.
func (b *Bases) Get(h BaseHandle) BaseData { return b.data[h] }

// Ty is the single struct shared by every type family (Design Notes §9):
// repr says whether Var or Base is meaningful, perm carries the type's
// permission, base names its structural content once known.
type Ty struct {
	Family Family
	Repr   Repr
	Var    InferVar
	Base   BaseHandle
	Perm   Permission
}

// VarTy builds an unresolved inference variable in family f.
func VarTy(f Family, v InferVar) Ty {
	return Ty{Family: f, Repr: ReprVar, Var: v, Perm: VarPermission(v)}
}

// KnownTy builds a resolved type in family f.
func KnownTy(f Family, base BaseHandle, perm Permission) Ty {
	return Ty{Family: f, Repr: ReprKnown, Base: base, Perm: perm}
}

// IsError reports whether t is (or resolves to) the error sentinel,
// used to suppress cascading diagnostics once one has fired (§7).
func (t Ty) IsError(bases *Bases) bool {
	return t.Repr == ReprKnown && bases.Get(t.Base).Kind == BaseError
}

// Signature is a function's checked type: its parameter types in
// declaration order and its return type.
type Signature struct {
	Inputs []Ty
	Output Ty
}
