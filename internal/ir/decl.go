package ir

import (
	"fmt"

	"velar/internal/sem"
	"velar/internal/source"
	"velar/internal/types"
)

// Origin tags how an IR declaration came to exist.
type Origin uint8

const (
	// OriginDeclared: materialized from an explicit front-end member.
	OriginDeclared Origin = iota
	// OriginFakeOverride: synthesized for an inherited member that the
	// class does not re-declare.
	OriginFakeOverride
)

func (o Origin) String() string {
	switch o {
	case OriginDeclared:
		return "declared"
	case OriginFakeOverride:
		return "fake-override"
	default:
		return fmt.Sprintf("Origin(%d)", o)
	}
}

// Class is a lowered class with its complete member table.
type Class struct {
	Name  source.StringID
	Pkg   sem.PackageID
	Sem   sem.ClassID
	Funcs []FuncID
	Props []PropID
}

// Func is a lowered function declaration.
type Func struct {
	Name    source.StringID
	Vis     sem.Visibility
	Origin  Origin
	Parent  ClassID
	Ret     types.TypeID
	Params  []types.TypeID
	IsLocal bool

	// Sem points back to the front-end declaration the function was
	// materialized from (a substituted copy for fake overrides).
	Sem sem.CallableID

	// Overridden is the resolved overrides relation, written by the
	// deferred linker. Non-owning references.
	Overridden []FuncID
}

// Accessor is a property getter or setter sub-declaration. The linker
// may remove an accessor entirely when its base fails the
// fake-override eligibility predicate.
type Accessor struct {
	Present    bool
	Vis        sem.Visibility
	Overridden []PropID // base properties whose matching accessor this one overrides
}

// Prop is a lowered property declaration.
type Prop struct {
	Name      source.StringID
	Vis       sem.Visibility
	Origin    Origin
	Parent    ClassID
	Type      types.TypeID // backing-field type
	Ret       types.TypeID // getter return type
	IsMutable bool
	IsLocal   bool

	Getter Accessor
	Setter Accessor

	Sem sem.CallableID

	// Overridden is the resolved property-level overrides relation.
	Overridden []PropID
}

// DeclKind discriminates entries of a mixed declaration list.
type DeclKind uint8

const (
	DeclInvalid DeclKind = iota
	DeclFunc
	DeclProp
)

// DeclRef is a kind-tagged reference to a lowered declaration, used
// where functions and properties travel through one list (synthesis
// output, linker input).
type DeclRef struct {
	Kind DeclKind
	Func FuncID
	Prop PropID
}

// FuncRef wraps a function ID as a DeclRef.
func FuncRef(id FuncID) DeclRef { return DeclRef{Kind: DeclFunc, Func: id} }

// PropRef wraps a property ID as a DeclRef.
func PropRef(id PropID) DeclRef { return DeclRef{Kind: DeclProp, Prop: id} }
