package types

import "fmt"

// TypeID uniquely identifies a type inside the interner.
type TypeID uint32

// NoTypeID marks the absence of a type.
const NoTypeID TypeID = 0

// IsValid reports whether the ID refers to an interned type.
func (id TypeID) IsValid() bool { return id != NoTypeID }

// ClassRef is an opaque reference to a semantic class declaration.
// The types package does not depend on the declaration arenas; callers
// cast their class IDs into ClassRef when registering nominal types.
type ClassRef uint32

// NoClassRef marks the absence of a class reference.
const NoClassRef ClassRef = 0

// Kind enumerates all supported kinds of types.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindUnit
	KindBool
	KindInt
	KindString
	// KindError is the unresolved-type marker produced by the resolution
	// stage when a reference could not be resolved. It participates in
	// member types like any other type so that lowering can detect and
	// contain it.
	KindError
	// KindClass is a nominal class type, possibly with generic arguments.
	KindClass
	// KindTypeParam is a generic type parameter owned by a class.
	KindTypeParam
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindUnit:
		return "unit"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindString:
		return "string"
	case KindError:
		return "error"
	case KindClass:
		return "class"
	case KindTypeParam:
		return "typeparam"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Type is a compact descriptor. Payload points into the interner's
// side tables for class and type-parameter kinds.
type Type struct {
	Kind    Kind
	Payload uint32
}

// ClassInfo stores metadata for nominal class types.
type ClassInfo struct {
	Class ClassRef
	Args  []TypeID // generic arguments, empty for non-generic classes
}

// ParamInfo stores metadata for generic type parameters.
type ParamInfo struct {
	Owner ClassRef
	Index uint32
}
