package sem

import (
	"fmt"

	"velar/internal/source"
	"velar/internal/types"
)

// CallableKind discriminates functions from properties.
type CallableKind uint8

const (
	CallableInvalid CallableKind = iota
	CallableFunc
	CallableProp
)

func (k CallableKind) String() string {
	switch k {
	case CallableFunc:
		return "func"
	case CallableProp:
		return "prop"
	default:
		return "invalid"
	}
}

// Visibility of a declaration, ordered from most to least accessible.
type Visibility uint8

const (
	VisPublic Visibility = iota
	VisProtected
	VisPackage
	VisPrivate
)

func (v Visibility) String() string {
	switch v {
	case VisPublic:
		return "public"
	case VisProtected:
		return "protected"
	case VisPackage:
		return "package"
	case VisPrivate:
		return "private"
	default:
		return fmt.Sprintf("Visibility(%d)", v)
	}
}

// Origin records how a callable declaration came to exist.
type Origin uint8

const (
	// OriginExplicit: written by the user in the class body.
	OriginExplicit Origin = iota
	// OriginFromSupertypes: produced by the resolution stage when pulling
	// a member through an inheritance edge; when its receiver equals the
	// inheriting class, type substitution for that edge already happened.
	OriginFromSupertypes
	// OriginSubstitution: a fake override whose signature had generic
	// parameters replaced with the arguments of one inheritance edge.
	OriginSubstitution
	// OriginIntersection: a fake override merging a member inherited
	// along two or more incomparable supertype paths.
	OriginIntersection
)

func (o Origin) String() string {
	switch o {
	case OriginExplicit:
		return "explicit"
	case OriginFromSupertypes:
		return "from-supertypes"
	case OriginSubstitution:
		return "substitution"
	case OriginIntersection:
		return "intersection"
	default:
		return fmt.Sprintf("Origin(%d)", o)
	}
}

// Callable is a function or property declaration of the semantic tree.
// Declarations are created by the front end (or by the member-scope
// provider when it instantiates overrides) and are read-only to the
// lowering stage.
type Callable struct {
	Kind     CallableKind
	Name     source.StringID
	Vis      Visibility
	Origin   Origin
	Receiver ClassID // dispatch-receiver class

	TypeParams []types.TypeID
	ReturnType types.TypeID   // function return type; property getter return type
	ParamTypes []types.TypeID // functions only

	// Property-only fields.
	BackingType types.TypeID
	IsMutable   bool
	HasGetter   bool
	HasSetter   bool
	GetterVis   Visibility
	SetterVis   Visibility

	// Original links a substitution or intersection override back to the
	// declaration it was derived from. NoCallableID for originals.
	Original CallableID

	// Overrides lists the supertype members this explicit declaration
	// overrides, as computed by the resolution stage.
	Overrides []CallableID
}
