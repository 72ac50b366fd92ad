package sem

import (
	"velar/internal/source"
	"velar/internal/types"
)

// Class is a class declaration of the semantic tree.
type Class struct {
	Name source.StringID
	Pkg  PackageID

	// Supertypes lists the declared supertypes as class types carrying
	// the generic arguments used at each inheritance edge.
	Supertypes []types.TypeID

	// TypeParams lists this class's own generic parameters as
	// KindTypeParam types.
	TypeParams []types.TypeID

	// DefiningType is the class type with the class's own parameters as
	// arguments; the receiver type of members declared on this class.
	DefiningType types.TypeID

	// IsLocal marks classes declared inside function bodies.
	IsLocal bool

	// IsExpect marks platform-declared (expect) classes.
	IsExpect bool

	// Members holds the explicitly declared callables.
	Members []CallableID
}
