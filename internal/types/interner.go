package types

import (
	"fmt"
	"slices"

	"fortio.org/safecast"
)

// Builtins stores TypeIDs for common primitive types.
type Builtins struct {
	Invalid TypeID
	Unit    TypeID
	Bool    TypeID
	Int     TypeID
	String  TypeID
	Error   TypeID
}

// Interner provides stable TypeIDs by hashing structural descriptors.
type Interner struct {
	types    []Type
	index    map[Type]TypeID
	builtins Builtins
	classes  []ClassInfo
	params   []ParamInfo
}

// NewInterner constructs an interner seeded with built-in primitives.
func NewInterner() *Interner {
	in := &Interner{
		index: make(map[Type]TypeID, 64),
	}
	in.classes = append(in.classes, ClassInfo{}) // reserve 0 as invalid sentinel
	in.params = append(in.params, ParamInfo{})
	in.builtins.Invalid = in.internRaw(Type{Kind: KindInvalid})
	in.builtins.Unit = in.Intern(Type{Kind: KindUnit})
	in.builtins.Bool = in.Intern(Type{Kind: KindBool})
	in.builtins.Int = in.Intern(Type{Kind: KindInt})
	in.builtins.String = in.Intern(Type{Kind: KindString})
	in.builtins.Error = in.Intern(Type{Kind: KindError})
	return in
}

// Builtins returns TypeIDs for primitive types.
func (in *Interner) Builtins() Builtins {
	return in.builtins
}

// Intern ensures the provided descriptor has a stable TypeID.
func (in *Interner) Intern(t Type) TypeID {
	if t.Kind == KindInvalid {
		return NoTypeID
	}
	if id, ok := in.index[t]; ok {
		return id
	}
	return in.internRaw(t)
}

// internRaw adds the descriptor to the storage without consulting the map.
func (in *Interner) internRaw(t Type) TypeID {
	lenTypes, err := safecast.Conv[uint32](len(in.types))
	if err != nil {
		panic(fmt.Errorf("len(types) overflow: %w", err))
	}
	id := TypeID(lenTypes)
	in.types = append(in.types, t)
	in.index[t] = id
	return id
}

// Lookup returns the descriptor for a TypeID.
func (in *Interner) Lookup(id TypeID) (Type, bool) {
	if id == NoTypeID || int(id) >= len(in.types) {
		return Type{}, false
	}
	return in.types[id], true
}

// MustLookup panics when id is invalid.
func (in *Interner) MustLookup(id TypeID) Type {
	tt, ok := in.Lookup(id)
	if !ok {
		panic("types: invalid TypeID")
	}
	return tt
}

// RegisterClass creates or finds a nominal class type.
func (in *Interner) RegisterClass(class ClassRef, args []TypeID) TypeID {
	for id := TypeID(1); int(id) < len(in.types); id++ {
		tt := in.types[id]
		if tt.Kind != KindClass {
			continue
		}
		info := in.classes[tt.Payload]
		if info.Class == class && slices.Equal(info.Args, args) {
			return id
		}
	}
	in.classes = append(in.classes, ClassInfo{
		Class: class,
		Args:  slices.Clone(args),
	})
	slot, err := safecast.Conv[uint32](len(in.classes) - 1)
	if err != nil {
		panic(fmt.Errorf("class info overflow: %w", err))
	}
	return in.internRaw(Type{Kind: KindClass, Payload: slot})
}

// ClassInfo retrieves nominal type metadata by TypeID.
func (in *Interner) ClassInfo(id TypeID) (*ClassInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindClass {
		return nil, false
	}
	if int(tt.Payload) >= len(in.classes) {
		return nil, false
	}
	return &in.classes[tt.Payload], true
}

// RegisterParam creates or finds a type parameter owned by a class.
func (in *Interner) RegisterParam(owner ClassRef, index uint32) TypeID {
	for id := TypeID(1); int(id) < len(in.types); id++ {
		tt := in.types[id]
		if tt.Kind != KindTypeParam {
			continue
		}
		info := in.params[tt.Payload]
		if info.Owner == owner && info.Index == index {
			return id
		}
	}
	in.params = append(in.params, ParamInfo{Owner: owner, Index: index})
	slot, err := safecast.Conv[uint32](len(in.params) - 1)
	if err != nil {
		panic(fmt.Errorf("param info overflow: %w", err))
	}
	return in.internRaw(Type{Kind: KindTypeParam, Payload: slot})
}

// ParamInfo retrieves type parameter metadata by TypeID.
func (in *Interner) ParamInfo(id TypeID) (*ParamInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindTypeParam {
		return nil, false
	}
	if int(tt.Payload) >= len(in.params) {
		return nil, false
	}
	return &in.params[tt.Payload], true
}

// Substitute rewrites id replacing every type parameter present in subst
// with its argument, recursing through class generic arguments. Types
// outside the mapping are returned unchanged (and not re-interned).
func (in *Interner) Substitute(id TypeID, subst map[TypeID]TypeID) TypeID {
	if len(subst) == 0 || !id.IsValid() {
		return id
	}
	if repl, ok := subst[id]; ok {
		return repl
	}
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindClass {
		return id
	}
	info := in.classes[tt.Payload]
	if len(info.Args) == 0 {
		return id
	}
	changed := false
	args := make([]TypeID, len(info.Args))
	for i, arg := range info.Args {
		args[i] = in.Substitute(arg, subst)
		if args[i] != arg {
			changed = true
		}
	}
	if !changed {
		return id
	}
	return in.RegisterClass(info.Class, args)
}

// ContainsError reports whether the type, or any generic argument
// reachable from it, is the unresolved-type marker.
func (in *Interner) ContainsError(id TypeID) bool {
	tt, ok := in.Lookup(id)
	if !ok {
		return false
	}
	switch tt.Kind {
	case KindError:
		return true
	case KindClass:
		info := in.classes[tt.Payload]
		for _, arg := range info.Args {
			if in.ContainsError(arg) {
				return true
			}
		}
	}
	return false
}
