// Package declstore materializes IR declarations from front-end
// callables and interns them so that every (original declaration,
// target class) pair maps to at most one IR declaration, no matter how
// many supertype paths rediscover it. It also keeps the symbol
// resolution table the deferred override linker consumes.
package declstore

import (
	"slices"

	"velar/internal/ir"
	"velar/internal/sem"
)

type cacheKey struct {
	orig   sem.CallableID
	parent ir.ClassID
}

// Store is the session-scoped declaration cache.
type Store struct {
	sem *sem.Module
	ir  *ir.Module

	classes   map[sem.ClassID]ir.ClassID
	funcCache map[cacheKey]ir.FuncID
	propCache map[cacheKey]ir.PropID

	// Resolution tables: every materialized declaration registered under
	// the exact front-end ID it was created from.
	funcSyms map[sem.CallableID]ir.FuncID
	propSyms map[sem.CallableID]ir.PropID
}

// NewStore creates an empty store over one sem/IR module pair.
func NewStore(semMod *sem.Module, irMod *ir.Module) *Store {
	return &Store{
		sem:       semMod,
		ir:        irMod,
		classes:   make(map[sem.ClassID]ir.ClassID, 16),
		funcCache: make(map[cacheKey]ir.FuncID, 64),
		propCache: make(map[cacheKey]ir.PropID, 32),
		funcSyms:  make(map[sem.CallableID]ir.FuncID, 64),
		propSyms:  make(map[sem.CallableID]ir.PropID, 32),
	}
}

// Sem returns the semantic module the store materializes from.
func (s *Store) Sem() *sem.Module { return s.sem }

// IR returns the IR module the store materializes into.
func (s *Store) IR() *ir.Module { return s.ir }

// DeclareClass materializes the IR class header for a front-end class,
// idempotently.
func (s *Store) DeclareClass(class sem.ClassID) ir.ClassID {
	if id, ok := s.classes[class]; ok {
		return id
	}
	cls := s.sem.Class(class)
	if cls == nil {
		panic("declstore: DeclareClass on invalid class")
	}
	id := s.ir.NewClass(&ir.Class{
		Name: cls.Name,
		Pkg:  cls.Pkg,
		Sem:  class,
	})
	s.classes[class] = id
	return id
}

// IrClass returns the materialized IR class for a front-end class.
func (s *Store) IrClass(class sem.ClassID) (ir.ClassID, bool) {
	id, ok := s.classes[class]
	return id, ok
}

// CachedFunc returns the IR function previously materialized for the
// declaration's original identity and target class.
func (s *Store) CachedFunc(decl sem.CallableID, parent ir.ClassID) (ir.FuncID, bool) {
	id, ok := s.funcCache[cacheKey{orig: s.sem.Unwrap(decl), parent: parent}]
	return id, ok
}

// CreateFunc materializes an IR function from a front-end declaration
// and caches it under the declaration's original identity and target
// class. A second call for the same pair returns the first result.
func (s *Store) CreateFunc(decl sem.CallableID, parent ir.ClassID, origin ir.Origin, isLocal bool) ir.FuncID {
	key := cacheKey{orig: s.sem.Unwrap(decl), parent: parent}
	if id, ok := s.funcCache[key]; ok {
		s.funcSyms[decl] = id
		return id
	}
	c := s.sem.Callable(decl)
	if c == nil || c.Kind != sem.CallableFunc {
		panic("declstore: CreateFunc on non-function declaration")
	}
	id := s.ir.NewFunc(&ir.Func{
		Name:    c.Name,
		Vis:     c.Vis,
		Origin:  origin,
		Parent:  parent,
		Ret:     c.ReturnType,
		Params:  slices.Clone(c.ParamTypes),
		IsLocal: isLocal,
		Sem:     decl,
	})
	s.funcCache[key] = id
	s.funcSyms[decl] = id
	return id
}

// CachedProp returns the IR property previously materialized for the
// declaration's original identity and target class.
func (s *Store) CachedProp(decl sem.CallableID, parent ir.ClassID) (ir.PropID, bool) {
	id, ok := s.propCache[cacheKey{orig: s.sem.Unwrap(decl), parent: parent}]
	return id, ok
}

// CreateProp materializes an IR property, accessors included, and
// caches it like CreateFunc does.
func (s *Store) CreateProp(decl sem.CallableID, parent ir.ClassID, origin ir.Origin, isLocal bool) ir.PropID {
	key := cacheKey{orig: s.sem.Unwrap(decl), parent: parent}
	if id, ok := s.propCache[key]; ok {
		s.propSyms[decl] = id
		return id
	}
	c := s.sem.Callable(decl)
	if c == nil || c.Kind != sem.CallableProp {
		panic("declstore: CreateProp on non-property declaration")
	}
	id := s.ir.NewProp(&ir.Prop{
		Name:      c.Name,
		Vis:       c.Vis,
		Origin:    origin,
		Parent:    parent,
		Type:      c.BackingType,
		Ret:       c.ReturnType,
		IsMutable: c.IsMutable,
		IsLocal:   isLocal,
		Getter:    ir.Accessor{Present: c.HasGetter, Vis: c.GetterVis},
		Setter:    ir.Accessor{Present: c.HasSetter, Vis: c.SetterVis},
		Sem:       decl,
	})
	s.propCache[key] = id
	s.propSyms[decl] = id
	return id
}

// OwningFuncClass returns the class a materialized function belongs to.
func (s *Store) OwningFuncClass(id ir.FuncID) ir.ClassID {
	f := s.ir.Func(id)
	if f == nil {
		return ir.NoClassID
	}
	return f.Parent
}

// OwningPropClass returns the class a materialized property belongs to.
func (s *Store) OwningPropClass(id ir.PropID) ir.ClassID {
	p := s.ir.Prop(id)
	if p == nil {
		return ir.NoClassID
	}
	return p.Parent
}

// SetFuncParent force-sets the parent class of a materialized function.
func (s *Store) SetFuncParent(id ir.FuncID, parent ir.ClassID) {
	f := s.ir.Func(id)
	if f == nil {
		panic("declstore: SetFuncParent on invalid function")
	}
	f.Parent = parent
}

// SetPropParent force-sets the parent class of a materialized property.
func (s *Store) SetPropParent(id ir.PropID, parent ir.ClassID) {
	p := s.ir.Prop(id)
	if p == nil {
		panic("declstore: SetPropParent on invalid property")
	}
	p.Parent = parent
}

// ResolveFuncSymbol resolves a front-end function symbol to the IR
// function materialized for it, if any.
func (s *Store) ResolveFuncSymbol(sym sem.CallableID) (ir.FuncID, bool) {
	id, ok := s.funcSyms[sym]
	return id, ok
}

// ResolvePropSymbol resolves a front-end property symbol to the IR
// property materialized for it, if any.
func (s *Store) ResolvePropSymbol(sym sem.CallableID) (ir.PropID, bool) {
	id, ok := s.propSyms[sym]
	return id, ok
}
