package sem

import (
	"fmt"

	"fortio.org/safecast"

	"velar/internal/source"
	"velar/internal/types"
)

// Package groups classes for package-visibility checks.
type Package struct {
	Name source.StringID
}

// Module stores all semantic declarations of one compilation unit in
// compact slice-based arenas.
type Module struct {
	Strings *source.Interner
	Types   *types.Interner

	packages  []Package
	classes   []Class
	callables []Callable

	pkgIndex map[source.StringID]PackageID
}

// NewModule creates an empty module with fresh interners.
func NewModule() *Module {
	return &Module{
		Strings:   source.NewInterner(),
		Types:     types.NewInterner(),
		packages:  make([]Package, 1, 8), // index 0 reserved for NoPackageID
		classes:   make([]Class, 1, 32),
		callables: make([]Callable, 1, 128),
		pkgIndex:  make(map[source.StringID]PackageID, 8),
	}
}

// Package interns a package by name and returns its ID.
func (m *Module) Package(name string) PackageID {
	nameID := m.Strings.Intern(name)
	if id, ok := m.pkgIndex[nameID]; ok {
		return id
	}
	value, err := safecast.Conv[uint32](len(m.packages))
	if err != nil {
		panic(fmt.Errorf("package arena overflow: %w", err))
	}
	id := PackageID(value)
	m.packages = append(m.packages, Package{Name: nameID})
	m.pkgIndex[nameID] = id
	return id
}

// PackageInfo returns package metadata or nil for invalid ID.
func (m *Module) PackageInfo(id PackageID) *Package {
	if !id.IsValid() || int(id) >= len(m.packages) {
		return nil
	}
	return &m.packages[id]
}

// NewClass allocates a class in the arena and returns its ID.
func (m *Module) NewClass(c *Class) ClassID {
	if c == nil {
		panic("sem.NewClass: nil class")
	}
	value, err := safecast.Conv[uint32](len(m.classes))
	if err != nil {
		panic(fmt.Errorf("class arena overflow: %w", err))
	}
	id := ClassID(value)
	m.classes = append(m.classes, *c)
	return id
}

// Class returns a class pointer or nil for invalid ID.
func (m *Module) Class(id ClassID) *Class {
	if !id.IsValid() || int(id) >= len(m.classes) {
		return nil
	}
	return &m.classes[id]
}

// NumClasses reports number of stored classes excluding the sentinel.
func (m *Module) NumClasses() int { return len(m.classes) - 1 }

// NewCallable allocates a callable in the arena and returns its ID.
func (m *Module) NewCallable(c *Callable) CallableID {
	if c == nil {
		panic("sem.NewCallable: nil callable")
	}
	value, err := safecast.Conv[uint32](len(m.callables))
	if err != nil {
		panic(fmt.Errorf("callable arena overflow: %w", err))
	}
	id := CallableID(value)
	m.callables = append(m.callables, *c)
	return id
}

// Callable returns a callable pointer or nil for invalid ID.
func (m *Module) Callable(id CallableID) *Callable {
	if !id.IsValid() || int(id) >= len(m.callables) {
		return nil
	}
	return &m.callables[id]
}

// Unwrap follows the substitution/intersection chain of a symbol back
// to the original, non-fake declaration.
func (m *Module) Unwrap(id CallableID) CallableID {
	for {
		c := m.Callable(id)
		if c == nil || !c.Original.IsValid() {
			return id
		}
		id = c.Original
	}
}

// IsFakeOverride reports whether the symbol currently refers to a fake
// override rather than an original declaration.
func (m *Module) IsFakeOverride(id CallableID) bool {
	c := m.Callable(id)
	return c != nil && c.Origin != OriginExplicit
}

// AllowsFakeOverrideIn reports whether a declaration with the given
// visibility, declared in declPkg, may receive a fake override in a
// class that lives in pkg. Private members never do; package-visible
// members only within the same package.
func AllowsFakeOverrideIn(vis Visibility, declPkg, pkg PackageID) bool {
	switch vis {
	case VisPrivate:
		return false
	case VisPackage:
		return declPkg == pkg
	default:
		return true
	}
}

// DeclPackage returns the package of the callable's receiver class.
func (m *Module) DeclPackage(id CallableID) PackageID {
	c := m.Callable(id)
	if c == nil {
		return NoPackageID
	}
	cls := m.Class(c.Receiver)
	if cls == nil {
		return NoPackageID
	}
	return cls.Pkg
}
