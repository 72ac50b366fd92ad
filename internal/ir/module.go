package ir

import (
	"fmt"

	"fortio.org/safecast"
)

// Module stores lowered declarations in compact slice-based arenas.
type Module struct {
	classes []Class
	funcs   []Func
	props   []Prop
}

// NewModule creates an empty IR module.
func NewModule() *Module {
	return &Module{
		classes: make([]Class, 1, 32), // index 0 reserved for sentinels
		funcs:   make([]Func, 1, 128),
		props:   make([]Prop, 1, 64),
	}
}

// NewClass allocates an IR class and returns its ID.
func (m *Module) NewClass(c *Class) ClassID {
	if c == nil {
		panic("ir.NewClass: nil class")
	}
	value, err := safecast.Conv[uint32](len(m.classes))
	if err != nil {
		panic(fmt.Errorf("ir class arena overflow: %w", err))
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

// NumClasses reports stored classes excluding the sentinel.
func (m *Module) NumClasses() int { return len(m.classes) - 1 }

// ClassIDs returns every allocated class ID in creation order.
func (m *Module) ClassIDs() []ClassID {
	out := make([]ClassID, 0, len(m.classes)-1)
	for i := 1; i < len(m.classes); i++ {
		out = append(out, ClassID(i))
	}
	return out
}

// NewFunc allocates an IR function and returns its ID.
func (m *Module) NewFunc(f *Func) FuncID {
	if f == nil {
		panic("ir.NewFunc: nil func")
	}
	value, err := safecast.Conv[uint32](len(m.funcs))
	if err != nil {
		panic(fmt.Errorf("ir func arena overflow: %w", err))
	}
	id := FuncID(value)
	m.funcs = append(m.funcs, *f)
	return id
}

// Func returns a function pointer or nil for invalid ID.
func (m *Module) Func(id FuncID) *Func {
	if !id.IsValid() || int(id) >= len(m.funcs) {
		return nil
	}
	return &m.funcs[id]
}

// NewProp allocates an IR property and returns its ID.
func (m *Module) NewProp(p *Prop) PropID {
	if p == nil {
		panic("ir.NewProp: nil prop")
	}
	value, err := safecast.Conv[uint32](len(m.props))
	if err != nil {
		panic(fmt.Errorf("ir prop arena overflow: %w", err))
	}
	id := PropID(value)
	m.props = append(m.props, *p)
	return id
}

// Prop returns a property pointer or nil for invalid ID.
func (m *Module) Prop(id PropID) *Prop {
	if !id.IsValid() || int(id) >= len(m.props) {
		return nil
	}
	return &m.props[id]
}

// AttachFunc appends a function to its parent class's member table.
func (m *Module) AttachFunc(class ClassID, fn FuncID) {
	c := m.Class(class)
	if c == nil {
		panic("ir.AttachFunc: invalid class")
	}
	c.Funcs = append(c.Funcs, fn)
}

// AttachProp appends a property to its parent class's member table.
func (m *Module) AttachProp(class ClassID, prop PropID) {
	c := m.Class(class)
	if c == nil {
		panic("ir.AttachProp: invalid class")
	}
	c.Props = append(c.Props, prop)
}
