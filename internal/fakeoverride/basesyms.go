package fakeoverride

import (
	"velar/internal/ir"
	"velar/internal/sem"
)

// BaseSymbols maps each synthesized declaration to the ordered set of
// front-end symbols it directly overrides. Entries are recorded during
// synthesis, while the referenced declarations may not be materialized
// yet, and consumed exactly once by the deferred linker.
type BaseSymbols struct {
	funcs map[ir.FuncID][]sem.CallableID
	props map[ir.PropID][]sem.CallableID
}

// NewBaseSymbols creates an empty table.
func NewBaseSymbols() *BaseSymbols {
	return &BaseSymbols{
		funcs: make(map[ir.FuncID][]sem.CallableID, 64),
		props: make(map[ir.PropID][]sem.CallableID, 32),
	}
}

// RecordFunc stores the base set of a synthesized function. Recording
// again for the same declaration overwrites, which keeps re-synthesis
// of a class idempotent.
func (b *BaseSymbols) RecordFunc(id ir.FuncID, bases []sem.CallableID) {
	b.funcs[id] = bases
}

// RecordProp stores the base set of a synthesized property.
func (b *BaseSymbols) RecordProp(id ir.PropID, bases []sem.CallableID) {
	b.props[id] = bases
}

// TakeFunc removes and returns the base set of a function.
func (b *BaseSymbols) TakeFunc(id ir.FuncID) ([]sem.CallableID, bool) {
	bases, ok := b.funcs[id]
	if ok {
		delete(b.funcs, id)
	}
	return bases, ok
}

// TakeProp removes and returns the base set of a property.
func (b *BaseSymbols) TakeProp(id ir.PropID) ([]sem.CallableID, bool) {
	bases, ok := b.props[id]
	if ok {
		delete(b.props, id)
	}
	return bases, ok
}

// Len reports the number of entries not yet consumed.
func (b *BaseSymbols) Len() int {
	return len(b.funcs) + len(b.props)
}

// Reset drops all entries.
func (b *BaseSymbols) Reset() {
	clear(b.funcs)
	clear(b.props)
}
