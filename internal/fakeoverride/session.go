// Package fakeoverride synthesizes the inherited part of every class's
// member table when lowering the semantic tree to IR: for each member
// visible through a class's supertypes and not re-declared by the class
// it materializes a fake-override declaration, records which base
// symbols it overrides, and links the overrides relation in a deferred
// second pass once all classes of the batch exist.
package fakeoverride

import (
	"github.com/google/uuid"

	"velar/internal/declstore"
	"velar/internal/ir"
	"velar/internal/scope"
	"velar/internal/sem"
)

// Session owns the shared mutable state of one conversion session: the
// declaration cache and the base-symbol table. It lives from the first
// synthesized class until the deferred linker has run over the whole
// batch, and is not safe for concurrent use.
type Session struct {
	ID     uuid.UUID
	Sem    *sem.Module
	Scopes *scope.Provider
	Store  *declstore.Store
	Base   *BaseSymbols
}

// NewSession wires a session over one sem/IR module pair.
func NewSession(semMod *sem.Module, irMod *ir.Module) *Session {
	return &Session{
		ID:     uuid.New(),
		Sem:    semMod,
		Scopes: scope.NewProvider(semMod),
		Store:  declstore.NewStore(semMod, irMod),
		Base:   NewBaseSymbols(),
	}
}

// Close tears the session down. The base-symbol table is expected to
// have been drained by the linker; Pending reports leftovers for
// invariant checks before closing.
func (s *Session) Close() {
	s.Base.Reset()
}

// Pending reports base-symbol entries not yet consumed by the linker.
func (s *Session) Pending() int {
	return s.Base.Len()
}
