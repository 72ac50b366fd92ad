// Package lower drives class lowering: it materializes every class's
// explicit members, synthesizes fake overrides per class, and runs the
// deferred override linker once over the whole module so that
// cross-class base references are guaranteed to exist.
package lower

import (
	"velar/internal/fakeoverride"
	"velar/internal/ir"
	"velar/internal/sem"
)

// Result of lowering one semantic module.
type Result struct {
	IR          *ir.Module
	Synthesized []ir.DeclRef

	// SessionID tags the conversion session that produced the result,
	// for tracing and snapshot provenance.
	SessionID string
}

// Module lowers all classes of a semantic module. Classes are processed
// sequentially within one session; the linker runs after the last class
// so that base symbols materialized by any class resolve.
func Module(semMod *sem.Module) *Result {
	irMod := ir.NewModule()
	sess := fakeoverride.NewSession(semMod, irMod)
	defer sess.Close()
	gen := fakeoverride.NewGenerator(sess)

	var synthesized []ir.DeclRef
	for id := sem.ClassID(1); int(id) <= semMod.NumClasses(); id++ {
		cls := semMod.Class(id)
		irID := sess.Store.DeclareClass(id)
		declareExplicit(sess, irID, cls)
		synthesized = append(synthesized, gen.AddFakeOverrides(irID, cls.Members)...)
	}
	gen.BindOverriddenSymbols(synthesized)

	if n := sess.Pending(); n != 0 {
		panic("lower: base-symbol table not drained by linker")
	}
	return &Result{IR: irMod, Synthesized: synthesized, SessionID: sess.ID.String()}
}

// declareExplicit materializes a class's own members.
func declareExplicit(sess *fakeoverride.Session, class ir.ClassID, cls *sem.Class) {
	mod := sess.Store.IR()
	for _, m := range cls.Members {
		switch sess.Sem.Callable(m).Kind {
		case sem.CallableFunc:
			id := sess.Store.CreateFunc(m, class, ir.OriginDeclared, cls.IsLocal)
			mod.AttachFunc(class, id)
		case sem.CallableProp:
			id := sess.Store.CreateProp(m, class, ir.OriginDeclared, cls.IsLocal)
			mod.AttachProp(class, id)
		}
	}
}
