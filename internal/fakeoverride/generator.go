package fakeoverride

import (
	"velar/internal/ir"
	"velar/internal/scope"
	"velar/internal/sem"
	"velar/internal/source"
)

// Generator synthesizes fake-override member tables. Functions and
// properties run through one shared algorithm parameterized by a small
// per-kind strategy (see kinds.go).
type Generator struct {
	sess *Session
}

// NewGenerator creates a generator bound to a session.
func NewGenerator(sess *Session) *Generator {
	return &Generator{sess: sess}
}

// Session returns the generator's session.
func (g *Generator) Session() *Session { return g.sess }

// AddFakeOverrides walks every member name visible through the class's
// supertypes and appends a synthesized declaration to the class for
// each inherited member the class does not re-declare and that passes
// the visibility and error-type gates. The returned refs feed the
// deferred linker.
func (g *Generator) AddFakeOverrides(class ir.ClassID, explicit []sem.CallableID) []ir.DeclRef {
	irCls := g.sess.Store.IR().Class(class)
	if irCls == nil {
		panic("fakeoverride: AddFakeOverrides on invalid class")
	}
	semClass := irCls.Sem
	if g.sess.Sem.Class(semClass).IsExpect {
		// Expect classes take their member tables from the actual
		// counterpart during actualization, not from synthesis.
		return nil
	}
	sc := g.sess.Scopes.MergedSupertypeScope(semClass)

	var out []ir.DeclRef
	for _, name := range sc.CallableNames() {
		out = synthesizeName(g, funcOps{g.sess}, sc, name, class, semClass, explicit, out)
		out = synthesizeName(g, propOps{g.sess}, sc, name, class, semClass, explicit, out)
	}
	return out
}

// kindOps is the per-kind capability surface of the shared synthesis
// algorithm: symbol lookup, cache access, materialization, and the
// error-type containment check.
type kindOps[D comparable] interface {
	symbols(sc *scope.Scope, name source.StringID) []sem.CallableID
	cached(decl sem.CallableID, parent ir.ClassID) (D, bool)
	create(decl sem.CallableID, parent ir.ClassID, isLocal bool) D
	parent(d D) ir.ClassID
	setParent(d D, parent ir.ClassID)
	containsError(d D) bool
	attach(class ir.ClassID, d D)
	record(base *BaseSymbols, d D, syms []sem.CallableID)
	ref(d D) ir.DeclRef
}

// synthesizeName runs the synthesis algorithm for every symbol of one
// kind under one name.
func synthesizeName[D comparable](
	g *Generator,
	ops kindOps[D],
	sc *scope.Scope,
	name source.StringID,
	class ir.ClassID,
	semClass sem.ClassID,
	explicit []sem.CallableID,
	out []ir.DeclRef,
) []ir.DeclRef {
	mod := g.sess.Sem
	cls := mod.Class(semClass)

	for _, sym := range ops.symbols(sc, name) {
		c := mod.Callable(sym)
		if g.declaredExplicitly(c, explicit) {
			// Explicit declarations always win over inherited members.
			continue
		}
		orig := mod.Unwrap(sym)
		origDecl := mod.Callable(orig)
		if !sem.AllowsFakeOverrideIn(origDecl.Vis, mod.DeclPackage(orig), cls.Pkg) {
			// Expected exclusion, not an error.
			continue
		}

		var d D
		if c.Origin == sem.OriginFromSupertypes && c.Receiver == semClass {
			// The front end already substituted this member for the
			// current inheritance edge; materialize the substituted
			// declaration directly, reusing the cache when possible.
			if cachedD, ok := ops.cached(sym, class); ok && ops.parent(cachedD) == class {
				d = cachedD
			} else {
				d = ops.create(sym, class, cls.IsLocal)
				ops.setParent(d, class)
			}
		} else {
			// Trivial case: re-anchor the inherited declaration at the
			// current class through a substitution override.
			nd := g.sess.Scopes.SubstituteOverride(sym, semClass)
			d = ops.create(nd, class, cls.IsLocal)
		}

		// Re-filter on every path, cache hits included: a member whose
		// type embeds an unresolved marker never enters a member table.
		if ops.containsError(d) {
			continue
		}

		ops.record(g.sess.Base, d, g.computeBaseSymbols(sym, orig))
		ops.attach(class, d)
		out = append(out, ops.ref(d))
	}
	return out
}

// declaredExplicitly reports whether one of the class's own members
// occupies the same logical slot as the inherited symbol.
func (g *Generator) declaredExplicitly(c *sem.Callable, explicit []sem.CallableID) bool {
	for _, m := range explicit {
		if scope.SameSlot(g.sess.Sem, g.sess.Sem.Callable(m), c) {
			return true
		}
	}
	return false
}

// computeBaseSymbols returns the ordered base set of a symbol. Outside
// diamond merges the single supertype path is unambiguous and the base
// is the unwrapped original. When the symbol's substitution chain runs
// through an intersection override the bases are the incomparable
// symbols the merge folded, no matter how many inheritance levels away
// the merge happened.
func (g *Generator) computeBaseSymbols(sym, orig sem.CallableID) []sem.CallableID {
	mod := g.sess.Sem
	for cur := sym; cur.IsValid(); cur = mod.Callable(cur).Original {
		if mod.Callable(cur).Origin == sem.OriginIntersection {
			return g.intersectionBases(cur, orig)
		}
	}
	return []sem.CallableID{orig}
}

// intersectionBases resolves the direct-overridden set of an
// intersection symbol. Symbols that are substitution copies anchored at
// the merge site are replaced by the declaration they substitute: those
// copies exist only transiently during scope construction and are never
// materialized themselves.
func (g *Generator) intersectionBases(sym, orig sem.CallableID) []sem.CallableID {
	mod := g.sess.Sem
	direct := g.sess.Scopes.DirectOverridden(sym)
	if len(direct) == 0 {
		// An intersection symbol always has a recorded merge set; at
		// minimum the original base must remain reachable for linking.
		return []sem.CallableID{orig}
	}
	mergeSite := mod.Callable(sym).Receiver
	out := make([]sem.CallableID, 0, len(direct))
	for _, d := range direct {
		c := mod.Callable(d)
		anchored := c.Origin == sem.OriginSubstitution || c.Origin == sem.OriginFromSupertypes
		if anchored && c.Receiver == mergeSite && c.Original.IsValid() {
			d = c.Original
		}
		out = append(out, d)
	}
	return out
}
