package fakeoverride

import (
	"fmt"

	"velar/internal/ir"
	"velar/internal/sem"
)

// BindOverriddenSymbols is the deferred second pass: it resolves the
// base symbols recorded during synthesis into materialized IR symbols
// and writes the overrides relation onto each synthesized declaration.
// It must run after every class whose declarations may be referenced
// has been synthesized; a base symbol that does not resolve at that
// point is an invariant violation, not a recoverable error.
//
// Properties link in two sweeps: all accessor pruning happens before
// any accessor set is written, so a derived property never links
// against an accessor that a later pruning step removes.
func (g *Generator) BindOverriddenSymbols(decls []ir.DeclRef) {
	type pendingProp struct {
		id       ir.PropID
		resolved []ir.PropID
	}
	var props []pendingProp

	for _, d := range decls {
		switch d.Kind {
		case ir.DeclFunc:
			g.linkFunc(d.Func)
		case ir.DeclProp:
			if resolved, ok := g.resolveAndPruneProp(d.Prop); ok {
				props = append(props, pendingProp{id: d.Prop, resolved: resolved})
			}
		}
	}
	for _, p := range props {
		g.linkPropAccessors(p.id, p.resolved)
	}
}

func (g *Generator) linkFunc(id ir.FuncID) {
	mod := g.sess.Store.IR()
	f := mod.Func(id)
	if f == nil || f.Origin != ir.OriginFakeOverride {
		return
	}
	bases, ok := g.sess.Base.TakeFunc(id)
	if !ok || len(bases) == 0 {
		panic(fmt.Errorf("fakeoverride: no base symbols recorded for function %q", g.sess.Sem.Strings.MustLookup(f.Name)))
	}
	overridden := make([]ir.FuncID, 0, len(bases))
	for _, base := range bases {
		irID, ok := g.sess.Store.ResolveFuncSymbol(base)
		if !ok {
			panic(fmt.Errorf("fakeoverride: unresolved base symbol for function %q", g.sess.Sem.Strings.MustLookup(f.Name)))
		}
		overridden = append(overridden, irID)
	}
	f.Overridden = overridden
}

// resolveAndPruneProp resolves a property's recorded bases and applies
// per-accessor visibility pruning: an accessor whose base original
// carries the same accessor but fails the fake-override eligibility
// predicate is removed from the property entirely, not merely left
// unlinked. Bases lacking an accessor do not prune; they are skipped
// when the accessor sets are written.
func (g *Generator) resolveAndPruneProp(id ir.PropID) ([]ir.PropID, bool) {
	mod := g.sess.Store.IR()
	p := mod.Prop(id)
	if p == nil || p.Origin != ir.OriginFakeOverride {
		return nil, false
	}
	bases, ok := g.sess.Base.TakeProp(id)
	if !ok || len(bases) == 0 {
		panic(fmt.Errorf("fakeoverride: no base symbols recorded for property %q", g.sess.Sem.Strings.MustLookup(p.Name)))
	}

	semMod := g.sess.Sem
	pkg := mod.Class(p.Parent).Pkg

	resolved := make([]ir.PropID, 0, len(bases))
	for _, base := range bases {
		irID, ok := g.sess.Store.ResolvePropSymbol(base)
		if !ok {
			panic(fmt.Errorf("fakeoverride: unresolved base symbol for property %q", semMod.Strings.MustLookup(p.Name)))
		}
		resolved = append(resolved, irID)

		orig := semMod.Unwrap(base)
		oc := semMod.Callable(orig)
		declPkg := semMod.DeclPackage(orig)
		if p.Getter.Present && oc.HasGetter && !sem.AllowsFakeOverrideIn(oc.GetterVis, declPkg, pkg) {
			p.Getter = ir.Accessor{}
		}
		if p.IsMutable && p.Setter.Present && oc.HasSetter && !sem.AllowsFakeOverrideIn(oc.SetterVis, declPkg, pkg) {
			p.Setter = ir.Accessor{}
		}
	}
	p.Overridden = resolved
	return resolved, true
}

// linkPropAccessors writes the accessor overridden sets from the
// resolved base properties' corresponding accessors.
func (g *Generator) linkPropAccessors(id ir.PropID, resolved []ir.PropID) {
	mod := g.sess.Store.IR()
	p := mod.Prop(id)
	if p.Getter.Present {
		for _, baseID := range resolved {
			if mod.Prop(baseID).Getter.Present {
				p.Getter.Overridden = append(p.Getter.Overridden, baseID)
			}
		}
	}
	if p.Setter.Present {
		for _, baseID := range resolved {
			if mod.Prop(baseID).Setter.Present {
				p.Setter.Overridden = append(p.Setter.Overridden, baseID)
			}
		}
	}
}
