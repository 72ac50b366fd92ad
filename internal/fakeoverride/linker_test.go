package fakeoverride_test

import (
	"testing"

	"velar/internal/ir"
	"velar/internal/lower"
	"velar/internal/sem"
)

func TestPropertyGetterLinksSetterPruned(t *testing.T) {
	m := sem.NewModule()
	pkg := m.Package("demo")
	i1 := addClass(m, "I1", pkg)
	addProp(m, i1, "x", sem.VisPublic, m.Types.Builtins().Int, propSpec{
		mutable:   true,
		getterVis: sem.VisPublic,
		setterVis: sem.VisPrivate,
	})
	c := addClass(m, "C", pkg, classType(m, i1))

	res := lower.Module(m)
	checkInvariants(t, m, res)

	pid := findProp(m, res.IR, c, "x")
	if !pid.IsValid() {
		t.Fatalf("C must contain a synthesized x")
	}
	p := res.IR.Prop(pid)
	if !p.Getter.Present {
		t.Fatalf("public getter must survive")
	}
	if p.Setter.Present {
		t.Fatalf("private base setter must be removed from the property entirely")
	}
	base := findProp(m, res.IR, i1, "x")
	if len(p.Getter.Overridden) != 1 || p.Getter.Overridden[0] != base {
		t.Fatalf("getter must override I1.x's getter, got %v", p.Getter.Overridden)
	}
	if len(p.Overridden) != 1 || p.Overridden[0] != base {
		t.Fatalf("property must override I1.x, got %v", p.Overridden)
	}
}

func TestImmutablePropertyHasNoSetter(t *testing.T) {
	m := sem.NewModule()
	pkg := m.Package("demo")
	i1 := addClass(m, "I1", pkg)
	addProp(m, i1, "x", sem.VisPublic, m.Types.Builtins().Int, propSpec{
		getterVis: sem.VisPublic,
	})
	c := addClass(m, "C", pkg, classType(m, i1))

	res := lower.Module(m)
	checkInvariants(t, m, res)

	p := res.IR.Prop(findProp(m, res.IR, c, "x"))
	if !p.Getter.Present || p.Setter.Present {
		t.Fatalf("val property must link a getter and carry no setter")
	}
	if len(p.Getter.Overridden) != 1 {
		t.Fatalf("getter must link to its base")
	}
}

func TestAccessorLinkingSkipsBasesLackingAccessor(t *testing.T) {
	m := sem.NewModule()
	pkg := m.Package("demo")
	i1 := addClass(m, "I1", pkg)
	addProp(m, i1, "x", sem.VisPublic, m.Types.Builtins().Int, propSpec{
		mutable:   true,
		getterVis: sem.VisPublic,
		setterVis: sem.VisPublic,
	})
	i2 := addClass(m, "I2", pkg)
	addProp(m, i2, "x", sem.VisPublic, m.Types.Builtins().Int, propSpec{
		getterVis: sem.VisPublic,
	})
	c := addClass(m, "C", pkg, classType(m, i1), classType(m, i2))

	res := lower.Module(m)
	checkInvariants(t, m, res)

	p := res.IR.Prop(findProp(m, res.IR, c, "x"))
	if len(p.Overridden) != 2 {
		t.Fatalf("diamond property must override both bases, got %v", p.Overridden)
	}
	base1 := findProp(m, res.IR, i1, "x")
	base2 := findProp(m, res.IR, i2, "x")
	if len(p.Getter.Overridden) != 2 {
		t.Fatalf("getter must link both bases, got %v", p.Getter.Overridden)
	}
	if len(p.Setter.Overridden) != 1 || p.Setter.Overridden[0] != base1 {
		t.Fatalf("setter must link only the mutable base %d, got %v", base1, p.Setter.Overridden)
	}
	_ = base2
}

func TestChainedSubstitutionLinksThroughOriginal(t *testing.T) {
	m := sem.NewModule()
	pkg := m.Package("demo")
	box, params := addGenericClass(m, "Box", pkg, 1)
	addFunc(m, box, "get", sem.VisPublic, params[0])
	s := addClass(m, "S", pkg, classType(m, box, m.Types.Builtins().Int))
	c := addClass(m, "C", pkg, classType(m, s))

	res := lower.Module(m)
	checkInvariants(t, m, res)

	sGet := findFunc(m, res.IR, s, "get")
	cGet := findFunc(m, res.IR, c, "get")
	if !sGet.IsValid() || !cGet.IsValid() {
		t.Fatalf("both classes must synthesize get")
	}
	if res.IR.Func(sGet).Origin != ir.OriginFakeOverride || res.IR.Func(cGet).Origin != ir.OriginFakeOverride {
		t.Fatalf("both synthesized members must be fake overrides")
	}
	// The recorded base of C.get is the unwrapped original, Box.get.
	boxGet := findFunc(m, res.IR, box, "get")
	got := res.IR.Func(cGet).Overridden
	if len(got) != 1 || got[0] != boxGet {
		t.Fatalf("chained override must link through to the original, got %v", got)
	}
	if res.IR.Func(cGet).Ret != m.Types.Builtins().Int {
		t.Fatalf("substituted signature must survive the chain")
	}
}
