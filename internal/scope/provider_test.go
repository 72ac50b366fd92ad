package scope

import (
	"testing"

	"velar/internal/sem"
	"velar/internal/types"
)

func addClass(m *sem.Module, name string, pkg sem.PackageID, supers ...types.TypeID) sem.ClassID {
	id := m.NewClass(&sem.Class{
		Name:       m.Strings.Intern(name),
		Pkg:        pkg,
		Supertypes: supers,
	})
	cls := m.Class(id)
	cls.DefiningType = m.Types.RegisterClass(types.ClassRef(id), nil)
	return id
}

func addGenericClass(m *sem.Module, name string, pkg sem.PackageID, nparams int) (sem.ClassID, []types.TypeID) {
	id := m.NewClass(&sem.Class{
		Name: m.Strings.Intern(name),
		Pkg:  pkg,
	})
	cls := m.Class(id)
	for i := 0; i < nparams; i++ {
		cls.TypeParams = append(cls.TypeParams, m.Types.RegisterParam(types.ClassRef(id), uint32(i)))
	}
	cls.DefiningType = m.Types.RegisterClass(types.ClassRef(id), cls.TypeParams)
	return id, cls.TypeParams
}

func addFunc(m *sem.Module, class sem.ClassID, name string, vis sem.Visibility, ret types.TypeID, params ...types.TypeID) sem.CallableID {
	id := m.NewCallable(&sem.Callable{
		Kind:       sem.CallableFunc,
		Name:       m.Strings.Intern(name),
		Vis:        vis,
		Origin:     sem.OriginExplicit,
		Receiver:   class,
		ReturnType: ret,
		ParamTypes: params,
	})
	cls := m.Class(class)
	cls.Members = append(cls.Members, id)
	return id
}

func classType(m *sem.Module, class sem.ClassID, args ...types.TypeID) types.TypeID {
	return m.Types.RegisterClass(types.ClassRef(class), args)
}

func TestPassThroughWithoutGenerics(t *testing.T) {
	m := sem.NewModule()
	pkg := m.Package("demo")
	a := addClass(m, "A", pkg)
	f := addFunc(m, a, "f", sem.VisPublic, m.Types.Builtins().Int)
	b := addClass(m, "B", pkg, classType(m, a))

	sc := NewProvider(m).MergedSupertypeScope(b)
	syms := sc.FunctionsByName(m.Strings.Intern("f"))
	if len(syms) != 1 {
		t.Fatalf("expected one merged symbol, got %d", len(syms))
	}
	if syms[0] != f {
		t.Fatalf("non-generic member must pass through unchanged")
	}
}

func TestEdgeSubstitutionCreatesAnchoredCopy(t *testing.T) {
	m := sem.NewModule()
	pkg := m.Package("demo")
	box, params := addGenericClass(m, "Box", pkg, 1)
	get := addFunc(m, box, "get", sem.VisPublic, params[0])
	b := addClass(m, "B", pkg, classType(m, box, m.Types.Builtins().Int))

	sc := NewProvider(m).MergedSupertypeScope(b)
	syms := sc.FunctionsByName(m.Strings.Intern("get"))
	if len(syms) != 1 {
		t.Fatalf("expected one merged symbol, got %d", len(syms))
	}
	c := m.Callable(syms[0])
	if c.Origin != sem.OriginFromSupertypes {
		t.Fatalf("substituted member must carry from-supertypes origin, got %v", c.Origin)
	}
	if c.Receiver != b {
		t.Fatalf("substituted member must be anchored at the inheriting class")
	}
	if c.ReturnType != m.Types.Builtins().Int {
		t.Fatalf("return type was not substituted for the edge")
	}
	if m.Unwrap(syms[0]) != get {
		t.Fatalf("substituted member must unwrap to the original")
	}
}

func TestDiamondCreatesIntersection(t *testing.T) {
	m := sem.NewModule()
	pkg := m.Package("demo")
	i1 := addClass(m, "I1", pkg)
	f1 := addFunc(m, i1, "f", sem.VisPublic, m.Types.Builtins().Int)
	i2 := addClass(m, "I2", pkg)
	f2 := addFunc(m, i2, "f", sem.VisPublic, m.Types.Builtins().Int)
	c := addClass(m, "C", pkg, classType(m, i1), classType(m, i2))

	p := NewProvider(m)
	sc := p.MergedSupertypeScope(c)
	syms := sc.FunctionsByName(m.Strings.Intern("f"))
	if len(syms) != 1 {
		t.Fatalf("diamond must merge into one symbol, got %d", len(syms))
	}
	cc := m.Callable(syms[0])
	if cc.Origin != sem.OriginIntersection {
		t.Fatalf("expected intersection origin, got %v", cc.Origin)
	}
	direct := p.DirectOverridden(syms[0])
	if len(direct) != 2 || direct[0] != f1 || direct[1] != f2 {
		t.Fatalf("direct overridden must list both incomparable members, got %v", direct)
	}
}

func TestIntersectionSurvivesDeeperInheritance(t *testing.T) {
	m := sem.NewModule()
	pkg := m.Package("demo")
	a := addClass(m, "A", pkg)
	fa := addFunc(m, a, "f", sem.VisPublic, m.Types.Builtins().Int)
	b := addClass(m, "B", pkg)
	fb := addFunc(m, b, "f", sem.VisPublic, m.Types.Builtins().Int)
	mid := addClass(m, "Mid", pkg, classType(m, a), classType(m, b))
	c := addClass(m, "C", pkg, classType(m, mid))

	p := NewProvider(m)
	sc := p.MergedSupertypeScope(c)
	syms := sc.FunctionsByName(m.Strings.Intern("f"))
	if len(syms) != 1 {
		t.Fatalf("expected one inherited symbol, got %d", len(syms))
	}
	if m.Callable(syms[0]).Origin != sem.OriginIntersection {
		t.Fatalf("the merged symbol must pass through as an intersection")
	}
	// The merge happened while building Mid's scope; the direct set must
	// still answer when queried through C.
	direct := p.DirectOverridden(syms[0])
	if len(direct) != 2 || direct[0] != fa || direct[1] != fb {
		t.Fatalf("direct overridden lost across inheritance levels, got %v", direct)
	}
}

func TestOverloadsOccupySeparateSlots(t *testing.T) {
	m := sem.NewModule()
	pkg := m.Package("demo")
	ints := m.Types.Builtins().Int
	a := addClass(m, "A", pkg)
	f1 := addFunc(m, a, "f", sem.VisPublic, ints, ints)
	f2 := addFunc(m, a, "f", sem.VisPublic, ints, ints, ints)
	b := addClass(m, "B", pkg, classType(m, a))

	sc := NewProvider(m).MergedSupertypeScope(b)
	syms := sc.FunctionsByName(m.Strings.Intern("f"))
	if len(syms) != 2 {
		t.Fatalf("same-name overloads of different arity must stay distinct, got %d", len(syms))
	}
	if syms[0] != f1 || syms[1] != f2 {
		t.Fatalf("overloads must pass through unmerged, got %v", syms)
	}
	for _, sym := range syms {
		if m.Callable(sym).Origin == sem.OriginIntersection {
			t.Fatalf("overloads are not a diamond")
		}
	}
}

func TestSharedBaseDeduplicates(t *testing.T) {
	m := sem.NewModule()
	pkg := m.Package("demo")
	base := addClass(m, "Base", pkg)
	f := addFunc(m, base, "f", sem.VisPublic, m.Types.Builtins().Int)
	i1 := addClass(m, "I1", pkg, classType(m, base))
	i2 := addClass(m, "I2", pkg, classType(m, base))
	c := addClass(m, "C", pkg, classType(m, i1), classType(m, i2))

	sc := NewProvider(m).MergedSupertypeScope(c)
	syms := sc.FunctionsByName(m.Strings.Intern("f"))
	if len(syms) != 1 {
		t.Fatalf("shared base member must deduplicate, got %d symbols", len(syms))
	}
	if m.Unwrap(syms[0]) != f {
		t.Fatalf("deduplicated symbol must unwrap to the shared original")
	}
	if m.Callable(syms[0]).Origin == sem.OriginIntersection {
		t.Fatalf("a shared base is not a diamond")
	}
}

func TestOverrideDominanceCollapsesDiamond(t *testing.T) {
	m := sem.NewModule()
	pkg := m.Package("demo")
	i1 := addClass(m, "I1", pkg)
	f1 := addFunc(m, i1, "f", sem.VisPublic, m.Types.Builtins().Int)
	i2 := addClass(m, "I2", pkg, classType(m, i1))
	f2 := addFunc(m, i2, "f", sem.VisPublic, m.Types.Builtins().Int)
	m.Callable(f2).Overrides = []sem.CallableID{f1}
	c := addClass(m, "C", pkg, classType(m, i1), classType(m, i2))

	sc := NewProvider(m).MergedSupertypeScope(c)
	syms := sc.FunctionsByName(m.Strings.Intern("f"))
	if len(syms) != 1 {
		t.Fatalf("expected one merged symbol, got %d", len(syms))
	}
	if syms[0] != f2 {
		t.Fatalf("the overriding member must dominate the diamond")
	}
}

func TestSubstituteOverrideAnchorsAtReceiver(t *testing.T) {
	m := sem.NewModule()
	pkg := m.Package("demo")
	a := addClass(m, "A", pkg)
	f := addFunc(m, a, "f", sem.VisPublic, m.Types.Builtins().Int)
	b := addClass(m, "B", pkg, classType(m, a))

	p := NewProvider(m)
	sub := p.SubstituteOverride(f, b)
	c := m.Callable(sub)
	if c.Origin != sem.OriginSubstitution {
		t.Fatalf("expected substitution origin, got %v", c.Origin)
	}
	if c.Receiver != b || c.Original != f {
		t.Fatalf("substitution override must be anchored at the receiver and linked to its base")
	}
}
