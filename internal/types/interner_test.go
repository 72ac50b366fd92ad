package types

import "testing"

func TestInternerBuiltins(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	if b.Unit == NoTypeID || b.Bool == NoTypeID || b.Error == NoTypeID {
		t.Fatalf("builtins not initialized")
	}
	unit, _ := in.Lookup(b.Unit)
	if unit.Kind != KindUnit {
		t.Fatalf("expected unit kind, got %v", unit.Kind)
	}
}

func TestRegisterClassDeduplicates(t *testing.T) {
	in := NewInterner()
	elem := in.Builtins().Int
	c1 := in.RegisterClass(ClassRef(1), []TypeID{elem})
	c2 := in.RegisterClass(ClassRef(1), []TypeID{elem})
	if c1 != c2 {
		t.Fatalf("class types with equal arguments should be deduplicated")
	}
	c3 := in.RegisterClass(ClassRef(1), []TypeID{in.Builtins().Bool})
	if c3 == c1 {
		t.Fatalf("class types with different arguments must differ")
	}
}

func TestRegisterParamIdentity(t *testing.T) {
	in := NewInterner()
	p0 := in.RegisterParam(ClassRef(1), 0)
	p0again := in.RegisterParam(ClassRef(1), 0)
	p1 := in.RegisterParam(ClassRef(1), 1)
	if p0 != p0again {
		t.Fatalf("same parameter should intern to one ID")
	}
	if p0 == p1 {
		t.Fatalf("distinct parameters must differ")
	}
}

func TestSubstituteRewritesNestedArguments(t *testing.T) {
	in := NewInterner()
	tp := in.RegisterParam(ClassRef(1), 0)
	list := in.RegisterClass(ClassRef(2), []TypeID{tp})
	pair := in.RegisterClass(ClassRef(3), []TypeID{list, in.Builtins().Bool})

	got := in.Substitute(pair, map[TypeID]TypeID{tp: in.Builtins().Int})
	info, ok := in.ClassInfo(got)
	if !ok || info.Class != ClassRef(3) {
		t.Fatalf("substitution lost the outer class")
	}
	inner, ok := in.ClassInfo(info.Args[0])
	if !ok || inner.Args[0] != in.Builtins().Int {
		t.Fatalf("nested parameter was not substituted")
	}
}

func TestSubstituteUnchangedReturnsSameID(t *testing.T) {
	in := NewInterner()
	tp := in.RegisterParam(ClassRef(1), 0)
	list := in.RegisterClass(ClassRef(2), []TypeID{in.Builtins().Int})
	if got := in.Substitute(list, map[TypeID]TypeID{tp: in.Builtins().Bool}); got != list {
		t.Fatalf("identity substitution should not re-intern")
	}
}

func TestContainsErrorRecursesThroughArguments(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	if in.ContainsError(b.Int) {
		t.Fatalf("Int must not contain error")
	}
	if !in.ContainsError(b.Error) {
		t.Fatalf("Error marker must contain error")
	}
	listOfError := in.RegisterClass(ClassRef(2), []TypeID{b.Error})
	if !in.ContainsError(listOfError) {
		t.Fatalf("List[Error] must contain error")
	}
	nested := in.RegisterClass(ClassRef(3), []TypeID{in.RegisterClass(ClassRef(2), []TypeID{listOfError})})
	if !in.ContainsError(nested) {
		t.Fatalf("deeply nested error argument must be found")
	}
	clean := in.RegisterClass(ClassRef(2), []TypeID{b.Int})
	if in.ContainsError(clean) {
		t.Fatalf("List[Int] must not contain error")
	}
}
