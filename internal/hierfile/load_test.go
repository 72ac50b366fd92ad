package hierfile

import (
	"testing"

	"velar/internal/diag"
	"velar/internal/sem"
	"velar/internal/types"
)

const sample = `
package: demo
classes:
  - name: Box
    type_params: [T]
    members:
      - kind: func
        name: get
        returns: T
  - name: A
    supertypes: ["Box[Int]"]
    members:
      - kind: func
        name: f
        params: [Int, String]
        returns: Bool
      - kind: prop
        name: x
        returns: Int
        mutable: true
        getter: public
        setter: private
`

func load(t *testing.T, src string) (*sem.Module, *diag.Bag) {
	t.Helper()
	bag := diag.NewBag(20)
	mod := Load("test.yaml", []byte(src), bag)
	return mod, bag
}

func TestLoadBuildsClassesAndMembers(t *testing.T) {
	mod, bag := load(t, sample)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	if mod.NumClasses() != 2 {
		t.Fatalf("expected 2 classes, got %d", mod.NumClasses())
	}

	a := mod.Class(sem.ClassID(2))
	if got := mod.Strings.MustLookup(a.Name); got != "A" {
		t.Fatalf("expected class A, got %q", got)
	}
	if len(a.Supertypes) != 1 {
		t.Fatalf("A must have one supertype")
	}
	info, ok := mod.Types.ClassInfo(a.Supertypes[0])
	if !ok || len(info.Args) != 1 || info.Args[0] != mod.Types.Builtins().Int {
		t.Fatalf("supertype Box[Int] was not resolved")
	}
	if len(a.Members) != 2 {
		t.Fatalf("A must have two members, got %d", len(a.Members))
	}

	f := mod.Callable(a.Members[0])
	if f.Kind != sem.CallableFunc || len(f.ParamTypes) != 2 || f.ReturnType != mod.Types.Builtins().Bool {
		t.Fatalf("member f was not decoded correctly")
	}
	x := mod.Callable(a.Members[1])
	if x.Kind != sem.CallableProp || !x.IsMutable || !x.HasSetter {
		t.Fatalf("member x was not decoded correctly")
	}
	if x.GetterVis != sem.VisPublic || x.SetterVis != sem.VisPrivate {
		t.Fatalf("accessor visibilities were not decoded")
	}
}

func TestLoadResolvesTypeParams(t *testing.T) {
	mod, bag := load(t, sample)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	box := mod.Class(sem.ClassID(1))
	get := mod.Callable(box.Members[0])
	tt, _ := mod.Types.Lookup(get.ReturnType)
	if tt.Kind != types.KindTypeParam {
		t.Fatalf("T must resolve to the class's type parameter, got %v", tt.Kind)
	}
}

func TestUnknownTypeBecomesErrorMarker(t *testing.T) {
	mod, bag := load(t, `
package: demo
classes:
  - name: A
    members:
      - kind: func
        name: f
        returns: Missing
`)
	if !bag.HasErrors() {
		t.Fatalf("unknown type must be diagnosed")
	}
	a := mod.Class(sem.ClassID(1))
	f := mod.Callable(a.Members[0])
	if f.ReturnType != mod.Types.Builtins().Error {
		t.Fatalf("unresolved reference must produce the error marker")
	}
}

func TestErrorKeywordIsNotDiagnosed(t *testing.T) {
	_, bag := load(t, `
package: demo
classes:
  - name: A
    members:
      - kind: func
        name: f
        returns: Error
`)
	if bag.HasErrors() {
		t.Fatalf("the explicit Error marker is not a load problem: %v", bag.Items())
	}
}

func TestDuplicateClassDiagnosed(t *testing.T) {
	_, bag := load(t, `
package: demo
classes:
  - name: A
  - name: A
`)
	if !bag.HasErrors() {
		t.Fatalf("duplicate class must be diagnosed")
	}
	if bag.Items()[0].Code != diag.HierDuplicateClass {
		t.Fatalf("wrong code: %v", bag.Items()[0].Code)
	}
}

func TestSetterOnImmutablePropertyDiagnosed(t *testing.T) {
	_, bag := load(t, `
package: demo
classes:
  - name: A
    members:
      - kind: prop
        name: x
        returns: Int
        setter: public
`)
	if !bag.HasErrors() {
		t.Fatalf("setter on immutable property must be diagnosed")
	}
}

func TestOverrideReferencesResolve(t *testing.T) {
	mod, bag := load(t, `
package: demo
classes:
  - name: I
    members:
      - kind: func
        name: f
  - name: A
    supertypes: [I]
    members:
      - kind: func
        name: f
        overrides: [I.f]
`)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	a := mod.Class(sem.ClassID(2))
	f := mod.Callable(a.Members[0])
	if len(f.Overrides) != 1 {
		t.Fatalf("override reference was not resolved")
	}
}
