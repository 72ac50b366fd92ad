package hierfile

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"velar/internal/diag"
	"velar/internal/sem"
	"velar/internal/types"
)

// Load decodes a hierarchy description and builds the semantic module.
// Problems are reported into the bag; the returned module is usable
// whenever the bag carries no errors.
func Load(path string, data []byte, bag *diag.Bag) *sem.Module {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		bag.Add(diag.Diagnostic{
			Severity: diag.SevError,
			Code:     diag.HierBadSyntax,
			Message:  err.Error(),
			File:     path,
		})
		return nil
	}
	b := &builder{
		path:    path,
		bag:     bag,
		mod:     sem.NewModule(),
		classes: make(map[string]sem.ClassID, len(file.Classes)),
		params:  make(map[sem.ClassID]map[string]types.TypeID, len(file.Classes)),
	}
	b.build(&file)
	return b.mod
}

// LoadFile reads and loads a hierarchy description from disk.
func LoadFile(path string, bag *diag.Bag) (*sem.Module, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("hierfile: %w", err)
	}
	return Load(path, data, bag), nil
}

type builder struct {
	path    string
	bag     *diag.Bag
	mod     *sem.Module
	classes map[string]sem.ClassID
	params  map[sem.ClassID]map[string]types.TypeID
}

func (b *builder) errorf(code diag.Code, line int, format string, args ...any) {
	b.bag.Add(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		File:     b.path,
		Line:     line,
	})
}

func (b *builder) build(file *File) {
	defaultPkg := file.Package
	if defaultPkg == "" {
		defaultPkg = "main"
	}

	// Phase 1: declare class headers so supertypes can forward-reference.
	for i := range file.Classes {
		spec := &file.Classes[i]
		if _, dup := b.classes[spec.Name]; dup {
			b.errorf(diag.HierDuplicateClass, spec.line, "duplicate class %q", spec.Name)
			continue
		}
		pkg := spec.Package
		if pkg == "" {
			pkg = defaultPkg
		}
		id := b.mod.NewClass(&sem.Class{
			Name:     b.mod.Strings.Intern(spec.Name),
			Pkg:      b.mod.Package(pkg),
			IsLocal:  spec.Local,
			IsExpect: spec.Expect,
		})
		b.classes[spec.Name] = id

		env := make(map[string]types.TypeID, len(spec.TypeParams))
		cls := b.mod.Class(id)
		for j, tp := range spec.TypeParams {
			pid := b.mod.Types.RegisterParam(types.ClassRef(id), uint32(j))
			env[tp] = pid
			cls.TypeParams = append(cls.TypeParams, pid)
		}
		cls.DefiningType = b.mod.Types.RegisterClass(types.ClassRef(id), cls.TypeParams)
		b.params[id] = env
	}

	// Phase 2: supertypes and members.
	for i := range file.Classes {
		spec := &file.Classes[i]
		id, ok := b.classes[spec.Name]
		if !ok {
			continue
		}
		cls := b.mod.Class(id)
		for _, st := range spec.Supertypes {
			tid := b.parseType(st, id, spec.line)
			tt := b.mod.Types.MustLookup(tid)
			if tt.Kind != types.KindClass {
				b.errorf(diag.HierUnknownSupertype, spec.line, "supertype %q of %q is not a class", st, spec.Name)
				continue
			}
			cls.Supertypes = append(cls.Supertypes, tid)
		}
		b.buildMembers(id, spec)
	}

	// Phase 3: resolve the explicit overrides relation.
	for i := range file.Classes {
		spec := &file.Classes[i]
		id, ok := b.classes[spec.Name]
		if !ok {
			continue
		}
		b.resolveOverrides(id, spec)
	}
}

func (b *builder) buildMembers(class sem.ClassID, spec *ClassSpec) {
	cls := b.mod.Class(class)
	seen := make(map[string]bool, len(spec.Members))
	for i := range spec.Members {
		ms := &spec.Members[i]
		key := ms.Kind + " " + ms.Name
		if seen[key] {
			b.errorf(diag.HierDuplicateMember, ms.line, "duplicate member %q in class %q", ms.Name, spec.Name)
			continue
		}
		seen[key] = true

		vis, ok := parseVisibility(ms.Visibility, sem.VisPublic)
		if !ok {
			b.errorf(diag.HierBadVisibility, ms.line, "unknown visibility %q", ms.Visibility)
			continue
		}
		decl := sem.Callable{
			Name:     b.mod.Strings.Intern(ms.Name),
			Vis:      vis,
			Origin:   sem.OriginExplicit,
			Receiver: class,
		}
		switch ms.Kind {
		case "func":
			decl.Kind = sem.CallableFunc
			decl.ReturnType = b.parseTypeDefault(ms.Returns, class, ms.line, b.mod.Types.Builtins().Unit)
			for _, p := range ms.Params {
				decl.ParamTypes = append(decl.ParamTypes, b.parseType(p, class, ms.line))
			}
		case "prop":
			decl.Kind = sem.CallableProp
			t := b.parseTypeDefault(ms.Returns, class, ms.line, b.mod.Types.Builtins().Unit)
			decl.BackingType = t
			decl.ReturnType = t
			decl.IsMutable = ms.Mutable
			decl.HasGetter = true
			gv, ok := parseVisibility(ms.Getter, vis)
			if !ok {
				b.errorf(diag.HierBadVisibility, ms.line, "unknown getter visibility %q", ms.Getter)
				gv = vis
			}
			decl.GetterVis = gv
			if ms.Setter != "" && !ms.Mutable {
				b.errorf(diag.HierSetterImmutable, ms.line, "immutable property %q cannot declare a setter", ms.Name)
			}
			if ms.Mutable {
				decl.HasSetter = true
				sv, ok := parseVisibility(ms.Setter, vis)
				if !ok {
					b.errorf(diag.HierBadVisibility, ms.line, "unknown setter visibility %q", ms.Setter)
					sv = vis
				}
				decl.SetterVis = sv
			}
		default:
			b.errorf(diag.HierBadKind, ms.line, "unknown member kind %q", ms.Kind)
			continue
		}
		cls.Members = append(cls.Members, b.mod.NewCallable(&decl))
	}
}

func (b *builder) resolveOverrides(class sem.ClassID, spec *ClassSpec) {
	cls := b.mod.Class(class)
	for i := range spec.Members {
		ms := &spec.Members[i]
		if len(ms.Overrides) == 0 {
			continue
		}
		member := b.findMember(cls, ms.Kind, ms.Name)
		if !member.IsValid() {
			continue
		}
		for _, ref := range ms.Overrides {
			target := b.resolveMemberRef(ref, ms.Kind, ms.line)
			if target.IsValid() {
				mc := b.mod.Callable(member)
				mc.Overrides = append(mc.Overrides, target)
			}
		}
	}
}

func (b *builder) findMember(cls *sem.Class, kind, name string) sem.CallableID {
	nameID := b.mod.Strings.Intern(name)
	for _, m := range cls.Members {
		c := b.mod.Callable(m)
		if c.Name == nameID && c.Kind.String() == kind {
			return m
		}
	}
	return sem.NoCallableID
}

func (b *builder) resolveMemberRef(ref, kind string, line int) sem.CallableID {
	clsName, memberName, ok := strings.Cut(ref, ".")
	if !ok {
		b.errorf(diag.HierBadSyntax, line, "override reference %q is not Class.member", ref)
		return sem.NoCallableID
	}
	classID, found := b.classes[clsName]
	if !found {
		b.errorf(diag.HierUnknownType, line, "override reference %q names unknown class", ref)
		return sem.NoCallableID
	}
	member := b.findMember(b.mod.Class(classID), kind, memberName)
	if !member.IsValid() {
		b.errorf(diag.HierUnknownType, line, "override reference %q names unknown member", ref)
	}
	return member
}

func parseVisibility(s string, dflt sem.Visibility) (sem.Visibility, bool) {
	switch s {
	case "":
		return dflt, true
	case "public":
		return sem.VisPublic, true
	case "protected":
		return sem.VisProtected, true
	case "package":
		return sem.VisPackage, true
	case "private":
		return sem.VisPrivate, true
	default:
		return dflt, false
	}
}
