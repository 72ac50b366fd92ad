package testkit

import (
	"fmt"

	"velar/internal/ir"
	"velar/internal/sem"
)

// CheckMemberTableInvariants runs structural checks over a lowered
// module after linking:
// 1) every fake override carries a non-empty overridden set
// 2) a class holds at most one synthesized entry per logical member
// 3) no fake override stands in for a private base member
// 4) no member-table entry has an error-contaminated type
// 5) absent accessors carry no overridden references
func CheckMemberTableInvariants(semMod *sem.Module, irMod *ir.Module) error {
	if semMod == nil || irMod == nil {
		return fmt.Errorf("nil module")
	}
	for _, cid := range irMod.ClassIDs() {
		cls := irMod.Class(cid)
		className := semMod.Strings.MustLookup(cls.Name)
		seen := make(map[sem.CallableID]bool)

		for _, fid := range cls.Funcs {
			f := irMod.Func(fid)
			name := semMod.Strings.MustLookup(f.Name)
			if f.Parent != cid {
				return fmt.Errorf("%s.%s: parent mismatch", className, name)
			}
			if semMod.Types.ContainsError(f.Ret) {
				return fmt.Errorf("%s.%s: error type in member table", className, name)
			}
			for _, p := range f.Params {
				if semMod.Types.ContainsError(p) {
					return fmt.Errorf("%s.%s: error type in member table", className, name)
				}
			}
			if f.Origin != ir.OriginFakeOverride {
				continue
			}
			if len(f.Overridden) == 0 {
				return fmt.Errorf("%s.%s: fake override with empty overridden set", className, name)
			}
			orig := semMod.Unwrap(f.Sem)
			if semMod.Callable(orig).Vis == sem.VisPrivate {
				return fmt.Errorf("%s.%s: fake override of private member", className, name)
			}
			if seen[orig] {
				return fmt.Errorf("%s.%s: duplicate synthesized member", className, name)
			}
			seen[orig] = true
		}

		for _, pid := range cls.Props {
			p := irMod.Prop(pid)
			name := semMod.Strings.MustLookup(p.Name)
			if p.Parent != cid {
				return fmt.Errorf("%s.%s: parent mismatch", className, name)
			}
			if semMod.Types.ContainsError(p.Type) || semMod.Types.ContainsError(p.Ret) {
				return fmt.Errorf("%s.%s: error type in member table", className, name)
			}
			if !p.Getter.Present && len(p.Getter.Overridden) != 0 {
				return fmt.Errorf("%s.%s: absent getter with overridden refs", className, name)
			}
			if !p.Setter.Present && len(p.Setter.Overridden) != 0 {
				return fmt.Errorf("%s.%s: absent setter with overridden refs", className, name)
			}
			if p.Origin != ir.OriginFakeOverride {
				continue
			}
			if len(p.Overridden) == 0 {
				return fmt.Errorf("%s.%s: fake override with empty overridden set", className, name)
			}
			orig := semMod.Unwrap(p.Sem)
			if semMod.Callable(orig).Vis == sem.VisPrivate {
				return fmt.Errorf("%s.%s: fake override of private member", className, name)
			}
			if seen[orig] {
				return fmt.Errorf("%s.%s: duplicate synthesized member", className, name)
			}
			seen[orig] = true
		}
	}
	return nil
}
