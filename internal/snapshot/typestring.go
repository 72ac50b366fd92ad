package snapshot

import (
	"fmt"
	"strings"

	"velar/internal/sem"
	"velar/internal/types"
)

// TypeString renders a type for export and display.
func TypeString(semMod *sem.Module, id types.TypeID) string {
	tt, ok := semMod.Types.Lookup(id)
	if !ok {
		return "<none>"
	}
	switch tt.Kind {
	case types.KindUnit:
		return "Unit"
	case types.KindBool:
		return "Bool"
	case types.KindInt:
		return "Int"
	case types.KindString:
		return "String"
	case types.KindError:
		return "Error"
	case types.KindTypeParam:
		info, _ := semMod.Types.ParamInfo(id)
		owner := semMod.Class(sem.ClassID(info.Owner))
		if owner != nil {
			return fmt.Sprintf("%s.T%d", semMod.Strings.MustLookup(owner.Name), info.Index)
		}
		return fmt.Sprintf("T%d", info.Index)
	case types.KindClass:
		info, _ := semMod.Types.ClassInfo(id)
		cls := semMod.Class(sem.ClassID(info.Class))
		name := "<class>"
		if cls != nil {
			name = semMod.Strings.MustLookup(cls.Name)
		}
		if len(info.Args) == 0 {
			return name
		}
		args := make([]string, len(info.Args))
		for i, a := range info.Args {
			args[i] = TypeString(semMod, a)
		}
		return name + "[" + strings.Join(args, ", ") + "]"
	default:
		return tt.Kind.String()
	}
}
