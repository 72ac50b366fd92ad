package hierfile

import (
	"strings"

	"velar/internal/diag"
	"velar/internal/sem"
	"velar/internal/types"
)

// parseType resolves a type expression like "Int", "T", "Pair[Int, T]"
// or "Error" against the builtins, the class's type parameters and the
// declared classes. Unresolvable references produce the unresolved-type
// marker after reporting, the same way the real resolution stage hands
// error-contaminated members to lowering.
func (b *builder) parseType(expr string, class sem.ClassID, line int) types.TypeID {
	expr = strings.TrimSpace(expr)
	builtins := b.mod.Types.Builtins()

	name, argsExpr := expr, ""
	if i := strings.IndexByte(expr, '['); i >= 0 {
		if !strings.HasSuffix(expr, "]") {
			b.errorf(diag.HierBadSyntax, line, "malformed type %q", expr)
			return builtins.Error
		}
		name = strings.TrimSpace(expr[:i])
		argsExpr = expr[i+1 : len(expr)-1]
	}

	switch name {
	case "Unit":
		return builtins.Unit
	case "Bool":
		return builtins.Bool
	case "Int":
		return builtins.Int
	case "String":
		return builtins.String
	case "Error":
		return builtins.Error
	}

	if argsExpr == "" {
		if tp, ok := b.params[class][name]; ok {
			return tp
		}
	}

	target, ok := b.classes[name]
	if !ok {
		b.errorf(diag.HierUnknownType, line, "unknown type %q", name)
		return builtins.Error
	}
	var args []types.TypeID
	for _, arg := range splitArgs(argsExpr) {
		args = append(args, b.parseType(arg, class, line))
	}
	return b.mod.Types.RegisterClass(types.ClassRef(target), args)
}

// parseTypeDefault resolves expr or falls back when it is empty.
func (b *builder) parseTypeDefault(expr string, class sem.ClassID, line int, dflt types.TypeID) types.TypeID {
	if strings.TrimSpace(expr) == "" {
		return dflt
	}
	return b.parseType(expr, class, line)
}

// splitArgs splits a bracket-free argument list on top-level commas.
func splitArgs(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var out []string
	depth, start := 0, 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '[':
			depth++
		case ']':
			depth--
		case ',':
			if depth == 0 {
				out = append(out, s[start:i])
				start = i + 1
			}
		}
	}
	out = append(out, s[start:])
	return out
}
