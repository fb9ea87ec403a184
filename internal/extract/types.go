package extract

import (
	"go/ast"

	"github.com/reoring/profmarker/internal/ir"
)

var basicKinds = map[string]ir.ValueKind{
	"string":  ir.KindString,
	"bool":    ir.KindBool,
	"int":     ir.KindInt,
	"int8":    ir.KindInt,
	"int16":   ir.KindInt,
	"int32":   ir.KindInt,
	"int64":   ir.KindInt,
	"uint":    ir.KindUint,
	"uint8":   ir.KindInt,
	"uint16":  ir.KindInt,
	"uint32":  ir.KindInt,
	"uint64":  ir.KindUint,
	"uintptr": ir.KindUint,
	"byte":    ir.KindInt,
	"rune":    ir.KindInt,
	"float32": ir.KindFloat,
	"float64": ir.KindFloat,
}

// maxTypeDepth bounds named type resolution (type A B; type B C; ...).
const maxTypeDepth = 8

// resolveKind maps a field type expression to the writer kind that streams
// it. Named types declared in the same package are followed to their
// underlying type; a single pointer level is allowed.
func resolveKind(expr ast.Expr, decls map[string]*ast.TypeSpec) (kind ir.ValueKind, pointer bool, ok bool) {
	if star, isStar := expr.(*ast.StarExpr); isStar {
		pointer = true
		expr = star.X
	}
	kind, ok = resolveValue(expr, decls, 0)
	return kind, pointer, ok
}

func resolveValue(expr ast.Expr, decls map[string]*ast.TypeSpec, depth int) (ir.ValueKind, bool) {
	if depth > maxTypeDepth {
		return 0, false
	}
	switch t := expr.(type) {
	case *ast.ParenExpr:
		return resolveValue(t.X, decls, depth+1)
	case *ast.Ident:
		if ts, ok := decls[t.Name]; ok {
			if ts.TypeParams != nil {
				return 0, false
			}
			return resolveValue(ts.Type, decls, depth+1)
		}
		k, ok := basicKinds[t.Name]
		return k, ok
	case *ast.SelectorExpr:
		if pkg, ok := t.X.(*ast.Ident); ok && pkg.Name == "time" && t.Sel.Name == "Duration" {
			return ir.KindInt, true
		}
	}
	return 0, false
}
