package util

import (
	"reflect"

	"github.com/dave/dst"
)

// AssertExpressionEqual reports whether two expressions have the same structure,
// ignoring decorations.
func AssertExpressionEqual(a dst.Expr, b dst.Expr) bool {
	return compareExpr(a, b)
}

func compareExpr(a dst.Expr, b dst.Expr) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}

	switch a := a.(type) {
	case *dst.BasicLit:
		b := b.(*dst.BasicLit)
		return a.Kind == b.Kind && a.Value == b.Value
	case *dst.Ident:
		b := b.(*dst.Ident)
		return a.Name == b.Name && a.Path == b.Path
	case *dst.BinaryExpr:
		b := b.(*dst.BinaryExpr)
		return compareExpr(a.X, b.X) && compareExpr(a.Y, b.Y) && a.Op == b.Op
	case *dst.CallExpr:
		b := b.(*dst.CallExpr)
		if !compareExpr(a.Fun, b.Fun) {
			return false
		}
		if len(a.Args) != len(b.Args) {
			return false
		}
		for i := range a.Args {
			if !compareExpr(a.Args[i], b.Args[i]) {
				return false
			}
		}
		return true
	case *dst.ParenExpr:
		b := b.(*dst.ParenExpr)
		return compareExpr(a.X, b.X)
	case *dst.SelectorExpr:
		b := b.(*dst.SelectorExpr)
		return compareExpr(a.X, b.X) && compareExpr(a.Sel, b.Sel)
	case *dst.StarExpr:
		b := b.(*dst.StarExpr)
		return compareExpr(a.X, b.X)
	case *dst.UnaryExpr:
		b := b.(*dst.UnaryExpr)
		return a.Op == b.Op && compareExpr(a.X, b.X)
	case *dst.IndexExpr:
		b := b.(*dst.IndexExpr)
		return compareExpr(a.X, b.X) && compareExpr(a.Index, b.Index)
	case *dst.KeyValueExpr:
		b := b.(*dst.KeyValueExpr)
		return compareExpr(a.Key, b.Key) && compareExpr(a.Value, b.Value)
	case *dst.CompositeLit:
		b := b.(*dst.CompositeLit)
		if !compareExpr(a.Type, b.Type) || len(a.Elts) != len(b.Elts) {
			return false
		}
		for i := range a.Elts {
			if !compareExpr(a.Elts[i], b.Elts[i]) {
				return false
			}
		}
		return true
	case *dst.MapType:
		b := b.(*dst.MapType)
		return compareExpr(a.Key, b.Key) && compareExpr(a.Value, b.Value)
	case *dst.ArrayType:
		b := b.(*dst.ArrayType)
		return compareExpr(a.Len, b.Len) && compareExpr(a.Elt, b.Elt)
	default:
		return false
	}
}
