package codegen

import (
	"go/token"
	"strconv"

	"github.com/dave/dst"
	"github.com/sensorsdata/sensorsgen/internal/refexpr"
)

const (
	// JSONImportPath is the package providing json.Number for precise decimals.
	JSONImportPath = "encoding/json"
)

// StringLit returns a quoted string literal for value.
func StringLit(value string) *dst.BasicLit {
	return &dst.BasicLit{
		Kind:  token.STRING,
		Value: strconv.Quote(value),
	}
}

// BoolLit returns the predeclared identifier true or false.
func BoolLit(value bool) *dst.Ident {
	return dst.NewIdent(strconv.FormatBool(value))
}

// DecimalLit returns json.Number("<decimal>"). The decimal must already be
// in a canonical form accepted by encoding/json; it is kept as text so that
// no binary floating point rounding happens before the SDK serializes it.
func DecimalLit(decimal string) *dst.CallExpr {
	return &dst.CallExpr{
		Fun: &dst.Ident{
			Name: "Number",
			Path: JSONImportPath,
		},
		Args: []dst.Expr{
			StringLit(decimal),
		},
	}
}

// AccessMember builds the selector chain a.b.c for path.
// The path must contain at least one element.
func AccessMember(path []string) dst.Expr {
	var expr dst.Expr = dst.NewIdent(path[0])
	for _, selector := range path[1:] {
		expr = &dst.SelectorExpr{
			X:   expr,
			Sel: dst.NewIdent(selector),
		}
	}
	return expr
}

// Reference converts a parsed reference expression into a dst expression:
// a selector chain for references, and a call expression for calls.
func Reference(expr refexpr.Expr) dst.Expr {
	switch v := expr.(type) {
	case refexpr.Ref:
		return AccessMember(v.Path)
	case refexpr.Call:
		call := &dst.CallExpr{
			Fun: AccessMember(v.Fun.Path),
		}
		for _, arg := range v.Args {
			call.Args = append(call.Args, Reference(arg))
		}
		return call
	}
	return nil
}

// PackageFunctionCall returns a call to the package level function name with no
// arguments. When pkgPath is not empty the restorer qualifies the call and
// imports the package if needed.
func PackageFunctionCall(pkgPath, name string) *dst.CallExpr {
	return &dst.CallExpr{
		Fun: &dst.Ident{
			Name: name,
			Path: pkgPath,
		},
	}
}
