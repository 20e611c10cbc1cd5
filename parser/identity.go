package parser

import (
	"go/types"

	"github.com/dave/dst"
	"github.com/sensorsdata/sensorsgen/internal/codegen"
	"github.com/sensorsdata/sensorsgen/internal/util"
	"github.com/sensorsdata/sensorsgen/parser/tags"
)

// LoginIdentity is the function that supplies the login id whenever a
// directive leaves its distinct id or login id blank.
type LoginIdentity struct {
	pkgPath string
	name    string
}

// Call returns a new call to the supplier, qualified with its package path
// so the restorer imports it wherever the call is placed.
func (l *LoginIdentity) Call() dst.Expr {
	return codegen.PackageFunctionCall(l.pkgPath, l.name)
}

func (l *LoginIdentity) String() string {
	return l.pkgPath + "." + l.name
}

// ResolveLoginIdentity picks the login id supplier from the functions carrying
// the loginid directive. No supplier is not an error: it returns nil, and only
// directives that rely on the supplier fail.
func ResolveLoginIdentity(suppliers []*types.Func) (*LoginIdentity, error) {
	switch len(suppliers) {
	case 0:
		return nil, nil
	case 1:
	default:
		return nil, &TooManyElementsError{Directive: tags.LoginID.String(), Count: len(suppliers)}
	}

	fn := suppliers[0]
	if constraint := unqualified(fn); constraint != "" {
		return nil, &UnqualifiedMethodError{
			Function:   util.QualifiedName(fn),
			Constraint: constraint,
		}
	}

	return &LoginIdentity{
		pkgPath: fn.Pkg().Path(),
		name:    fn.Name(),
	}, nil
}

// unqualified returns the first constraint the supplier breaks, or "" if it can
// be called as pkg.Func() from anywhere.
func unqualified(fn *types.Func) string {
	if !fn.Exported() {
		return "be exported"
	}

	sig, ok := fn.Type().(*types.Signature)
	if !ok {
		return "be a function"
	}
	if sig.Recv() != nil {
		return "be a package level function, not a method"
	}
	if sig.TypeParams().Len() > 0 {
		return "not declare type parameters"
	}
	if sig.Params().Len() > 0 || sig.Variadic() {
		return "take no parameters"
	}
	if sig.Results().Len() != 1 || !isString(sig.Results().At(0).Type()) {
		return "return exactly one string"
	}
	return ""
}

func isString(t types.Type) bool {
	basic, ok := types.Unalias(t).(*types.Basic)
	return ok && basic.Kind() == types.String
}
