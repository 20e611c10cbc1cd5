package codegen

import (
	"fmt"
	"go/token"
	"go/types"
	"strconv"

	"github.com/dave/dst"
)

const (
	// ReflectImportPath is the package providing runtime type tokens.
	ReflectImportPath = "reflect"
)

// TypeToken returns the expression that evaluates to the reflect.Type of t at
// runtime, for use in a reflective function lookup:
//
//	[]int, [4]byte   -> reflect.TypeFor[[]int]()
//	[]pkg.T          -> reflect.SliceOf(reflect.TypeFor[pkg.T]())
//	[2]pkg.T         -> reflect.ArrayOf(2, reflect.TypeFor[pkg.T]())
//	int              -> reflect.TypeFor[int]()
//	pkg.T            -> reflect.TypeFor[pkg.T]()
//	*pkg.T           -> reflect.TypeFor[*pkg.T]()
func TypeToken(t types.Type) (dst.Expr, error) {
	t = types.Unalias(t)
	switch v := t.(type) {
	case *types.Slice:
		if isBasic(v.Elem()) {
			return typeFor(t)
		}
		elem, err := TypeToken(v.Elem())
		if err != nil {
			return nil, err
		}
		return &dst.CallExpr{
			Fun:  reflectIdent("SliceOf"),
			Args: []dst.Expr{elem},
		}, nil
	case *types.Array:
		if isBasic(v.Elem()) {
			return typeFor(t)
		}
		elem, err := TypeToken(v.Elem())
		if err != nil {
			return nil, err
		}
		return &dst.CallExpr{
			Fun: reflectIdent("ArrayOf"),
			Args: []dst.Expr{
				intLit(v.Len()),
				elem,
			},
		}, nil
	default:
		return typeFor(t)
	}
}

// TypeExpr renders t as a type expression. Named types carry their package
// path on the identifier so that the restorer can import them.
func TypeExpr(t types.Type) (dst.Expr, error) {
	t = types.Unalias(t)
	switch v := t.(type) {
	case *types.Basic:
		if v.Info()&types.IsUntyped != 0 {
			return nil, fmt.Errorf("untyped type %s has no runtime representation", v)
		}
		if v.Kind() == types.UnsafePointer {
			return &dst.Ident{Name: "Pointer", Path: "unsafe"}, nil
		}
		return dst.NewIdent(v.Name()), nil
	case *types.Named:
		return namedTypeExpr(v)
	case *types.TypeParam:
		return dst.NewIdent(v.Obj().Name()), nil
	case *types.Pointer:
		elem, err := TypeExpr(v.Elem())
		if err != nil {
			return nil, err
		}
		return &dst.StarExpr{X: elem}, nil
	case *types.Slice:
		elem, err := TypeExpr(v.Elem())
		if err != nil {
			return nil, err
		}
		return &dst.ArrayType{Elt: elem}, nil
	case *types.Array:
		elem, err := TypeExpr(v.Elem())
		if err != nil {
			return nil, err
		}
		return &dst.ArrayType{Len: intLit(v.Len()), Elt: elem}, nil
	case *types.Map:
		key, err := TypeExpr(v.Key())
		if err != nil {
			return nil, err
		}
		value, err := TypeExpr(v.Elem())
		if err != nil {
			return nil, err
		}
		return &dst.MapType{Key: key, Value: value}, nil
	case *types.Chan:
		value, err := TypeExpr(v.Elem())
		if err != nil {
			return nil, err
		}
		dir := dst.SEND | dst.RECV
		switch v.Dir() {
		case types.SendOnly:
			dir = dst.SEND
		case types.RecvOnly:
			dir = dst.RECV
		}
		return &dst.ChanType{Dir: dir, Value: value}, nil
	case *types.Interface:
		if v.Empty() {
			return dst.NewIdent("any"), nil
		}
		return nil, fmt.Errorf("unsupported parameter type %s: interface literals with methods", v)
	case *types.Signature:
		return signatureExpr(v)
	default:
		return nil, fmt.Errorf("unsupported parameter type %s", t)
	}
}

func namedTypeExpr(n *types.Named) (dst.Expr, error) {
	obj := n.Obj()
	var expr dst.Expr
	if obj.Pkg() == nil {
		// predeclared, e.g. error
		expr = dst.NewIdent(obj.Name())
	} else {
		expr = &dst.Ident{Name: obj.Name(), Path: obj.Pkg().Path()}
	}

	args := n.TypeArgs()
	if args == nil || args.Len() == 0 {
		return expr, nil
	}

	indices := make([]dst.Expr, 0, args.Len())
	for i := 0; i < args.Len(); i++ {
		arg, err := TypeExpr(args.At(i))
		if err != nil {
			return nil, err
		}
		indices = append(indices, arg)
	}
	if len(indices) == 1 {
		return &dst.IndexExpr{X: expr, Index: indices[0]}, nil
	}
	return &dst.IndexListExpr{X: expr, Indices: indices}, nil
}

func signatureExpr(sig *types.Signature) (dst.Expr, error) {
	params := &dst.FieldList{}
	for i := 0; i < sig.Params().Len(); i++ {
		pt := sig.Params().At(i).Type()
		var expr dst.Expr
		var err error
		if sig.Variadic() && i == sig.Params().Len()-1 {
			var elem dst.Expr
			elem, err = TypeExpr(pt.(*types.Slice).Elem())
			expr = &dst.Ellipsis{Elt: elem}
		} else {
			expr, err = TypeExpr(pt)
		}
		if err != nil {
			return nil, err
		}
		params.List = append(params.List, &dst.Field{Type: expr})
	}

	var results *dst.FieldList
	if sig.Results().Len() > 0 {
		results = &dst.FieldList{}
		for i := 0; i < sig.Results().Len(); i++ {
			expr, err := TypeExpr(sig.Results().At(i).Type())
			if err != nil {
				return nil, err
			}
			results.List = append(results.List, &dst.Field{Type: expr})
		}
	}

	return &dst.FuncType{
		Func:    true,
		Params:  params,
		Results: results,
	}, nil
}

// typeFor returns reflect.TypeFor[T]()
func typeFor(t types.Type) (dst.Expr, error) {
	expr, err := TypeExpr(t)
	if err != nil {
		return nil, err
	}
	return &dst.CallExpr{
		Fun: &dst.IndexExpr{
			X:     reflectIdent("TypeFor"),
			Index: expr,
		},
	}, nil
}

func isBasic(t types.Type) bool {
	_, ok := types.Unalias(t).(*types.Basic)
	return ok
}

func reflectIdent(name string) *dst.Ident {
	return &dst.Ident{
		Name: name,
		Path: ReflectImportPath,
	}
}

func intLit(n int64) *dst.BasicLit {
	return &dst.BasicLit{
		Kind:  token.INT,
		Value: strconv.FormatInt(n, 10),
	}
}
