package codegen

import (
	"go/token"

	"github.com/dave/dst"
)

const (
	// InitMethodVariable holds the reflection handle of the init function.
	InitMethodVariable = "saInitMethod"
	// InitTagVariable holds the init tag metadata read off the handle.
	InitTagVariable = "saInitTag"

	// instance methods of the analytics client
	TrackMethod            = "Track"
	ProfileSetMethod       = "ProfileSet"
	ProfileSetOnceMethod   = "ProfileSetOnce"
	ProfileAppendMethod    = "ProfileAppend"
	ProfileIncrementMethod = "ProfileIncrement"
	ItemSetMethod          = "ItemSet"
	ItemDeleteMethod       = "ItemDelete"
	TrackSignUpMethod      = "TrackSignUp"
	FlushMethod            = "Flush"
	InitTagMethod          = "InitTag"
)

// SDK names the entry points of the analytics client that generated code calls.
type SDK struct {
	ImportPath     string
	SharedInstance string
	MethodOf       string
	StartWithTag   string
}

// Attr is an ordered key value pair rendered into a map[string]string literal.
type Attr struct {
	Key   string
	Value string
}

func (s SDK) ident(name string) *dst.Ident {
	return &dst.Ident{
		Name: name,
		Path: s.ImportPath,
	}
}

// sharedInstance returns sensorsanalytics.SharedInstance()
func (s SDK) sharedInstance() *dst.CallExpr {
	return &dst.CallExpr{
		Fun: s.ident(s.SharedInstance),
	}
}

// InstanceCall returns a statement calling method on the shared client:
//
//	sensorsanalytics.SharedInstance().method(args...)
//
// The arguments are cloned.
func (s SDK) InstanceCall(method string, args ...dst.Expr) *dst.ExprStmt {
	call := &dst.CallExpr{
		Fun: &dst.SelectorExpr{
			X:   s.sharedInstance(),
			Sel: dst.NewIdent(method),
		},
	}
	for _, arg := range args {
		call.Args = append(call.Args, dst.Clone(arg).(dst.Expr))
	}
	return &dst.ExprStmt{X: call}
}

// Flush returns sensorsanalytics.SharedInstance().Flush()
func (s SDK) Flush() *dst.ExprStmt {
	return s.InstanceCall(FlushMethod)
}

// InitStatements returns the three statements that start the SDK from the
// init tag of a function:
//
//	saInitMethod := sensorsanalytics.MethodOf("pkg.Func", reflect.TypeFor[int]())
//	saInitTag := saInitMethod.InitTag(map[string]string{"key": "value"})
//	sensorsanalytics.StartWithTag(saInitTag)
//
// typeTokens are the runtime type tokens of the function parameters, in order.
// They are cloned.
func (s SDK) InitStatements(funcName string, typeTokens []dst.Expr, attrs []Attr) []dst.Stmt {
	methodOfArgs := []dst.Expr{StringLit(funcName)}
	for _, tok := range typeTokens {
		methodOfArgs = append(methodOfArgs, dst.Clone(tok).(dst.Expr))
	}

	method := &dst.AssignStmt{
		Lhs: []dst.Expr{dst.NewIdent(InitMethodVariable)},
		Tok: token.DEFINE,
		Rhs: []dst.Expr{
			&dst.CallExpr{
				Fun:  s.ident(s.MethodOf),
				Args: methodOfArgs,
			},
		},
	}

	tag := &dst.AssignStmt{
		Lhs: []dst.Expr{dst.NewIdent(InitTagVariable)},
		Tok: token.DEFINE,
		Rhs: []dst.Expr{
			&dst.CallExpr{
				Fun: &dst.SelectorExpr{
					X:   dst.NewIdent(InitMethodVariable),
					Sel: dst.NewIdent(InitTagMethod),
				},
				Args: []dst.Expr{StringMap(attrs)},
			},
		},
	}

	start := &dst.ExprStmt{
		X: &dst.CallExpr{
			Fun:  s.ident(s.StartWithTag),
			Args: []dst.Expr{dst.NewIdent(InitTagVariable)},
		},
	}

	return []dst.Stmt{method, tag, start}
}

// StringMap returns a map[string]string composite literal holding attrs in order.
func StringMap(attrs []Attr) *dst.CompositeLit {
	lit := &dst.CompositeLit{
		Type: &dst.MapType{
			Key:   dst.NewIdent("string"),
			Value: dst.NewIdent("string"),
		},
	}
	for _, attr := range attrs {
		lit.Elts = append(lit.Elts, &dst.KeyValueExpr{
			Key:   StringLit(attr.Key),
			Value: StringLit(attr.Value),
		})
	}
	return lit
}
