package codegen

import (
	"go/token"

	"github.com/dave/dst"
)

// NewProperties declares an empty property container:
//
//	variable := map[string]any{}
func NewProperties(variable string) *dst.AssignStmt {
	return &dst.AssignStmt{
		Lhs: []dst.Expr{
			dst.NewIdent(variable),
		},
		Tok: token.DEFINE,
		Rhs: []dst.Expr{
			&dst.CompositeLit{
				Type: &dst.MapType{
					Key:   dst.NewIdent("string"),
					Value: dst.NewIdent("any"),
				},
			},
		},
	}
}

// PutProperty stores value under key in the property container:
//
//	variable["key"] = value
//
// The value is cloned.
func PutProperty(variable, key string, value dst.Expr) *dst.AssignStmt {
	return &dst.AssignStmt{
		Lhs: []dst.Expr{
			&dst.IndexExpr{
				X:     dst.NewIdent(variable),
				Index: StringLit(key),
			},
		},
		Tok: token.ASSIGN,
		Rhs: []dst.Expr{
			dst.Clone(value).(dst.Expr),
		},
	}
}
