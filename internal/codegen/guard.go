package codegen

import (
	"go/token"
	"strings"

	"github.com/dave/dst"
)

const (
	// GeneratedMarker is attached to every guard so that a later run can
	// recognize functions that were already instrumented.
	GeneratedMarker = "// SA INFO: generated by sensorsgen, do not edit"

	recoveredVariable = "r"
)

// Guard wraps stmts in an immediately invoked function literal that recovers
// from any panic raised by the generated calls and logs it, so the original
// function body always runs:
//
//	// SA INFO: generated by sensorsgen, do not edit
//	func() {
//		defer func() {
//			if r := recover(); r != nil {
//				log.Printf("label: recovered from panic in generated tracking code: %v", r)
//			}
//		}()
//		stmts...
//	}()
//
// The statements are not cloned, they are moved into the guard.
func Guard(logLabel string, stmts []dst.Stmt) *dst.ExprStmt {
	recovered := &dst.IfStmt{
		Init: &dst.AssignStmt{
			Lhs: []dst.Expr{dst.NewIdent(recoveredVariable)},
			Tok: token.DEFINE,
			Rhs: []dst.Expr{
				&dst.CallExpr{Fun: dst.NewIdent("recover")},
			},
		},
		Cond: &dst.BinaryExpr{
			X:  dst.NewIdent(recoveredVariable),
			Op: token.NEQ,
			Y:  dst.NewIdent("nil"),
		},
		Body: &dst.BlockStmt{
			List: []dst.Stmt{
				&dst.ExprStmt{
					X: &dst.CallExpr{
						Fun: &dst.Ident{
							Name: "Printf",
							Path: "log",
						},
						Args: []dst.Expr{
							StringLit(logLabel + ": recovered from panic in generated tracking code: %v"),
							dst.NewIdent(recoveredVariable),
						},
					},
				},
			},
		},
	}

	deferRecover := &dst.DeferStmt{
		Call: &dst.CallExpr{
			Fun: &dst.FuncLit{
				Type: &dst.FuncType{Func: true, Params: &dst.FieldList{}},
				Body: &dst.BlockStmt{
					List: []dst.Stmt{recovered},
				},
			},
		},
	}

	body := make([]dst.Stmt, 0, len(stmts)+1)
	body = append(body, deferRecover)
	body = append(body, stmts...)
	CreateStatementBlock(false, body...)
	body[len(body)-1].Decorations().After = dst.NewLine

	return &dst.ExprStmt{
		X: &dst.CallExpr{
			Fun: &dst.FuncLit{
				Type: &dst.FuncType{Func: true, Params: &dst.FieldList{}},
				Body: &dst.BlockStmt{List: body},
			},
		},
		Decs: dst.ExprStmtDecorations{
			NodeDecs: dst.NodeDecs{
				Before: dst.NewLine,
				Start:  dst.Decorations{GeneratedMarker},
				After:  dst.EmptyLine,
			},
		},
	}
}

// IsGuard reports whether stmt is a guard produced by Guard.
func IsGuard(stmt dst.Stmt) bool {
	exprStmt, ok := stmt.(*dst.ExprStmt)
	if !ok {
		return false
	}
	for _, c := range exprStmt.Decs.Start {
		if strings.TrimSpace(c) == GeneratedMarker {
			return true
		}
	}
	return false
}
