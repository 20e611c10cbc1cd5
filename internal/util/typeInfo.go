package util

import (
	"go/ast"
	"go/token"
	"go/types"

	"github.com/dave/dst"
	"github.com/dave/dst/decorator"
)

// FuncObject returns the types.Func declared by decl according to go types info
func FuncObject(decl *dst.FuncDecl, pkg *decorator.Package) *types.Func {
	if decl == nil || pkg == nil || pkg.TypesInfo == nil {
		return nil
	}

	astNode, ok := pkg.Decorator.Ast.Nodes[decl].(*ast.FuncDecl)
	if !ok || astNode == nil {
		return nil
	}

	fn, _ := pkg.TypesInfo.Defs[astNode.Name].(*types.Func)
	return fn
}

// Position returns the position of the node in its source file, or nil if the
// node was not part of the loaded source.
func Position(node dst.Node, pkg *decorator.Package) *token.Position {
	if node == nil || pkg == nil || pkg.Decorator == nil || pkg.Package == nil {
		return nil
	}

	astNode := pkg.Decorator.Ast.Nodes[node]
	if astNode == nil {
		return nil
	}

	pos := pkg.Fset.Position(astNode.Pos())
	return &pos
}

// PositionString returns "file:line:column" for the node, or the fallback if
// the position is unknown.
func PositionString(node dst.Node, pkg *decorator.Package, fallback string) string {
	pos := Position(node, pkg)
	if pos == nil || !pos.IsValid() {
		return fallback
	}
	return pos.String()
}

// QualifiedName returns the name a function is known by at runtime, e.g.
// "example.com/app.Setup" or "example.com/app.(*Server).Start".
func QualifiedName(fn *types.Func) string {
	prefix := ""
	if fn.Pkg() != nil {
		prefix = fn.Pkg().Path() + "."
	}

	sig, ok := fn.Type().(*types.Signature)
	if !ok || sig.Recv() == nil {
		return prefix + fn.Name()
	}

	recv := types.Unalias(sig.Recv().Type())
	pointer := false
	if ptr, ok := recv.(*types.Pointer); ok {
		pointer = true
		recv = types.Unalias(ptr.Elem())
	}

	recvName := types.TypeString(recv, func(*types.Package) string { return "" })
	if named, ok := recv.(*types.Named); ok {
		recvName = named.Obj().Name()
	}
	if pointer {
		recvName = "(*" + recvName + ")"
	}
	return prefix + recvName + "." + fn.Name()
}
