package comment

import (
	"go/ast"
	"go/token"
	"testing"

	"github.com/dave/dst"
	"github.com/dave/dst/decorator"
	"golang.org/x/tools/go/packages"
)

func TestAddComment(t *testing.T) {
	dstNode1 := &dst.Ident{Name: "hi"}
	astNode1 := &ast.Ident{Name: "hi", NamePos: token.Pos(0)}

	pkg := &decorator.Package{
		Decorator: &decorator.Decorator{
			Map: decorator.Map{
				Ast: decorator.AstMap{
					Nodes: map[dst.Node]ast.Node{
						dstNode1: astNode1,
					},
				},
			},
		},
		Package: &packages.Package{
			Fset: token.NewFileSet(),
		},
	}

	testPrinter := &ConsolePrinter{
		comments: []string{},
	}

	testPrinter.Add(pkg, dstNode1, InfoHeader, "message", "additionalInfo")
	if len(testPrinter.comments) != 1 {
		t.Errorf("Expected 1 comment, got %d", len(testPrinter.comments))
	} else {
		expected := "SA INFO: message\n\tadditionalInfo"
		if testPrinter.comments[0] != expected {
			t.Errorf("Expected %s, got %s", expected, testPrinter.comments[0])
		}
	}
}

func TestAddCommentWithPosition(t *testing.T) {
	fset := token.NewFileSet()
	file := fset.AddFile("/home/me/app/handlers/buy.go", -1, 100)
	file.SetLines([]int{0, 10, 20, 30})

	dstNode := &dst.Ident{Name: "Buy"}
	astNode := &ast.Ident{Name: "Buy", NamePos: file.Pos(25)}

	pkg := &decorator.Package{
		Decorator: &decorator.Decorator{
			Map: decorator.Map{
				Ast: decorator.AstMap{
					Nodes: map[dst.Node]ast.Node{
						dstNode: astNode,
					},
				},
			},
		},
		Package: &packages.Package{
			Fset: fset,
		},
	}

	testPrinter := &ConsolePrinter{appRoot: "app"}
	testPrinter.Add(pkg, dstNode, WarnHeader, "message")

	expected := "SA WARN: app/handlers/buy.go 3:6 message"
	if len(testPrinter.comments) != 1 || testPrinter.comments[0] != expected {
		t.Errorf("Expected %q, got %q", expected, testPrinter.comments)
	}
}

func TestNilPrinter(t *testing.T) {
	var p *ConsolePrinter
	p.Add(nil, nil, InfoHeader, "ignored")
	p.Flush()
}
