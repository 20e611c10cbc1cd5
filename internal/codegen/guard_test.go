package codegen

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dave/dst"
	"github.com/dave/dst/decorator"
	"github.com/dave/dst/decorator/resolver/guess"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuard(t *testing.T) {
	stmts := []dst.Stmt{
		NewProperties("props"),
		testSDK.Flush(),
	}
	guard := Guard("sensorsanalytics", stmts)

	assert.True(t, IsGuard(guard))
	assert.Equal(t, dst.Decorations{GeneratedMarker}, guard.Decs.Start)

	lit := guard.X.(*dst.CallExpr).Fun.(*dst.FuncLit)
	require.Len(t, lit.Body.List, 3)
	assert.IsType(t, &dst.DeferStmt{}, lit.Body.List[0])
	assert.Same(t, stmts[0], lit.Body.List[1])
	assert.Same(t, stmts[1], lit.Body.List[2])
}

func TestIsGuard(t *testing.T) {
	assert.False(t, IsGuard(&dst.ReturnStmt{}))
	assert.False(t, IsGuard(&dst.ExprStmt{X: dst.NewIdent("x")}))
	assert.True(t, IsGuard(&dst.ExprStmt{
		X: dst.NewIdent("x"),
		Decs: dst.ExprStmtDecorations{
			NodeDecs: dst.NodeDecs{Start: dst.Decorations{GeneratedMarker + " "}},
		},
	}))
}

func TestGuardRendering(t *testing.T) {
	src := `package app

func Buy(amount int) {
	println(amount)
}
`
	file, err := decorator.Parse(src)
	require.NoError(t, err)

	fn := file.Decls[0].(*dst.FuncDecl)
	PrependStatementToFunctionDecl(fn, Guard("sa", []dst.Stmt{
		NewProperties("props"),
		PutProperty("props", "amount", dst.NewIdent("amount")),
		testSDK.InstanceCall(TrackMethod, StringLit("u1"), BoolLit(false), StringLit("Buy"), dst.NewIdent("props")),
	}))

	restorer := decorator.NewRestorerWithImports("app", guess.New())
	buf := bytes.NewBuffer([]byte{})
	require.NoError(t, restorer.Fprint(buf, file))
	got := buf.String()

	for _, want := range []string{
		`"log"`,
		`"example.com/sensorsanalytics"`,
		GeneratedMarker,
		`defer func() {`,
		`if r := recover(); r != nil {`,
		`log.Printf("sa: recovered from panic in generated tracking code: %v", r)`,
		`props := map[string]any{}`,
		`props["amount"] = amount`,
		`sensorsanalytics.SharedInstance().Track("u1", false, "Buy", props)`,
		`println(amount)`,
	} {
		assert.True(t, strings.Contains(got, want), "missing %q in:\n%s", want, got)
	}
}

func TestImportPaths(t *testing.T) {
	guard := Guard("sensorsanalytics", []dst.Stmt{
		PutProperty("props", "price", DecimalLit("12.5")),
		testSDK.Flush(),
	})
	assert.Equal(t, []string{"encoding/json", testSDKPath, "log"}, ImportPaths(guard))

	assert.Empty(t, ImportPaths(NewProperties("props")))
}
