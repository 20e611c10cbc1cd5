package parser

import (
	"go/types"

	"github.com/dave/dst"
	"github.com/dave/dst/decorator"
	"github.com/sensorsdata/sensorsgen/internal/codegen"
	"github.com/sensorsdata/sensorsgen/internal/util"
	"github.com/sensorsdata/sensorsgen/parser/tags"
)

const (
	// property container variables, one per tag kind
	trackPropertiesVariable   = "saTrackProperties"
	profilePropertiesVariable = "saProfileProperties"
	itemPropertiesVariable    = "saItemProperties"
)

// param is a parameter of a tagged function as it is reported in properties.
type param struct {
	name string
	key  string
	typ  types.Type
}

// taggedFunction is a function declaration carrying at least one directive.
type taggedFunction struct {
	decl       *dst.FuncDecl
	fn         *types.Func
	pkg        *decorator.Package
	directives *tags.Directives

	// params are the named parameters, in declaration order
	params []param
	// paramTypes are the types of every parameter, including blank ones
	paramTypes []types.Type
}

// name is the function name as written, used as the default event name.
func (f *taggedFunction) name() string {
	return f.decl.Name.Name
}

// qualifiedName is the name the function is known by at runtime.
func (f *taggedFunction) qualifiedName() string {
	if f.fn == nil {
		return f.pkg.PkgPath + "." + f.name()
	}
	return util.QualifiedName(f.fn)
}

// position is the position of the function in its file, for diagnostics.
func (f *taggedFunction) position() string {
	return util.PositionString(f.decl, f.pkg, f.qualifiedName())
}

// synthesizer holds what every statement builder shares during one run.
type synthesizer struct {
	sdk      codegen.SDK
	identity *LoginIdentity
}

// StatementBuilder synthesizes the statements for one directive of a function.
// Builders do not modify the function, they only return new statements.
type StatementBuilder func(s *synthesizer, fn *taggedFunction, tag *tags.Tag) ([]dst.Stmt, error)

// builders maps every tag kind that produces code to its builder.
var builders = map[tags.Kind]StatementBuilder{
	tags.Init:    buildInit,
	tags.Track:   buildTrack,
	tags.Profile: buildProfile,
	tags.Item:    buildItem,
	tags.SignUp:  buildSignUp,
}
