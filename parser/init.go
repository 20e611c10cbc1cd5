package parser

import (
	"github.com/dave/dst"
	"github.com/pkg/errors"
	"github.com/sensorsdata/sensorsgen/internal/codegen"
	"github.com/sensorsdata/sensorsgen/parser/tags"
)

// buildInit starts the SDK from the init directive of fn. The SDK looks fn up
// by its runtime name and parameter types and reads the directive attributes
// off the handle:
//
//	saInitMethod := sensorsanalytics.MethodOf("example.com/app.Setup", reflect.TypeFor[string]())
//	saInitTag := saInitMethod.InitTag(map[string]string{"serverUrl": "..."})
//	sensorsanalytics.StartWithTag(saInitTag)
func buildInit(s *synthesizer, fn *taggedFunction, tag *tags.Tag) ([]dst.Stmt, error) {
	tokens := make([]dst.Expr, 0, len(fn.paramTypes))
	for i, t := range fn.paramTypes {
		tok, err := codegen.TypeToken(t)
		if err != nil {
			return nil, errors.Wrapf(err, "parameter %d of %s", i, fn.qualifiedName())
		}
		tokens = append(tokens, tok)
	}

	attrs := make([]codegen.Attr, 0, len(tag.InitAttrs))
	for _, a := range tag.InitAttrs {
		attrs = append(attrs, codegen.Attr{Key: a.Key, Value: a.Value})
	}

	return s.sdk.InitStatements(fn.qualifiedName(), tokens, attrs), nil
}
