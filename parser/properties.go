package parser

import (
	"strings"

	"github.com/dave/dst"
	"github.com/pkg/errors"
	"github.com/sensorsdata/sensorsgen/internal/codegen"
	"github.com/sensorsdata/sensorsgen/internal/propvalue"
	"github.com/sensorsdata/sensorsgen/internal/refexpr"
	"github.com/sensorsdata/sensorsgen/parser/tags"
)

// properties declares the property container of a tag and fills it: the
// function parameters first when the tag includes them, then the properties
// declared on the tag. Properties with a blank key are left out.
func properties(variable string, fn *taggedFunction, tag *tags.Tag) ([]dst.Stmt, error) {
	stmts := []dst.Stmt{codegen.NewProperties(variable)}

	if tag.IncludeParams {
		for _, p := range fn.params {
			stmts = append(stmts, codegen.PutProperty(variable, p.key, dst.NewIdent(p.name)))
		}
	}

	for _, prop := range tag.Properties {
		if isBlank(prop.Key) {
			continue
		}
		value, err := propertyValue(prop.Value)
		if err != nil {
			return nil, errors.Wrapf(err, "property %q", prop.Key)
		}
		stmts = append(stmts, codegen.PutProperty(variable, prop.Key, value))
	}

	return stmts, nil
}

// propertyValue renders a property value by its classification.
func propertyValue(raw string) (dst.Expr, error) {
	v, err := propvalue.Classify(raw)
	if err != nil {
		return nil, err
	}

	switch v.Kind {
	case propvalue.Reference:
		return codegen.Reference(v.Ref), nil
	case propvalue.Boolean:
		return codegen.BoolLit(v.Bool), nil
	case propvalue.Numeric:
		return codegen.DecimalLit(v.Text), nil
	default:
		return codegen.StringLit(v.Text), nil
	}
}

// literalOrReference renders an identifier attribute: a reference when it
// starts with the reference marker, otherwise a string literal. Blank values
// stay blank strings.
func literalOrReference(raw string) (dst.Expr, error) {
	if !propvalue.IsReference(raw) {
		return codegen.StringLit(raw), nil
	}

	expr, err := refexpr.Parse(strings.TrimPrefix(raw, propvalue.ReferenceMarker))
	if err != nil {
		return nil, err
	}
	return codegen.Reference(expr), nil
}

// isBlank reports whether s is empty or only holds white space.
func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// resolveIdentity renders a distinct id or login id attribute. A blank value is
// filled in with a call to the login id supplier.
func (s *synthesizer) resolveIdentity(fn *taggedFunction, field, raw string) (dst.Expr, error) {
	if !isBlank(raw) {
		return literalOrReference(raw)
	}

	if s.identity == nil {
		return nil, &MissingIdentityError{
			Position: fn.position(),
			Function: fn.qualifiedName(),
			Field:    field,
		}
	}
	return s.identity.Call(), nil
}
