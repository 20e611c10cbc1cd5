// Package propvalue decides how a property value written as directive text is
// rendered into generated code.
package propvalue

import (
	"strings"

	"github.com/cockroachdb/apd/v3"
	"github.com/pkg/errors"
	"github.com/sensorsdata/sensorsgen/internal/refexpr"
)

// ReferenceMarker prefixes values that refer to a variable or call in scope.
const ReferenceMarker = "@"

// Kind is the classification of a property value.
type Kind uint8

const (
	Text Kind = iota
	Reference
	Boolean
	Numeric
)

func (k Kind) String() string {
	switch k {
	case Text:
		return "Text"
	case Reference:
		return "Reference"
	case Boolean:
		return "Boolean"
	case Numeric:
		return "Numeric"
	default:
		return "Unknown"
	}
}

// Value is a classified property value.
//
// Text holds the literal for Text values and the canonical decimal for
// Numeric values. Ref is only set for Reference values and Bool only for
// Boolean values.
type Value struct {
	Kind Kind
	Text string
	Bool bool
	Ref  refexpr.Expr
}

// Classify checks raw against the reference, boolean and numeric forms in
// that order, falling back to plain text.
func Classify(raw string) (Value, error) {
	if IsReference(raw) {
		ref, err := refexpr.Parse(strings.TrimPrefix(raw, ReferenceMarker))
		if err != nil {
			return Value{}, errors.Wrap(err, "property value")
		}
		return Value{Kind: Reference, Ref: ref}, nil
	}

	switch strings.ToLower(raw) {
	case "true":
		return Value{Kind: Boolean, Bool: true}, nil
	case "false":
		return Value{Kind: Boolean, Bool: false}, nil
	}

	if decimal, ok := ParseDecimal(raw); ok {
		return Value{Kind: Numeric, Text: decimal}, nil
	}

	return Value{Kind: Text, Text: raw}, nil
}

// IsReference reports whether raw starts with the reference marker.
func IsReference(raw string) bool {
	return strings.HasPrefix(raw, ReferenceMarker)
}

// ParseDecimal returns the canonical text of raw if it is a finite decimal
// number. The canonical form is always a valid JSON number.
func ParseDecimal(raw string) (string, bool) {
	d, _, err := apd.NewFromString(raw)
	if err != nil || d.Form != apd.Finite {
		return "", false
	}
	return d.String(), true
}
