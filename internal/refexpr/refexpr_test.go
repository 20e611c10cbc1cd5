package refexpr

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Expr
	}{
		{
			name:  "dotted reference",
			input: "a.b.c",
			want:  Ref{Path: []string{"a", "b", "c"}},
		},
		{
			name:  "single identifier",
			input: "user",
			want:  Ref{Path: []string{"user"}},
		},
		{
			name:  "call with two reference arguments",
			input: "a.b(c,d)",
			want: Call{
				Fun: Ref{Path: []string{"a", "b"}},
				Args: []Expr{
					Ref{Path: []string{"c"}},
					Ref{Path: []string{"d"}},
				},
			},
		},
		{
			name:  "call without arguments",
			input: "a.b()",
			want:  Call{Fun: Ref{Path: []string{"a", "b"}}},
		},
		{
			name:  "nested call argument",
			input: "a.b(c.d(e))",
			want: Call{
				Fun: Ref{Path: []string{"a", "b"}},
				Args: []Expr{
					Call{
						Fun:  Ref{Path: []string{"c", "d"}},
						Args: []Expr{Ref{Path: []string{"e"}}},
					},
				},
			},
		},
		{
			name:  "surrounding whitespace",
			input: "  Utils.GetUserID( user , order.ID )  ",
			want: Call{
				Fun: Ref{Path: []string{"Utils", "GetUserID"}},
				Args: []Expr{
					Ref{Path: []string{"user"}},
					Ref{Path: []string{"order", "ID"}},
				},
			},
		},
		{
			name:  "nested call followed by reference",
			input: "a.b(c.d(e), f)",
			want: Call{
				Fun: Ref{Path: []string{"a", "b"}},
				Args: []Expr{
					Call{
						Fun:  Ref{Path: []string{"c", "d"}},
						Args: []Expr{Ref{Path: []string{"e"}}},
					},
					Ref{Path: []string{"f"}},
				},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "blank", input: "   "},
		{name: "unclosed call", input: "a.b(c"},
		{name: "trailing text", input: "a.b(c)d"},
		{name: "empty segment", input: "a..b"},
		{name: "leading dot", input: ".a"},
		{name: "empty callee", input: "(a)"},
		{name: "empty argument", input: "a.b(c,)"},
		{name: "quoted literal", input: `a.b("x")`},
		// commas inside a nested argument list are split like any other comma
		{name: "comma inside nested call", input: "a.b(c.d(e,f))"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			assert.Nil(t, got)
			assert.True(t, errors.Is(err, ErrMalformed), "expected ErrMalformed, got %v", err)
		})
	}
}

func TestExprString(t *testing.T) {
	expr, err := Parse("a.b(c.d(e), f)")
	require.NoError(t, err)
	assert.Equal(t, "a.b(c.d(e), f)", expr.String())
}
