// Package refexpr parses the reference expressions that directive attributes
// use to point at values in scope, such as "Utils.GetUserID(user)".
//
// The grammar is intentionally small:
//
//	Expr    := Ident ('.' Ident)* ('(' ArgList? ')')?
//	ArgList := Expr (',' Expr)*
//
// Arguments are split on every comma between the first '(' and the last ')'.
// There is no support for quoted literals or commas nested inside an argument's
// own parentheses; such input is rejected as malformed or split in an
// unexpected way.
package refexpr

import (
	"go/token"
	"strings"

	"github.com/pkg/errors"
)

// ErrMalformed is the cause of every error returned by Parse.
var ErrMalformed = errors.New("malformed reference expression")

// Expr is a parsed reference expression, either a Ref or a Call.
type Expr interface {
	String() string
	isExpr()
}

// Ref is a dotted member reference such as "user.Profile.ID".
type Ref struct {
	Path []string
}

// Call is an invocation of a dotted reference.
type Call struct {
	Fun  Ref
	Args []Expr
}

func (Ref) isExpr()  {}
func (Call) isExpr() {}

func (r Ref) String() string {
	return strings.Join(r.Path, ".")
}

func (c Call) String() string {
	args := make([]string, len(c.Args))
	for i, arg := range c.Args {
		args[i] = arg.String()
	}
	return c.Fun.String() + "(" + strings.Join(args, ", ") + ")"
}

// Parse parses s, which must not carry the leading '@' marker.
func Parse(s string) (Expr, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, malformed(s, "empty expression")
	}

	open := strings.IndexByte(s, '(')
	if open < 0 {
		ref, err := parseRef(s)
		if err != nil {
			return nil, err
		}
		return ref, nil
	}

	end := strings.LastIndexByte(s, ')')
	if end < open {
		return nil, malformed(s, "missing closing parenthesis")
	}
	if rest := strings.TrimSpace(s[end+1:]); rest != "" {
		return nil, malformed(s, "unexpected text after closing parenthesis")
	}

	fun, err := parseRef(s[:open])
	if err != nil {
		return nil, err
	}

	call := Call{Fun: fun}
	argText := s[open+1 : end]
	if strings.TrimSpace(argText) == "" {
		return call, nil
	}

	for _, arg := range strings.Split(argText, ",") {
		arg = strings.TrimSpace(arg)
		var parsed Expr
		if strings.Contains(arg, "(") {
			parsed, err = Parse(arg)
		} else {
			parsed, err = parseRef(arg)
		}
		if err != nil {
			return nil, err
		}
		call.Args = append(call.Args, parsed)
	}

	return call, nil
}

func parseRef(s string) (Ref, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Ref{}, malformed(s, "empty reference")
	}

	segments := strings.Split(s, ".")
	path := make([]string, 0, len(segments))
	for _, segment := range segments {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			return Ref{}, malformed(s, "empty path segment")
		}
		if !token.IsIdentifier(segment) {
			return Ref{}, malformed(s, "invalid identifier "+segment)
		}
		path = append(path, segment)
	}
	return Ref{Path: path}, nil
}

func malformed(s, reason string) error {
	return errors.Wrapf(ErrMalformed, "%q: %s", s, reason)
}
