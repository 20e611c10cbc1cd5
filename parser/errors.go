package parser

import (
	"fmt"
)

// TooManyElementsError is returned when more functions carry a directive than
// a single run allows, e.g. two init functions.
type TooManyElementsError struct {
	Directive string
	Count     int
}

func (e *TooManyElementsError) Error() string {
	return fmt.Sprintf("only one function may carry the %s directive, found %d", e.Directive, e.Count)
}

// UnqualifiedMethodError is returned when the login id supplier does not have
// the shape generated code needs to call it.
type UnqualifiedMethodError struct {
	Function   string
	Constraint string
}

func (e *UnqualifiedMethodError) Error() string {
	return fmt.Sprintf("login id supplier %s must %s", e.Function, e.Constraint)
}

// MissingIdentityError is returned when a directive leaves its distinct id or
// login id blank but no login id supplier was declared.
type MissingIdentityError struct {
	Position string
	Function string
	Field    string
}

func (e *MissingIdentityError) Error() string {
	return fmt.Sprintf("%s: %s leaves %s blank, but no function carries the loginid directive", e.Position, e.Function, e.Field)
}

// DirectiveError is returned for directives that can not be understood.
type DirectiveError struct {
	Position string
	Function string
	Err      error
}

func (e *DirectiveError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Position, e.Function, e.Err)
}

func (e *DirectiveError) Unwrap() error {
	return e.Err
}

// Cause lets github.com/pkg/errors walk through the error.
func (e *DirectiveError) Cause() error {
	return e.Err
}
