package parser

import (
	"github.com/dave/dst"
	"github.com/sensorsdata/sensorsgen/internal/codegen"
	"github.com/sensorsdata/sensorsgen/parser/tags"
)

// buildSignUp links the anonymous id of a visitor to their login id:
//
//	sensorsanalytics.SharedInstance().TrackSignUp(auth.CurrentUser(), cookie)
func buildSignUp(s *synthesizer, fn *taggedFunction, tag *tags.Tag) ([]dst.Stmt, error) {
	loginID, err := s.resolveIdentity(fn, "loginId", tag.LoginID)
	if err != nil {
		return nil, err
	}

	anonymousID, err := literalOrReference(tag.AnonymousID)
	if err != nil {
		return nil, err
	}

	stmts := []dst.Stmt{
		s.sdk.InstanceCall(codegen.TrackSignUpMethod, loginID, anonymousID),
	}
	return s.flush(stmts, tag), nil
}
