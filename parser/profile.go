package parser

import (
	"github.com/dave/dst"
	"github.com/sensorsdata/sensorsgen/internal/codegen"
	"github.com/sensorsdata/sensorsgen/parser/tags"
)

var profileMethods = map[tags.ProfileType]string{
	tags.ProfileSet:       codegen.ProfileSetMethod,
	tags.ProfileSetOnce:   codegen.ProfileSetOnceMethod,
	tags.ProfileAppend:    codegen.ProfileAppendMethod,
	tags.ProfileIncrement: codegen.ProfileIncrementMethod,
}

// buildProfile updates the user profile each time fn is called:
//
//	saProfileProperties := map[string]any{}
//	sensorsanalytics.SharedInstance().ProfileSet(distinctID, true, saProfileProperties)
func buildProfile(s *synthesizer, fn *taggedFunction, tag *tags.Tag) ([]dst.Stmt, error) {
	stmts, err := properties(profilePropertiesVariable, fn, tag)
	if err != nil {
		return nil, err
	}

	distinctID, err := s.resolveIdentity(fn, "distinctId", tag.DistinctID)
	if err != nil {
		return nil, err
	}

	stmts = append(stmts, s.sdk.InstanceCall(profileMethods[tag.ProfileType],
		distinctID,
		codegen.BoolLit(tag.IsLoginID),
		dst.NewIdent(profilePropertiesVariable),
	))
	return s.flush(stmts, tag), nil
}
