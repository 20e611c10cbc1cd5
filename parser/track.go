package parser

import (
	"github.com/dave/dst"
	"github.com/sensorsdata/sensorsgen/internal/codegen"
	"github.com/sensorsdata/sensorsgen/parser/tags"
)

// buildTrack reports an event each time fn is called:
//
//	saTrackProperties := map[string]any{}
//	saTrackProperties["amount"] = amount
//	sensorsanalytics.SharedInstance().Track(distinctID, false, "Buy", saTrackProperties)
//
// A blank event name defaults to the function name.
func buildTrack(s *synthesizer, fn *taggedFunction, tag *tags.Tag) ([]dst.Stmt, error) {
	stmts, err := properties(trackPropertiesVariable, fn, tag)
	if err != nil {
		return nil, err
	}

	distinctID, err := s.resolveIdentity(fn, "distinctId", tag.DistinctID)
	if err != nil {
		return nil, err
	}

	eventName := tag.EventName
	if isBlank(eventName) {
		eventName = fn.name()
	}

	stmts = append(stmts, s.sdk.InstanceCall(codegen.TrackMethod,
		distinctID,
		codegen.BoolLit(tag.IsLoginID),
		codegen.StringLit(eventName),
		dst.NewIdent(trackPropertiesVariable),
	))
	return s.flush(stmts, tag), nil
}

// flush appends a flush of the client when the tag asks for it.
func (s *synthesizer) flush(stmts []dst.Stmt, tag *tags.Tag) []dst.Stmt {
	if tag.Flush {
		stmts = append(stmts, s.sdk.Flush())
	}
	return stmts
}
