package parser

import (
	"github.com/dave/dst"
	"github.com/sensorsdata/sensorsgen/internal/codegen"
	"github.com/sensorsdata/sensorsgen/parser/tags"
)

// buildItem sets or deletes an item each time fn is called. Unlike distinct
// ids, a blank item type or id is passed on as an empty string.
//
//	saItemProperties := map[string]any{}
//	sensorsanalytics.SharedInstance().ItemSet("book", bookID, saItemProperties)
func buildItem(s *synthesizer, fn *taggedFunction, tag *tags.Tag) ([]dst.Stmt, error) {
	stmts, err := properties(itemPropertiesVariable, fn, tag)
	if err != nil {
		return nil, err
	}

	itemType, err := literalOrReference(tag.ItemType)
	if err != nil {
		return nil, err
	}
	itemID, err := literalOrReference(tag.ItemID)
	if err != nil {
		return nil, err
	}

	method := codegen.ItemSetMethod
	if tag.ItemKind == tags.ItemDelete {
		method = codegen.ItemDeleteMethod
	}

	stmts = append(stmts, s.sdk.InstanceCall(method,
		itemType,
		itemID,
		dst.NewIdent(itemPropertiesVariable),
	))
	return s.flush(stmts, tag), nil
}
