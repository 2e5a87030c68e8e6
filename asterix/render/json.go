// render/json.go
//
// Compact JSON rendering: array of records, each {cat, items: {ID:
// {field: value, ...}}} (spec.md §4.4). The teacher ships no JSON
// library and no full-source pack repo grounds a third-party encoder for
// this, so stdlib encoding/json is the ecosystem's own tool here.
package render

import (
	"encoding/json"
	"fmt"

	"github.com/asterixgo/gobelix/asterix/decode"
)

type jsonRecord struct {
	Cat      uint8                             `json:"cat"`
	Items    map[string]map[string]interface{} `json:"items"`
	Partial  bool                              `json:"_partial,omitempty"`
	Warnings []string                          `json:"_warnings,omitempty"`
}

func renderJSON(tree *decode.AsterixData, filter *Filter) ([]byte, error) {
	records := make([]jsonRecord, 0)
	for _, block := range tree.Blocks {
		for _, record := range block.Records {
			jr := jsonRecord{Cat: block.Category, Items: make(map[string]map[string]interface{}), Partial: record.Truncated}
			for _, item := range record.Items {
				if !filter.allowsItem(block.Category, item.ID) {
					continue
				}
				var fields []field
				flatten("", item.Value, &fields)
				fieldMap := make(map[string]interface{})
				for _, f := range fields {
					if !filter.allowsField(block.Category, item.ID, f.Path) {
						continue
					}
					fieldMap[f.Path] = jsonScalarValue(f.Scalar)
					if f.Scalar.Warning != "" {
						jr.Warnings = append(jr.Warnings, fmt.Sprintf("%s.%s: %s", item.ID, f.Path, f.Scalar.Warning))
					}
				}
				jr.Items[item.ID] = fieldMap
			}
			records = append(records, jr)
		}
	}
	return json.Marshal(records)
}

func jsonScalarValue(s *decode.Scalar) interface{} {
	b := s.Bits
	out := map[string]interface{}{}
	switch {
	case b.Enum != nil:
		out["value"] = rawOf(s)
		if s.EnumLabel != "" {
			out["label"] = s.EnumLabel
		}
	case s.Text != "":
		out["value"] = s.Text
	default:
		out["value"] = s.Scaled
		if b.Unit != "" {
			out["unit"] = b.Unit
		}
	}
	return out
}
