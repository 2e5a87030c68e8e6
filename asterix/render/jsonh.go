// render/jsonh.go
//
// JSON rendering whose nesting mirrors the Compound/Repetitive structure
// of the decoded tree directly, instead of json.go's flattened dotted
// field paths (spec.md §4.4).
package render

import (
	"encoding/json"
	"fmt"

	"github.com/asterixgo/gobelix/asterix/decode"
)

type jsonhRecord struct {
	Cat     uint8                  `json:"cat"`
	Items   map[string]interface{} `json:"items"`
	Partial bool                   `json:"_partial,omitempty"`
}

func renderJSONH(tree *decode.AsterixData, filter *Filter) ([]byte, error) {
	records := make([]jsonhRecord, 0)
	for _, block := range tree.Blocks {
		for _, record := range block.Records {
			jr := jsonhRecord{Cat: block.Category, Items: make(map[string]interface{}), Partial: record.Truncated}
			for _, item := range record.Items {
				if !filter.allowsItem(block.Category, item.ID) {
					continue
				}
				jr.Items[item.ID] = nestValue(item.Value)
			}
			records = append(records, jr)
		}
	}
	return json.Marshal(records)
}

func nestValue(d decode.Decoded) interface{} {
	switch v := d.(type) {
	case *decode.Scalar:
		return jsonScalarValue(v)
	case *decode.Group:
		m := make(map[string]interface{}, len(v.Scalars))
		for i, s := range v.Scalars {
			name := s.Bits.ShortName
			if name == "" {
				name = s.Bits.Name
			}
			if name == "" {
				name = fmt.Sprintf("f%d", i)
			}
			m[name] = jsonScalarValue(s)
		}
		return m
	case *decode.Sequence:
		out := make([]interface{}, len(v.Elements))
		for i, g := range v.Elements {
			out[i] = nestValue(g)
		}
		return out
	case *decode.CompoundValue:
		m := make(map[string]interface{})
		for i, sub := range v.Secondaries {
			if sub == nil {
				continue
			}
			m[fmt.Sprintf("sec%d", i+1)] = nestValue(sub)
		}
		return m
	case *decode.ExplicitValue:
		if v.Inner != nil {
			return nestValue(v.Inner)
		}
		return map[string]interface{}{"raw": fmt.Sprintf("%X", v.Raw)}
	case *decode.BDSValue:
		m := map[string]interface{}{
			"register": fmt.Sprintf("%02X", v.Register),
			"known":    v.Known,
			"raw":      fmt.Sprintf("%X", v.Raw),
		}
		if v.Decoded != nil {
			m["data"] = nestValue(v.Decoded)
		}
		if v.Warning != "" {
			m["warning"] = v.Warning
		}
		return m
	default:
		return nil
	}
}
