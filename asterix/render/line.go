// render/line.go
//
// grep-friendly single-tuple-per-line rendering (spec.md §4.4).
package render

import (
	"bytes"
	"fmt"

	"github.com/asterixgo/gobelix/asterix/decode"
)

func renderLine(tree *decode.AsterixData, filter *Filter) []byte {
	buf := defaultPool.get(mediumBufferSize)
	defer defaultPool.put(buf)

	for _, block := range tree.Blocks {
		for _, record := range block.Records {
			for _, item := range record.Items {
				if !filter.allowsItem(block.Category, item.ID) {
					continue
				}
				var fields []field
				flatten("", item.Value, &fields)
				for _, f := range fields {
					if !filter.allowsField(block.Category, item.ID, f.Path) {
						continue
					}
					fmt.Fprintf(buf, "CAT/%03d/%s/%s = %s\n", block.Category, item.ID, f.Path, scalarText(f.Scalar))
				}
			}
		}
	}

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())
	return bytes.TrimRight(out, "\n")
}
