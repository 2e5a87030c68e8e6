// render/text.go
//
// Multiline human-readable rendering, grounded on the teacher's
// message.go AsterixMessage.String() (FRN-sorted record walk, one
// field per line).
package render

import (
	"bytes"
	"fmt"

	"github.com/asterixgo/gobelix/asterix/decode"
)

func renderText(tree *decode.AsterixData, filter *Filter) []byte {
	buf := defaultPool.get(mediumBufferSize)
	defer defaultPool.put(buf)

	for _, block := range tree.Blocks {
		for ri, record := range block.Records {
			fmt.Fprintf(buf, "CAT/%03d record #%d", block.Category, ri+1)
			if record.Truncated {
				buf.WriteString(" [partial]")
			}
			buf.WriteString("\n")

			for _, item := range record.Items {
				if !filter.allowsItem(block.Category, item.ID) {
					continue
				}
				fmt.Fprintf(buf, "  CAT/%03d/%s", block.Category, item.ID)
				if item.Description != nil && item.Description.Name != "" {
					fmt.Fprintf(buf, " (%s)", item.Description.Name)
				}
				buf.WriteString("\n")

				var fields []field
				flatten("", item.Value, &fields)
				for _, f := range fields {
					if !filter.allowsField(block.Category, item.ID, f.Path) {
						continue
					}
					fmt.Fprintf(buf, "    %s = %s", f.Path, scalarText(f.Scalar))
					if f.Scalar.Warning != "" {
						fmt.Fprintf(buf, " [warn: %s]", f.Scalar.Warning)
					}
					buf.WriteString("\n")
				}
			}
		}
	}

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())
	return bytes.TrimRight(out, "\n")
}
