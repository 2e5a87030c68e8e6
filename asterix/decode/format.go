// decode/format.go
package decode

import (
	"fmt"

	"github.com/asterixgo/gobelix/asterix/schema"
)

// decodeFormat dispatches on the schema.Format tagged union, the single
// match-per-decode-step called out in spec.md §9.
func decodeFormat(cat uint8, itemID string, f schema.Format, c *cursor) (Decoded, error) {
	switch v := f.(type) {
	case *schema.Fixed:
		group, _, err := decodeFixed(v, c)
		if err != nil {
			return nil, err
		}
		return group, nil
	case *schema.Variable:
		return decodeVariable(v, c)
	case *schema.Repetitive:
		return decodeRepetitive(v, c)
	case *schema.Compound:
		return decodeCompound(cat, itemID, v, c)
	case *schema.Explicit:
		return decodeExplicit(cat, itemID, v, c)
	case *schema.BDS:
		return decodeBDS(v, c)
	default:
		return nil, &SchemaMismatchError{Category: cat, ItemID: itemID, Detail: fmt.Sprintf("unknown format type %T", f)}
	}
}
