// decode/format_explicit.go
//
// Explicit decoding: a length-prefixed opaque block, grounded on the
// general "read one length byte, consume the rest" shape already used by
// the teacher's asterix/fspec.go and datablock.go header parsing.
package decode

import "github.com/asterixgo/gobelix/asterix/schema"

func decodeExplicit(cat uint8, itemID string, e *schema.Explicit, c *cursor) (*ExplicitValue, error) {
	lenByte, err := c.take(1)
	if err != nil {
		return nil, err
	}
	total := int(lenByte[0])
	if total < 1 {
		return nil, &SchemaMismatchError{Category: cat, ItemID: itemID, Detail: "Explicit length byte is zero"}
	}
	body, err := c.take(total - 1)
	if err != nil {
		return nil, err
	}

	ev := &ExplicitValue{Raw: body}
	if e.Inner != nil {
		inner, err := decodeFormat(cat, itemID, e.Inner, newCursor(body))
		if err == nil {
			ev.Inner = inner
		}
		// A failed inner decode still yields the raw bytes; Explicit's
		// contract is the length framing, not the inner schema.
	}
	return ev, nil
}
