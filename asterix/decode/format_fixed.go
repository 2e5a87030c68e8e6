// decode/format_fixed.go
//
// Fixed-format decoding: bit extraction generalized from the teacher's
// cat048/dataitems/v132 hand-rolled shift expressions (calculated_position.go,
// bds_decoders.go's sign-extension idiom) into a schema-driven loop over
// extractBits/extractSigned.
package decode

import "github.com/asterixgo/gobelix/asterix/schema"

// decodeFixed reads exactly f.LengthBytes from c and decodes every
// non-FX Bits child in declaration order, honoring presence conditions
// (spec.md §4.3: "decoded only when its guard equals the declared
// value; otherwise omitted from the Value tree"). It returns the decoded
// Group and the raw bytes consumed, since Variable needs the raw bytes
// to read its own FX continuation bit.
func decodeFixed(f *schema.Fixed, c *cursor) (*Group, []byte, error) {
	raw, err := c.take(f.LengthBytes)
	if err != nil {
		return nil, nil, err
	}

	group := &Group{}
	seen := make(map[string]int64, len(f.Bits))

	for _, b := range f.Bits {
		if b.FX {
			continue
		}
		if b.Presence != nil {
			guard, ok := seen[b.Presence.SiblingShortName]
			if !ok || guard != b.Presence.Equals {
				continue
			}
		}
		s := decodeScalar(b, raw)
		if b.ShortName != "" {
			seen[b.ShortName] = s.comparable()
		}
		group.Scalars = append(group.Scalars, s)
	}

	return group, raw, nil
}

// fxContinues reports whether a Fixed part's designated FX Bits (if any)
// is set in its raw bytes, driving Variable's chain continuation
// (spec.md §4.3 Variable).
func fxContinues(f *schema.Fixed, raw []byte) bool {
	for _, b := range f.Bits {
		if b.FX {
			return extractBits(raw, b.FromBit, b.ToBit) != 0
		}
	}
	return false
}
