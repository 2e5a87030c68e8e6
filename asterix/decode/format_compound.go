// decode/format_compound.go
//
// Compound decoding: a primary mask addressing secondary sub-items,
// grounded on the teacher's UAP entries for I048/120 and I048/130
// (declared Compound in the teacher's tables but never decoded past
// being skipped) — this is a full implementation per spec.md §4.3.
//
// The primary mask uses the exact same 7-bits-per-octet/FX-continuation
// layout as FSPEC, so decodeFSPEC is reused directly.
package decode

import "github.com/asterixgo/gobelix/asterix/schema"

func decodeCompound(cat uint8, itemID string, cp *schema.Compound, c *cursor) (*CompoundValue, error) {
	present, _, err := decodeFSPEC(c)
	if err != nil {
		return nil, err
	}

	maxIdx := 0
	for idx := range present {
		if idx > maxIdx {
			maxIdx = idx
		}
	}
	if maxIdx > len(cp.Secondaries) {
		return nil, &SchemaMismatchError{Category: cat, ItemID: itemID,
			Detail: "compound mask indexes beyond its secondaries"}
	}

	cv := &CompoundValue{Secondaries: make([]Decoded, len(cp.Secondaries))}
	for idx := 1; idx <= maxIdx; idx++ {
		if !present[idx] {
			continue
		}
		sub := cp.Secondaries[idx-1]
		if sub == nil {
			continue // mask-only bit with no payload format
		}
		d, err := decodeFormat(cat, itemID, sub, c)
		if err != nil {
			return cv, err
		}
		cv.Secondaries[idx-1] = d
	}
	return cv, nil
}
