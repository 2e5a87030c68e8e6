// decode/format_bds.go
//
// BDS dispatch: generalized from the teacher's
// cat048/dataitems/v132/bds_decoders.go (three hardcoded
// DecodeBDS40/50/60 functions, each demanding exactly 7 bytes) into a
// map[byte]schema.Format lookup. A register frame is 8 octets: 7 bytes
// of Mode-S MB data followed by the one-byte register code, matching the
// teacher's combined BDS1/BDS2 nibble encoding in I048/250.
package decode

import (
	"fmt"

	"github.com/asterixgo/gobelix/asterix/schema"
)

const bdsFrameLen = 8

func decodeBDS(b *schema.BDS, c *cursor) (*BDSValue, error) {
	frame, err := c.take(bdsFrameLen)
	if err != nil {
		return nil, err
	}
	data := frame[:bdsFrameLen-1]
	reg := frame[bdsFrameLen-1]

	bv := &BDSValue{Register: reg, Raw: append([]byte(nil), data...)}

	fixed, ok := b.Registers[reg]
	if !ok {
		bv.Warning = fmt.Sprintf("bds: unrecognized register 0x%02X, raw bytes preserved", reg)
		return bv, nil
	}

	group, _, err := decodeFixed(fixed, newCursor(data))
	if err != nil {
		bv.Warning = fmt.Sprintf("bds: register 0x%02X: %v", reg, err)
		return bv, nil
	}
	bv.Decoded = group
	bv.Known = true
	return bv, nil
}
