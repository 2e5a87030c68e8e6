// decode/fspec.go
//
// FSPEC accumulation, generalized from the teacher's asterix/fspec.go
// SetFRN/GetFRN bit arithmetic (fixed 7-bits-per-octet stride, FX in the
// low-order bit) from a single hardcoded category onto any UAP's FRN
// numbering.
package decode

// maxFSPECOctets caps FX-chain length against malformed input, matching
// the teacher's FSPEC.Decode safety check ("no valid ASTERIX message
// needs more than 8 FSPEC bytes").
const maxFSPECOctets = 8

// decodeFSPEC reads FSPEC octets from c until an octet's FX bit (bit 1,
// the low-order bit) is clear, returning the set of present FRNs
// (spec.md §4.2 step 2).
func decodeFSPEC(c *cursor) (present map[int]bool, octets int, err error) {
	present = make(map[int]bool)
	for {
		b, err := c.take(1)
		if err != nil {
			return present, octets, err
		}
		octets++
		base := (octets - 1) * 7
		for windowBit := 1; windowBit <= 7; windowBit++ {
			mask := byte(0x80 >> uint(windowBit-1))
			if b[0]&mask != 0 {
				present[base+windowBit] = true
			}
		}
		fx := b[0]&0x01 != 0
		if !fx {
			return present, octets, nil
		}
		if octets >= maxFSPECOctets {
			return present, octets, &TruncationError{Position: c.pos, Wanted: 1, Available: c.remaining()}
		}
	}
}
