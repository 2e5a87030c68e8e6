// decode/encode_test_helper.go
//
// A narrow, test-only inverse encoder supporting the round-trip testable
// property (parse -> re-serialize -> re-parse identically at the Value
// level). Adapted from the teacher's asterix/encoder.go (FSPEC-from-FRNs,
// FRN-ordered item emission) and encoding/encoder.go (the dedicated
// encoder package split out from the core type), demoted from a public
// core feature to test support: encoding ASTERIX back to wire bytes is
// out of this package's scope, but the corpus's own encoder is exactly
// the shape needed to validate decode correctness by round-trip.
package decode

import (
	"bytes"
	"fmt"

	"github.com/asterixgo/gobelix/asterix/schema"
)

// encodeBlock re-serializes a decoded DataBlock back into a CAT/LEN-framed
// byte slice, the inverse of decodeBlock.
func encodeBlock(cat *schema.Category, block *DataBlock) ([]byte, error) {
	body := new(bytes.Buffer)
	for i, record := range block.Records {
		raw, err := encodeRecord(cat, record)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		body.Write(raw)
	}

	length := 3 + body.Len()
	out := make([]byte, 0, length)
	out = append(out, block.Category, byte(length>>8), byte(length))
	return append(out, body.Bytes()...), nil
}

func encodeRecord(cat *schema.Category, record *DataRecord) ([]byte, error) {
	byID := make(map[string]*DataItem, len(record.Items))
	for _, item := range record.Items {
		byID[item.ID] = item
	}

	present := make(map[int]bool, len(record.Items))
	for _, u := range sortedByFRN(record.UAP.Items) {
		if _, ok := byID[u.ItemID]; ok {
			present[u.FRN] = true
		}
	}

	body := new(bytes.Buffer)
	for _, u := range sortedByFRN(record.UAP.Items) {
		item, ok := byID[u.ItemID]
		if !ok {
			continue
		}
		desc, ok := cat.Item(u.ItemID)
		if !ok {
			return nil, fmt.Errorf("unresolved item %s", u.ItemID)
		}
		raw, err := encodeValue(desc.Format, item.Value)
		if err != nil {
			return nil, fmt.Errorf("item %s: %w", u.ItemID, err)
		}
		body.Write(raw)
	}

	return append(encodeFSPEC(present), body.Bytes()...), nil
}

// encodeFSPEC is the inverse of decodeFSPEC: the minimal FX-chained octet
// sequence addressing every FRN in present.
func encodeFSPEC(present map[int]bool) []byte {
	maxFRN := 0
	for frn := range present {
		if frn > maxFRN {
			maxFRN = frn
		}
	}
	octets := (maxFRN + 6) / 7
	if octets == 0 {
		octets = 1
	}

	out := make([]byte, octets)
	for frn := range present {
		octetIdx := (frn - 1) / 7
		windowBit := frn - octetIdx*7
		out[octetIdx] |= byte(0x80 >> uint(windowBit-1))
	}
	for i := 0; i < octets-1; i++ {
		out[i] |= 0x01
	}
	return out
}

// encodeValue dispatches on the schema.Format tagged union, the inverse of
// decodeFormat, for the subset of formats the round-trip tests exercise.
func encodeValue(f schema.Format, d Decoded) ([]byte, error) {
	switch v := f.(type) {
	case *schema.Fixed:
		g, ok := d.(*Group)
		if !ok {
			return nil, fmt.Errorf("expected Group for Fixed, got %T", d)
		}
		return encodeFixed(v, g)
	case *schema.Variable:
		seq, ok := d.(*Sequence)
		if !ok {
			return nil, fmt.Errorf("expected Sequence for Variable, got %T", d)
		}
		return encodeVariable(v, seq)
	case *schema.Repetitive:
		seq, ok := d.(*Sequence)
		if !ok {
			return nil, fmt.Errorf("expected Sequence for Repetitive, got %T", d)
		}
		return encodeRepetitive(v, seq)
	case *schema.Compound:
		cv, ok := d.(*CompoundValue)
		if !ok {
			return nil, fmt.Errorf("expected CompoundValue for Compound, got %T", d)
		}
		return encodeCompound(v, cv)
	default:
		return nil, fmt.Errorf("round-trip encoding of %T is not supported by this test helper", f)
	}
}

// encodeFixed is the inverse of decodeFixed: it walks f.Bits in the same
// order decodeFixed read them (skipping FX bits and unmet presence
// conditions) and writes each already-decoded Scalar back into a
// zeroed f.LengthBytes buffer.
func encodeFixed(f *schema.Fixed, g *Group) ([]byte, error) {
	raw := make([]byte, f.LengthBytes)
	seen := make(map[string]int64, len(f.Bits))
	idx := 0

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
		if idx >= len(g.Scalars) {
			return nil, fmt.Errorf("Group has fewer scalars than Fixed declares non-FX bits for")
		}
		s := g.Scalars[idx]
		idx++
		if b.ShortName != "" {
			seen[b.ShortName] = s.comparable()
		}
		encodeScalar(b, s, raw)
	}
	return raw, nil
}

func encodeScalar(b *schema.Bits, s *Scalar, raw []byte) {
	switch b.Encoding {
	case schema.EncodingSigned:
		width := b.Width()
		v := uint64(s.Signed) & (1<<uint(width) - 1)
		setBits(raw, b.FromBit, b.ToBit, v)
	case schema.EncodingASCIIString:
		for i := 0; i < len(s.Text); i++ {
			bit := b.FromBit + i*8
			setBits(raw, bit, bit+7, uint64(s.Text[i]))
		}
	default: // unsigned, six-bit-ascii, octal, hex all preserve s.Raw verbatim
		setBits(raw, b.FromBit, b.ToBit, s.Raw)
	}
}

// setBits is the inverse of extractBits: it writes v's low `to-from+1` bits
// into a 1-based, MSB-first, inclusive bit range of data.
func setBits(data []byte, from, to int, v uint64) {
	width := to - from + 1
	for i := 0; i < width; i++ {
		bit := from + i
		byteIdx := (bit - 1) / 8
		mask := byte(0x80 >> uint((bit-1)%8))
		shift := uint(width - 1 - i)
		if (v>>shift)&1 != 0 {
			data[byteIdx] |= mask
		} else {
			data[byteIdx] &^= mask
		}
	}
}

// encodeVariable is the inverse of decodeVariable: each element's FX bit is
// set unless it is the last element the Sequence actually holds.
func encodeVariable(v *schema.Variable, seq *Sequence) ([]byte, error) {
	var out []byte
	for i, g := range seq.Elements {
		if i >= len(v.Parts) {
			return nil, fmt.Errorf("Sequence has more elements than Variable declares parts")
		}
		raw, err := encodeFixed(v.Parts[i], g)
		if err != nil {
			return nil, err
		}
		continues := i < len(seq.Elements)-1
		for _, b := range v.Parts[i].Bits {
			if b.FX {
				fx := uint64(0)
				if continues {
					fx = 1
				}
				setBits(raw, b.FromBit, b.ToBit, fx)
			}
		}
		out = append(out, raw...)
	}
	return out, nil
}

// encodeRepetitive is the inverse of decodeRepetitive: the counter is the
// Sequence's own element count, which may be smaller than whatever count
// the original wire bytes declared if the source record was truncated
// mid-sequence.
func encodeRepetitive(r *schema.Repetitive, seq *Sequence) ([]byte, error) {
	buf := make([]byte, r.CounterBytes)
	setBits(buf, 1, r.CounterBytes*8, uint64(len(seq.Elements)))
	for _, g := range seq.Elements {
		raw, err := encodeFixed(r.Element, g)
		if err != nil {
			return nil, err
		}
		buf = append(buf, raw...)
	}
	return buf, nil
}

// encodeCompound is the inverse of decodeCompound: the primary mask is
// derived from which Secondaries slots are non-nil.
func encodeCompound(cp *schema.Compound, cv *CompoundValue) ([]byte, error) {
	present := make(map[int]bool, len(cv.Secondaries))
	for i, sub := range cv.Secondaries {
		if sub != nil {
			present[i+1] = true
		}
	}

	out := encodeFSPEC(present)
	for i, sub := range cv.Secondaries {
		if sub == nil {
			continue
		}
		raw, err := encodeValue(cp.Secondaries[i], sub)
		if err != nil {
			return nil, err
		}
		out = append(out, raw...)
	}
	return out, nil
}
