// decode/scalar.go
package decode

import (
	"fmt"
	"strings"

	"github.com/asterixgo/gobelix/asterix/schema"
)

// sixBitIA5 maps the 6-bit ASTERIX IA-5 subset to ASCII, per spec.md
// §4.3 ("space=0x20, A=0x01..Z=0x1A, 0-9=0x30..0x39").
func sixBitIA5(code uint64) (rune, bool) {
	switch {
	case code == 0x20:
		return ' ', true
	case code >= 0x01 && code <= 0x1A:
		return rune('A' + code - 0x01), true
	case code >= 0x30 && code <= 0x39:
		return rune('0' + code - 0x30), true
	default:
		return '?', false
	}
}

func decodeSixBitASCII(raw []byte, from, to int) (string, string) {
	var sb strings.Builder
	var warning string
	for bit := from; bit+5 <= to; bit += 6 {
		code := extractBits(raw, bit, bit+5)
		ch, ok := sixBitIA5(code)
		sb.WriteRune(ch)
		if !ok && warning == "" {
			warning = fmt.Sprintf("six-bit-ascii: unassigned code 0x%02X", code)
		}
	}
	return sb.String(), warning
}

func decodeASCIIString(raw []byte, from, to int) string {
	var sb strings.Builder
	for bit := from; bit+7 <= to; bit += 8 {
		sb.WriteByte(byte(extractBits(raw, bit, bit+7)))
	}
	return sb.String()
}

// decodeScalar converts one schema.Bits leaf against a Fixed's raw
// bytes. Presence conditions are evaluated by the caller (decodeFixed)
// before this is called.
func decodeScalar(b *schema.Bits, raw []byte) *Scalar {
	s := &Scalar{Bits: b}

	switch b.Encoding {
	case schema.EncodingSigned:
		s.Signed = extractSigned(raw, b.FromBit, b.ToBit)
		s.Scaled = float64(s.Signed) * b.Scale.Factor()
	case schema.EncodingSixBitASCII:
		s.Raw = extractBits(raw, b.FromBit, b.ToBit)
		s.Text, s.Warning = decodeSixBitASCII(raw, b.FromBit, b.ToBit)
	case schema.EncodingOctal:
		s.Raw = extractBits(raw, b.FromBit, b.ToBit)
		s.Text = fmt.Sprintf("%o", s.Raw)
	case schema.EncodingHex:
		s.Raw = extractBits(raw, b.FromBit, b.ToBit)
		s.Text = fmt.Sprintf("%X", s.Raw)
	case schema.EncodingASCIIString:
		s.Text = decodeASCIIString(raw, b.FromBit, b.ToBit)
	default: // schema.EncodingUnsigned
		s.Raw = extractBits(raw, b.FromBit, b.ToBit)
		s.Scaled = float64(s.Raw) * b.Scale.Factor()
	}

	if len(b.Enum) > 0 {
		key := int64(s.Raw)
		if b.Encoding == schema.EncodingSigned {
			key = s.Signed
		}
		if label, ok := b.Enum[key]; ok {
			s.EnumLabel = label
		} else if s.Warning == "" {
			s.Warning = fmt.Sprintf("enum: no label for value %d", key)
		}
	}

	return s
}

// comparable returns the value used to evaluate presence conditions and
// enum lookups against a decoded Scalar.
func (s *Scalar) comparable() int64 {
	if s.Bits.Encoding == schema.EncodingSigned {
		return s.Signed
	}
	return int64(s.Raw)
}
