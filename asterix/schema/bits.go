// schema/bits.go
package schema

import "fmt"

// Encoding identifies how a Bits field's raw value is interpreted.
type Encoding uint8

const (
	EncodingUnsigned Encoding = iota
	EncodingSigned
	EncodingSixBitASCII
	EncodingOctal
	EncodingHex
	EncodingASCIIString
)

func (e Encoding) String() string {
	switch e {
	case EncodingUnsigned:
		return "unsigned"
	case EncodingSigned:
		return "signed"
	case EncodingSixBitASCII:
		return "six-bit-ascii"
	case EncodingOctal:
		return "octal"
	case EncodingHex:
		return "hex"
	case EncodingASCIIString:
		return "ascii-string"
	default:
		return fmt.Sprintf("encoding(%d)", uint8(e))
	}
}

// Scale is a rational scale factor applied to the raw numeric value
// after sign/unsign conversion. A zero Denominator means "no scaling"
// (factor of 1).
type Scale struct {
	Numerator   float64
	Denominator float64
}

// Factor returns the scale as a single float64, defaulting to 1 when
// unset.
func (s Scale) Factor() float64 {
	if s.Denominator == 0 {
		if s.Numerator == 0 {
			return 1
		}
		return s.Numerator
	}
	return s.Numerator / s.Denominator
}

// PresenceCondition makes a Bits field conditional on a sibling Bits
// field (within the same Fixed) equaling a fixed value.
type PresenceCondition struct {
	SiblingShortName string
	Equals           int64
}

// Bits is a named sub-field within a Fixed item's bit range.
// FromBit/ToBit are 1-based, MSB-first, inclusive, relative to the
// enclosing Fixed's bit numbering (bit 1 is the MSB of the Fixed's
// first byte).
type Bits struct {
	ShortName string
	Name      string
	FromBit   int
	ToBit     int
	Encoding  Encoding
	Scale     Scale
	Unit      string
	Enum      map[int64]string
	Presence  *PresenceCondition
	// FX marks this Bits as the field-extension bit of a Variable part;
	// it is never decoded as user data (see spec.md §4.3 Variable).
	FX bool
}

// Width returns the number of bits this field spans.
func (b *Bits) Width() int {
	return b.ToBit - b.FromBit + 1
}
