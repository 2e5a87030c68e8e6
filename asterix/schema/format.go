// schema/format.go
package schema

// Format is the tagged union of the five ASTERIX item-format kinds plus
// the Mode-S BDS dispatch table, as laid out in spec.md's DATA MODEL. Go
// has no sum type, so each variant is a distinct type implementing this
// marker interface and the decoder dispatches on a type switch.
type Format interface {
	isFormat()
}

// Fixed is a constant-length item decoded as a flat list of Bits.
type Fixed struct {
	LengthBytes int
	Bits        []*Bits
}

func (*Fixed) isFormat() {}

// Variable is a chain of Fixed parts, each continuing to the next via its
// own low-order FX bit.
type Variable struct {
	Parts []*Fixed
}

func (*Variable) isFormat() {}

// Repetitive is a counted sequence of identical Fixed elements.
type Repetitive struct {
	CounterBytes int
	Element      *Fixed
}

func (*Repetitive) isFormat() {}

// Compound is a primary bitmask (itself an FX-chained FSPEC-style octet
// sequence) selecting which of its secondaries are present, indexed by
// mask bit.
type Compound struct {
	Secondaries []Format
}

func (*Compound) isFormat() {}

// Explicit is a length-prefixed opaque block, optionally interpreted by
// an inner Format once its length is known.
type Explicit struct {
	Inner Format
}

func (*Explicit) isFormat() {}

// BDS is the Mode-S 64-bit register dispatch table, keyed by register
// byte (the last octet of an 8-octet BDS frame; the first 7 octets are
// the register's MB data).
type BDS struct {
	Registers map[byte]*Fixed
}

func (*BDS) isFormat() {}
