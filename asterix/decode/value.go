// decode/value.go
package decode

import "github.com/asterixgo/gobelix/asterix/schema"

// Decoded is the tagged union of decode results, one concrete type per
// schema.Format variant plus the Scalar leaf, mirroring the schema's own
// Format tagged union (spec.md §9: "Model as a tagged union").
type Decoded interface {
	isDecoded()
}

// Scalar is one decoded schema.Bits leaf.
type Scalar struct {
	Bits      *schema.Bits
	Raw       uint64
	Signed    int64 // meaningful when Bits.Encoding == schema.EncodingSigned
	Scaled    float64
	Text      string // meaningful for six-bit-ascii/ascii-string/octal/hex
	EnumLabel string // set when Bits.Enum has an entry for the raw value
	// Warning carries a non-fatal EncodingWarning (spec.md §7): an enum
	// value with no matching label, or an unassigned six-bit-ASCII code.
	Warning string
}

func (*Scalar) isDecoded() {}

// Group is the ordered, FX-bit-stripped output of one Fixed block.
type Group struct {
	Scalars []*Scalar
}

func (*Group) isDecoded() {}

// Sequence is the output of a Variable (FX-chained Fixed parts) or a
// Repetitive (counted Fixed elements): an ordered list of Groups.
type Sequence struct {
	Elements []*Group
}

func (*Sequence) isDecoded() {}

// CompoundValue is the output of a Compound: one slot per schema mask
// bit, nil where the mask bit was clear.
type CompoundValue struct {
	Secondaries []Decoded
}

func (*CompoundValue) isDecoded() {}

// ExplicitValue is the output of an Explicit block: the raw bytes after
// the length octet, plus an inner decode when the schema declares one.
type ExplicitValue struct {
	Raw   []byte
	Inner Decoded // nil if no inner Format, or inner decode failed
}

func (*ExplicitValue) isDecoded() {}

// BDSValue is the output of a BDS dispatch: the raw 7-byte register is
// always preserved, even when the register is unrecognized (spec.md §9
// open question, resolved: "surface as warning, preserve raw bytes").
type BDSValue struct {
	Register byte
	Raw      []byte
	Decoded  *Group // nil when Register has no matching schema entry
	Known    bool
	// Warning carries a non-fatal EncodingWarning when Register is
	// unrecognized (spec.md §9 open question: "surface as warning,
	// preserve raw bytes").
	Warning string
}

func (*BDSValue) isDecoded() {}

// DataItem is one decoded item within a DataRecord.
type DataItem struct {
	ID          string
	Description *schema.DataItemDescription
	Value       Decoded
}

// DataRecord is one ASTERIX record: the UAP that selected its layout and
// its items in FRN order (spec.md §3: "item order within a record
// follows FRN order of the active UAP").
type DataRecord struct {
	Category uint8
	UAP      *schema.UAP
	Items    []*DataItem
	// Truncated is set when this record's walk stopped early because an
	// item's decode failed (the buffer ran out, or a Compound/Explicit
	// item hit a schema mismatch); the record carries whatever items
	// decoded so far
	// (spec.md §7: "the current record is marked incomplete").
	Truncated bool
}

// DataBlock is one CAT/LEN-framed block: zero or more records sharing a
// category.
type DataBlock struct {
	Category uint8
	Records  []*DataRecord
}

// AsterixData is the root of a decoded buffer: every DataBlock found, in
// byte order (spec.md §8: "records emerge in byte order from the input
// buffer").
type AsterixData struct {
	Blocks []*DataBlock
}
