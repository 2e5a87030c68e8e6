// decode/walker_test.go
//
// End-to-end scenarios against literal byte vectors, per spec.md §9's
// warning to test bit/FX semantics with real bytes rather than numeric
// abstractions.
package decode

import (
	"bytes"
	"errors"
	"reflect"
	"testing"

	"github.com/asterixgo/gobelix/asterix/schema"
)

func bits(short string, from, to int, enc schema.Encoding) *schema.Bits {
	return &schema.Bits{ShortName: short, FromBit: from, ToBit: to, Encoding: enc}
}

func fixedItem(id string, length int, b ...*schema.Bits) *schema.DataItemDescription {
	return &schema.DataItemDescription{ID: id, Format: &schema.Fixed{LengthBytes: length, Bits: b}}
}

// cat048Fixture builds a minimal eight-item CAT048 profile: SACSIC,
// target report type, polar position, Mode-3/A, flight level, a raw hex
// byte, time of day, and an eight-character six-bit-ASCII identification.
func cat048Fixture(t *testing.T) *schema.Definition {
	t.Helper()
	cat := schema.NewCategory(48, "1.21", "Monoradar Target Reports")
	cat.AddItem(fixedItem("010", 2, bits("SACSIC", 1, 16, schema.EncodingUnsigned)))
	cat.AddItem(fixedItem("020", 1, bits("TYP", 1, 8, schema.EncodingUnsigned)))
	cat.AddItem(fixedItem("040", 4, bits("RHO", 1, 16, schema.EncodingUnsigned), bits("THETA", 17, 32, schema.EncodingUnsigned)))
	cat.AddItem(fixedItem("070", 2, bits("MODE3A", 1, 16, schema.EncodingOctal)))
	cat.AddItem(fixedItem("090", 2, bits("FL", 1, 16, schema.EncodingSigned)))
	cat.AddItem(fixedItem("130", 1, bits("RAW", 1, 8, schema.EncodingHex)))
	cat.AddItem(fixedItem("140", 3, bits("TOD", 1, 24, schema.EncodingUnsigned)))
	cat.AddItem(fixedItem("170", 6, bits("IDENT", 1, 48, schema.EncodingSixBitASCII)))

	cat.AddUAP(&schema.UAP{Name: "default", Items: []schema.UAPItem{
		{FRN: 1, ItemID: "010"},
		{FRN: 2, ItemID: "020"},
		{FRN: 3, ItemID: "040"},
		{FRN: 4, ItemID: "070"},
		{FRN: 5, ItemID: "090"},
		{FRN: 6, ItemID: "130"},
		{FRN: 7, ItemID: "140"},
		{FRN: 8, ItemID: "170"},
	}})

	def := schema.NewDefinition()
	if err := def.AddCategory(cat); err != nil {
		t.Fatalf("AddCategory: %v", err)
	}
	return def
}

// TestDecodeCat048Minimal is spec.md §8 S1: a single CAT048 record with
// all eight items present in one FSPEC continuation, exercising every
// numeric encoding plus six-bit-ASCII in one pass.
func TestDecodeCat048Minimal(t *testing.T) {
	def := cat048Fixture(t)

	data := []byte{
		0x30, 0x00, 0x1A, // CAT 48, length 26
		0xFF, 0x80, // FSPEC: FRN 1-8 present
		0x00, 0x01, // 010 SACSIC
		0x05, // 020 TYP
		0x00, 0xC8, 0x10, 0x00, // 040 RHO/THETA
		0x00, 0xA3, // 070 MODE3A
		0xFF, 0xF4, // 090 FL (signed -12)
		0xAB,                               // 130 RAW
		0x00, 0x10, 0x00,                   // 140 TOD
		0x04, 0x20, 0xC4, 0xC7, 0x2C, 0xF4, // 170 IDENT "ABCD1234"
	}

	tree, n, status, err := Decode(def, data, Options{})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if n != len(data) {
		t.Errorf("consumed %d bytes, want %d", n, len(data))
	}
	if status.Kind != StatusOK {
		t.Fatalf("status = %s, want ok (errors: %v)", status.Kind, status.Errors)
	}
	if len(tree.Blocks) != 1 || len(tree.Blocks[0].Records) != 1 {
		t.Fatalf("unexpected tree shape: %+v", tree)
	}

	record := tree.Blocks[0].Records[0]
	wantIDs := []string{"010", "020", "040", "070", "090", "130", "140", "170"}
	if len(record.Items) != len(wantIDs) {
		t.Fatalf("got %d items, want %d", len(record.Items), len(wantIDs))
	}
	for i, id := range wantIDs {
		if record.Items[i].ID != id {
			t.Errorf("item %d = %s, want %s (FRN order must match FSPEC bit order)", i, record.Items[i].ID, id)
		}
	}

	fl := record.Items[4].Value.(*Group).Scalars[0]
	if fl.Signed != -12 {
		t.Errorf("FL signed = %d, want -12", fl.Signed)
	}

	raw := record.Items[5].Value.(*Group).Scalars[0]
	if raw.Text != "AB" {
		t.Errorf("RAW hex text = %q, want AB", raw.Text)
	}

	ident := record.Items[7].Value.(*Group).Scalars[0]
	if ident.Text != "ABCD1234" {
		t.Errorf("IDENT = %q, want ABCD1234", ident.Text)
	}
}

// TestRoundTripCat048Minimal is the round-trip half of spec.md §8 S1:
// re-encoding a clean decode must reproduce the original wire bytes
// exactly, and re-decoding those bytes must reproduce the same Value
// tree.
func TestRoundTripCat048Minimal(t *testing.T) {
	def := cat048Fixture(t)
	cat, ok := def.Category(48)
	if !ok {
		t.Fatal("category 48 not loaded")
	}

	data := []byte{
		0x30, 0x00, 0x1A, // CAT 48, length 26
		0xFF, 0x80, // FSPEC: FRN 1-8 present
		0x00, 0x01, // 010 SACSIC
		0x05, // 020 TYP
		0x00, 0xC8, 0x10, 0x00, // 040 RHO/THETA
		0x00, 0xA3, // 070 MODE3A
		0xFF, 0xF4, // 090 FL (signed -12)
		0xAB,                               // 130 RAW
		0x00, 0x10, 0x00,                   // 140 TOD
		0x04, 0x20, 0xC4, 0xC7, 0x2C, 0xF4, // 170 IDENT "ABCD1234"
	}

	tree, _, status, err := Decode(def, data, Options{})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if status.Kind != StatusOK {
		t.Fatalf("status = %s, want ok", status.Kind)
	}

	reencoded, err := encodeBlock(cat, tree.Blocks[0])
	if err != nil {
		t.Fatalf("encodeBlock: %v", err)
	}
	if !bytes.Equal(reencoded, data) {
		t.Fatalf("re-encoded bytes =\n% X\nwant\n% X", reencoded, data)
	}

	again, n, status2, err := Decode(def, reencoded, Options{})
	if err != nil {
		t.Fatalf("re-Decode: %v", err)
	}
	if status2.Kind != StatusOK || n != len(reencoded) {
		t.Fatalf("re-Decode status = %s, consumed %d/%d", status2.Kind, n, len(reencoded))
	}
	if !reflect.DeepEqual(again.Blocks[0].Records[0].Items, tree.Blocks[0].Records[0].Items) {
		t.Errorf("re-decoded items differ from the original decode")
	}
}

// cat062Fixture builds a two-item profile: a fixed SAC/SIC and a
// Repetitive list of two-byte track numbers.
func cat062Fixture(t *testing.T) *schema.Definition {
	t.Helper()
	cat := schema.NewCategory(62, "1.18", "System Track Data")
	cat.AddItem(fixedItem("010", 2, bits("SACSIC", 1, 16, schema.EncodingUnsigned)))
	cat.AddItem(&schema.DataItemDescription{
		ID: "380",
		Format: &schema.Repetitive{
			CounterBytes: 1,
			Element:      &schema.Fixed{LengthBytes: 2, Bits: []*schema.Bits{bits("TRACK", 1, 16, schema.EncodingUnsigned)}},
		},
	})
	cat.AddUAP(&schema.UAP{Name: "default", Items: []schema.UAPItem{
		{FRN: 1, ItemID: "010"},
		{FRN: 2, ItemID: "380"},
	}})

	def := schema.NewDefinition()
	if err := def.AddCategory(cat); err != nil {
		t.Fatalf("AddCategory: %v", err)
	}
	return def
}

// TestDecodeTruncatedRepetitive is spec.md §8 S2: a Repetitive counter
// declares five elements but only three and a partial fourth remain.
func TestDecodeTruncatedRepetitive(t *testing.T) {
	def := cat062Fixture(t)

	data := []byte{
		0x3E, 0x00, 0x0E, // CAT 62, length 14
		0xC0, // FSPEC: FRN 1,2 present
		0x00, 0x01, // 010 SACSIC
		0x05,       // 380 counter = 5
		0x00, 0x01, // track 1
		0x00, 0x02, // track 2
		0x00, 0x03, // track 3
		0x04, // partial 4th track, one byte short
	}

	tree, _, status, err := Decode(def, data, Options{})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if status.Kind != StatusTruncated {
		t.Fatalf("status = %s, want truncated", status.Kind)
	}
	if status.Position != 10 {
		t.Errorf("truncation position = %d, want 10", status.Position)
	}

	var te *TruncationError
	if !errors.As(status.Errors[len(status.Errors)-1], &te) {
		t.Fatalf("last error is not a TruncationError: %v", status.Errors)
	}
	if te.Wanted != 2 || te.Available != 1 {
		t.Errorf("TruncationError = %+v, want wanted=2 available=1", te)
	}

	record := tree.Blocks[0].Records[0]
	if !record.Truncated {
		t.Error("record.Truncated = false, want true")
	}
	tracks := record.Items[1].Value.(*Sequence)
	if len(tracks.Elements) != 3 {
		t.Errorf("got %d complete tracks, want 3", len(tracks.Elements))
	}
}

// TestRoundTripTruncatedRepetitiveReencodesCleanly is the round-trip half
// of spec.md §8 S2: a truncated Repetitive only carries its complete
// elements, so re-encoding it declares a counter of 3 rather than the
// original 5 and the result re-parses with no truncation at all.
func TestRoundTripTruncatedRepetitiveReencodesCleanly(t *testing.T) {
	def := cat062Fixture(t)
	cat, ok := def.Category(62)
	if !ok {
		t.Fatal("category 62 not loaded")
	}

	data := []byte{
		0x3E, 0x00, 0x0E, // CAT 62, length 14
		0xC0, // FSPEC: FRN 1,2 present
		0x00, 0x01, // 010 SACSIC
		0x05,       // 380 counter = 5
		0x00, 0x01, // track 1
		0x00, 0x02, // track 2
		0x00, 0x03, // track 3
		0x04, // partial 4th track, one byte short
	}

	tree, _, status, err := Decode(def, data, Options{})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if status.Kind != StatusTruncated {
		t.Fatalf("status = %s, want truncated", status.Kind)
	}

	reencoded, err := encodeBlock(cat, tree.Blocks[0])
	if err != nil {
		t.Fatalf("encodeBlock: %v", err)
	}

	again, n, status2, err := Decode(def, reencoded, Options{})
	if err != nil {
		t.Fatalf("re-Decode: %v", err)
	}
	if status2.Kind != StatusOK {
		t.Fatalf("re-Decode status = %s, want ok (errors: %v)", status2.Kind, status2.Errors)
	}
	if n != len(reencoded) {
		t.Errorf("consumed %d bytes, want %d", n, len(reencoded))
	}

	orig := tree.Blocks[0].Records[0].Items[1].Value.(*Sequence)
	got := again.Blocks[0].Records[0].Items[1].Value.(*Sequence)
	if len(got.Elements) != 3 {
		t.Fatalf("got %d re-decoded tracks, want 3", len(got.Elements))
	}
	if !reflect.DeepEqual(got, orig) {
		t.Errorf("re-decoded tracks differ from the original decode:\ngot  %+v\nwant %+v", got, orig)
	}
}

// cat255Fixture builds a synthetic category with a default UAP and one
// UAP conditional on item 001's third bit, plus a Compound item to
// exercise the all-zero-mask boundary case in the same pass.
func cat255Fixture(t *testing.T) *schema.Definition {
	t.Helper()
	cat := schema.NewCategory(255, "1.0", "Synthetic UAP/Compound Fixture")
	cat.AddItem(fixedItem("001", 1, bits("FLAGS", 1, 8, schema.EncodingUnsigned)))
	cat.AddItem(fixedItem("010", 1, bits("X", 1, 8, schema.EncodingUnsigned)))
	cat.AddItem(&schema.DataItemDescription{
		ID: "020",
		Format: &schema.Compound{Secondaries: []schema.Format{
			&schema.Fixed{LengthBytes: 1, Bits: []*schema.Bits{bits("A", 1, 8, schema.EncodingUnsigned)}},
			nil, // spare bit, no decoder
			&schema.Fixed{LengthBytes: 2, Bits: []*schema.Bits{bits("B", 1, 16, schema.EncodingUnsigned)}},
		}},
	})
	cat.AddItem(fixedItem("030", 1, bits("Y", 1, 8, schema.EncodingUnsigned)))

	cat.AddUAP(&schema.UAP{Name: "default", Items: []schema.UAPItem{
		{FRN: 1, ItemID: "001"},
		{FRN: 2, ItemID: "010"},
		{FRN: 3, ItemID: "020"},
	}})
	cat.AddUAP(&schema.UAP{
		Name:      "extended",
		Condition: &schema.UAPCondition{ItemID: "001", Bit: 3, Value: 1},
		Items: []schema.UAPItem{
			{FRN: 1, ItemID: "001"},
			{FRN: 2, ItemID: "030"},
		},
	})

	def := schema.NewDefinition()
	if err := def.AddCategory(cat); err != nil {
		t.Fatalf("AddCategory: %v", err)
	}
	return def
}

// TestDecodeDefaultUAPFallback is spec.md §8 S3 and S4 together: the
// conditional UAP's guard bit is clear, so the default UAP is selected
// without the trial walk consuming any real input, and the Compound
// item's all-zero mask decodes to zero secondaries.
func TestDecodeDefaultUAPFallback(t *testing.T) {
	def := cat255Fixture(t)

	data := []byte{
		0xFF, 0x00, 0x07, // CAT 255, length 7
		0xE0, // FSPEC: FRN 1,2,3 present
		0x00, // 001 FLAGS, bit 3 = 0
		0x07, // 010 X
		0x00, // 020 Compound primary mask, all zero
	}

	tree, n, status, err := Decode(def, data, Options{})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if n != len(data) {
		t.Errorf("consumed %d bytes, want %d (mask byte must not over-consume)", n, len(data))
	}
	if status.Kind != StatusOK {
		t.Fatalf("status = %s, want ok", status.Kind)
	}

	record := tree.Blocks[0].Records[0]
	if record.UAP.Name != "default" {
		t.Errorf("selected UAP = %s, want default", record.UAP.Name)
	}

	compound := record.Items[2].Value.(*CompoundValue)
	present := 0
	for _, s := range compound.Secondaries {
		if s != nil {
			present++
		}
	}
	if present != 0 {
		t.Errorf("got %d populated secondaries, want 0 for an all-zero mask", present)
	}
}

// TestDecodeConditionalUAPSelected exercises the positive path: the
// guard bit is set, so the conditional UAP is used for the rest of the
// record even though the default UAP shares the guard item's FRN.
func TestDecodeConditionalUAPSelected(t *testing.T) {
	def := cat255Fixture(t)

	data := []byte{
		0xFF, 0x00, 0x06, // CAT 255, length 6
		0xC0, // FSPEC: FRN 1,2 present
		0x20, // 001 FLAGS, bit 3 = 1
		0x09, // 030 Y
	}

	tree, _, status, err := Decode(def, data, Options{})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if status.Kind != StatusOK {
		t.Fatalf("status = %s, want ok", status.Kind)
	}

	record := tree.Blocks[0].Records[0]
	if record.UAP.Name != "extended" {
		t.Fatalf("selected UAP = %s, want extended", record.UAP.Name)
	}
	if record.Items[1].ID != "030" {
		t.Errorf("second item = %s, want 030", record.Items[1].ID)
	}
}

// TestDecodeSchemaMismatchRecovery is spec.md §8 S6: an unloaded
// category's block is skipped without disturbing the block before it,
// and the overall status stays ok.
func TestDecodeSchemaMismatchRecovery(t *testing.T) {
	def := cat048Fixture(t)

	cat048Block := []byte{
		0x30, 0x00, 0x1A,
		0xFF, 0x80,
		0x00, 0x01,
		0x05,
		0x00, 0xC8, 0x10, 0x00,
		0x00, 0xA3,
		0xFF, 0xF4,
		0xAB,
		0x00, 0x10, 0x00,
		0x04, 0x20, 0xC4, 0xC7, 0x2C, 0xF4,
	}
	unknownBlock := []byte{0x0C, 0x00, 0x04, 0x00} // CAT 12, not loaded

	data := append(append([]byte(nil), cat048Block...), unknownBlock...)

	tree, n, status, err := Decode(def, data, Options{})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if n != len(data) {
		t.Errorf("consumed %d bytes, want %d", n, len(data))
	}
	if status.Kind != StatusOK {
		t.Fatalf("status = %s, want ok", status.Kind)
	}
	if len(status.Errors) != 1 {
		t.Fatalf("got %d errors, want 1", len(status.Errors))
	}
	var sme *SchemaMismatchError
	if !errors.As(status.Errors[0], &sme) {
		t.Fatalf("error is not a SchemaMismatchError: %v", status.Errors[0])
	}
	if sme.Category != 12 {
		t.Errorf("mismatch category = %d, want 12", sme.Category)
	}
	if len(tree.Blocks) != 1 {
		t.Fatalf("got %d blocks, want 1 (unknown category block must be skipped)", len(tree.Blocks))
	}
}
