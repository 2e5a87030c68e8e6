// render/render_test.go
package render

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/asterixgo/gobelix/asterix/decode"
	"github.com/asterixgo/gobelix/asterix/schema"
)

func sampleTree() *decode.AsterixData {
	sacsic := &decode.Scalar{Bits: &schema.Bits{ShortName: "SACSIC"}, Raw: 1, Scaled: 1}
	typ := &decode.Scalar{Bits: &schema.Bits{ShortName: "TYP"}, Raw: 5, Scaled: 5}

	record := &decode.DataRecord{
		Category: 48,
		Items: []*decode.DataItem{
			{ID: "010", Value: &decode.Group{Scalars: []*decode.Scalar{sacsic}}},
			{ID: "020", Value: &decode.Group{Scalars: []*decode.Scalar{typ}}},
		},
	}
	return &decode.AsterixData{Blocks: []*decode.DataBlock{
		{Category: 48, Records: []*decode.DataRecord{record}},
	}}
}

func TestRenderLineFormat(t *testing.T) {
	out, err := Render(sampleTree(), FormatLine, nil)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	got := string(out)
	if !bytes.Contains(out, []byte("CAT/048/010/SACSIC = 1")) {
		t.Errorf("line output missing SACSIC tuple: %s", got)
	}
	if !bytes.Contains(out, []byte("CAT/048/020/TYP = 5")) {
		t.Errorf("line output missing TYP tuple: %s", got)
	}
}

func TestRenderFilterScoped(t *testing.T) {
	filter := NewFilter()
	filter.Add(48, "010", "")

	out, err := Render(sampleTree(), FormatLine, filter)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.Contains(out, []byte("010/SACSIC")) {
		t.Errorf("filtered output missing admitted item: %s", out)
	}
	if bytes.Contains(out, []byte("020/TYP")) {
		t.Errorf("filtered output includes excluded item: %s", out)
	}
}

func TestRenderJSONShape(t *testing.T) {
	out, err := Render(sampleTree(), FormatJSON, nil)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	var records []map[string]interface{}
	if err := json.Unmarshal(out, &records); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, out)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	items, ok := records[0]["items"].(map[string]interface{})
	if !ok {
		t.Fatalf("record has no items map: %v", records[0])
	}
	if _, ok := items["010"]; !ok {
		t.Errorf("item 010 missing from JSON output: %v", items)
	}
}

func TestRenderIdempotence(t *testing.T) {
	tree := sampleTree()
	first, err := Render(tree, FormatJSONH, nil)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	second, err := Render(tree, FormatJSONH, nil)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Errorf("rendering the same tree twice produced different bytes:\n%s\nvs\n%s", first, second)
	}
}

func TestParseFormatRoundTrip(t *testing.T) {
	cases := []Format{FormatText, FormatLine, FormatJSON, FormatJSONH, FormatXML}
	for _, f := range cases {
		parsed, err := ParseFormat(f.String())
		if err != nil {
			t.Fatalf("ParseFormat(%s): %v", f, err)
		}
		if parsed != f {
			t.Errorf("ParseFormat(%s) = %v, want %v", f, parsed, f)
		}
	}
	if _, err := ParseFormat("bogus"); err == nil {
		t.Error("expected an error for an unknown format name")
	}
}
