// schema/category_test.go
package schema

import "testing"

func simpleItem(id string, length int) *DataItemDescription {
	return &DataItemDescription{ID: id, Format: &Fixed{LengthBytes: length, Bits: []*Bits{
		{ShortName: "V", FromBit: 1, ToBit: length * 8, Encoding: EncodingUnsigned},
	}}}
}

func TestCategoryValidateDetectsUnresolvedItem(t *testing.T) {
	cat := NewCategory(1, "1.0", "test")
	cat.AddItem(simpleItem("010", 1))
	cat.AddUAP(&UAP{Name: "default", Items: []UAPItem{
		{FRN: 1, ItemID: "010"},
		{FRN: 2, ItemID: "020"}, // never declared
	}})

	if _, err := cat.Validate(); err == nil {
		t.Fatal("expected an error for a UAP referencing an unresolved item ID")
	}
}

func TestCategoryValidateDetectsDuplicateFRN(t *testing.T) {
	cat := NewCategory(1, "1.0", "test")
	cat.AddItem(simpleItem("010", 1))
	cat.AddUAP(&UAP{Name: "default", Items: []UAPItem{
		{FRN: 1, ItemID: "010"},
		{FRN: 1, ItemID: "010"},
	}})

	if _, err := cat.Validate(); err == nil {
		t.Fatal("expected an error for a UAP with a duplicate FRN")
	}
}

func TestCategoryValidateWarnsOnDuplicateDefault(t *testing.T) {
	cat := NewCategory(1, "1.0", "test")
	cat.AddItem(simpleItem("010", 1))
	cat.AddUAP(&UAP{Name: "first", Items: []UAPItem{{FRN: 1, ItemID: "010"}}})
	cat.AddUAP(&UAP{Name: "second", Items: []UAPItem{{FRN: 1, ItemID: "010"}}})

	warnings, err := cat.Validate()
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if len(warnings) != 1 {
		t.Fatalf("got %d warnings, want 1 for a duplicate default UAP", len(warnings))
	}
	if cat.DefaultUAP().Name != "first" {
		t.Errorf("DefaultUAP = %s, want first (first-wins tie-break)", cat.DefaultUAP().Name)
	}
}

func TestCategoryValidateDetectsOverlappingBits(t *testing.T) {
	cat := NewCategory(1, "1.0", "test")
	cat.AddItem(&DataItemDescription{ID: "010", Format: &Fixed{LengthBytes: 1, Bits: []*Bits{
		{ShortName: "A", FromBit: 1, ToBit: 4, Encoding: EncodingUnsigned},
		{ShortName: "B", FromBit: 4, ToBit: 8, Encoding: EncodingUnsigned}, // overlaps bit 4
	}}})
	cat.AddUAP(&UAP{Name: "default", Items: []UAPItem{{FRN: 1, ItemID: "010"}}})

	if _, err := cat.Validate(); err == nil {
		t.Fatal("expected an error for overlapping Bits ranges")
	}
}

func TestDefinitionAddCategoryRejectsSecondDefaultEdition(t *testing.T) {
	def := NewDefinition()
	a := NewCategory(48, "1.20", "edition a")
	a.Default = true
	b := NewCategory(48, "1.21", "edition b")
	b.Default = true

	if err := def.AddCategory(a); err != nil {
		t.Fatalf("AddCategory(a): %v", err)
	}
	if err := def.AddCategory(b); err == nil {
		t.Fatal("expected an error adding a second default edition of the same category")
	}
}

func TestDefinitionCategoryFallsBackToHighestEdition(t *testing.T) {
	def := NewDefinition()
	older := NewCategory(48, "1.20", "older")
	newer := NewCategory(48, "1.21", "newer")
	if err := def.AddCategory(older); err != nil {
		t.Fatalf("AddCategory(older): %v", err)
	}
	if err := def.AddCategory(newer); err != nil {
		t.Fatalf("AddCategory(newer): %v", err)
	}

	cat, ok := def.Category(48)
	if !ok {
		t.Fatal("category 48 not found")
	}
	if cat.Edition != "1.21" {
		t.Errorf("Category(48) = edition %s, want the highest loaded edition 1.21 (no default set)", cat.Edition)
	}
}
