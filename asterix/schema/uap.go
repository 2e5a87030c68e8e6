// schema/uap.go
package schema

// FXItemID is the sentinel item ID used for the field-extension slot at
// the end of an FSPEC octet's seven-item window.
const FXItemID = "FX"

// UAPCondition selects a non-default UAP: it applies when the named
// sibling item's bit equals Value.
type UAPCondition struct {
	ItemID string
	Bit    int
	Value  int64
}

// UAPItem is one Field Reference Number slot in a UAP: either a real
// data item (ItemID resolves into the owning Category's item map) or the
// FX sentinel.
type UAPItem struct {
	FRN    int
	ItemID string // FXItemID for the field-extension slot
	// BitPosition is this item's bit within its FSPEC octet window
	// (1-7; never 0, which is reserved for FX).
	BitPosition int
	// LengthHint is informational only: >0 for a known fixed length,
	// -1 for variable-length items. The walker always trusts the
	// Format's own decoder for the true length.
	LengthHint int
}

// IsFX reports whether this slot is the field-extension sentinel.
func (u UAPItem) IsFX() bool {
	return u.ItemID == FXItemID
}

// UAP (User Application Profile) is an ordered FRN -> item-ID mapping
// for a Category, optionally gated by a selection Condition. A UAP with
// a nil Condition is the default UAP for its Category.
type UAP struct {
	Name      string
	Items     []UAPItem // ordered by FRN
	Condition *UAPCondition
}

// IsDefault reports whether this UAP applies unconditionally.
func (u *UAP) IsDefault() bool {
	return u.Condition == nil
}

// MaxFRN returns the highest FRN declared in this UAP.
func (u *UAP) MaxFRN() int {
	max := 0
	for _, item := range u.Items {
		if item.FRN > max {
			max = item.FRN
		}
	}
	return max
}
