// schema/category.go
package schema

import "fmt"

// Category holds one edition of an ASTERIX category: its data item
// catalogue and the UAP alternatives that select among them.
type Category struct {
	Number  uint8
	Edition string
	Name    string
	Default bool

	items map[string]*DataItemDescription
	uaps  []*UAP
}

// NewCategory creates an empty Category ready to receive items and UAPs
// via AddItem/AddUAP.
func NewCategory(number uint8, edition, name string) *Category {
	return &Category{
		Number:  number,
		Edition: edition,
		Name:    name,
		items:   make(map[string]*DataItemDescription),
	}
}

// AddItem registers a DataItemDescription under its item ID.
func (c *Category) AddItem(item *DataItemDescription) {
	c.items[item.ID] = item
}

// Item looks up a DataItemDescription by item ID.
func (c *Category) Item(id string) (*DataItemDescription, bool) {
	d, ok := c.items[id]
	return d, ok
}

// Items returns all data item descriptions, in no particular order.
func (c *Category) Items() []*DataItemDescription {
	out := make([]*DataItemDescription, 0, len(c.items))
	for _, d := range c.items {
		out = append(out, d)
	}
	return out
}

// AddUAP appends a UAP alternative.
func (c *Category) AddUAP(u *UAP) {
	c.uaps = append(c.uaps, u)
}

// UAPs returns all UAP alternatives in load order.
func (c *Category) UAPs() []*UAP {
	return c.uaps
}

// DefaultUAP returns the UAP with no selection condition. If more than
// one default was loaded, the first one loaded wins (spec.md §4.1
// tie-break policy) — callers that need to observe the duplicate should
// inspect Validate's returned warnings instead.
func (c *Category) DefaultUAP() *UAP {
	for _, u := range c.uaps {
		if u.IsDefault() {
			return u
		}
	}
	return nil
}

// ConditionalUAPs returns all UAPs with a non-nil Condition, in load
// order — the order in which the walker must test them (first match
// wins).
func (c *Category) ConditionalUAPs() []*UAP {
	var out []*UAP
	for _, u := range c.uaps {
		if !u.IsDefault() {
			out = append(out, u)
		}
	}
	return out
}

// Validate checks the Category invariants from spec.md §3:
//   - no UAP declares the same FRN twice
//   - every UAPItem's item ID (except FX) resolves to a DataItemDescription
//   - every Fixed's Bits lie within its length and do not overlap
//
// A Compound's mask is not checked against its secondaries here.
//
// It returns the first violation found, or nil. Duplicate-default-UAP is
// reported as a warning string, not an error (spec.md §4.1: "first wins
// with warning").
func (c *Category) Validate() (warnings []string, err error) {
	seenDefault := false
	for _, u := range c.uaps {
		if u.IsDefault() {
			if seenDefault {
				warnings = append(warnings, fmt.Sprintf(
					"category %d edition %s: multiple default UAPs loaded, first wins", c.Number, c.Edition))
			}
			seenDefault = true
		}

		seenFRN := make(map[int]bool)
		for _, item := range u.Items {
			if seenFRN[item.FRN] {
				return warnings, fmt.Errorf("%w: FRN %d in UAP %q", ErrDuplicateFRN, item.FRN, u.Name)
			}
			seenFRN[item.FRN] = true

			if item.IsFX() {
				continue
			}
			if _, ok := c.items[item.ItemID]; !ok {
				return warnings, fmt.Errorf("%w: %s in UAP %q", ErrUnresolvedItemID, item.ItemID, u.Name)
			}
		}
	}

	for _, d := range c.items {
		if err := validateFormat(d.Format); err != nil {
			return warnings, fmt.Errorf("item %s: %w", d.ID, err)
		}
	}

	return warnings, nil
}

func validateFormat(f Format) error {
	switch v := f.(type) {
	case *Fixed:
		return validateFixed(v)
	case *Variable:
		for _, p := range v.Parts {
			if err := validateFixed(p); err != nil {
				return err
			}
		}
	case *Repetitive:
		return validateFixed(v.Element)
	case *Compound:
		for _, s := range v.Secondaries {
			if s == nil {
				continue
			}
			if err := validateFormat(s); err != nil {
				return err
			}
		}
	case *Explicit:
		if v.Inner != nil {
			return validateFormat(v.Inner)
		}
	case *BDS:
		for _, f := range v.Registers {
			if err := validateFixed(f); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateFixed(f *Fixed) error {
	if f == nil {
		return nil
	}
	maxBit := f.LengthBytes * 8
	covered := make([]bool, maxBit+1)
	for _, b := range f.Bits {
		if b.FromBit < 1 || b.ToBit > maxBit || b.FromBit > b.ToBit {
			return fmt.Errorf("%w: [%d,%d] outside 1..%d", ErrBitsOutOfRange, b.FromBit, b.ToBit, maxBit)
		}
		for i := b.FromBit; i <= b.ToBit; i++ {
			if covered[i] {
				return fmt.Errorf("%w: bit %d claimed twice", ErrBitsOverlap, i)
			}
			covered[i] = true
		}
	}
	return nil
}
