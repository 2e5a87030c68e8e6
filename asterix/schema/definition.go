// schema/definition.go
package schema

import (
	"fmt"
	"sort"
)

// Definition is the immutable, shareable schema tree produced by a
// loader: a mapping from category number to one or more Category
// editions. It owns every Category exclusively (spec.md §3 Ownership).
type Definition struct {
	categories map[uint8][]*Category
}

// NewDefinition creates an empty Definition.
func NewDefinition() *Definition {
	return &Definition{categories: make(map[uint8][]*Category)}
}

// AddCategory installs a Category edition, enforcing that at most one
// edition of a given number is marked Default (spec.md §3: "multiple
// Categories with the same number but different edition strings may
// coexist, with exactly one marked default").
func (d *Definition) AddCategory(c *Category) error {
	existing := d.categories[c.Number]
	if c.Default {
		for _, e := range existing {
			if e.Default {
				return fmt.Errorf("%w: category %d already has default edition %s",
					ErrDuplicateCategory, c.Number, e.Edition)
			}
		}
	}
	for _, e := range existing {
		if e.Edition == c.Edition {
			return fmt.Errorf("%w: category %d edition %s loaded twice",
				ErrDuplicateCategory, c.Number, c.Edition)
		}
	}
	d.categories[c.Number] = append(existing, c)
	return nil
}

// Category returns the default edition of a category number, or — if no
// edition was marked default — the lexicographically-highest edition
// (spec.md §4.1 tie-break policy).
func (d *Definition) Category(number uint8) (*Category, bool) {
	editions := d.categories[number]
	if len(editions) == 0 {
		return nil, false
	}
	for _, c := range editions {
		if c.Default {
			return c, true
		}
	}
	sorted := append([]*Category(nil), editions...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Edition > sorted[j].Edition })
	return sorted[0], true
}

// CategoryEdition returns a specific edition of a category number.
func (d *Definition) CategoryEdition(number uint8, edition string) (*Category, bool) {
	for _, c := range d.categories[number] {
		if c.Edition == edition {
			return c, true
		}
	}
	return nil, false
}

// Categories returns every loaded category number, sorted.
func (d *Definition) Categories() []uint8 {
	out := make([]uint8, 0, len(d.categories))
	for num := range d.categories {
		out = append(out, num)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Editions returns every edition loaded for a category number.
func (d *Definition) Editions(number uint8) []*Category {
	return append([]*Category(nil), d.categories[number]...)
}
