// schema/dataitem.go
package schema

// DataItemDescription describes a single named data item within a
// Category: its three-character item ID ("010"), a human name, free-text
// definition, and the root of its Format subtree.
type DataItemDescription struct {
	ID         string
	Name       string
	Definition string
	Format     Format
}
