// specxml/elements.go
package specxml

import "encoding/xml"

// Element and attribute names recognized by the loader (spec.md §4.1).
// An unrecognized element raises a DefinitionError, and so does an
// attribute outside these sets on any element the loader checks with
// allowedAttrs, since accepting it would mask a typo as a missing field
// at decode time instead of at load time. Attributes on Definitions,
// DataItemFormat and the text-only elements (DataItemName, BitsName,
// BitsUnit and the like) are not checked.
const (
	elDefinitions = "Definitions"
	elDefinition  = "Definition"

	elCategory            = "Category"
	elUAP                 = "UAP"
	elUAPItem             = "UAPItem"
	elDataItem            = "DataItem"
	elDataItemName        = "DataItemName"
	elDataItemDefinition  = "DataItemDefinition"
	elDataItemFormat      = "DataItemFormat"
	elFixed               = "Fixed"
	elVariable            = "Variable"
	elRepetitive          = "Repetitive"
	elCompound            = "Compound"
	elSecondary           = "Secondary"
	elExplicit            = "Explicit"
	elBDS                 = "BDS"
	elRegister            = "Register"
	elBits                = "Bits"
	elBitsShortName       = "BitsShortName"
	elBitsName            = "BitsName"
	elBitsUnit            = "BitsUnit"
	elBitsConst           = "BitsConst"
	elBitsValue           = "BitsValue"
	elBitsMin             = "BitsMin"
	elBitsMax             = "BitsMax"
	elBitsEncode          = "BitsEncode"
	elBitsPresenceOfField = "BitsPresenceOfField"
)

// attr is a recognized-attribute set for one element. A name absent from
// this set is a DefinitionError (spec.md §4.1: "unknown attributes raise
// DefinitionError").
var attr = map[string]map[string]bool{
	elDefinition: set("cat", "edition", "file", "default"),

	elCategory: set("number", "edition", "name", "default"),
	elUAP: set("name", "condition-item", "condition-bit", "condition-value"),
	elUAPItem: set("frn", "bit", "len", "fx"),
	elDataItem: set("id"),

	elFixed:      set("length"),
	elRepetitive: set("counter-bytes"),
	elCompound:   set(),
	elSecondary:  set("bit"),
	elExplicit:   set(),
	elBDS:        set(),
	elRegister:   set("code"),

	elBits:                set("from", "to", "encoding", "fx"),
	elBitsValue:            set("val"),
	elBitsPresenceOfField: set("item", "value"),
}

func set(names ...string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}

func allowedAttrs(element string, got map[string]string) error {
	allowed := attr[element] // nil for an element that takes no attributes
	for k := range got {
		if !allowed[k] {
			return &DefinitionError{Kind: ErrUnknownAttribute, Element: element, Detail: k}
		}
	}
	return nil
}

func attrMap(raw []xml.Attr) map[string]string {
	m := make(map[string]string, len(raw))
	for _, a := range raw {
		m[a.Name.Local] = a.Value
	}
	return m
}
