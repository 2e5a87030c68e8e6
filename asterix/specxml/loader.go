// specxml/loader.go
//
// Event-driven SAX-style definition loader: every element is handled by
// a parse* function that pushes its name onto an explicit stack (for
// error context), consumes exactly its own children via the shared
// xml.Decoder token stream, then pops itself off. No DOM tree is ever
// built in memory — only the schema.Definition the tokens describe.
package specxml

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/asterixgo/gobelix/asterix/schema"
)

// FileOpener resolves a path named in the index file to a readable
// stream. The loader never touches the filesystem itself (spec.md §6:
// "the loader never touches the filesystem directly").
type FileOpener func(path string) (io.ReadCloser, error)

type loaderState struct {
	dec   *xml.Decoder
	stack []string
	file  string
}

func (ls *loaderState) push(name string) { ls.stack = append(ls.stack, name) }
func (ls *loaderState) pop()             { ls.stack = ls.stack[:len(ls.stack)-1] }

func (ls *loaderState) errf(kind DefinitionErrorKind, element, detail string) error {
	return &DefinitionError{File: ls.file, Stack: append([]string(nil), ls.stack...), Kind: kind, Element: element, Detail: detail}
}

// LoadDefinition compiles a Definition from a top-level index file and
// the category files it references, per spec.md §4.1/§6.
func LoadDefinition(open FileOpener, indexPath string) (*schema.Definition, error) {
	idxFile, err := open(indexPath)
	if err != nil {
		return nil, fmt.Errorf("%w: opening index %s: %v", ErrDefinition, indexPath, err)
	}
	defer idxFile.Close()

	entries, err := parseIndex(idxFile, indexPath)
	if err != nil {
		return nil, err
	}

	def := schema.NewDefinition()
	for _, e := range entries {
		f, err := open(e.file)
		if err != nil {
			return nil, fmt.Errorf("%w: opening %s: %v", ErrDefinition, e.file, err)
		}
		cat, err := parseCategoryFile(f, e.file)
		f.Close()
		if err != nil {
			return nil, err
		}
		if cat.Number != e.cat {
			return nil, &DefinitionError{File: e.file, Kind: ErrOutOfRange, Element: elCategory,
				Detail: fmt.Sprintf("index declared cat=%d, file declares %d", e.cat, cat.Number)}
		}
		if e.edition != "" && cat.Edition != e.edition {
			return nil, &DefinitionError{File: e.file, Kind: ErrOutOfRange, Element: elCategory,
				Detail: fmt.Sprintf("index declared edition=%s, file declares %s", e.edition, cat.Edition)}
		}
		cat.Default = e.isDefault
		if _, err := cat.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrDefinition, e.file, err)
		}
		if err := def.AddCategory(cat); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrDefinition, e.file, err)
		}
	}
	return def, nil
}

type indexEntry struct {
	cat       uint8
	edition   string
	file      string
	isDefault bool
}

func parseIndex(r io.Reader, file string) ([]indexEntry, error) {
	dec := xml.NewDecoder(r)
	ls := &loaderState{dec: dec, file: file}

	var entries []indexEntry
	inRoot := false
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, ls.errf(ErrMalformedXML, "", err.Error())
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case elDefinitions:
				if inRoot {
					return nil, ls.errf(ErrMalformedXML, elDefinitions, "nested root element")
				}
				inRoot = true
			case elDefinition:
				if !inRoot {
					return nil, ls.errf(ErrMalformedXML, elDefinition, "outside root element")
				}
				attrs := attrMap(t.Attr)
				if err := allowedAttrs(elDefinition, attrs); err != nil {
					return nil, err
				}
				catNum, err := parseUint8(attrs["cat"])
				if err != nil {
					return nil, ls.errf(ErrOutOfRange, elDefinition, "cat: "+err.Error())
				}
				if attrs["file"] == "" {
					return nil, ls.errf(ErrMalformedXML, elDefinition, "missing file attribute")
				}
				entries = append(entries, indexEntry{
					cat:       catNum,
					edition:   attrs["edition"],
					file:      attrs["file"],
					isDefault: attrs["default"] == "true",
				})
			default:
				return nil, ls.errf(ErrUnknownElement, t.Name.Local, "")
			}
		case xml.EndElement:
			if t.Name.Local == elDefinitions {
				inRoot = false
			}
		}
	}
	if len(entries) == 0 {
		return nil, ls.errf(ErrMalformedXML, elDefinitions, "no Definition entries found")
	}
	return entries, nil
}

func parseCategoryFile(r io.Reader, file string) (*schema.Category, error) {
	dec := xml.NewDecoder(r)
	ls := &loaderState{dec: dec, file: file}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil, ls.errf(ErrMalformedXML, elCategory, "no Category element found")
		}
		if err != nil {
			return nil, ls.errf(ErrMalformedXML, "", err.Error())
		}
		if start, ok := tok.(xml.StartElement); ok {
			if start.Name.Local != elCategory {
				return nil, ls.errf(ErrUnknownElement, start.Name.Local, "expected root Category")
			}
			return parseCategory(ls, start)
		}
	}
}

func parseCategory(ls *loaderState, start xml.StartElement) (*schema.Category, error) {
	ls.push(elCategory)
	defer ls.pop()

	attrs := attrMap(start.Attr)
	if err := allowedAttrs(elCategory, attrs); err != nil {
		return nil, err
	}
	num, err := parseUint8(attrs["number"])
	if err != nil {
		return nil, ls.errf(ErrOutOfRange, elCategory, "number: "+err.Error())
	}
	edition := attrs["edition"]
	if edition == "" {
		return nil, ls.errf(ErrMalformedXML, elCategory, "missing edition attribute")
	}
	cat := schema.NewCategory(num, edition, attrs["name"])
	cat.Default = attrs["default"] == "true"

	for {
		tok, err := ls.dec.Token()
		if err != nil {
			return nil, ls.errf(ErrMalformedXML, elCategory, err.Error())
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case elDataItem:
				item, err := parseDataItem(ls, t)
				if err != nil {
					return nil, err
				}
				cat.AddItem(item)
			case elUAP:
				uap, err := parseUAP(ls, t)
				if err != nil {
					return nil, err
				}
				cat.AddUAP(uap)
			default:
				return nil, ls.errf(ErrUnknownElement, t.Name.Local, "inside Category")
			}
		case xml.EndElement:
			if t.Name.Local == elCategory {
				return cat, nil
			}
		}
	}
}

func parseDataItem(ls *loaderState, start xml.StartElement) (*schema.DataItemDescription, error) {
	ls.push(elDataItem)
	defer ls.pop()

	attrs := attrMap(start.Attr)
	if err := allowedAttrs(elDataItem, attrs); err != nil {
		return nil, err
	}
	if attrs["id"] == "" {
		return nil, ls.errf(ErrMalformedXML, elDataItem, "missing id attribute")
	}
	item := &schema.DataItemDescription{ID: attrs["id"]}

	for {
		tok, err := ls.dec.Token()
		if err != nil {
			return nil, ls.errf(ErrMalformedXML, elDataItem, err.Error())
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case elDataItemName:
				txt, err := readText(ls, t)
				if err != nil {
					return nil, err
				}
				item.Name = txt
			case elDataItemDefinition:
				txt, err := readText(ls, t)
				if err != nil {
					return nil, err
				}
				item.Definition = txt
			case elDataItemFormat:
				f, err := parseDataItemFormat(ls, t)
				if err != nil {
					return nil, err
				}
				item.Format = f
			default:
				return nil, ls.errf(ErrUnknownElement, t.Name.Local, "inside DataItem")
			}
		case xml.EndElement:
			if t.Name.Local == elDataItem {
				if item.Format == nil {
					return nil, ls.errf(ErrMalformedXML, elDataItem, "missing DataItemFormat")
				}
				return item, nil
			}
		}
	}
}

// parseDataItemFormat expects exactly one of the six format elements as
// its only child.
func parseDataItemFormat(ls *loaderState, start xml.StartElement) (schema.Format, error) {
	ls.push(elDataItemFormat)
	defer ls.pop()

	var result schema.Format
	for {
		tok, err := ls.dec.Token()
		if err != nil {
			return nil, ls.errf(ErrMalformedXML, elDataItemFormat, err.Error())
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if result != nil {
				return nil, ls.errf(ErrMalformedXML, t.Name.Local, "DataItemFormat already has a format")
			}
			f, err := parseFormatElement(ls, t)
			if err != nil {
				return nil, err
			}
			result = f
		case xml.EndElement:
			if t.Name.Local == elDataItemFormat {
				if result == nil {
					return nil, ls.errf(ErrMalformedXML, elDataItemFormat, "no format element found")
				}
				return result, nil
			}
		}
	}
}

func parseFormatElement(ls *loaderState, start xml.StartElement) (schema.Format, error) {
	switch start.Name.Local {
	case elFixed:
		return parseFixed(ls, start)
	case elVariable:
		return parseVariable(ls, start)
	case elRepetitive:
		return parseRepetitive(ls, start)
	case elCompound:
		return parseCompound(ls, start)
	case elExplicit:
		return parseExplicit(ls, start)
	case elBDS:
		return parseBDS(ls, start)
	default:
		return nil, ls.errf(ErrUnknownElement, start.Name.Local, "expected a Format element")
	}
}

func parseFixed(ls *loaderState, start xml.StartElement) (*schema.Fixed, error) {
	ls.push(elFixed)
	defer ls.pop()

	attrs := attrMap(start.Attr)
	if err := allowedAttrs(elFixed, attrs); err != nil {
		return nil, err
	}
	length, err := parsePositiveInt(attrs["length"])
	if err != nil {
		return nil, ls.errf(ErrOutOfRange, elFixed, "length: "+err.Error())
	}
	fx := &schema.Fixed{LengthBytes: length}

	for {
		tok, err := ls.dec.Token()
		if err != nil {
			return nil, ls.errf(ErrMalformedXML, elFixed, err.Error())
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local != elBits {
				return nil, ls.errf(ErrUnknownElement, t.Name.Local, "inside Fixed")
			}
			b, err := parseBits(ls, t)
			if err != nil {
				return nil, err
			}
			fx.Bits = append(fx.Bits, b)
		case xml.EndElement:
			if t.Name.Local == elFixed {
				return fx, nil
			}
		}
	}
}

func parseBits(ls *loaderState, start xml.StartElement) (*schema.Bits, error) {
	ls.push(elBits)
	defer ls.pop()

	attrs := attrMap(start.Attr)
	if err := allowedAttrs(elBits, attrs); err != nil {
		return nil, err
	}
	from, err := parsePositiveInt(attrs["from"])
	if err != nil {
		return nil, ls.errf(ErrOutOfRange, elBits, "from: "+err.Error())
	}
	to, err := parsePositiveInt(attrs["to"])
	if err != nil {
		return nil, ls.errf(ErrOutOfRange, elBits, "to: "+err.Error())
	}
	if to < from {
		return nil, ls.errf(ErrBitsCrossBoundary, elBits, fmt.Sprintf("to(%d) < from(%d)", to, from))
	}

	b := &schema.Bits{FromBit: from, ToBit: to, FX: attrs["fx"] == "true"}
	if enc, ok := attrs["encoding"]; ok {
		e, err := parseEncoding(enc)
		if err != nil {
			return nil, ls.errf(ErrMalformedXML, elBits, err.Error())
		}
		b.Encoding = e
	}

	for {
		tok, err := ls.dec.Token()
		if err != nil {
			return nil, ls.errf(ErrMalformedXML, elBits, err.Error())
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case elBitsShortName:
				txt, err := readText(ls, t)
				if err != nil {
					return nil, err
				}
				b.ShortName = txt
			case elBitsName:
				txt, err := readText(ls, t)
				if err != nil {
					return nil, err
				}
				b.Name = txt
			case elBitsUnit:
				txt, err := readText(ls, t)
				if err != nil {
					return nil, err
				}
				b.Unit = txt
			case elBitsConst:
				txt, err := readText(ls, t)
				if err != nil {
					return nil, err
				}
				scale, err := parseScale(txt)
				if err != nil {
					return nil, ls.errf(ErrMalformedXML, elBitsConst, err.Error())
				}
				b.Scale = scale
			case elBitsEncode:
				txt, err := readText(ls, t)
				if err != nil {
					return nil, err
				}
				e, err := parseEncoding(txt)
				if err != nil {
					return nil, ls.errf(ErrMalformedXML, elBitsEncode, err.Error())
				}
				b.Encoding = e
			case elBitsValue:
				valAttrs := attrMap(t.Attr)
				if err := allowedAttrs(elBitsValue, valAttrs); err != nil {
					return nil, err
				}
				key, err := strconv.ParseInt(valAttrs["val"], 10, 64)
				if err != nil {
					return nil, ls.errf(ErrOutOfRange, elBitsValue, "val: "+err.Error())
				}
				label, err := readText(ls, t)
				if err != nil {
					return nil, err
				}
				if b.Enum == nil {
					b.Enum = make(map[int64]string)
				}
				b.Enum[key] = label
			case elBitsMin, elBitsMax:
				// Informational bounds; recognized but not enforced
				// structurally (spec.md §4.1 lists them as recognized
				// elements without prescribing validation behavior).
				if _, err := readText(ls, t); err != nil {
					return nil, err
				}
			case elBitsPresenceOfField:
				presAttrs := attrMap(t.Attr)
				if err := allowedAttrs(elBitsPresenceOfField, presAttrs); err != nil {
					return nil, err
				}
				val, err := strconv.ParseInt(presAttrs["value"], 10, 64)
				if err != nil {
					return nil, ls.errf(ErrOutOfRange, elBitsPresenceOfField, "value: "+err.Error())
				}
				b.Presence = &schema.PresenceCondition{SiblingShortName: presAttrs["item"], Equals: val}
				if err := skipElement(ls, t); err != nil {
					return nil, err
				}
			default:
				return nil, ls.errf(ErrUnknownElement, t.Name.Local, "inside Bits")
			}
		case xml.EndElement:
			if t.Name.Local == elBits {
				return b, nil
			}
		}
	}
}

func parseVariable(ls *loaderState, start xml.StartElement) (*schema.Variable, error) {
	ls.push(elVariable)
	defer ls.pop()

	if err := allowedAttrs(elVariable, attrMap(start.Attr)); err != nil {
		return nil, err
	}
	v := &schema.Variable{}
	for {
		tok, err := ls.dec.Token()
		if err != nil {
			return nil, ls.errf(ErrMalformedXML, elVariable, err.Error())
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local != elFixed {
				return nil, ls.errf(ErrUnknownElement, t.Name.Local, "inside Variable")
			}
			f, err := parseFixed(ls, t)
			if err != nil {
				return nil, err
			}
			v.Parts = append(v.Parts, f)
		case xml.EndElement:
			if t.Name.Local == elVariable {
				if len(v.Parts) == 0 {
					return nil, ls.errf(ErrMalformedXML, elVariable, "no Fixed parts")
				}
				return v, nil
			}
		}
	}
}

func parseRepetitive(ls *loaderState, start xml.StartElement) (*schema.Repetitive, error) {
	ls.push(elRepetitive)
	defer ls.pop()

	attrs := attrMap(start.Attr)
	if err := allowedAttrs(elRepetitive, attrs); err != nil {
		return nil, err
	}
	counterBytes, err := parsePositiveInt(attrs["counter-bytes"])
	if err != nil {
		return nil, ls.errf(ErrOutOfRange, elRepetitive, "counter-bytes: "+err.Error())
	}
	r := &schema.Repetitive{CounterBytes: counterBytes}

	for {
		tok, err := ls.dec.Token()
		if err != nil {
			return nil, ls.errf(ErrMalformedXML, elRepetitive, err.Error())
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local != elFixed {
				return nil, ls.errf(ErrUnknownElement, t.Name.Local, "inside Repetitive")
			}
			f, err := parseFixed(ls, t)
			if err != nil {
				return nil, err
			}
			r.Element = f
		case xml.EndElement:
			if t.Name.Local == elRepetitive {
				if r.Element == nil {
					return nil, ls.errf(ErrMalformedXML, elRepetitive, "missing element Fixed")
				}
				return r, nil
			}
		}
	}
}

func parseCompound(ls *loaderState, start xml.StartElement) (*schema.Compound, error) {
	ls.push(elCompound)
	defer ls.pop()

	if err := allowedAttrs(elCompound, attrMap(start.Attr)); err != nil {
		return nil, err
	}
	c := &schema.Compound{}
	next := 0
	for {
		tok, err := ls.dec.Token()
		if err != nil {
			return nil, ls.errf(ErrMalformedXML, elCompound, err.Error())
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local != elSecondary {
				return nil, ls.errf(ErrUnknownElement, t.Name.Local, "inside Compound")
			}
			f, bit, err := parseSecondary(ls, t)
			if err != nil {
				return nil, err
			}
			idx := next
			if bit > 0 {
				idx = bit - 1
			}
			for len(c.Secondaries) <= idx {
				c.Secondaries = append(c.Secondaries, nil)
			}
			if c.Secondaries[idx] != nil {
				return nil, ls.errf(ErrMalformedXML, elSecondary, fmt.Sprintf("mask bit %d already has a Secondary", idx+1))
			}
			c.Secondaries[idx] = f
			next = idx + 1
		case xml.EndElement:
			if t.Name.Local == elCompound {
				return c, nil
			}
		}
	}
}

// parseSecondary returns the parsed Format (nil is valid: an all-zero mask
// bit with no decoder, spec S4) and the 1-based mask bit the Secondary's
// "bit" attribute names, or 0 when the attribute is absent and the caller
// should fall back to declaration order.
func parseSecondary(ls *loaderState, start xml.StartElement) (schema.Format, int, error) {
	ls.push(elSecondary)
	defer ls.pop()

	attrs := attrMap(start.Attr)
	if err := allowedAttrs(elSecondary, attrs); err != nil {
		return nil, 0, err
	}
	var bit int
	if attrs["bit"] != "" {
		var err error
		bit, err = parsePositiveInt(attrs["bit"])
		if err != nil {
			return nil, 0, ls.errf(ErrOutOfRange, elSecondary, "bit: "+err.Error())
		}
	}

	var result schema.Format
	for {
		tok, err := ls.dec.Token()
		if err != nil {
			return nil, 0, ls.errf(ErrMalformedXML, elSecondary, err.Error())
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if result != nil {
				return nil, 0, ls.errf(ErrMalformedXML, t.Name.Local, "Secondary already has a format")
			}
			f, err := parseFormatElement(ls, t)
			if err != nil {
				return nil, 0, err
			}
			result = f
		case xml.EndElement:
			if t.Name.Local == elSecondary {
				return result, bit, nil
			}
		}
	}
}

func parseExplicit(ls *loaderState, start xml.StartElement) (*schema.Explicit, error) {
	ls.push(elExplicit)
	defer ls.pop()

	if err := allowedAttrs(elExplicit, attrMap(start.Attr)); err != nil {
		return nil, err
	}
	e := &schema.Explicit{}
	for {
		tok, err := ls.dec.Token()
		if err != nil {
			return nil, ls.errf(ErrMalformedXML, elExplicit, err.Error())
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if e.Inner != nil {
				return nil, ls.errf(ErrMalformedXML, t.Name.Local, "Explicit already has an inner format")
			}
			f, err := parseFormatElement(ls, t)
			if err != nil {
				return nil, err
			}
			e.Inner = f
		case xml.EndElement:
			if t.Name.Local == elExplicit {
				return e, nil
			}
		}
	}
}

func parseBDS(ls *loaderState, start xml.StartElement) (*schema.BDS, error) {
	ls.push(elBDS)
	defer ls.pop()

	if err := allowedAttrs(elBDS, attrMap(start.Attr)); err != nil {
		return nil, err
	}
	b := &schema.BDS{Registers: make(map[byte]*schema.Fixed)}
	for {
		tok, err := ls.dec.Token()
		if err != nil {
			return nil, ls.errf(ErrMalformedXML, elBDS, err.Error())
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local != elRegister {
				return nil, ls.errf(ErrUnknownElement, t.Name.Local, "inside BDS")
			}
			code, fixed, err := parseRegister(ls, t)
			if err != nil {
				return nil, err
			}
			b.Registers[code] = fixed
		case xml.EndElement:
			if t.Name.Local == elBDS {
				return b, nil
			}
		}
	}
}

func parseRegister(ls *loaderState, start xml.StartElement) (byte, *schema.Fixed, error) {
	ls.push(elRegister)
	defer ls.pop()

	attrs := attrMap(start.Attr)
	if err := allowedAttrs(elRegister, attrs); err != nil {
		return 0, nil, err
	}
	code, err := strconv.ParseUint(strings.TrimPrefix(attrs["code"], "0x"), 16, 8)
	if err != nil {
		return 0, nil, ls.errf(ErrOutOfRange, elRegister, "code: "+err.Error())
	}

	var fixed *schema.Fixed
	for {
		tok, err := ls.dec.Token()
		if err != nil {
			return 0, nil, ls.errf(ErrMalformedXML, elRegister, err.Error())
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local != elFixed {
				return 0, nil, ls.errf(ErrUnknownElement, t.Name.Local, "inside Register")
			}
			fixed, err = parseFixed(ls, t)
			if err != nil {
				return 0, nil, err
			}
		case xml.EndElement:
			if t.Name.Local == elRegister {
				if fixed == nil {
					return 0, nil, ls.errf(ErrMalformedXML, elRegister, "missing Fixed")
				}
				return byte(code), fixed, nil
			}
		}
	}
}

func parseUAP(ls *loaderState, start xml.StartElement) (*schema.UAP, error) {
	ls.push(elUAP)
	defer ls.pop()

	attrs := attrMap(start.Attr)
	if err := allowedAttrs(elUAP, attrs); err != nil {
		return nil, err
	}
	uap := &schema.UAP{Name: attrs["name"]}
	if attrs["condition-item"] != "" {
		bit, err := parsePositiveInt(attrs["condition-bit"])
		if err != nil {
			return nil, ls.errf(ErrOutOfRange, elUAP, "condition-bit: "+err.Error())
		}
		value, err := strconv.ParseInt(attrs["condition-value"], 10, 64)
		if err != nil {
			return nil, ls.errf(ErrOutOfRange, elUAP, "condition-value: "+err.Error())
		}
		uap.Condition = &schema.UAPCondition{ItemID: attrs["condition-item"], Bit: bit, Value: value}
	}

	for {
		tok, err := ls.dec.Token()
		if err != nil {
			return nil, ls.errf(ErrMalformedXML, elUAP, err.Error())
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local != elUAPItem {
				return nil, ls.errf(ErrUnknownElement, t.Name.Local, "inside UAP")
			}
			item, err := parseUAPItem(ls, t)
			if err != nil {
				return nil, err
			}
			uap.Items = append(uap.Items, item)
		case xml.EndElement:
			if t.Name.Local == elUAP {
				return uap, nil
			}
		}
	}
}

func parseUAPItem(ls *loaderState, start xml.StartElement) (schema.UAPItem, error) {
	ls.push(elUAPItem)
	defer ls.pop()

	attrs := attrMap(start.Attr)
	if err := allowedAttrs(elUAPItem, attrs); err != nil {
		return schema.UAPItem{}, err
	}
	frn, err := parsePositiveInt(attrs["frn"])
	if err != nil {
		return schema.UAPItem{}, ls.errf(ErrOutOfRange, elUAPItem, "frn: "+err.Error())
	}
	isFX := attrs["fx"] == "true"

	var bit int
	if isFX {
		bit = 0
	} else {
		bit, err = parsePositiveInt(attrs["bit"])
		if err != nil {
			return schema.UAPItem{}, ls.errf(ErrOutOfRange, elUAPItem, "bit: "+err.Error())
		}
		if bit < 1 || bit > 7 {
			return schema.UAPItem{}, &DefinitionError{File: ls.file, Stack: append([]string(nil), ls.stack...),
				Kind: ErrIllegalFX, Element: elUAPItem, Detail: fmt.Sprintf("bit %d outside 1..7", bit)}
		}
	}

	lengthHint := -1
	if attrs["len"] != "" {
		lengthHint, err = strconv.Atoi(attrs["len"])
		if err != nil {
			return schema.UAPItem{}, ls.errf(ErrOutOfRange, elUAPItem, "len: "+err.Error())
		}
	}

	txt, err := readText(ls, start)
	if err != nil {
		return schema.UAPItem{}, err
	}
	itemID := strings.TrimSpace(txt)
	if isFX {
		if itemID != "" && itemID != schema.FXItemID {
			return schema.UAPItem{}, ls.errf(ErrIllegalFX, elUAPItem, "fx=true item must have no id or id=FX")
		}
		itemID = schema.FXItemID
	} else if itemID == "" {
		return schema.UAPItem{}, ls.errf(ErrMalformedXML, elUAPItem, "missing item id text content")
	}

	return schema.UAPItem{FRN: frn, ItemID: itemID, BitPosition: bit, LengthHint: lengthHint}, nil
}

// readText consumes an element's body expecting only CharData, and
// returns its end once EndElement for `start` is seen. Used for
// elements that declare textual payload only (spec.md §4.1).
func readText(ls *loaderState, start xml.StartElement) (string, error) {
	var sb strings.Builder
	for {
		tok, err := ls.dec.Token()
		if err != nil {
			return "", ls.errf(ErrMalformedXML, start.Name.Local, err.Error())
		}
		switch t := tok.(type) {
		case xml.CharData:
			sb.Write(t)
		case xml.EndElement:
			if t.Name.Local == start.Name.Local {
				return sb.String(), nil
			}
		case xml.StartElement:
			return "", ls.errf(ErrMalformedXML, t.Name.Local, "unexpected child of text-only element "+start.Name.Local)
		}
	}
}

// skipElement consumes and discards an element's body (used where the
// element has already yielded its attribute data and no text/child
// content matters).
func skipElement(ls *loaderState, start xml.StartElement) error {
	depth := 0
	for {
		tok, err := ls.dec.Token()
		if err != nil {
			return ls.errf(ErrMalformedXML, start.Name.Local, err.Error())
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == start.Name.Local {
				depth++
			}
		case xml.EndElement:
			if t.Name.Local == start.Name.Local {
				if depth == 0 {
					return nil
				}
				depth--
			}
		}
	}
}

func parseEncoding(s string) (schema.Encoding, error) {
	switch s {
	case "unsigned", "":
		return schema.EncodingUnsigned, nil
	case "signed":
		return schema.EncodingSigned, nil
	case "six-bit-ascii":
		return schema.EncodingSixBitASCII, nil
	case "octal":
		return schema.EncodingOctal, nil
	case "hex":
		return schema.EncodingHex, nil
	case "ascii-string":
		return schema.EncodingASCIIString, nil
	default:
		return 0, fmt.Errorf("unknown encoding %q", s)
	}
}

// parseScale accepts either a decimal ("0.25") or a rational ("1/128")
// BitsConst text payload.
func parseScale(s string) (schema.Scale, error) {
	s = strings.TrimSpace(s)
	if idx := strings.IndexByte(s, '/'); idx >= 0 {
		num, err := strconv.ParseFloat(s[:idx], 64)
		if err != nil {
			return schema.Scale{}, err
		}
		den, err := strconv.ParseFloat(s[idx+1:], 64)
		if err != nil {
			return schema.Scale{}, err
		}
		return schema.Scale{Numerator: num, Denominator: den}, nil
	}
	val, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return schema.Scale{}, err
	}
	return schema.Scale{Numerator: val, Denominator: 1}, nil
}

func parseUint8(s string) (uint8, error) {
	v, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return 0, err
	}
	if v < 1 {
		return 0, fmt.Errorf("category number must be 1..255, got %d", v)
	}
	return uint8(v), nil
}

func parsePositiveInt(s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if v < 1 {
		return 0, fmt.Errorf("must be positive, got %d", v)
	}
	return v, nil
}
