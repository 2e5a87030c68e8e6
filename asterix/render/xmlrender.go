// render/xmlrender.go
//
// XML rendering mirroring the schema tree structure (spec.md §4.4),
// built with hand-placed xml.StartElement/xml.EndElement tokens through
// an xml.Encoder — the same token-stream style as specxml's loader, kept
// symmetric rather than using struct-tag-driven Marshal.
package render

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/asterixgo/gobelix/asterix/decode"
)

func renderXML(tree *decode.AsterixData, filter *Filter) ([]byte, error) {
	buf := defaultPool.get(mediumBufferSize)
	defer defaultPool.put(buf)

	enc := xml.NewEncoder(buf)
	enc.Indent("", "  ")

	root := xml.StartElement{Name: xml.Name{Local: "AsterixData"}}
	if err := enc.EncodeToken(root); err != nil {
		return nil, err
	}

	for _, block := range tree.Blocks {
		blockEl := xml.StartElement{Name: xml.Name{Local: "DataBlock"},
			Attr: []xml.Attr{{Name: xml.Name{Local: "cat"}, Value: fmt.Sprintf("%d", block.Category)}}}
		if err := enc.EncodeToken(blockEl); err != nil {
			return nil, err
		}
		for _, record := range block.Records {
			recAttrs := []xml.Attr{}
			if record.Truncated {
				recAttrs = append(recAttrs, xml.Attr{Name: xml.Name{Local: "partial"}, Value: "true"})
			}
			recEl := xml.StartElement{Name: xml.Name{Local: "DataRecord"}, Attr: recAttrs}
			if err := enc.EncodeToken(recEl); err != nil {
				return nil, err
			}
			for _, item := range record.Items {
				if !filter.allowsItem(block.Category, item.ID) {
					continue
				}
				itemEl := xml.StartElement{Name: xml.Name{Local: "DataItem"},
					Attr: []xml.Attr{{Name: xml.Name{Local: "id"}, Value: item.ID}}}
				if err := enc.EncodeToken(itemEl); err != nil {
					return nil, err
				}
				if err := writeDecoded(enc, item.Value); err != nil {
					return nil, err
				}
				if err := enc.EncodeToken(itemEl.End()); err != nil {
					return nil, err
				}
			}
			if err := enc.EncodeToken(recEl.End()); err != nil {
				return nil, err
			}
		}
		if err := enc.EncodeToken(blockEl.End()); err != nil {
			return nil, err
		}
	}

	if err := enc.EncodeToken(root.End()); err != nil {
		return nil, err
	}
	if err := enc.Flush(); err != nil {
		return nil, err
	}

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())
	return bytes.TrimRight(out, "\n"), nil
}

func writeDecoded(enc *xml.Encoder, d decode.Decoded) error {
	switch v := d.(type) {
	case *decode.Scalar:
		name := v.Bits.ShortName
		if name == "" {
			name = v.Bits.Name
		}
		if name == "" {
			name = "Field"
		}
		el := xml.StartElement{Name: xml.Name{Local: name}}
		if err := enc.EncodeToken(el); err != nil {
			return err
		}
		if err := enc.EncodeToken(xml.CharData([]byte(scalarText(v)))); err != nil {
			return err
		}
		return enc.EncodeToken(el.End())
	case *decode.Group:
		for _, s := range v.Scalars {
			if err := writeDecoded(enc, s); err != nil {
				return err
			}
		}
		return nil
	case *decode.Sequence:
		for _, g := range v.Elements {
			el := xml.StartElement{Name: xml.Name{Local: "Element"}}
			if err := enc.EncodeToken(el); err != nil {
				return err
			}
			if err := writeDecoded(enc, g); err != nil {
				return err
			}
			if err := enc.EncodeToken(el.End()); err != nil {
				return err
			}
		}
		return nil
	case *decode.CompoundValue:
		for i, sub := range v.Secondaries {
			if sub == nil {
				continue
			}
			el := xml.StartElement{Name: xml.Name{Local: fmt.Sprintf("Secondary%d", i+1)}}
			if err := enc.EncodeToken(el); err != nil {
				return err
			}
			if err := writeDecoded(enc, sub); err != nil {
				return err
			}
			if err := enc.EncodeToken(el.End()); err != nil {
				return err
			}
		}
		return nil
	case *decode.ExplicitValue:
		if v.Inner != nil {
			return writeDecoded(enc, v.Inner)
		}
		el := xml.StartElement{Name: xml.Name{Local: "Raw"}}
		if err := enc.EncodeToken(el); err != nil {
			return err
		}
		if err := enc.EncodeToken(xml.CharData([]byte(fmt.Sprintf("%X", v.Raw)))); err != nil {
			return err
		}
		return enc.EncodeToken(el.End())
	case *decode.BDSValue:
		el := xml.StartElement{Name: xml.Name{Local: "BDS"},
			Attr: []xml.Attr{{Name: xml.Name{Local: "register"}, Value: fmt.Sprintf("%02X", v.Register)}}}
		if err := enc.EncodeToken(el); err != nil {
			return err
		}
		if v.Decoded != nil {
			if err := writeDecoded(enc, v.Decoded); err != nil {
				return err
			}
		} else if err := enc.EncodeToken(xml.CharData([]byte(fmt.Sprintf("%X", v.Raw)))); err != nil {
			return err
		}
		return enc.EncodeToken(el.End())
	default:
		return nil
	}
}
