// render/render.go
package render

import (
	"fmt"

	"github.com/asterixgo/gobelix/asterix/decode"
)

// Format selects one of the five output shapes spec.md §4.4 defines.
type Format uint8

const (
	FormatText Format = iota
	FormatLine
	FormatJSON
	FormatJSONH
	FormatXML
)

func (f Format) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatLine:
		return "line"
	case FormatJSON:
		return "json"
	case FormatJSONH:
		return "jsonh"
	case FormatXML:
		return "xml"
	default:
		return "format"
	}
}

// ParseFormat maps a CLI-facing format name to a Format.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "text":
		return FormatText, nil
	case "line":
		return FormatLine, nil
	case "json":
		return FormatJSON, nil
	case "jsonh":
		return FormatJSONH, nil
	case "xml":
		return FormatXML, nil
	default:
		return 0, fmt.Errorf("render: unknown format %q", s)
	}
}

// Render converts a decoded tree into bytes per spec.md §4.4. Filter may
// be nil, meaning render everything. The text, line and json formats
// apply the filter per field; the jsonh and xml formats apply it per item
// only, so a field-scoped entry admits every field of that item.
func Render(tree *decode.AsterixData, format Format, filter *Filter) ([]byte, error) {
	switch format {
	case FormatText:
		return renderText(tree, filter), nil
	case FormatLine:
		return renderLine(tree, filter), nil
	case FormatJSON:
		return renderJSON(tree, filter)
	case FormatJSONH:
		return renderJSONH(tree, filter)
	case FormatXML:
		return renderXML(tree, filter)
	default:
		return nil, fmt.Errorf("render: unsupported format %v", format)
	}
}

// field is one flattened leaf value ready for the line/text/JSON
// renderers, produced by walking a DataItem's Decoded tree.
type field struct {
	Path   string
	Scalar *decode.Scalar
}

// flatten walks a Decoded value depth-first, naming each Scalar leaf
// by its Bits short name (or long name, falling back to the index) with
// structural markers for sequence/compound/BDS nesting, matching the
// parsed order the walker produced (spec.md §5: "Rendering order equals
// parsed order").
func flatten(path string, d decode.Decoded, out *[]field) {
	switch v := d.(type) {
	case *decode.Scalar:
		*out = append(*out, field{Path: path, Scalar: v})
	case *decode.Group:
		for i, s := range v.Scalars {
			name := s.Bits.ShortName
			if name == "" {
				name = s.Bits.Name
			}
			if name == "" {
				name = fmt.Sprintf("f%d", i)
			}
			p := name
			if path != "" {
				p = path + "." + name
			}
			*out = append(*out, field{Path: p, Scalar: s})
		}
	case *decode.Sequence:
		for i, g := range v.Elements {
			flatten(fmt.Sprintf("%s[%d]", path, i), g, out)
		}
	case *decode.CompoundValue:
		for i, sub := range v.Secondaries {
			if sub == nil {
				continue
			}
			flatten(fmt.Sprintf("%s.sec%d", path, i+1), sub, out)
		}
	case *decode.ExplicitValue:
		if v.Inner != nil {
			flatten(path, v.Inner, out)
		}
	case *decode.BDSValue:
		if v.Decoded != nil {
			flatten(fmt.Sprintf("%s.bds%02X", path, v.Register), v.Decoded, out)
		}
	}
}

// scalarText renders a Scalar's value with enough precision to preserve
// its scale factor, plus unit and enum label (spec.md §4.4).
func scalarText(s *decode.Scalar) string {
	b := s.Bits
	switch {
	case b.Enum != nil && s.EnumLabel != "":
		return fmt.Sprintf("%d (%s)", rawOf(s), s.EnumLabel)
	case b.Unit != "":
		return fmt.Sprintf("%s %s", formatScaled(s), b.Unit)
	case s.Text != "":
		return s.Text
	default:
		return formatScaled(s)
	}
}

func rawOf(s *decode.Scalar) int64 {
	return s.Signed + int64(s.Raw) // exactly one of these is nonzero-meaningful per encoding
}

func formatScaled(s *decode.Scalar) string {
	if s.Text != "" {
		return s.Text
	}
	if s.Bits.Scale.Factor() == 1 {
		return fmt.Sprintf("%d", rawOf(s))
	}
	return fmt.Sprintf("%g", s.Scaled)
}
