// decode/format_variable.go
//
// Variable decoding: an FX-chained sequence of Fixed parts, grounded on
// the teacher's asterix/fspec.go FX-loop idiom applied to a Variable's
// own per-part FX bit instead of FSPEC octets.
package decode

import "github.com/asterixgo/gobelix/asterix/schema"

func decodeVariable(v *schema.Variable, c *cursor) (*Sequence, error) {
	seq := &Sequence{}
	for i, part := range v.Parts {
		group, raw, err := decodeFixed(part, c)
		if err != nil {
			return seq, err
		}
		seq.Elements = append(seq.Elements, group)

		if i == len(v.Parts)-1 {
			break // schema exhausted regardless of what the FX bit says
		}
		if !fxContinues(part, raw) {
			break
		}
	}
	return seq, nil
}
