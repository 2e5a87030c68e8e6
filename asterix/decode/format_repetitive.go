// decode/format_repetitive.go
//
// Repetitive decoding: a counter octet(s) followed by that many copies
// of the element Fixed, grounded on the teacher's UAP table entry for
// I048/250 (BDS Register Data), which the teacher declares as
// Repetitive but never actually decodes beyond skipping its length.
package decode

import "github.com/asterixgo/gobelix/asterix/schema"

func decodeRepetitive(r *schema.Repetitive, c *cursor) (*Sequence, error) {
	countBytes, err := c.take(r.CounterBytes)
	if err != nil {
		return nil, err
	}
	count := int(extractBits(countBytes, 1, r.CounterBytes*8))

	seq := &Sequence{Elements: make([]*Group, 0, count)}
	for i := 0; i < count; i++ {
		group, _, err := decodeFixed(r.Element, c)
		if err != nil {
			return seq, err
		}
		seq.Elements = append(seq.Elements, group)
	}
	return seq, nil
}
