// decode/walker.go
//
// The FSPEC & Record Walker (spec.md §4.2, "HARDEST SUBSYSTEM"): UAP
// selection via trial walk, FSPEC consumption, and FRN-ordered item
// dispatch. Grounded on the teacher's CategoryDecoder.decodeRecord /
// Record.Decode loop, generalized from one hardcoded UAP per category to
// a selectable set of UAP alternatives.
package decode

import (
	"errors"
	"fmt"
	"sort"

	"github.com/asterixgo/gobelix/asterix/schema"
)

func sortedByFRN(items []schema.UAPItem) []schema.UAPItem {
	out := append([]schema.UAPItem(nil), items...)
	sort.Slice(out, func(i, j int) bool { return out[i].FRN < out[j].FRN })
	return out
}

// selectUAP implements spec.md §4.2 step 1: try each conditional UAP's
// guard against a trial walk that never touches the real cursor, first
// match wins, default UAP otherwise.
func selectUAP(cat *schema.Category, c *cursor) (*schema.UAP, error) {
	def := cat.DefaultUAP()
	for _, u := range cat.ConditionalUAPs() {
		matched, err := evaluateCondition(cat, def, u.Condition, c)
		if err == nil && matched {
			return u, nil
		}
	}
	if def == nil {
		return nil, &SchemaMismatchError{Category: cat.Number, Detail: "no default UAP and no conditional UAP matched"}
	}
	return def, nil
}

// evaluateCondition peek-decodes the default UAP's items, in FRN order,
// up to and including the condition's referenced item, entirely within a
// cloned cursor, then extracts the guarded bit from that item's raw
// bytes (spec.md §4.2: "Selection must not consume input").
func evaluateCondition(cat *schema.Category, def *schema.UAP, cond *schema.UAPCondition, c *cursor) (bool, error) {
	if def == nil {
		return false, fmt.Errorf("no default UAP to resolve condition item %s", cond.ItemID)
	}
	trial := c.clone()
	present, _, err := decodeFSPEC(trial)
	if err != nil {
		return false, err
	}
	for _, item := range sortedByFRN(def.Items) {
		if item.IsFX() || !present[item.FRN] {
			continue
		}
		desc, ok := cat.Item(item.ItemID)
		if !ok {
			return false, fmt.Errorf("unresolved item %s", item.ItemID)
		}
		start := trial.pos
		if _, err := decodeFormat(cat.Number, item.ItemID, desc.Format, trial); err != nil {
			return false, err
		}
		if item.ItemID == cond.ItemID {
			raw := trial.data[start:trial.pos]
			bit := int64(extractBits(raw, cond.Bit, cond.Bit))
			return bit == cond.Value, nil
		}
	}
	return false, fmt.Errorf("condition item %s not present in FSPEC", cond.ItemID)
}

// decodeRecord implements spec.md §4.2 steps 2-4 for a single record
// occupying the front of c.
func decodeRecord(cat *schema.Category, c *cursor) (*DataRecord, error) {
	uap, err := selectUAP(cat, c)
	if err != nil {
		return nil, err
	}

	record := &DataRecord{Category: cat.Number, UAP: uap}

	present, _, err := decodeFSPEC(c)
	if err != nil {
		record.Truncated = true
		return record, err
	}

	for _, item := range sortedByFRN(uap.Items) {
		if !present[item.FRN] || item.IsFX() {
			continue
		}
		desc, ok := cat.Item(item.ItemID)
		if !ok {
			return record, &SchemaMismatchError{Category: cat.Number, FRN: item.FRN, ItemID: item.ItemID,
				Detail: "UAP references unknown item ID"}
		}
		decoded, err := decodeFormat(cat.Number, item.ItemID, desc.Format, c)
		if err != nil {
			record.Truncated = true
			record.Items = append(record.Items, &DataItem{ID: item.ItemID, Description: desc, Value: decoded})
			return record, err
		}
		record.Items = append(record.Items, &DataItem{ID: item.ItemID, Description: desc, Value: decoded})
	}

	return record, nil
}

// decodeBlock walks every record in one DataBlock's body. A record-level
// failure abandons the rest of the block (spec.md §4.2 Failure
// semantics: "recoverable at the DataBlock boundary").
func decodeBlock(cat *schema.Category, catNum uint8, body []byte, opts Options) (*DataBlock, []error) {
	block := &DataBlock{Category: catNum}
	c := newCursor(body)
	var errs []error

	for c.remaining() > 0 {
		if opts.Cancel != nil && opts.Cancel() {
			break
		}
		record, err := decodeRecord(cat, c)
		if record != nil {
			block.Records = append(block.Records, record)
			opts.notify(Event{Kind: EventRecordDecoded, Category: catNum, ItemsN: len(record.Items)})
		}
		if err != nil {
			errs = append(errs, err)
			opts.notify(Event{Kind: EventDecodeError, Category: catNum, Detail: err.Error()})
			break
		}
	}

	if c.remaining() > 0 {
		detail := fmt.Sprintf("%d trailing bytes in cat %d block", c.remaining(), catNum)
		if opts.Strict {
			errs = append(errs, errors.New(detail))
		} else {
			opts.notify(Event{Kind: EventDecodeWarning, Category: catNum, Detail: detail, Position: c.pos})
		}
	}
	return block, errs
}

// Decode is the core's single entry point (spec.md §6): it walks every
// CAT/LEN-framed DataBlock in data, recovering at block boundaries, and
// returns however much of the tree it could build along with a summary
// Status.
func Decode(def *schema.Definition, data []byte, opts Options) (*AsterixData, int, Status, error) {
	result := &AsterixData{}
	c := newCursor(data)
	var allErrors []error
	var finalTruncation *TruncationError

	for c.remaining() > 0 {
		if opts.Cancel != nil && opts.Cancel() {
			return result, c.pos, Status{Kind: StatusCancelled, Position: c.pos, Errors: allErrors}, nil
		}

		if c.remaining() < 3 {
			finalTruncation = &TruncationError{Position: c.pos, Wanted: 3, Available: c.remaining()}
			allErrors = append(allErrors, finalTruncation)
			break
		}
		header, _ := c.take(3)
		catNum := header[0]
		length := int(header[1])<<8 | int(header[2])

		if length < 3 {
			allErrors = append(allErrors, fmt.Errorf("%w: cat %d declares length %d < 3", ErrSchemaMismatch, catNum, length))
			break
		}
		if opts.MaxRecordSize > 0 && length-3 > opts.MaxRecordSize {
			allErrors = append(allErrors, fmt.Errorf("%w: cat %d block body %d exceeds max record size %d",
				ErrSchemaMismatch, catNum, length-3, opts.MaxRecordSize))
			break
		}
		if c.remaining() < length-3 {
			finalTruncation = &TruncationError{Position: c.pos - 3, Wanted: length, Available: c.remaining() + 3}
			allErrors = append(allErrors, finalTruncation)
			c.pos -= 3
			break
		}
		body, _ := c.take(length - 3)

		cat, ok := def.Category(catNum)
		if !ok {
			err := &SchemaMismatchError{Category: catNum, Detail: "category not loaded in Definition"}
			allErrors = append(allErrors, err)
			opts.notify(Event{Kind: EventDecodeError, Category: catNum, Detail: err.Error()})
			continue
		}

		block, blockErrs := decodeBlock(cat, catNum, body, opts)
		result.Blocks = append(result.Blocks, block)
		for _, e := range blockErrs {
			allErrors = append(allErrors, e)
			var te *TruncationError
			if errors.As(e, &te) {
				finalTruncation = te
			}
		}
		if opts.Cancel != nil && opts.Cancel() {
			return result, c.pos, Status{Kind: StatusCancelled, Position: c.pos, Errors: allErrors}, nil
		}
	}

	status := Status{Kind: StatusOK, Errors: allErrors}
	if finalTruncation != nil {
		status.Kind = StatusTruncated
		status.Position = finalTruncation.Position
	}
	return result, c.pos, status, nil
}
