// facade.go re-exports the schema/decode/render subpackages behind a
// single import, so callers (and cmd/idefix) never need to know the
// internal package split.
package asterix

import (
	"github.com/asterixgo/gobelix/asterix/decode"
	"github.com/asterixgo/gobelix/asterix/render"
	"github.com/asterixgo/gobelix/asterix/schema"
	"github.com/asterixgo/gobelix/asterix/specxml"
)

// Definition is a compiled, read-only tree of category schemas shared
// across concurrent decodes.
type Definition = schema.Definition

// Category is one compiled ASTERIX category: its data item catalogue
// and UAPs.
type Category = schema.Category

// FileOpener resolves a path named in an index file to readable
// content; see specxml.FileOpener.
type FileOpener = specxml.FileOpener

// Options configures a Decode call: strictness, size limits, and an
// observability hook.
type Options = decode.Options

// Event is one observability notification emitted during Decode.
type Event = decode.Event

// EventKind discriminates the Event.Kind field.
type EventKind = decode.EventKind

// Status summarizes the outcome of a Decode call.
type Status = decode.Status

// StatusKind discriminates the Status.Kind field.
type StatusKind = decode.StatusKind

// AsterixData is the decoded tree produced by Decode and consumed by
// Render.
type AsterixData = decode.AsterixData

// Format selects a Render output encoding.
type Format = render.Format

// Filter narrows Render output to specific items and fields.
type Filter = render.Filter

// Render output formats; see render.Format.
const (
	FormatText  = render.FormatText
	FormatLine  = render.FormatLine
	FormatJSON  = render.FormatJSON
	FormatJSONH = render.FormatJSONH
	FormatXML   = render.FormatXML
)

// Status outcomes; see decode.StatusKind.
const (
	StatusOK             = decode.StatusOK
	StatusPartial        = decode.StatusPartial
	StatusTruncated      = decode.StatusTruncated
	StatusSchemaMismatch = decode.StatusSchemaMismatch
	StatusCancelled      = decode.StatusCancelled
)

// Observability event kinds; see decode.EventKind.
const (
	EventDefinitionLoaded = decode.EventDefinitionLoaded
	EventRecordDecoded    = decode.EventRecordDecoded
	EventDecodeWarning    = decode.EventDecodeWarning
	EventDecodeError      = decode.EventDecodeError
)

// LoadDefinition compiles a Definition from an XML index file, resolving
// every referenced category file through open.
func LoadDefinition(open FileOpener, indexPath string) (*Definition, error) {
	return specxml.LoadDefinition(open, indexPath)
}

// Decode walks data against def's categories, producing a decoded tree,
// the number of bytes consumed, and a Status summarizing recoverable
// errors encountered along the way. Data errors and cancellation are
// reported through the Status; the returned error is always nil.
func Decode(def *Definition, data []byte, opts Options) (*AsterixData, int, Status, error) {
	return decode.Decode(def, data, opts)
}

// Render converts a decoded tree into the given output format, honoring
// filter if non-nil.
func Render(tree *AsterixData, format Format, filter *Filter) ([]byte, error) {
	return render.Render(tree, format, filter)
}

// NewFilter creates an empty Filter; until items or fields are added it
// admits nothing. Pass a nil *Filter to Render to render everything.
func NewFilter() *Filter {
	return render.NewFilter()
}

// ParseFormat maps a CLI-facing format name ("text", "line", "json",
// "jsonh", "xml") to a Format.
func ParseFormat(s string) (Format, error) {
	return render.ParseFormat(s)
}
