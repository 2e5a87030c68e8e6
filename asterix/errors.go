package asterix

import (
	"github.com/asterixgo/gobelix/asterix/decode"
	"github.com/asterixgo/gobelix/asterix/specxml"
)

// Sentinel errors callers can match against with errors.Is. Detail is
// carried in the wrapped TruncationError / SchemaMismatchError /
// specxml.DefinitionError values; see decode.Status.Errors for the
// recoverable instances surfaced during a Decode call.
var (
	// ErrDefinition marks a failure compiling a category definition from
	// XML: malformed markup, an unresolvable file reference, or a field
	// that fails validation.
	ErrDefinition = specxml.ErrDefinition
	// ErrTruncation marks a record or item that ran out of bytes before
	// its schema said it should.
	ErrTruncation = decode.ErrTruncation
	// ErrSchemaMismatch marks a category, FRN, or compound secondary index
	// that the Definition, active UAP, or compound descriptor has no entry
	// for. An unknown BDS register is not an error: it is reported as a
	// warning on the decoded value.
	ErrSchemaMismatch = decode.ErrSchemaMismatch
)

// TruncationError carries the byte position and shortfall of an
// ErrTruncation.
type TruncationError = decode.TruncationError

// SchemaMismatchError carries the category, FRN, and item identifying an
// ErrSchemaMismatch.
type SchemaMismatchError = decode.SchemaMismatchError

// DefinitionError carries the XML element, position, and failure kind of
// an ErrDefinition.
type DefinitionError = specxml.DefinitionError
