// schema/errors.go
package schema

import "errors"

// Schema-time validation errors, raised while a Category is being
// assembled by a loader (specxml.LoadDefinition reports them as text
// inside an error that names the file and unwraps to
// specxml.ErrDefinition).
var (
	ErrUnresolvedItemID  = errors.New("schema: UAP references unknown item ID")
	ErrDuplicateFRN      = errors.New("schema: duplicate FRN in UAP")
	ErrBitsOutOfRange    = errors.New("schema: Bits range crosses field boundary")
	ErrBitsOverlap       = errors.New("schema: Bits ranges overlap")
	ErrDuplicateCategory = errors.New("schema: duplicate non-default category for same number")
)
