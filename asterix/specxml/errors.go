// specxml/errors.go
package specxml

import (
	"errors"
	"fmt"
)

// ErrDefinition is the sentinel every DefinitionError unwraps to,
// grounded on the teacher's errors.go sentinel-plus-wrapped-detail
// convention (asterix.ErrInvalidMessage and friends).
var ErrDefinition = errors.New("asterix: definition error")

// DefinitionErrorKind classifies a schema-time failure.
type DefinitionErrorKind uint8

const (
	ErrMalformedXML DefinitionErrorKind = iota
	ErrUnknownElement
	ErrUnknownAttribute
	ErrOutOfRange
	ErrDuplicateCategory
	ErrIllegalFX
	ErrBitsCrossBoundary
	ErrUnresolvedReference
)

func (k DefinitionErrorKind) String() string {
	switch k {
	case ErrMalformedXML:
		return "malformed XML"
	case ErrUnknownElement:
		return "unknown element"
	case ErrUnknownAttribute:
		return "unknown attribute"
	case ErrOutOfRange:
		return "numeric attribute out of range"
	case ErrDuplicateCategory:
		return "duplicate non-default category"
	case ErrIllegalFX:
		return "FX marker in an illegal position"
	case ErrBitsCrossBoundary:
		return "Bits range crosses field boundary"
	case ErrUnresolvedReference:
		return "reference to undefined item ID"
	default:
		return "definition error"
	}
}

// DefinitionError carries the context of a schema-time failure: which
// file, which element on the stack, and a free-text detail.
type DefinitionError struct {
	File    string
	Stack   []string
	Kind    DefinitionErrorKind
	Element string
	Detail  string
	Cause   error
}

func (e *DefinitionError) Error() string {
	loc := e.Element
	if len(e.Stack) > 0 {
		loc = fmt.Sprintf("%v", e.Stack)
	}
	if e.File != "" {
		loc = e.File + ": " + loc
	}
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s: %s", loc, e.Kind, e.Detail)
	}
	return fmt.Sprintf("%s: %s", loc, e.Kind)
}

func (e *DefinitionError) Unwrap() error {
	if e.Cause != nil {
		return e.Cause
	}
	return ErrDefinition
}
