package catalog

import (
	"fmt"
	"strings"
)

// CatalogErrorType categorizes catalog errors.
type CatalogErrorType int

const (
	// CatalogLoadFailed indicates the catalog could not be read.
	CatalogLoadFailed CatalogErrorType = iota
	// CatalogInvalid indicates the catalog content is malformed.
	CatalogInvalid
	// CatalogUnknownTemplate indicates no template matches a name.
	CatalogUnknownTemplate
)

// String returns the string representation of the error type.
func (t CatalogErrorType) String() string {
	switch t {
	case CatalogLoadFailed:
		return "LoadFailed"
	case CatalogInvalid:
		return "Invalid"
	case CatalogUnknownTemplate:
		return "UnknownTemplate"
	default:
		return "Unknown"
	}
}

// CatalogError represents catalog errors.
type CatalogError struct {
	// Type categorizes the error.
	Type CatalogErrorType
	// Message is the error message.
	Message string
	// Name is the template name involved, if any.
	Name string
	// Suggestions are close template names for an unknown name.
	Suggestions []string
	// Cause is the underlying error (if any).
	Cause error
}

// Error implements the error interface.
func (e *CatalogError) Error() string {
	msg := e.Message
	if len(e.Suggestions) > 0 {
		msg = fmt.Sprintf("%s (did you mean: %s?)", msg, strings.Join(e.Suggestions, ", "))
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap returns the underlying cause error for error unwrapping.
func (e *CatalogError) Unwrap() error {
	return e.Cause
}

// newCatalogError creates a new CatalogError.
func newCatalogError(typ CatalogErrorType, message string, cause error) *CatalogError {
	return &CatalogError{
		Type:    typ,
		Message: message,
		Cause:   cause,
	}
}
