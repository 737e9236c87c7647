package report

import "fmt"

// SemanticError reports a property value the design model rejects.
type SemanticError struct {
	// Property is the design property name (e.g. "iconFile").
	Property string
	// Value is the rejected value.
	Value string
	// Message explains the rejection.
	Message string
}

// Error implements the error interface.
func (e *SemanticError) Error() string {
	return fmt.Sprintf("invalid value %q for property %s: %s", e.Value, e.Property, e.Message)
}

func newSemanticError(property, value, message string) *SemanticError {
	return &SemanticError{
		Property: property,
		Value:    value,
		Message:  message,
	}
}

// ApplyErrorType categorizes settings application failures.
type ApplyErrorType int

const (
	// ApplyFieldRejected indicates at least one field was rejected in strict mode.
	ApplyFieldRejected ApplyErrorType = iota
	// ApplySaveFailed indicates the design could not be persisted.
	ApplySaveFailed
)

// String returns the string representation of the error type.
func (t ApplyErrorType) String() string {
	switch t {
	case ApplyFieldRejected:
		return "FieldRejected"
	case ApplySaveFailed:
		return "SaveFailed"
	default:
		return "Unknown"
	}
}

// ApplyError represents a failure to apply report settings.
type ApplyError struct {
	// Type categorizes the error.
	Type ApplyErrorType
	// Message is the error message.
	Message string
	// Fields lists the rejected fields, if any.
	Fields []FieldError
	// Cause is the underlying error, if any.
	Cause error
}

// Error implements the error interface.
func (e *ApplyError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	if len(e.Fields) > 0 {
		return fmt.Sprintf("%s: %d field(s) rejected, first: %v", e.Message, len(e.Fields), e.Fields[0])
	}
	return e.Message
}

// Unwrap returns the underlying cause for error wrapping.
func (e *ApplyError) Unwrap() error {
	return e.Cause
}

// FieldError pairs a settings field with the error it produced.
type FieldError struct {
	Field string
	Err   error
}

// String formats the field error.
func (f FieldError) String() string {
	return fmt.Sprintf("%s: %v", f.Field, f.Err)
}
