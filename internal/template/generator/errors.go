package generator

import "fmt"

// GeneratorErrorType categorizes generator errors.
type GeneratorErrorType int

const (
	// GeneratorWriteFailed indicates a file write operation failed.
	GeneratorWriteFailed GeneratorErrorType = iota
	// GeneratorReadFailed indicates reading the template stream failed.
	GeneratorReadFailed
	// GeneratorTemplateNotFound indicates the template could not be resolved.
	GeneratorTemplateNotFound
	// GeneratorPathError indicates an invalid path or a failed existence check.
	GeneratorPathError
	// GeneratorCancelled indicates the run was cancelled before copying began.
	GeneratorCancelled
	// GeneratorNameExhausted indicates no free file name could be found.
	GeneratorNameExhausted
)

// String returns the string representation of the error type.
func (t GeneratorErrorType) String() string {
	switch t {
	case GeneratorWriteFailed:
		return "WriteFailed"
	case GeneratorReadFailed:
		return "ReadFailed"
	case GeneratorTemplateNotFound:
		return "TemplateNotFound"
	case GeneratorPathError:
		return "PathError"
	case GeneratorCancelled:
		return "Cancelled"
	case GeneratorNameExhausted:
		return "NameExhausted"
	default:
		return "Unknown"
	}
}

// GeneratorError represents generator-specific errors.
type GeneratorError struct {
	// Type categorizes the error.
	Type GeneratorErrorType
	// Message is the error message.
	Message string
	// File is the file path related to the error (if applicable).
	File string
	// Cause is the underlying error (if any).
	Cause error
}

// Error implements the error interface.
func (e *GeneratorError) Error() string {
	if e.File != "" {
		if e.Cause != nil {
			return fmt.Sprintf("%s (file: %s): %v", e.Message, e.File, e.Cause)
		}
		return fmt.Sprintf("%s (file: %s)", e.Message, e.File)
	}

	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}

	return e.Message
}

// Unwrap returns the underlying cause error for error unwrapping.
func (e *GeneratorError) Unwrap() error {
	return e.Cause
}

// newGeneratorError creates a new GeneratorError.
func newGeneratorError(typ GeneratorErrorType, message, file string, cause error) *GeneratorError {
	return &GeneratorError{
		Type:    typ,
		Message: message,
		File:    file,
		Cause:   cause,
	}
}
