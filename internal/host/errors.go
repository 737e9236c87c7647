package host

import "fmt"

// HostErrorType categorizes host errors.
type HostErrorType int

const (
	// HostEditorOpenFailed indicates the editor could not open the report.
	HostEditorOpenFailed HostErrorType = iota
	// HostEditorLaunchFailed indicates the external editor failed to run.
	HostEditorLaunchFailed
	// HostSaveFailed indicates the editor could not save the report.
	HostSaveFailed
	// HostCheatSheetNotFound indicates an unknown cheat sheet id.
	HostCheatSheetNotFound
	// HostClosed indicates work was submitted after the host shut down.
	HostClosed
	// HostTaskPanicked indicates a UI task panicked.
	HostTaskPanicked
)

// String returns the string representation of the error type.
func (t HostErrorType) String() string {
	switch t {
	case HostEditorOpenFailed:
		return "EditorOpenFailed"
	case HostEditorLaunchFailed:
		return "EditorLaunchFailed"
	case HostSaveFailed:
		return "SaveFailed"
	case HostCheatSheetNotFound:
		return "CheatSheetNotFound"
	case HostClosed:
		return "Closed"
	case HostTaskPanicked:
		return "TaskPanicked"
	default:
		return "Unknown"
	}
}

// HostError represents host errors.
type HostError struct {
	// Type categorizes the error.
	Type HostErrorType
	// Message is the error message.
	Message string
	// Path is the report path or cheat sheet id involved.
	Path string
	// Cause is the underlying error (if any).
	Cause error
}

// Error implements the error interface.
func (e *HostError) Error() string {
	msg := e.Message
	if e.Path != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Path)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap returns the underlying cause error for error unwrapping.
func (e *HostError) Unwrap() error {
	return e.Cause
}

// NewHostError creates a new HostError.
func NewHostError(typ HostErrorType, message, path string, cause error) *HostError {
	return &HostError{
		Type:    typ,
		Message: message,
		Path:    path,
		Cause:   cause,
	}
}
