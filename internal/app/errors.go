package app

import (
	"errors"
	"fmt"

	"github.com/tacogips/rptnew/internal/template/generator"
)

// AppErrorType represents the type of application error.
type AppErrorType int

const (
	// TemplateNotFound indicates the chosen template could not be resolved.
	TemplateNotFound AppErrorType = iota
	// IOReadError indicates reading the template or the target directory failed.
	IOReadError
	// IOWriteError indicates creating the report file failed.
	IOWriteError
	// EditorOpenFailure indicates the host could not open the new report.
	EditorOpenFailure
	// SettingsApplyFailure indicates the report metadata could not be persisted.
	SettingsApplyFailure
	// UserCancelled indicates the run was cancelled before the copy started.
	UserCancelled
	// ValidationFailed indicates the wizard input is incomplete or invalid.
	ValidationFailed
	// ConfigLoadFailed indicates the configuration could not be loaded.
	ConfigLoadFailed
)

// String returns the string representation of the error type.
func (t AppErrorType) String() string {
	switch t {
	case TemplateNotFound:
		return "TemplateNotFound"
	case IOReadError:
		return "IOReadError"
	case IOWriteError:
		return "IOWriteError"
	case EditorOpenFailure:
		return "EditorOpenFailure"
	case SettingsApplyFailure:
		return "SettingsApplyFailure"
	case UserCancelled:
		return "UserCancelled"
	case ValidationFailed:
		return "ValidationFailed"
	case ConfigLoadFailed:
		return "ConfigLoadFailed"
	default:
		return "Unknown"
	}
}

// AppError represents an application-layer error.
type AppError struct {
	// Type is the error type.
	Type AppErrorType
	// Message is the error message.
	Message string
	// Cause is the underlying error.
	Cause error
}

// Error returns the error message.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewAppError creates a new AppError.
func NewAppError(errType AppErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}

// NewValidationError creates a validation error.
func NewValidationError(message string, cause error) *AppError {
	return NewAppError(ValidationFailed, message, cause)
}

// NewConfigLoadError creates a config load error.
func NewConfigLoadError(message string, cause error) *AppError {
	return NewAppError(ConfigLoadFailed, message, cause)
}

// IsType reports whether err is an AppError of the given type.
func IsType(err error, typ AppErrorType) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == typ
}

// fromGeneratorError maps materialization failures onto the app taxonomy.
func fromGeneratorError(err error) *AppError {
	var genErr *generator.GeneratorError
	if !errors.As(err, &genErr) {
		return NewAppError(IOWriteError, "failed to create report", err)
	}

	switch genErr.Type {
	case generator.GeneratorTemplateNotFound:
		return NewAppError(TemplateNotFound, "template not found", err)
	case generator.GeneratorReadFailed:
		return NewAppError(IOReadError, "failed to read template", err)
	case generator.GeneratorCancelled:
		return NewAppError(UserCancelled, "report creation cancelled", err)
	case generator.GeneratorPathError:
		return NewValidationError("invalid report file name", err)
	default:
		return NewAppError(IOWriteError, "failed to write report", err)
	}
}
