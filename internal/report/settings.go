package report

import (
	"github.com/rs/zerolog"

	"github.com/tacogips/rptnew/internal/debug"
	"github.com/tacogips/rptnew/internal/template/model"
)

// Handle is the document surface settings are applied through. *Design
// implements it; editor hosts may hand out their own.
type Handle interface {
	SetDisplayName(value string) error
	SetDescription(value string) error
	SetIconFile(value string) error
	Save() error
}

// ApplyOptions controls how rejected fields are treated.
type ApplyOptions struct {
	// Strict fails without saving when any field is rejected.
	Strict bool
	// Logger receives a warning per rejected field. Nil uses the
	// "report" component logger.
	Logger *zerolog.Logger
}

// ApplyResult describes a completed settings application.
type ApplyResult struct {
	// FieldErrors lists fields the design rejected. Rejected fields keep
	// their previous value.
	FieldErrors []FieldError
}

// OK reports whether every field was accepted.
func (r *ApplyResult) OK() bool {
	return len(r.FieldErrors) == 0
}

// ApplySettings sets the display name, description and icon file in that
// order, then saves. Each field may fail independently; failures are logged as
// warnings and returned in the result. In strict mode any rejected field
// aborts before saving. A save failure is always returned.
func ApplySettings(h Handle, settings model.ReportSettings, opts ApplyOptions) (*ApplyResult, error) {
	logger := opts.Logger
	if logger == nil {
		l := debug.Logger("report")
		logger = &l
	}

	fields := []struct {
		name  string
		value string
		set   func(string) error
	}{
		{PropDisplayName, settings.DisplayName, h.SetDisplayName},
		{PropDescription, settings.Description, h.SetDescription},
		{PropIconFile, settings.IconPath, h.SetIconFile},
	}

	result := &ApplyResult{}
	for _, f := range fields {
		if err := f.set(f.value); err != nil {
			logger.Warn().Err(err).Str("field", f.name).Msg("report setting rejected")
			result.FieldErrors = append(result.FieldErrors, FieldError{Field: f.name, Err: err})
		}
	}

	if opts.Strict && !result.OK() {
		return result, &ApplyError{
			Type:    ApplyFieldRejected,
			Message: "report settings rejected",
			Fields:  result.FieldErrors,
		}
	}

	if err := h.Save(); err != nil {
		return result, &ApplyError{
			Type:    ApplySaveFailed,
			Message: "failed to save report settings",
			Fields:  result.FieldErrors,
			Cause:   err,
		}
	}

	debug.Debug("[report] Applied settings, %d field(s) rejected", len(result.FieldErrors))
	return result, nil
}
