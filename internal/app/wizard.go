package app

import (
	"context"
	"fmt"

	"github.com/tacogips/rptnew/internal/config"
	"github.com/tacogips/rptnew/internal/debug"
	"github.com/tacogips/rptnew/internal/host"
	"github.com/tacogips/rptnew/internal/progress"
	"github.com/tacogips/rptnew/internal/report"
	"github.com/tacogips/rptnew/internal/template/generator"
	"github.com/tacogips/rptnew/internal/template/model"
)

// Task names shown by the progress monitor.
const (
	taskCreating = "Creating %s"
	taskOpening  = "Opening file for editing..."
	// finishSteps is the number of progress steps in PerformFinish.
	finishSteps = 2
)

// FilePage holds the target directory and file name.
type FilePage struct {
	Directory string
	FileName  string
}

// IsComplete reports whether the page has a usable directory and name.
func (p FilePage) IsComplete() bool {
	return config.ValidateLocation(p.Directory) == nil &&
		config.ValidateFileName(p.FileName) == nil
}

// TemplatePage holds the chosen template.
type TemplatePage struct {
	Template       *model.Template
	ShowCheatSheet bool
}

// Select chooses t and resets the cheat sheet choice to the template default.
func (p *TemplatePage) Select(t model.Template) {
	p.Template = &t
	p.ShowCheatSheet = t.ShowCheatSheet
}

// IsComplete reports whether a template has been chosen.
func (p TemplatePage) IsComplete() bool {
	return p.Template != nil
}

// Wizard collects the new-report pages and creates the report.
type Wizard struct {
	File     FilePage
	Template TemplatePage
	Settings model.ReportSettings

	Materializer *generator.Materializer
	Host         host.Host
	Monitor      progress.Monitor
	Apply        report.ApplyOptions
}

// FinishResult describes the created report.
type FinishResult struct {
	// Path is the created report file.
	Path string
	// Bytes is the size of the created report.
	Bytes int64
	// Template is the template the report was created from.
	Template model.Template
}

// CanFinish reports whether both the file page and the template page are complete.
func (w *Wizard) CanFinish() bool {
	return w.Template.IsComplete() && w.File.IsComplete()
}

// PerformFinish creates the report file, then queues the editor hand-off on
// the host. Only creation errors are returned; failures while opening the
// editor, applying settings or showing the cheat sheet go to the host's
// error sink.
func (w *Wizard) PerformFinish(ctx context.Context) (*FinishResult, error) {
	if !w.CanFinish() {
		return nil, NewValidationError(w.incompleteReason(), nil)
	}
	if w.Materializer == nil || w.Host == nil {
		return nil, NewValidationError("wizard has no materializer or host", nil)
	}

	monitor := w.Monitor
	if monitor == nil {
		monitor = progress.NopMonitor{}
	}

	ext := w.Materializer.Extension
	if ext == "" {
		ext = generator.DefaultExtension
	}
	fileName := generator.EnsureExtension(w.File.FileName, ext)
	tmpl := *w.Template.Template

	debug.DebugSection("[app] PerformFinish")
	debug.DebugValue("[app] Directory", w.File.Directory)
	debug.DebugValue("[app] FileName", fileName)
	debug.DebugValue("[app] Template", tmpl.ReportPath)

	monitor.BeginTask(fmt.Sprintf(taskCreating, fileName), finishSteps)
	defer monitor.Done()

	res, err := w.Materializer.Materialize(ctx, tmpl, w.File.Directory, fileName)
	if err != nil {
		return nil, fromGeneratorError(err)
	}
	debug.Debug("[app] Created %s (%d bytes)", res.Path, res.Bytes)

	monitor.Worked(1)
	monitor.SetTaskName(taskOpening)

	h := w.Host
	path := res.Path
	settings := w.Settings
	applyOpts := w.Apply
	showCheatSheet := w.Template.ShowCheatSheet && tmpl.CheatSheetID != ""
	cheatSheetID := tmpl.CheatSheetID

	h.AsyncExec(func(ctx context.Context) error {
		return OpenAndApply(ctx, h, path, settings, applyOpts, showCheatSheet, cheatSheetID)
	})

	monitor.Worked(1)

	return &FinishResult{
		Path:     res.Path,
		Bytes:    res.Bytes,
		Template: tmpl,
	}, nil
}

// OpenAndApply opens the report in the host editor, applies settings, saves
// through the editor and optionally shows the cheat sheet. It runs on the
// host UI goroutine.
func OpenAndApply(ctx context.Context, h host.Host, path string, settings model.ReportSettings,
	opts report.ApplyOptions, showCheatSheet bool, cheatSheetID string) error {
	editor, err := h.OpenEditor(ctx, path)
	if err != nil {
		return NewAppError(EditorOpenFailure, "failed to open report "+path, err)
	}

	if _, err := report.ApplySettings(editor.Design(), settings, opts); err != nil {
		return NewAppError(SettingsApplyFailure, "failed to apply report settings", err)
	}

	if err := editor.DoSave(ctx); err != nil {
		return NewAppError(SettingsApplyFailure, "failed to save report", err)
	}

	if showCheatSheet && cheatSheetID != "" {
		if err := h.ShowCheatSheet(ctx, cheatSheetID); err != nil {
			return err
		}
	}

	return nil
}

func (w *Wizard) incompleteReason() string {
	if !w.Template.IsComplete() {
		return "no template selected"
	}
	if err := config.ValidateLocation(w.File.Directory); err != nil {
		return err.Error()
	}
	if err := config.ValidateFileName(w.File.FileName); err != nil {
		return err.Error()
	}
	return "wizard is incomplete"
}
