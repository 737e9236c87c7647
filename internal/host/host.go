// Package host provides the editor host the new-report flow hands off to:
// opening an editor on the created report, showing cheat sheets, and running
// UI work on a single goroutine.
package host

import (
	"context"

	"github.com/tacogips/rptnew/internal/report"
)

// Editor is an open report editor.
type Editor interface {
	// Design returns the document being edited.
	Design() report.Handle
	// DoSave persists the editor state.
	DoSave(ctx context.Context) error
}

// Host is the environment that owns editors and help.
type Host interface {
	// OpenEditor opens an editor on the report at path.
	OpenEditor(ctx context.Context, path string) (Editor, error)
	// ShowCheatSheet shows the cheat sheet with the given id.
	ShowCheatSheet(ctx context.Context, id string) error
	// AsyncExec queues fn on the UI goroutine and returns immediately.
	// Errors from fn go to the host error sink.
	AsyncExec(fn func(ctx context.Context) error)
}
