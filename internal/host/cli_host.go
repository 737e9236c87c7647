package host

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/tacogips/rptnew/internal/bundle"
	"github.com/tacogips/rptnew/internal/debug"
	"github.com/tacogips/rptnew/internal/report"
)

// CLIOptions configures a CLIHost.
type CLIOptions struct {
	// Out receives rendered cheat sheets.
	Out io.Writer
	// CheatSheets holds cheat sheets as <CheatSheetDir>/<id>.md.
	CheatSheets fs.FS
	// Color enables styled markdown rendering.
	Color bool
	// Width wraps rendered cheat sheets. Zero keeps the renderer default.
	Width int
	// EditorCommand is the external editor. Empty falls back to $VISUAL,
	// then $EDITOR.
	EditorCommand string
	// Launch runs the external editor on the report after each save.
	Launch bool
	// Stdin, Stdout and Stderr are attached to the external editor.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// CLIHost is a terminal host. Editors are report documents loaded in memory,
// optionally followed by an external editor process.
type CLIHost struct {
	*Dispatcher
	opts CLIOptions
}

var _ Host = (*CLIHost)(nil)

// NewCLIHost creates a host whose UI goroutine is bound to ctx.
func NewCLIHost(ctx context.Context, opts CLIOptions, sink ErrorSink) *CLIHost {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.CheatSheets == nil {
		opts.CheatSheets = bundle.FS()
	}
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	return &CLIHost{
		Dispatcher: NewDispatcher(ctx, sink),
		opts:       opts,
	}
}

// OpenEditor loads the report at path.
func (h *CLIHost) OpenEditor(ctx context.Context, path string) (Editor, error) {
	debug.Debug("[host] Opening editor on %s", path)

	design, err := report.Open(path)
	if err != nil {
		return nil, NewHostError(HostEditorOpenFailed, "failed to open report in editor", path, err)
	}

	return &documentEditor{
		design:  design,
		command: h.editorCommand(),
		launch:  h.opts.Launch,
		opts:    h.opts,
	}, nil
}

// ShowCheatSheet renders the cheat sheet markdown to Out.
func (h *CLIHost) ShowCheatSheet(ctx context.Context, id string) error {
	name := path.Join(bundle.CheatSheetDir, id+bundle.CheatSheetExt)
	debug.Debug("[host] Showing cheat sheet %s", name)

	if id == "" || strings.ContainsAny(id, `/\`) {
		return NewHostError(HostCheatSheetNotFound, "unknown cheat sheet", id, nil)
	}

	data, err := fs.ReadFile(h.opts.CheatSheets, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return NewHostError(HostCheatSheetNotFound, "unknown cheat sheet", id, nil)
		}
		return NewHostError(HostCheatSheetNotFound, "failed to read cheat sheet", id, err)
	}

	_, err = io.WriteString(h.opts.Out, h.render(string(data)))
	return err
}

// render formats markdown for the terminal, falling back to the raw text.
func (h *CLIHost) render(content string) string {
	var options []glamour.TermRendererOption
	if h.opts.Color {
		options = append(options, glamour.WithAutoStyle())
	} else {
		options = append(options, glamour.WithStandardStyle("notty"))
	}
	if h.opts.Width > 0 {
		options = append(options, glamour.WithWordWrap(h.opts.Width))
	}

	renderer, err := glamour.NewTermRenderer(options...)
	if err != nil {
		debug.Debug("[host] Markdown renderer unavailable: %v", err)
		return content
	}

	rendered, err := renderer.Render(content)
	if err != nil {
		debug.Debug("[host] Markdown rendering failed: %v", err)
		return content
	}
	return rendered
}

func (h *CLIHost) editorCommand() string {
	if h.opts.EditorCommand != "" {
		return h.opts.EditorCommand
	}
	if v := os.Getenv("VISUAL"); v != "" {
		return v
	}
	return os.Getenv("EDITOR")
}

// documentEditor edits an in-memory design.
type documentEditor struct {
	design  *report.Design
	command string
	launch  bool
	opts    CLIOptions
}

func (e *documentEditor) Design() report.Handle {
	return e.design
}

// DoSave writes the design and, when launching is enabled, hands the file to
// the external editor and waits for it to exit.
func (e *documentEditor) DoSave(ctx context.Context) error {
	if err := e.design.Save(); err != nil {
		return NewHostError(HostSaveFailed, "failed to save report", e.design.Path(), err)
	}

	if !e.launch {
		return nil
	}

	args := strings.Fields(e.command)
	if len(args) == 0 {
		return NewHostError(HostEditorLaunchFailed,
			"no editor configured (set editor.command, $VISUAL or $EDITOR)",
			e.design.Path(), nil)
	}

	debug.Debug("[host] Launching editor: %s %s", e.command, e.design.Path())
	cmd := exec.CommandContext(ctx, args[0], append(args[1:], e.design.Path())...)
	cmd.Stdin = e.opts.Stdin
	cmd.Stdout = e.opts.Stdout
	cmd.Stderr = e.opts.Stderr

	if err := cmd.Run(); err != nil {
		return NewHostError(HostEditorLaunchFailed,
			fmt.Sprintf("editor %q failed", args[0]),
			e.design.Path(), err)
	}
	return nil
}
