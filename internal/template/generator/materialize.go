package generator

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/tacogips/rptnew/internal/debug"
	"github.com/tacogips/rptnew/internal/template/model"
	"github.com/tacogips/rptnew/internal/template/provider"
)

// DefaultExtension is appended to file names that lack it.
const DefaultExtension = model.ReportExtension

// Materializer copies a template's bytes into a new report file.
type Materializer struct {
	// Provider resolves template report paths.
	Provider provider.Provider
	// Writer writes the destination file.
	Writer Writer
	// Extension is appended to file names that lack it.
	Extension string
}

// MaterializeResult describes a created report file.
type MaterializeResult struct {
	// Path is the absolute-or-as-given path of the created file.
	Path string
	// Bytes is the number of bytes written.
	Bytes int64
}

// NewMaterializer creates a Materializer writing to the filesystem.
func NewMaterializer(p provider.Provider) *Materializer {
	return &Materializer{
		Provider:  p,
		Writer:    NewFileWriter(),
		Extension: DefaultExtension,
	}
}

// Materialize creates dir/fileName with the template's exact bytes.
//
// The template is resolved before anything is created, so an unresolvable
// template leaves the filesystem untouched. The context is checked once,
// before copying starts; a copy in progress runs to completion. An existing
// file at the destination is replaced only after the full copy succeeds.
func (m *Materializer) Materialize(ctx context.Context, tmpl model.Template, dir, fileName string) (*MaterializeResult, error) {
	ext := m.Extension
	if ext == "" {
		ext = DefaultExtension
	}
	if dir == "" {
		dir = "."
	}

	if fileName == "" || filepath.Base(fileName) != fileName {
		return nil, newGeneratorError(GeneratorPathError,
			fmt.Sprintf("invalid file name %q", fileName),
			"",
			nil)
	}
	fileName = EnsureExtension(fileName, ext)

	dest := filepath.Join(dir, fileName)
	debug.DebugSection("Materialize")
	debug.DebugValue("template", tmpl.ReportPath)
	debug.DebugValue("destination", dest)

	src, err := m.Provider.Open(ctx, tmpl.ReportPath)
	if err != nil {
		if provider.IsNotFound(err) {
			return nil, newGeneratorError(GeneratorTemplateNotFound,
				fmt.Sprintf("template %q not found", tmpl.ReportPath),
				tmpl.ReportPath,
				err)
		}
		return nil, newGeneratorError(GeneratorReadFailed,
			fmt.Sprintf("failed to open template %q", tmpl.ReportPath),
			tmpl.ReportPath,
			err)
	}
	defer src.Close()

	if err := ctx.Err(); err != nil {
		debug.Debug("[generator] Cancelled before copy: %v", err)
		return nil, newGeneratorError(GeneratorCancelled, "operation cancelled", dest, err)
	}

	if err := m.Writer.CreateDir(dir); err != nil {
		return nil, err
	}

	n, err := m.Writer.WriteStream(dest, src, 0644)
	if err != nil {
		return nil, err
	}

	return &MaterializeResult{Path: dest, Bytes: n}, nil
}
