package generator

import (
	"io"
	"os"
	"path/filepath"

	"github.com/tacogips/rptnew/internal/debug"
)

// Writer writes files to the filesystem.
type Writer interface {
	// WriteStream copies r to path until EOF and returns the bytes written.
	WriteStream(path string, r io.Reader, mode os.FileMode) (int64, error)

	// CreateDir creates a directory and any necessary parent directories.
	CreateDir(path string) error
}

// FileWriter implements Writer for filesystem operations.
type FileWriter struct{}

// NewFileWriter creates a new FileWriter.
func NewFileWriter() Writer {
	return &FileWriter{}
}

// WriteStream copies r into path until EOF. The copy goes to a temporary
// file next to path that is renamed over path only after every byte is
// written and the file is closed, so a failed copy leaves no partial file and
// an existing file at path is replaced whole.
func (w *FileWriter) WriteStream(path string, r io.Reader, mode os.FileMode) (int64, error) {
	debug.Debug("[generator] Writing file: %s (mode: %o)", path, mode)

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return 0, newGeneratorError(GeneratorWriteFailed,
			"failed to create temporary file",
			path,
			err)
	}
	tempFile := tmp.Name()
	debug.Debug("[generator] Created temporary file: %s", tempFile)

	src := &readTracker{r: r}
	n, err := io.Copy(tmp, src)
	closeErr := tmp.Close()

	if err != nil {
		_ = os.Remove(tempFile) // Clean up temp file
		if src.err != nil {
			return n, newGeneratorError(GeneratorReadFailed,
				"failed to read template content",
				path,
				src.err)
		}
		return n, newGeneratorError(GeneratorWriteFailed,
			"failed to write file content",
			path,
			err)
	}

	if closeErr != nil {
		_ = os.Remove(tempFile) // Clean up temp file
		return n, newGeneratorError(GeneratorWriteFailed,
			"failed to close file",
			path,
			closeErr)
	}

	if err := os.Chmod(tempFile, mode); err != nil {
		_ = os.Remove(tempFile) // Clean up temp file
		return n, newGeneratorError(GeneratorWriteFailed,
			"failed to set file mode",
			path,
			err)
	}

	// Atomic rename
	debug.Debug("[generator] Renaming temporary file: %s -> %s", tempFile, path)
	if err := os.Rename(tempFile, path); err != nil {
		_ = os.Remove(tempFile) // Clean up temp file
		return n, newGeneratorError(GeneratorWriteFailed,
			"failed to rename temporary file",
			path,
			err)
	}

	debug.Debug("[generator] File written successfully: %s (%d bytes)", path, n)
	return n, nil
}

// CreateDir creates a directory and any necessary parent directories.
// Uses 0755 permissions for created directories.
func (w *FileWriter) CreateDir(path string) error {
	debug.Debug("[generator] Creating directory: %s", path)
	if err := os.MkdirAll(path, 0755); err != nil {
		return newGeneratorError(GeneratorWriteFailed,
			"failed to create directory",
			path,
			err)
	}
	return nil
}

// readTracker remembers the first non-EOF read error so copy failures can be
// attributed to the source or the destination.
type readTracker struct {
	r   io.Reader
	err error
}

func (t *readTracker) Read(p []byte) (int, error) {
	n, err := t.r.Read(p)
	if err != nil && err != io.EOF && t.err == nil {
		t.err = err
	}
	return n, err
}
