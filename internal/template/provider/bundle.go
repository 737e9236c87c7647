package provider

import (
	"context"
	"errors"
	"io"
	"io/fs"

	"github.com/tacogips/rptnew/internal/debug"
)

// BundleProvider implements Provider for resources embedded in the binary.
type BundleProvider struct {
	// FS holds the bundled resources.
	FS fs.FS
}

// NewBundleProvider creates a provider over fsys.
func NewBundleProvider(fsys fs.FS) *BundleProvider {
	return &BundleProvider{FS: fsys}
}

// Name returns the provider name.
func (p *BundleProvider) Name() string {
	return "bundle"
}

// Open opens a bundled resource. Leading slashes are ignored.
func (p *BundleProvider) Open(ctx context.Context, reportPath string) (io.ReadCloser, error) {
	name := bundlePath(reportPath)
	debug.Debug("[bundle] Opening resource: %s", name)

	if p.FS == nil || !fs.ValidPath(name) || name == "." {
		return nil, NewNotFoundError(p.Name(), reportPath)
	}

	f, err := p.FS.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, NewNotFoundError(p.Name(), reportPath)
		}
		return nil, NewFetchError(p.Name(), reportPath, err)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, NewFetchError(p.Name(), reportPath, err)
	}
	if info.IsDir() {
		_ = f.Close()
		return nil, NewNotFoundError(p.Name(), reportPath)
	}

	return f, nil
}
