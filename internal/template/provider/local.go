package provider

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/tacogips/rptnew/internal/debug"
)

// LocalProvider implements Provider for local filesystem templates.
type LocalProvider struct {
	// BaseDir is the base directory for resolving relative paths.
	// If empty, uses current working directory.
	BaseDir string
}

// NewLocalProvider creates a new local filesystem provider.
func NewLocalProvider() *LocalProvider {
	return &LocalProvider{}
}

// NewLocalProviderWithBase creates a new local provider with a base directory.
func NewLocalProviderWithBase(baseDir string) *LocalProvider {
	return &LocalProvider{
		BaseDir: baseDir,
	}
}

// Name returns the provider name.
func (p *LocalProvider) Name() string {
	return "local"
}

// Open opens a template file by path or file:// URL.
func (p *LocalProvider) Open(ctx context.Context, reportPath string) (io.ReadCloser, error) {
	debug.Debug("[local] Opening path: %s", reportPath)

	path := reportPath
	if IsFileURL(path) {
		var err error
		path, err = ParseFileURL(path)
		if err != nil {
			debug.Debug("[local] Failed to parse file:// URL: %v", err)
			return nil, NewInvalidURLError(p.Name(), reportPath, err)
		}
		debug.Debug("[local] Extracted path from file:// URL: %s", path)
	}

	if path == "" {
		return nil, NewNotFoundError(p.Name(), reportPath)
	}

	absPath, err := p.resolvePath(path)
	if err != nil {
		debug.Debug("[local] Path resolution failed: %v", err)
		return nil, NewInvalidURLError(p.Name(), reportPath, err)
	}
	debug.Debug("[local] Absolute path: %s", absPath)

	info, err := os.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			debug.Debug("[local] Path does not exist: %s", absPath)
			return nil, NewNotFoundError(p.Name(), reportPath)
		}
		return nil, NewFetchError(p.Name(), reportPath, err)
	}
	if info.IsDir() {
		debug.Debug("[local] Path is a directory: %s", absPath)
		return nil, NewNotFoundError(p.Name(), reportPath)
	}

	f, err := os.Open(absPath)
	if err != nil {
		return nil, NewFetchError(p.Name(), reportPath, err)
	}
	return f, nil
}

// resolvePath converts a path to an absolute path.
// Relative paths are resolved against BaseDir, or the working directory.
func (p *LocalProvider) resolvePath(path string) (string, error) {
	// If path is already absolute, use it directly
	if filepath.IsAbs(path) {
		return filepath.Clean(path), nil
	}

	baseDir := p.BaseDir
	if baseDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get current directory: %w", err)
		}
		baseDir = cwd
	}

	absPath := filepath.Clean(filepath.Join(baseDir, path))
	if !filepath.IsAbs(absPath) {
		return "", fmt.Errorf("resolved path is not absolute: %s", absPath)
	}

	return absPath, nil
}
