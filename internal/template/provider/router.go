package provider

import (
	"context"
	"io"
	"io/fs"
	"time"

	"github.com/tacogips/rptnew/internal/debug"
)

// ProviderConfig configures the providers behind a Router.
type ProviderConfig struct {
	// Bundle holds the bundled resources. Nil disables bundled lookup.
	Bundle fs.FS
	// BaseDir is the base directory for resolving relative local paths.
	BaseDir string
	// HTTP configures http(s) fetching.
	HTTP HTTPOptions
	// S3Region overrides the AWS region for s3:// paths.
	S3Region string
}

// Router dispatches report paths to the provider for their scheme.
// Plain paths are tried as bundled resources first, then on the filesystem.
type Router struct {
	Bundle Provider
	Local  Provider
	HTTP   Provider
	S3     Provider
}

// NewRouter creates a Router from configuration.
func NewRouter(cfg ProviderConfig) *Router {
	r := &Router{
		Local: NewLocalProviderWithBase(cfg.BaseDir),
		HTTP:  NewHTTPProvider(cfg.HTTP),
		S3:    NewS3Provider(cfg.S3Region),
	}
	if cfg.Bundle != nil {
		r.Bundle = NewBundleProvider(cfg.Bundle)
	}
	return r
}

// DefaultHTTPOptions converts config values in seconds and retry counts.
func DefaultHTTPOptions(timeoutSeconds, retries int) HTTPOptions {
	return HTTPOptions{
		Timeout:  time.Duration(timeoutSeconds) * time.Second,
		RetryMax: retries,
	}
}

// Name returns the provider name.
func (r *Router) Name() string {
	return "router"
}

// Open resolves reportPath through the matching provider.
func (r *Router) Open(ctx context.Context, reportPath string) (io.ReadCloser, error) {
	switch {
	case IsHTTPURL(reportPath):
		return r.open(ctx, r.HTTP, reportPath)
	case IsS3URL(reportPath):
		return r.open(ctx, r.S3, reportPath)
	case IsFileURL(reportPath):
		return r.open(ctx, r.Local, reportPath)
	}

	if r.Bundle != nil {
		rc, err := r.Bundle.Open(ctx, reportPath)
		if err == nil {
			debug.Debug("[router] Resolved %s from bundle", reportPath)
			return rc, nil
		}
		if !IsNotFound(err) {
			return nil, err
		}
	}

	return r.open(ctx, r.Local, reportPath)
}

func (r *Router) open(ctx context.Context, p Provider, reportPath string) (io.ReadCloser, error) {
	if p == nil {
		return nil, NewNotFoundError(r.Name(), reportPath)
	}
	debug.Debug("[router] Resolving %s with %s provider", reportPath, p.Name())
	return p.Open(ctx, reportPath)
}
