// Package provider resolves template report paths to readable streams.
package provider

import (
	"context"
	"io"
)

// Provider abstracts template source locations (bundle, filesystem, HTTP, S3).
type Provider interface {
	// Open returns a stream over the template bytes at reportPath.
	// Returns a ProviderError of type ProviderNotFound when nothing exists there.
	// The caller closes the returned stream.
	Open(ctx context.Context, reportPath string) (io.ReadCloser, error)

	// Name returns the provider name (e.g., "bundle", "local").
	Name() string
}
