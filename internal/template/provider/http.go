package provider

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"

	"github.com/tacogips/rptnew/internal/debug"
)

// HTTPOptions configures the HTTP provider.
type HTTPOptions struct {
	// Timeout bounds each request. Zero means no timeout.
	Timeout time.Duration
	// RetryMax is the maximum number of retries.
	RetryMax int
	// RetryWaitMin and RetryWaitMax bound the backoff between retries.
	// Zero values keep the client defaults.
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
}

// HTTPProvider implements Provider for templates served over http(s).
type HTTPProvider struct {
	client *retryablehttp.Client
}

// NewHTTPProvider creates an HTTP provider with a retrying client.
func NewHTTPProvider(opts HTTPOptions) *HTTPProvider {
	client := retryablehttp.NewClient()
	client.RetryMax = opts.RetryMax
	if opts.RetryWaitMin > 0 {
		client.RetryWaitMin = opts.RetryWaitMin
	}
	if opts.RetryWaitMax > 0 {
		client.RetryWaitMax = opts.RetryWaitMax
	}
	client.HTTPClient.Timeout = opts.Timeout
	client.Logger = &retryLogger{log: debug.Logger("http")}
	// Hand the final response back so the status can be classified.
	client.ErrorHandler = retryablehttp.PassthroughErrorHandler

	return &HTTPProvider{client: client}
}

// Name returns the provider name.
func (p *HTTPProvider) Name() string {
	return "http"
}

// Open issues a GET for reportPath and returns the response body.
func (p *HTTPProvider) Open(ctx context.Context, reportPath string) (io.ReadCloser, error) {
	debug.Debug("[http] Fetching: %s", reportPath)

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, reportPath, nil)
	if err != nil {
		return nil, NewInvalidURLError(p.Name(), reportPath, err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, NewTimeoutError(p.Name(), reportPath, err)
		}
		return nil, NewFetchError(p.Name(), reportPath, err)
	}

	debug.Debug("[http] Response status: %d", resp.StatusCode)
	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		drain(resp.Body)
		return nil, NewNotFoundError(p.Name(), reportPath)
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		drain(resp.Body)
		return nil, NewAuthError(p.Name(), reportPath)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		drain(resp.Body)
		return nil, NewProviderError(ProviderFetchFailed, p.Name(), reportPath,
			"unexpected status "+resp.Status, nil)
	}

	return resp.Body, nil
}

func drain(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, body)
	_ = body.Close()
}

// retryLogger adapts retryablehttp.LeveledLogger to zerolog.
type retryLogger struct {
	log zerolog.Logger
}

func (l *retryLogger) Error(msg string, keysAndValues ...interface{}) {
	l.log.Error().Fields(keysAndValues).Msg(msg)
}

func (l *retryLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.log.Warn().Fields(keysAndValues).Msg(msg)
}

func (l *retryLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug().Fields(keysAndValues).Msg(msg)
}

func (l *retryLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.log.Debug().Fields(keysAndValues).Msg(msg)
}
