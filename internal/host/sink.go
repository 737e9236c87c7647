package host

import (
	"sync"

	"github.com/rs/zerolog"
)

// ErrorSink receives errors from work the caller does not wait on.
type ErrorSink interface {
	Report(err error)
}

// LogSink logs reported errors and keeps them for later inspection.
type LogSink struct {
	log zerolog.Logger

	mu   sync.Mutex
	errs []error
}

// NewLogSink creates a sink that logs to l.
func NewLogSink(l zerolog.Logger) *LogSink {
	return &LogSink{log: l}
}

// Report logs err at error level and records it. Nil errors are ignored.
func (s *LogSink) Report(err error) {
	if err == nil {
		return
	}
	s.log.Error().Err(err).Msg("host task failed")

	s.mu.Lock()
	s.errs = append(s.errs, err)
	s.mu.Unlock()
}

// Errors returns the errors reported so far.
func (s *LogSink) Errors() []error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]error(nil), s.errs...)
}
