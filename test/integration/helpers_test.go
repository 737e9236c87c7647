package integration

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tacogips/rptnew/internal/app"
	"github.com/tacogips/rptnew/internal/config"
	"github.com/tacogips/rptnew/internal/host"
	"github.com/tacogips/rptnew/internal/progress"
)

// copyFixtureToTemp copies a fixture template directory to a temp directory
// and returns the path of the copy.
func copyFixtureToTemp(t *testing.T, fixtureName, tempDir string) string {
	t.Helper()

	fixtureDir, err := filepath.Abs(filepath.Join("../fixtures/templates", fixtureName))
	if err != nil {
		t.Fatalf("failed to get fixture path: %v", err)
	}

	destDir := filepath.Join(tempDir, fixtureName)
	err = filepath.Walk(fixtureDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(fixtureDir, path)
		if err != nil {
			return err
		}
		destPath := filepath.Join(destDir, relPath)

		if info.IsDir() {
			return os.MkdirAll(destPath, 0755)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		return os.WriteFile(destPath, data, info.Mode())
	})
	if err != nil {
		t.Fatalf("failed to copy fixture: %v", err)
	}

	return destDir
}

// newConfig returns a config creating reports in location with user
// templates read from userDir.
func newConfig(location, userDir string) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Defaults.Location = location
	cfg.Templates.UserDir = userDir
	cfg.Templates.HTTPRetries = 0
	cfg.Output.Progress = false
	return cfg
}

// runNewReport creates a report through a terminal host and waits for the
// editor hand-off to finish. It returns the errors reported by the host.
func runNewReport(t *testing.T, cfg *config.Config, opts app.NewReportOptions) (*app.FinishResult, []error, error) {
	t.Helper()

	sink := host.NewLogSink(zerolog.Nop())
	h := host.NewCLIHost(context.Background(), host.CLIOptions{
		Out:    io.Discard,
		Stdout: io.Discard,
		Stderr: io.Discard,
	}, sink)

	res, err := app.NewReport(context.Background(), cfg, h, progress.NopMonitor{}, opts)
	h.Close()
	return res, sink.Errors(), err
}
