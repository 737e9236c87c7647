package app

import (
	"os"

	"github.com/tacogips/rptnew/internal/config"
	"github.com/tacogips/rptnew/internal/debug"
)

// ConfigInitOptions holds options for writing a default configuration file.
type ConfigInitOptions struct {
	// Path is the config file to write. Empty uses the default location.
	Path string
	// Force overwrites an existing file.
	Force bool
}

// InitConfig writes the default configuration and returns its path.
func InitConfig(opts ConfigInitOptions) (string, error) {
	path := opts.Path
	if path == "" {
		path = config.DefaultConfigPath()
	}

	debug.DebugSection("[app] InitConfig")
	debug.DebugValue("[app] Path", path)
	debug.DebugValue("[app] Force", opts.Force)

	if _, err := os.Stat(path); err == nil && !opts.Force {
		return "", NewValidationError("configuration already exists at "+path+" (use --force to overwrite)", nil)
	}

	if err := config.Save(path, config.DefaultConfig()); err != nil {
		return "", NewAppError(IOWriteError, "failed to write configuration", err)
	}

	return path, nil
}
