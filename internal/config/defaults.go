package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// Application-wide names.
const (
	// AppName is the directory name used under the XDG base directories.
	AppName = "rptnew"
	// ReportExtension is the report design file extension.
	ReportExtension = ".rptdesign"
	// DefaultBaseName is the default base for suggested file names.
	DefaultBaseName = "NewReport"
	// DefaultMaxSuffixAttempts bounds the numeric suffix search.
	DefaultMaxSuffixAttempts = 10000
	// EnvPrefix is the prefix for configuration environment variables.
	EnvPrefix = "RPTNEW_"
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Defaults: DefaultsConfig{
			Location:          "",
			BaseName:          DefaultBaseName,
			Extension:         ReportExtension,
			MaxSuffixAttempts: DefaultMaxSuffixAttempts,
		},
		Templates: TemplateConfig{
			UserDir:     DefaultUserTemplateDir(),
			HTTPTimeout: 30,
			HTTPRetries: 3,
			S3Region:    "",
		},
		Settings: SettingsConfig{
			Strict: false,
		},
		Editor: EditorConfig{
			Command: "",
			Launch:  false,
		},
		Output: OutputConfig{
			Color:    true,
			Progress: true,
			Quiet:    false,
			LogFile:  "",
		},
	}
}

// DefaultConfigPath returns the default configuration file path.
func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, AppName, "config.toml")
}

// DefaultUserTemplateDir returns the default directory for user templates.
func DefaultUserTemplateDir() string {
	return filepath.Join(xdg.DataHome, AppName, "templates")
}

// DefaultLogFilePath returns the suggested log file location.
func DefaultLogFilePath() string {
	return filepath.Join(xdg.StateHome, AppName, AppName+".log")
}
