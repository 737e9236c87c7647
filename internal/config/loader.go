package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	gotoml "github.com/pelletier/go-toml/v2"
)

// Loader defines the interface for loading configuration files.
type Loader interface {
	// Load loads configuration from the specified file path.
	Load(path string) (*Config, error)
	// LoadOrDefault loads configuration or returns defaults if file doesn't exist.
	LoadOrDefault(path string) (*Config, error)
	// Validate validates the configuration.
	Validate(config *Config) error
}

// FileLoader implements the Loader interface for file-based configuration loading.
// Values are layered: defaults, then the TOML file, then RPTNEW_* environment
// variables. A double underscore separates sections in variable names, e.g.
// RPTNEW_DEFAULTS__BASE_NAME sets defaults.base_name.
type FileLoader struct{}

// NewLoader creates a new FileLoader instance.
func NewLoader() Loader {
	return &FileLoader{}
}

// Load loads configuration from the specified file path.
func (l *FileLoader) Load(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, NewConfigErrorWithCause(ConfigNotFound, path, "configuration file not found", err)
		}
		return nil, NewConfigErrorWithCause(ConfigInvalid, path, "failed to read configuration file", err)
	}
	return l.load(path)
}

// LoadOrDefault loads configuration or returns defaults if file doesn't exist.
// Environment overrides apply in both cases.
func (l *FileLoader) LoadOrDefault(path string) (*Config, error) {
	cfg, err := l.Load(path)
	if err != nil {
		// If file not found, fall back to defaults plus environment
		if cfgErr, ok := err.(*ConfigError); ok && cfgErr.Type == ConfigNotFound {
			return l.load("")
		}
		return nil, err
	}
	return cfg, nil
}

// Validate validates the configuration.
func (l *FileLoader) Validate(config *Config) error {
	if config.Defaults.BaseName == "" {
		return NewConfigErrorWithField(ConfigValidationFailed, "", "defaults.base_name", "base name cannot be empty")
	}
	if strings.ContainsAny(config.Defaults.BaseName, `/\`) {
		return NewConfigErrorWithField(ConfigValidationFailed, "", "defaults.base_name", "base name cannot contain path separators")
	}
	if !strings.HasPrefix(config.Defaults.Extension, ".") || len(config.Defaults.Extension) < 2 {
		return NewConfigErrorWithField(ConfigValidationFailed, "", "defaults.extension", "extension must start with '.'")
	}
	if config.Defaults.MaxSuffixAttempts < 1 {
		return NewConfigErrorWithField(ConfigValidationFailed, "", "defaults.max_suffix_attempts", "max suffix attempts must be at least 1")
	}
	if config.Templates.HTTPTimeout < 0 {
		return NewConfigErrorWithField(ConfigValidationFailed, "", "templates.http_timeout", "timeout cannot be negative")
	}
	if config.Templates.HTTPRetries < 0 {
		return NewConfigErrorWithField(ConfigValidationFailed, "", "templates.http_retries", "retries cannot be negative")
	}
	return nil
}

// load layers the file at path (if non-empty) and the environment over defaults.
func (l *FileLoader) load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, NewConfigErrorWithCause(ConfigInvalid, path, "invalid TOML syntax", err)
		}
	}

	err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil)
	if err != nil {
		return nil, NewConfigErrorWithCause(ConfigInvalid, path, "failed to load environment overrides", err)
	}

	// Unmarshal over defaults so absent keys keep their default values
	cfg := DefaultConfig()
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, NewConfigErrorWithCause(ConfigInvalid, path, "failed to decode configuration", err)
	}

	return cfg, nil
}

// envKey maps RPTNEW_SECTION__KEY_NAME to section.key_name.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}

// Save writes the configuration as TOML to path, creating parent directories.
func Save(path string, cfg *Config) error {
	cleanPath := filepath.Clean(path)

	dir := filepath.Dir(cleanPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return NewConfigErrorWithCause(ConfigWriteFailed, cleanPath,
			fmt.Sprintf("failed to create directory %s", dir), err)
	}

	data, err := gotoml.Marshal(cfg)
	if err != nil {
		return NewConfigErrorWithCause(ConfigWriteFailed, cleanPath, "failed to marshal configuration", err)
	}

	if err := os.WriteFile(cleanPath, data, 0644); err != nil {
		return NewConfigErrorWithCause(ConfigWriteFailed, cleanPath, "failed to write configuration", err)
	}

	return nil
}

// ExpandPath expands ~ to home directory and evaluates relative paths.
func ExpandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}

	// Expand ~ to home directory
	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		if len(path) == 1 {
			return homeDir, nil
		}
		if path[1] == filepath.Separator {
			return filepath.Join(homeDir, path[2:]), nil
		}
	}

	// Make absolute path
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	return absPath, nil
}
