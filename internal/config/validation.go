package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Validate validates the global configuration.
func Validate(config *Config) error {
	loader := NewLoader()
	return loader.Validate(config)
}

// ValidateLocation validates a target directory for new reports.
// The directory does not need to exist.
func ValidateLocation(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("location cannot be empty")
	}
	if strings.ContainsRune(path, 0) {
		return fmt.Errorf("location contains a null byte")
	}
	return nil
}

// ValidateFileName validates a report file name entered on the new-file page.
func ValidateFileName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return fmt.Errorf("file name cannot be empty")
	}
	if strings.ContainsAny(name, `/\`) || name != filepath.Base(name) {
		return fmt.Errorf("file name cannot contain path separators: %s", name)
	}
	if trimmed == "." || trimmed == ".." {
		return fmt.Errorf("invalid file name: %s", name)
	}
	if strings.ContainsRune(name, 0) {
		return fmt.Errorf("file name contains a null byte")
	}
	return nil
}
