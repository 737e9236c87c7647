package config

// Config represents the global rptnew configuration.
type Config struct {
	// Defaults configuration for the new-file page.
	Defaults DefaultsConfig `koanf:"defaults" toml:"defaults"`
	// Templates configuration for template sources.
	Templates TemplateConfig `koanf:"templates" toml:"templates"`
	// Settings configuration for applying report metadata.
	Settings SettingsConfig `koanf:"settings" toml:"settings"`
	// Editor configuration for the editor host.
	Editor EditorConfig `koanf:"editor" toml:"editor"`
	// Output configuration for display and logging.
	Output OutputConfig `koanf:"output" toml:"output"`
}

// DefaultsConfig represents default values for the new-file page.
type DefaultsConfig struct {
	// Location is the default directory new reports are created in.
	// Empty means the current working directory.
	Location string `koanf:"location" toml:"location"`
	// BaseName is the base used when suggesting a file name.
	BaseName string `koanf:"base_name" toml:"base_name"`
	// Extension is the report file extension, including the leading dot.
	Extension string `koanf:"extension" toml:"extension"`
	// MaxSuffixAttempts bounds the numeric suffix search before falling
	// back to a timestamp suffix.
	MaxSuffixAttempts int `koanf:"max_suffix_attempts" toml:"max_suffix_attempts"`
}

// TemplateConfig represents template source settings.
type TemplateConfig struct {
	// UserDir is scanned for user templates (*.rptdesign).
	UserDir string `koanf:"user_dir" toml:"user_dir"`
	// HTTPTimeout is the request timeout in seconds for http(s) templates.
	HTTPTimeout int `koanf:"http_timeout" toml:"http_timeout"`
	// HTTPRetries is the maximum number of retries for http(s) templates.
	HTTPRetries int `koanf:"http_retries" toml:"http_retries"`
	// S3Region overrides the AWS region for s3:// templates.
	S3Region string `koanf:"s3_region" toml:"s3_region"`
}

// SettingsConfig represents report metadata application settings.
type SettingsConfig struct {
	// Strict fails the run when any metadata field is rejected.
	// Otherwise rejected fields are logged as warnings.
	Strict bool `koanf:"strict" toml:"strict"`
}

// EditorConfig represents editor host settings.
type EditorConfig struct {
	// Command is the external editor command. Empty falls back to
	// $VISUAL, then $EDITOR.
	Command string `koanf:"command" toml:"command"`
	// Launch opens the new report in the external editor after saving.
	Launch bool `koanf:"launch" toml:"launch"`
}

// OutputConfig represents output and display settings.
type OutputConfig struct {
	// Color enables colored terminal output.
	Color bool `koanf:"color" toml:"color"`
	// Progress shows progress indicators during operations.
	Progress bool `koanf:"progress" toml:"progress"`
	// Quiet suppresses non-error output.
	Quiet bool `koanf:"quiet" toml:"quiet"`
	// LogFile receives JSON log lines. Empty disables file logging.
	LogFile string `koanf:"log_file" toml:"log_file"`
}
