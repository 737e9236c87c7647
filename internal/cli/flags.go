package cli

// Common flag names and descriptions
const (
	// Flag names
	FlagConfig         = "config"
	FlagForce          = "force"
	FlagNoColor        = "no-color"
	FlagQuiet          = "quiet"
	FlagDebug          = "debug"
	FlagJSON           = "json"
	FlagDir            = "dir"
	FlagName           = "name"
	FlagTemplate       = "template"
	FlagDisplayName    = "display-name"
	FlagDescription    = "description"
	FlagIcon           = "icon"
	FlagCheatSheet     = "cheat-sheet"
	FlagNonInteractive = "non-interactive"
	FlagLaunch         = "launch"
	FlagBase           = "base"
	FlagPath           = "path"
	FlagRecursive      = "recursive"

	// Flag descriptions
	DescConfig         = "Path to config file"
	DescForce          = "Force overwrite"
	DescNoColor        = "Disable colored output"
	DescQuiet          = "Suppress output"
	DescDebug          = "Enable debug logging"
	DescJSON           = "Output as JSON"
	DescDir            = "Directory to create the report in"
	DescName           = "Report file name (.rptdesign is appended if missing)"
	DescTemplate       = "Template name, title, path or URL"
	DescDisplayName    = "Report display name"
	DescDescription    = "Report description"
	DescIcon           = "Report icon file (gif, png, jpg, bmp, ico)"
	DescCheatSheet     = "Show the template cheat sheet after creation"
	DescNonInteractive = "Never prompt; use flags and defaults"
	DescLaunch         = "Open the new report in the external editor"
	DescBase           = "Base file name to suggest from"
	DescPath           = "Config file to write"
	DescRecursive      = "Recursively check subdirectories"
)
