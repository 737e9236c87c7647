package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/tacogips/rptnew/internal/build"
	"github.com/tacogips/rptnew/internal/config"
	"github.com/tacogips/rptnew/internal/debug"
)

// Version information. GitCommit and BuildDate are set by main.
var (
	Version   = build.Version()
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Global flags
var (
	globalNoColor bool
	globalQuiet   bool
	globalDebug   bool
	globalConfig  string
)

// Output streams, replaced in tests.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// loadedConfig is the configuration loaded before each command runs.
var loadedConfig *config.Config

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "rptnew",
	Short: "Create new report designs from templates",
	Long: `rptnew creates new report design (.rptdesign) files from templates.

Use "rptnew new" to:
  1. Choose where the report is created and its file name
  2. Choose a template from the catalog
  3. Set the report title, description and icon

The new report is then opened in the configured editor, and the template's
cheat sheet is shown when it has one.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		debug.SetDebug(globalDebug)
		debug.SetNoColor(globalNoColor)

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		loadedConfig = cfg

		if cfg.Output.Quiet {
			globalQuiet = true
		}
		if !cfg.Output.Color {
			globalNoColor = true
			debug.SetNoColor(true)
		}
		if globalNoColor || !isTerminal(stdout) {
			lipgloss.SetColorProfile(termenv.Ascii)
		}

		if cfg.Output.LogFile != "" {
			path, err := config.ExpandPath(cfg.Output.LogFile)
			if err != nil {
				return err
			}
			if err := debug.SetLogFile(path); err != nil {
				return err
			}
		}

		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		printError(err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVar(&globalNoColor, FlagNoColor, false, DescNoColor)
	rootCmd.PersistentFlags().BoolVarP(&globalQuiet, FlagQuiet, "q", false, DescQuiet)
	rootCmd.PersistentFlags().BoolVar(&globalDebug, FlagDebug, false, DescDebug)
	rootCmd.PersistentFlags().StringVarP(&globalConfig, FlagConfig, "c", "", DescConfig)

	// Add subcommands
	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(templatesCmd)
	rootCmd.AddCommand(suggestCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig loads the file named by --config, or the default config file
// when present, layered with RPTNEW_* environment variables.
func loadConfig() (*config.Config, error) {
	loader := config.NewLoader()

	var cfg *config.Config
	var err error
	if globalConfig != "" {
		path, expandErr := config.ExpandPath(globalConfig)
		if expandErr != nil {
			return nil, expandErr
		}
		debug.Debug("[cli] Loading config: %s", path)
		cfg, err = loader.Load(path)
	} else {
		debug.Debug("[cli] Loading default config: %s", config.DefaultConfigPath())
		cfg, err = loader.LoadOrDefault(config.DefaultConfigPath())
	}
	if err != nil {
		return nil, err
	}

	if err := loader.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// isTerminal reports whether w is a terminal.
func isTerminal(w interface{}) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// printError prints an error message to stderr
func printError(err error) {
	if globalQuiet {
		return
	}
	fmt.Fprintf(stderr, "%s %v\n", errorStyle.Render("Error:"), err)
}
