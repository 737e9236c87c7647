package cli

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/tacogips/rptnew/internal/app"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the rptnew configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	Long: `Write the default configuration as TOML.

Examples:
  rptnew config init
  rptnew config init --path ./rptnew.toml --force`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

// Config command flags
var (
	configInitPath  string
	configInitForce bool
)

func init() {
	configInitCmd.Flags().StringVar(&configInitPath, FlagPath, "", DescPath)
	configInitCmd.Flags().BoolVarP(&configInitForce, FlagForce, "f", false, DescForce)

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path, err := app.InitConfig(app.ConfigInitOptions{
		Path:  configInitPath,
		Force: configInitForce,
	})
	if err != nil {
		return err
	}
	printSuccess(fmt.Sprintf("Wrote configuration to %s", path))
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	data, err := toml.Marshal(loadedConfig)
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}
	fmt.Fprint(stdout, string(data))
	return nil
}
