package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tacogips/rptnew/internal/app"
)

// suggestCmd represents the suggest command
var suggestCmd = &cobra.Command{
	Use:   "suggest [dir]",
	Short: "Print an unused report file name",
	Long: `Print a report file name that does not exist in dir, trying
<base>.rptdesign, then <base>_1.rptdesign, <base>_2.rptdesign, and so on.

Without dir, the configured default location is used.

Examples:
  rptnew suggest
  rptnew suggest ./reports --base Sales`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSuggest,
}

var suggestBase string

func init() {
	suggestCmd.Flags().StringVar(&suggestBase, FlagBase, "", DescBase)
}

func runSuggest(cmd *cobra.Command, args []string) error {
	cfg := *loadedConfig
	if suggestBase != "" {
		cfg.Defaults.BaseName = suggestBase
	}

	var dir string
	if len(args) == 1 {
		dir = args[0]
	} else {
		var err error
		if dir, err = app.DefaultLocation(&cfg); err != nil {
			return err
		}
	}

	name, err := app.SuggestFileName(&cfg, dir)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, name)
	return nil
}
