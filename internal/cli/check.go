package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tacogips/rptnew/internal/app"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check [path]",
	Short: "Validate report templates",
	Long: `Validate report design files before adding them to the user
template directory. A directory is scanned for files with the configured
report extension; hidden entries are skipped.

Examples:
  rptnew check ./templates
  rptnew check ./templates -r
  rptnew check custom.rptdesign`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

var checkRecursive bool

func init() {
	checkCmd.Flags().BoolVarP(&checkRecursive, FlagRecursive, "r", false, DescRecursive)
}

func runCheck(cmd *cobra.Command, args []string) error {
	path := "."
	if len(args) > 0 {
		path = args[0]
	}

	printInfo(fmt.Sprintf("Checking templates in: %s", path))

	result, err := app.CheckTemplate(cmd.Context(), app.CheckTemplateOptions{
		Path:      path,
		Recursive: checkRecursive,
		Extension: loadedConfig.Defaults.Extension,
	})
	if err != nil {
		return err
	}

	if result.FilesChecked == 0 {
		printWarning("No report templates found")
		return nil
	}

	printInfo(fmt.Sprintf("Files checked: %d", result.FilesChecked))

	if result.FilesWithErrors > 0 {
		printHeader("Errors Found")
		for _, checkErr := range result.Errors {
			printErrorMsg(fmt.Sprintf("%s - %s", checkErr.File, checkErr.Message))
		}
		return app.NewValidationError(fmt.Sprintf("%d file(s) with errors", result.FilesWithErrors), nil)
	}

	printSuccess("All templates are valid")
	return nil
}
