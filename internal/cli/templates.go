package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tacogips/rptnew/internal/app"
)

// templatesCmd represents the templates command
var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List available report templates",
	Long: `List the bundled templates and the user templates found in
templates.user_dir.

Examples:
  rptnew templates
  rptnew templates --json`,
	Args: cobra.NoArgs,
	RunE: runTemplates,
}

var templatesJSON bool

func init() {
	templatesCmd.Flags().BoolVar(&templatesJSON, FlagJSON, false, DescJSON)
}

type templateEntry struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Description string `json:"description,omitempty"`
	Source      string `json:"source"`
	ReportPath  string `json:"report_path"`
	CheatSheet  string `json:"cheat_sheet_id,omitempty"`
	Preview     string `json:"preview_image,omitempty"`
	Size        int64  `json:"size"`
}

func runTemplates(cmd *cobra.Command, args []string) error {
	infos, err := app.ListTemplates(loadedConfig)
	if err != nil {
		return err
	}

	if templatesJSON {
		entries := make([]templateEntry, 0, len(infos))
		for _, t := range infos {
			entries = append(entries, templateEntry{
				Name:        t.Name,
				DisplayName: t.Title(),
				Description: t.Description,
				Source:      string(t.Source),
				ReportPath:  t.ReportPath,
				CheatSheet:  t.CheatSheetID,
				Preview:     t.PreviewImage,
				Size:        t.Size,
			})
		}
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal templates: %w", err)
		}
		fmt.Fprintln(stdout, string(data))
		return nil
	}

	if len(infos) == 0 {
		printInfo("No templates found")
		return nil
	}

	printHeader("Templates")
	for _, t := range infos {
		fmt.Fprintf(stdout, "  %s  %s %s\n",
			nameStyle.Render(t.Name),
			t.Title(),
			mutedStyle.Render(fmt.Sprintf("[%s, %s]", t.Source, formatBytes(t.Size))))
		if t.Description != "" {
			fmt.Fprintf(stdout, "      %s\n", mutedStyle.Render(t.Description))
		}
	}
	return nil
}
