package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/tacogips/rptnew/internal/app"
	"github.com/tacogips/rptnew/internal/config"
	"github.com/tacogips/rptnew/internal/debug"
	"github.com/tacogips/rptnew/internal/host"
	"github.com/tacogips/rptnew/internal/progress"
	"github.com/tacogips/rptnew/internal/template/model"
)

// newCmd represents the new command
var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Create a new report from a template",
	Long: `Create a new report design file from a template.

When run in a terminal, missing values are prompted for across three pages:
the file location and name, the template, and the report settings. The
suggested file name never collides with an existing file.

Templates can be catalog names or titles, filesystem paths, file:// URLs,
http(s):// URLs, or s3://bucket/key URLs.

Examples:
  rptnew new
  rptnew new --template simple-listing --name Sales
  rptnew new -t ./templates/custom.rptdesign -d ./reports --non-interactive
  rptnew new -t first-report --display-name "My First Report" --cheat-sheet=false`,
	Args: cobra.NoArgs,
	RunE: runNew,
}

// New command flags
var (
	newDir            string
	newName           string
	newTemplate       string
	newDisplayName    string
	newDescription    string
	newIcon           string
	newCheatSheet     bool
	newNonInteractive bool
	newLaunch         bool
)

func init() {
	newCmd.Flags().StringVarP(&newDir, FlagDir, "d", "", DescDir)
	newCmd.Flags().StringVarP(&newName, FlagName, "n", "", DescName)
	newCmd.Flags().StringVarP(&newTemplate, FlagTemplate, "t", "", DescTemplate)
	newCmd.Flags().StringVar(&newDisplayName, FlagDisplayName, "", DescDisplayName)
	newCmd.Flags().StringVar(&newDescription, FlagDescription, "", DescDescription)
	newCmd.Flags().StringVar(&newIcon, FlagIcon, "", DescIcon)
	newCmd.Flags().BoolVar(&newCheatSheet, FlagCheatSheet, false, DescCheatSheet)
	newCmd.Flags().BoolVar(&newNonInteractive, FlagNonInteractive, false, DescNonInteractive)
	newCmd.Flags().BoolVar(&newLaunch, FlagLaunch, false, DescLaunch)
}

func runNew(cmd *cobra.Command, args []string) error {
	cfg := loadedConfig
	if cmd.Flags().Changed(FlagLaunch) {
		cfg.Editor.Launch = newLaunch
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	sink := host.NewLogSink(debug.Logger("host"))
	h := host.NewCLIHost(ctx, host.CLIOptions{
		Out:           stdout,
		Color:         !globalNoColor && isTerminal(stdout),
		Width:         terminalWidth(stdout),
		EditorCommand: cfg.Editor.Command,
		Launch:        cfg.Editor.Launch,
		Stdout:        stdout,
		Stderr:        stderr,
	}, sink)

	monitor := newMonitor(cfg)

	interactive := !newNonInteractive && isTerminal(os.Stdin) && isTerminal(stdout)
	debug.DebugValue("[cli] interactive", interactive)

	var (
		res *app.FinishResult
		err error
	)
	if interactive {
		res, err = runWizard(ctx, cmd, cfg, h, monitor)
	} else {
		res, err = app.NewReport(ctx, cfg, h, monitor, newReportOptions(cmd))
	}

	// Wait for the editor hand-off to finish before reporting.
	h.Close()

	if err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return app.NewAppError(app.UserCancelled, "cancelled", err)
		}
		return err
	}

	printSuccess(fmt.Sprintf("Created %s (%s) from %s", res.Path, formatBytes(res.Bytes), res.Template.Title()))

	if errs := sink.Errors(); len(errs) > 0 {
		for _, e := range errs {
			printWarning(e.Error())
		}
		return fmt.Errorf("report created, but opening it for editing failed")
	}
	return nil
}

// runWizard prompts for every page, using flags as defaults.
func runWizard(ctx context.Context, cmd *cobra.Command, cfg *config.Config, h host.Host, monitor progress.Monitor) (*app.FinishResult, error) {
	w, err := app.NewWizard(cfg, h, monitor)
	if err != nil {
		return nil, err
	}

	if newDir != "" {
		w.File.Directory = newDir
		if newName == "" {
			if w.File.FileName, err = app.SuggestFileName(cfg, newDir); err != nil {
				return nil, err
			}
		}
	}
	if newName != "" {
		w.File.FileName = newName
	}

	cat, err := app.LoadCatalog(cfg)
	if err != nil {
		return nil, err
	}
	if newTemplate != "" {
		tmpl, err := app.ResolveTemplate(cat, newTemplate)
		if err != nil {
			return nil, err
		}
		w.Template.Select(tmpl)
	}

	w.Settings = model.ReportSettings{
		DisplayName: newDisplayName,
		Description: newDescription,
		IconPath:    newIcon,
	}

	printHeader("New Report")
	if err := promptFilePage(&w.File); err != nil {
		return nil, err
	}
	if newTemplate == "" {
		if err := promptTemplatePage(cat, &w.Template); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed(FlagCheatSheet) {
		w.Template.ShowCheatSheet = newCheatSheet
	}
	if err := promptSettings(&w.Settings); err != nil {
		return nil, err
	}

	if !w.CanFinish() {
		return nil, app.NewValidationError("the wizard is incomplete", nil)
	}
	return w.PerformFinish(ctx)
}

func newReportOptions(cmd *cobra.Command) app.NewReportOptions {
	opts := app.NewReportOptions{
		Directory: newDir,
		FileName:  newName,
		Template:  newTemplate,
		Settings: model.ReportSettings{
			DisplayName: newDisplayName,
			Description: newDescription,
			IconPath:    newIcon,
		},
	}
	if cmd.Flags().Changed(FlagCheatSheet) {
		show := newCheatSheet
		opts.ShowCheatSheet = &show
	}
	return opts
}

func newMonitor(cfg *config.Config) progress.Monitor {
	if globalQuiet || !cfg.Output.Progress || !isTerminal(os.Stderr) {
		return progress.NopMonitor{}
	}
	return progress.NewBarMonitor(os.Stderr)
}

// terminalWidth returns the width of w when it is a terminal, or zero.
func terminalWidth(w interface{}) int {
	f, ok := w.(*os.File)
	if !ok || !isTerminal(f) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}
