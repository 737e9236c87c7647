package app

import (
	"context"
	"errors"
	"os"

	"github.com/tacogips/rptnew/internal/bundle"
	"github.com/tacogips/rptnew/internal/config"
	"github.com/tacogips/rptnew/internal/debug"
	"github.com/tacogips/rptnew/internal/host"
	"github.com/tacogips/rptnew/internal/progress"
	"github.com/tacogips/rptnew/internal/report"
	"github.com/tacogips/rptnew/internal/template/catalog"
	"github.com/tacogips/rptnew/internal/template/generator"
	"github.com/tacogips/rptnew/internal/template/model"
	"github.com/tacogips/rptnew/internal/template/provider"
)

// NewWizard creates a wizard wired from configuration. The file page starts
// at the default location with an unused name.
func NewWizard(cfg *config.Config, h host.Host, monitor progress.Monitor) (*Wizard, error) {
	dir, err := DefaultLocation(cfg)
	if err != nil {
		return nil, err
	}

	name, err := SuggestFileName(cfg, dir)
	if err != nil {
		return nil, err
	}

	logger := debug.Logger("report")
	return &Wizard{
		File:         FilePage{Directory: dir, FileName: name},
		Materializer: NewMaterializer(cfg),
		Host:         h,
		Monitor:      monitor,
		Apply: report.ApplyOptions{
			Strict: cfg.Settings.Strict,
			Logger: &logger,
		},
	}, nil
}

// NewMaterializer creates a materializer resolving templates from the
// bundle, the filesystem, http(s) and S3.
func NewMaterializer(cfg *config.Config) *generator.Materializer {
	router := provider.NewRouter(provider.ProviderConfig{
		Bundle:   bundle.FS(),
		HTTP:     provider.DefaultHTTPOptions(cfg.Templates.HTTPTimeout, cfg.Templates.HTTPRetries),
		S3Region: cfg.Templates.S3Region,
	})

	m := generator.NewMaterializer(router)
	if cfg.Defaults.Extension != "" {
		m.Extension = cfg.Defaults.Extension
	}
	return m
}

// DefaultLocation returns the configured default location, or the working
// directory when none is configured.
func DefaultLocation(cfg *config.Config) (string, error) {
	if cfg.Defaults.Location != "" {
		dir, err := config.ExpandPath(cfg.Defaults.Location)
		if err != nil {
			return "", NewConfigLoadError("invalid defaults.location", err)
		}
		return dir, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", NewAppError(IOReadError, "failed to get current directory", err)
	}
	return cwd, nil
}

// SuggestFileName returns an unused report file name in dir.
func SuggestFileName(cfg *config.Config, dir string) (string, error) {
	s := generator.NewNameSuggester(cfg.Defaults.MaxSuffixAttempts)
	name, err := s.Suggest(dir, cfg.Defaults.BaseName, cfg.Defaults.Extension)
	if err != nil {
		return "", NewAppError(IOReadError, "failed to suggest a file name", err)
	}
	return name, nil
}

// LoadCatalog loads the bundled and user templates.
func LoadCatalog(cfg *config.Config) (*model.Catalog, error) {
	userDir := cfg.Templates.UserDir
	if userDir != "" {
		expanded, err := config.ExpandPath(userDir)
		if err != nil {
			return nil, NewConfigLoadError("invalid templates.user_dir", err)
		}
		userDir = expanded
	}

	cat, err := catalog.Load(bundle.FS(), userDir)
	if err != nil {
		return nil, NewAppError(IOReadError, "failed to load template catalog", err)
	}
	return cat, nil
}

// ResolveTemplate finds the template named by query in cat.
func ResolveTemplate(cat *model.Catalog, query string) (model.Template, error) {
	t, err := catalog.Find(cat, query)
	if err != nil {
		var catErr *catalog.CatalogError
		if errors.As(err, &catErr) && catErr.Type == catalog.CatalogUnknownTemplate {
			return model.Template{}, NewAppError(TemplateNotFound, "template not found", err)
		}
		return model.Template{}, NewValidationError("invalid template", err)
	}
	return t, nil
}

// NewReportOptions are the non-interactive inputs for NewReport.
type NewReportOptions struct {
	// Directory overrides the default location.
	Directory string
	// FileName overrides the suggested name.
	FileName string
	// Template is a catalog name, display name, path or URL. Empty selects
	// the first catalog entry.
	Template string
	// Settings is applied to the new report.
	Settings model.ReportSettings
	// ShowCheatSheet overrides the template's cheat sheet default.
	ShowCheatSheet *bool
}

// NewReport runs the wizard end to end without prompting.
func NewReport(ctx context.Context, cfg *config.Config, h host.Host, monitor progress.Monitor, opts NewReportOptions) (*FinishResult, error) {
	w, err := NewWizard(cfg, h, monitor)
	if err != nil {
		return nil, err
	}

	if opts.Directory != "" {
		w.File.Directory = opts.Directory
		if opts.FileName == "" {
			name, err := SuggestFileName(cfg, opts.Directory)
			if err != nil {
				return nil, err
			}
			w.File.FileName = name
		}
	}
	if opts.FileName != "" {
		w.File.FileName = opts.FileName
	}

	cat, err := LoadCatalog(cfg)
	if err != nil {
		return nil, err
	}
	var tmpl model.Template
	if opts.Template == "" {
		if len(cat.Templates) == 0 {
			return nil, NewAppError(TemplateNotFound, "template catalog is empty", nil)
		}
		tmpl = cat.Templates[0]
	} else {
		tmpl, err = ResolveTemplate(cat, opts.Template)
		if err != nil {
			return nil, err
		}
	}
	w.Template.Select(tmpl)
	if opts.ShowCheatSheet != nil {
		w.Template.ShowCheatSheet = *opts.ShowCheatSheet
	}

	w.Settings = opts.Settings
	return w.PerformFinish(ctx)
}
