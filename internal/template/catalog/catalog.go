// Package catalog builds the list of templates offered by the chooser from
// the bundled catalog and the user template directory.
package catalog

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
	"gopkg.in/yaml.v3"

	"github.com/tacogips/rptnew/internal/bundle"
	"github.com/tacogips/rptnew/internal/debug"
	"github.com/tacogips/rptnew/internal/report"
	"github.com/tacogips/rptnew/internal/template/model"
)

// maxSuggestions bounds the "did you mean" list.
const maxSuggestions = 3

// Load returns the bundled catalog followed by the templates found in
// userDir. A missing userDir is not an error.
func Load(bundled fs.FS, userDir string) (*model.Catalog, error) {
	cat, err := LoadBundled(bundled)
	if err != nil {
		return nil, err
	}

	if userDir == "" {
		return cat, nil
	}

	user, err := ScanUserDir(userDir)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(cat.Templates))
	for _, t := range cat.Templates {
		seen[t.Name] = true
	}
	for _, t := range user {
		if seen[t.Name] {
			l := debug.Logger("catalog")
			l.Warn().Str("name", t.Name).Str("path", t.ReportPath).
				Msg("user template shadows a bundled template name, skipped")
			continue
		}
		seen[t.Name] = true
		cat.Templates = append(cat.Templates, t)
	}

	return cat, nil
}

// LoadBundled parses the catalog file from the bundle.
func LoadBundled(fsys fs.FS) (*model.Catalog, error) {
	debug.Debug("[catalog] Loading bundled catalog: %s", bundle.CatalogFile)

	data, err := fs.ReadFile(fsys, bundle.CatalogFile)
	if err != nil {
		return nil, newCatalogError(CatalogLoadFailed, "failed to read bundled catalog", err)
	}

	var cat model.Catalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, newCatalogError(CatalogInvalid, "failed to parse bundled catalog", err)
	}

	if err := validate(&cat); err != nil {
		return nil, err
	}

	for i := range cat.Templates {
		cat.Templates[i].Source = model.SourceBundled
	}

	debug.Debug("[catalog] Loaded %d bundled templates", len(cat.Templates))
	return &cat, nil
}

// ScanUserDir returns a template for each report design directly inside dir,
// sorted by name. Titles and descriptions are read from the designs; a design
// that cannot be parsed is still listed under its file name.
func ScanUserDir(dir string) ([]model.Template, error) {
	debug.Debug("[catalog] Scanning user templates: %s", dir)

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			debug.Debug("[catalog] User template directory does not exist")
			return nil, nil
		}
		return nil, newCatalogError(CatalogLoadFailed,
			fmt.Sprintf("failed to read user template directory %s", dir), err)
	}

	var templates []model.Template
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != model.ReportExtension {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		t := model.Template{
			Name:       strings.TrimSuffix(entry.Name(), model.ReportExtension),
			ReportPath: path,
			Source:     model.SourceUser,
		}

		design, err := report.Open(path)
		if err != nil {
			l := debug.Logger("catalog")
			l.Warn().Err(err).Str("path", path).Msg("could not read user template metadata")
		} else {
			t.DisplayName = design.DisplayName()
			t.Description = design.Description()
		}

		templates = append(templates, t)
	}

	sort.Slice(templates, func(i, j int) bool {
		return templates[i].Name < templates[j].Name
	})

	debug.Debug("[catalog] Found %d user templates", len(templates))
	return templates, nil
}

// Find resolves query to a template. It matches a catalog name exactly, then
// a display name ignoring case. A query that looks like a path or URL yields
// an ad-hoc template for it. Otherwise the error carries fuzzy suggestions.
func Find(cat *model.Catalog, query string) (model.Template, error) {
	if t, ok := cat.Lookup(query); ok {
		return t, nil
	}

	for _, t := range cat.Templates {
		if t.DisplayName != "" && strings.EqualFold(t.DisplayName, query) {
			return t, nil
		}
	}

	if looksLikePath(query) {
		debug.Debug("[catalog] Using %s as an ad-hoc template", query)
		base := filepath.Base(filepath.FromSlash(query))
		return model.Template{
			Name:       strings.TrimSuffix(base, model.ReportExtension),
			ReportPath: query,
			Source:     model.SourceAdHoc,
		}, nil
	}

	return model.Template{}, &CatalogError{
		Type:        CatalogUnknownTemplate,
		Message:     fmt.Sprintf("unknown template %q", query),
		Name:        query,
		Suggestions: Suggest(cat, query),
	}
}

// Suggest returns up to three template names that fuzzily match query.
func Suggest(cat *model.Catalog, query string) []string {
	if query == "" {
		return nil
	}

	search := make([]string, len(cat.Templates))
	for i, t := range cat.Templates {
		search[i] = strings.ToLower(t.Name + " " + t.DisplayName)
	}

	matches := fuzzy.Find(strings.ToLower(query), search)

	var names []string
	for _, match := range matches {
		names = append(names, cat.Templates[match.Index].Name)
		if len(names) == maxSuggestions {
			break
		}
	}
	return names
}

func looksLikePath(query string) bool {
	return model.IsRemotePath(query) ||
		strings.HasPrefix(query, model.SchemeFile) ||
		strings.ContainsAny(query, `/\`) ||
		strings.HasSuffix(query, model.ReportExtension)
}

func validate(cat *model.Catalog) error {
	seen := make(map[string]bool, len(cat.Templates))
	for i, t := range cat.Templates {
		if t.Name == "" {
			return newCatalogError(CatalogInvalid,
				fmt.Sprintf("catalog entry %d has no name", i), nil)
		}
		if t.ReportPath == "" {
			return newCatalogError(CatalogInvalid,
				fmt.Sprintf("catalog entry %q has no report_path", t.Name), nil)
		}
		if seen[t.Name] {
			return newCatalogError(CatalogInvalid,
				fmt.Sprintf("duplicate catalog entry %q", t.Name), nil)
		}
		seen[t.Name] = true
	}
	return nil
}
