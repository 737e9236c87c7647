package app

import (
	"io/fs"
	"os"
	"strings"

	"github.com/tacogips/rptnew/internal/bundle"
	"github.com/tacogips/rptnew/internal/config"
	"github.com/tacogips/rptnew/internal/template/model"
)

// TemplateInfo is a catalog entry with its size when known.
type TemplateInfo struct {
	model.Template
	// Size is the template size in bytes, or -1 when unknown.
	Size int64
}

// ListTemplates returns the catalog with template sizes.
func ListTemplates(cfg *config.Config) ([]TemplateInfo, error) {
	cat, err := LoadCatalog(cfg)
	if err != nil {
		return nil, err
	}

	infos := make([]TemplateInfo, 0, len(cat.Templates))
	for _, t := range cat.Templates {
		infos = append(infos, TemplateInfo{Template: t, Size: templateSize(t)})
	}
	return infos, nil
}

func templateSize(t model.Template) int64 {
	if t.IsRemote() {
		return -1
	}

	if t.Source == model.SourceBundled {
		info, err := fs.Stat(bundle.FS(), strings.TrimPrefix(t.ReportPath, "/"))
		if err != nil {
			return -1
		}
		return info.Size()
	}

	info, err := os.Stat(t.ReportPath)
	if err != nil {
		return -1
	}
	return info.Size()
}
