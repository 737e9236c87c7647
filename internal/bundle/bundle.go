// Package bundle holds the resources shipped inside the binary: the template
// catalog, the bundled report templates and the cheat sheets.
package bundle

import (
	"embed"
	"io/fs"
)

//go:embed resources
var resourcesFS embed.FS

// Well-known locations inside the bundle.
const (
	// CatalogFile is the bundled template catalog.
	CatalogFile = "catalog.yaml"
	// CheatSheetDir holds one markdown file per cheat sheet id.
	CheatSheetDir = "cheatsheets"
	// CheatSheetExt is the cheat sheet file extension.
	CheatSheetExt = ".md"
)

// FS returns the bundle rooted at the resources directory, so bundled report
// paths such as "templates/blank_report.rptdesign" resolve directly.
func FS() fs.FS {
	sub, err := fs.Sub(resourcesFS, "resources")
	if err != nil {
		// resources is embedded at compile time
		panic(err)
	}
	return sub
}
