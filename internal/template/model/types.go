package model

import "strings"

// ReportExtension is the report design file extension.
const ReportExtension = ".rptdesign"

// Report path schemes recognized by the template providers.
const (
	// SchemeHTTP and SchemeHTTPS address templates served over HTTP.
	SchemeHTTP  = "http://"
	SchemeHTTPS = "https://"
	// SchemeS3 addresses templates stored in S3 as s3://bucket/key.
	SchemeS3 = "s3://"
	// SchemeFile addresses local templates as file:///abs/path.
	SchemeFile = "file://"
)

// Source identifies where a catalog entry came from.
type Source string

const (
	// SourceBundled marks templates shipped inside the binary.
	SourceBundled Source = "bundled"
	// SourceUser marks templates discovered in the user template directory.
	SourceUser Source = "user"
	// SourceAdHoc marks templates given directly by path or URL.
	SourceAdHoc Source = "path"
)

// Template is a seed report design that new reports are copied from.
type Template struct {
	// Name is the short identifier used on the command line.
	Name string `yaml:"name" json:"name"`
	// DisplayName is the human-readable title shown in the chooser.
	DisplayName string `yaml:"display_name" json:"display_name"`
	// Description is the chooser description.
	Description string `yaml:"description" json:"description"`
	// ReportPath is a bundled resource path, a filesystem path, or a URL.
	ReportPath string `yaml:"report_path" json:"report_path"`
	// PreviewImage is an optional image path shown alongside the template.
	PreviewImage string `yaml:"preview_image,omitempty" json:"preview_image,omitempty"`
	// CheatSheetID names the cheat sheet offered after creation.
	CheatSheetID string `yaml:"cheat_sheet_id,omitempty" json:"cheat_sheet_id,omitempty"`
	// ShowCheatSheet is the default for showing the cheat sheet.
	ShowCheatSheet bool `yaml:"show_cheat_sheet,omitempty" json:"show_cheat_sheet,omitempty"`
	// Source records where this entry came from.
	Source Source `yaml:"-" json:"source"`
}

// HasCheatSheet reports whether a cheat sheet should be shown.
func (t Template) HasCheatSheet() bool {
	return t.ShowCheatSheet && t.CheatSheetID != ""
}

// Title returns the display name, falling back to the short name.
func (t Template) Title() string {
	if t.DisplayName != "" {
		return t.DisplayName
	}
	return t.Name
}

// IsRemote reports whether the report path is addressed by a network scheme.
func (t Template) IsRemote() bool {
	return IsRemotePath(t.ReportPath)
}

// IsRemotePath reports whether p uses the http, https or s3 scheme.
func IsRemotePath(p string) bool {
	return strings.HasPrefix(p, SchemeHTTP) ||
		strings.HasPrefix(p, SchemeHTTPS) ||
		strings.HasPrefix(p, SchemeS3)
}

// NewFileRequest is the target of a new report.
type NewFileRequest struct {
	// Directory is where the report is created. It need not exist.
	Directory string
	// FileName is the report file name, with or without extension.
	FileName string
}

// ReportSettings is the metadata applied to a new report after creation.
type ReportSettings struct {
	DisplayName string `json:"display_name"`
	Description string `json:"description"`
	IconPath    string `json:"icon_path"`
}

// IsZero reports whether no setting was provided.
func (s ReportSettings) IsZero() bool {
	return s.DisplayName == "" && s.Description == "" && s.IconPath == ""
}
