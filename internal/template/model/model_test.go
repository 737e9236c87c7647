package model

import "testing"

func TestTemplateHasCheatSheet(t *testing.T) {
	tests := []struct {
		name string
		tmpl Template
		want bool
	}{
		{name: "shown with id", tmpl: Template{CheatSheetID: "first-report", ShowCheatSheet: true}, want: true},
		{name: "shown without id", tmpl: Template{ShowCheatSheet: true}, want: false},
		{name: "id but hidden", tmpl: Template{CheatSheetID: "first-report"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tmpl.HasCheatSheet(); got != tt.want {
				t.Errorf("HasCheatSheet() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsRemotePath(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"https://example.com/t.rptdesign", true},
		{"http://example.com/t.rptdesign", true},
		{"s3://bucket/t.rptdesign", true},
		{"/templates/blank_report.rptdesign", false},
		{"file:///tmp/t.rptdesign", false},
		{"./local.rptdesign", false},
	}

	for _, tt := range tests {
		if got := IsRemotePath(tt.path); got != tt.want {
			t.Errorf("IsRemotePath(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestCatalogLookup(t *testing.T) {
	c := &Catalog{Templates: []Template{
		{Name: "blank", DisplayName: "Blank Report"},
		{Name: "simple-listing"},
	}}

	got, ok := c.Lookup("blank")
	if !ok || got.Title() != "Blank Report" {
		t.Errorf("Lookup(blank) = %+v, %v", got, ok)
	}

	got, ok = c.Lookup("simple-listing")
	if !ok || got.Title() != "simple-listing" {
		t.Errorf("Lookup(simple-listing) title = %q, want fallback to name", got.Title())
	}

	if _, ok := c.Lookup("missing"); ok {
		t.Error("Lookup(missing) should fail")
	}

	names := c.Names()
	if len(names) != 2 || names[0] != "blank" || names[1] != "simple-listing" {
		t.Errorf("Names() = %v", names)
	}
}

func TestReportSettingsIsZero(t *testing.T) {
	if !(ReportSettings{}).IsZero() {
		t.Error("empty settings should be zero")
	}
	if (ReportSettings{Description: "x"}).IsZero() {
		t.Error("settings with description should not be zero")
	}
}
