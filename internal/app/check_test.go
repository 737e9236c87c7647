package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validDesign = `<?xml version="1.0" encoding="UTF-8"?>
<report xmlns="http://www.eclipse.org/birt/2005/design" version="3.2.23" id="1">
    <text-property name="displayName">Valid</text-property>
</report>
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestCheckTemplate(t *testing.T) {
	tests := []struct {
		name           string
		setup          func(t *testing.T) string
		recursive      bool
		wantErr        bool
		wantChecked    int
		wantWithErrors int
	}{
		{
			name: "valid template file",
			setup: func(t *testing.T) string {
				path := filepath.Join(t.TempDir(), "valid.rptdesign")
				writeFile(t, path, validDesign)
				return path
			},
			wantChecked: 1,
		},
		{
			name: "malformed xml",
			setup: func(t *testing.T) string {
				path := filepath.Join(t.TempDir(), "broken.rptdesign")
				writeFile(t, path, `<report><unclosed></report>`)
				return path
			},
			wantChecked:    1,
			wantWithErrors: 1,
		},
		{
			name: "not a report design",
			setup: func(t *testing.T) string {
				path := filepath.Join(t.TempDir(), "lib.rptdesign")
				writeFile(t, path, `<library version="3.2.23"/>`)
				return path
			},
			wantChecked:    1,
			wantWithErrors: 1,
		},
		{
			name: "directory skips other files and hidden entries",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, filepath.Join(dir, "a.rptdesign"), validDesign)
				writeFile(t, filepath.Join(dir, "notes.txt"), "not a template")
				writeFile(t, filepath.Join(dir, ".hidden.rptdesign"), "<broken")
				writeFile(t, filepath.Join(dir, "sub", "b.rptdesign"), "<broken")
				return dir
			},
			wantChecked: 1,
		},
		{
			name: "recursive directory scan",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, filepath.Join(dir, "a.rptdesign"), validDesign)
				writeFile(t, filepath.Join(dir, "sub", "b.rptdesign"), `<report xmlns="http://www.eclipse.org/birt/2005/design"/>`)
				return dir
			},
			recursive:      true,
			wantChecked:    2,
			wantWithErrors: 1,
		},
		{
			name: "non-existent path",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "missing")
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := tt.setup(t)
			result, err := CheckTemplate(context.Background(), CheckTemplateOptions{
				Path:      path,
				Recursive: tt.recursive,
			})
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsType(err, ValidationFailed))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantChecked, result.FilesChecked)
			assert.Equal(t, tt.wantWithErrors, result.FilesWithErrors)
			assert.Len(t, result.Errors, tt.wantWithErrors)
		})
	}
}

func TestCheckTemplateBundled(t *testing.T) {
	cat, err := LoadCatalog(testConfig(t, t.TempDir()))
	require.NoError(t, err)

	dir := t.TempDir()
	for _, tmpl := range cat.Templates {
		res, err := NewMaterializer(testConfig(t, dir)).Materialize(context.Background(), tmpl, dir, tmpl.Name)
		require.NoError(t, err)
		require.FileExists(t, res.Path)
	}

	result, err := CheckTemplate(context.Background(), CheckTemplateOptions{Path: dir})
	require.NoError(t, err)
	assert.Equal(t, len(cat.Templates), result.FilesChecked)
	assert.Empty(t, result.Errors)
}
