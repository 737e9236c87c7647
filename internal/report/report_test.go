package report

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tacogips/rptnew/internal/template/model"
)

const sampleDesign = `<?xml version="1.0" encoding="UTF-8"?>
<report xmlns="http://www.eclipse.org/birt/2005/design" version="3.2.23" id="1">
    <property name="units">in</property>
    <text-property name="displayName">Blank Report</text-property>
    <page-setup>
        <simple-master-page name="Simple MasterPage" id="2"/>
    </page-setup>
</report>
`

func writeDesign(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.rptdesign")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestOpen(t *testing.T) {
	d, err := Open(writeDesign(t, sampleDesign))
	require.NoError(t, err)

	assert.Equal(t, "Blank Report", d.DisplayName())
	assert.Equal(t, "", d.Description())
	assert.Equal(t, "", d.IconFile())
	assert.Equal(t, "3.2.23", d.Version())
}

func TestOpenRejectsNonReport(t *testing.T) {
	_, err := Open(writeDesign(t, `<library xmlns="http://www.eclipse.org/birt/2005/design"/>`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotReportDesign))
}

func TestOpenRejectsMalformedXML(t *testing.T) {
	_, err := Open(writeDesign(t, `<report><unclosed></report>`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse report design")
}

func TestSetPropertiesRoundTrip(t *testing.T) {
	path := writeDesign(t, sampleDesign)
	d, err := Open(path)
	require.NoError(t, err)

	require.NoError(t, d.SetDisplayName("Sales <Q3> & Returns"))
	require.NoError(t, d.SetDescription("Line one\nLine two"))
	require.NoError(t, d.SetIconFile("icons/sales.png"))
	require.NoError(t, d.Save())

	reopened, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, "Sales <Q3> & Returns", reopened.DisplayName())
	assert.Equal(t, "Line one\nLine two", reopened.Description())
	assert.Equal(t, "icons/sales.png", reopened.IconFile())

	// Untouched content survives
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `<property name="units">in</property>`)
	assert.Contains(t, string(data), "simple-master-page")
}

func TestNewPropertiesPrecedeChildElements(t *testing.T) {
	d, err := Open(writeDesign(t, sampleDesign))
	require.NoError(t, err)
	require.NoError(t, d.SetIconFile("icon.gif"))

	var buf bytes.Buffer
	_, err = d.WriteTo(&buf)
	require.NoError(t, err)

	out := buf.String()
	assert.Less(t, strings.Index(out, `name="iconFile"`), strings.Index(out, "<page-setup>"))
}

func TestEmptyValueClearsProperty(t *testing.T) {
	path := writeDesign(t, sampleDesign)
	d, err := Open(path)
	require.NoError(t, err)

	require.NoError(t, d.SetDisplayName(""))
	require.NoError(t, d.Save())

	reopened, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, "", reopened.DisplayName())
}

func TestSemanticErrors(t *testing.T) {
	d, err := Open(writeDesign(t, sampleDesign))
	require.NoError(t, err)

	tests := []struct {
		name     string
		set      func(string) error
		value    string
		property string
	}{
		{"multi-line display name", d.SetDisplayName, "a\nb", PropDisplayName},
		{"control character", d.SetDescription, "bell\x07", PropDescription},
		{"icon not an image", d.SetIconFile, "icon.txt", PropIconFile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.set(tt.value)
			var semErr *SemanticError
			require.True(t, errors.As(err, &semErr), "expected SemanticError, got %v", err)
			assert.Equal(t, tt.property, semErr.Property)
		})
	}

	// Rejected values leave the previous value in place
	assert.Equal(t, "Blank Report", d.DisplayName())
}

// fakeHandle records calls and can be made to reject fields or saves.
type fakeHandle struct {
	calls   []string
	reject  map[string]error
	saveErr error
	saved   bool
}

func (f *fakeHandle) set(field, value string) error {
	f.calls = append(f.calls, field+"="+value)
	return f.reject[field]
}

func (f *fakeHandle) SetDisplayName(v string) error { return f.set(PropDisplayName, v) }
func (f *fakeHandle) SetDescription(v string) error { return f.set(PropDescription, v) }
func (f *fakeHandle) SetIconFile(v string) error    { return f.set(PropIconFile, v) }
func (f *fakeHandle) Save() error {
	f.saved = true
	return f.saveErr
}

func quietLogger(buf *bytes.Buffer) *zerolog.Logger {
	l := zerolog.New(buf)
	return &l
}

func TestApplySettingsOrderAndSave(t *testing.T) {
	h := &fakeHandle{}
	settings := model.ReportSettings{DisplayName: "D", Description: "Desc", IconPath: "i.png"}

	result, err := ApplySettings(h, settings, ApplyOptions{Logger: quietLogger(&bytes.Buffer{})})
	require.NoError(t, err)
	assert.True(t, result.OK())
	assert.True(t, h.saved)
	assert.Equal(t, []string{"displayName=D", "description=Desc", "iconFile=i.png"}, h.calls)
}

func TestApplySettingsLogsRejectedFields(t *testing.T) {
	var logs bytes.Buffer
	h := &fakeHandle{reject: map[string]error{PropIconFile: newSemanticError(PropIconFile, "x", "bad")}}

	result, err := ApplySettings(h, model.ReportSettings{IconPath: "x"}, ApplyOptions{Logger: quietLogger(&logs)})
	require.NoError(t, err)
	require.Len(t, result.FieldErrors, 1)
	assert.Equal(t, PropIconFile, result.FieldErrors[0].Field)
	assert.True(t, h.saved, "non-strict mode still saves")
	assert.Contains(t, logs.String(), "report setting rejected")
	assert.Contains(t, logs.String(), `"level":"warn"`)
}

func TestApplySettingsStrict(t *testing.T) {
	h := &fakeHandle{reject: map[string]error{PropDisplayName: errors.New("locked")}}

	_, err := ApplySettings(h, model.ReportSettings{DisplayName: "x"}, ApplyOptions{Strict: true, Logger: quietLogger(&bytes.Buffer{})})
	var applyErr *ApplyError
	require.True(t, errors.As(err, &applyErr))
	assert.Equal(t, ApplyFieldRejected, applyErr.Type)
	assert.False(t, h.saved, "strict mode must not save after a rejection")
}

func TestApplySettingsSaveFailure(t *testing.T) {
	saveErr := errors.New("disk full")
	h := &fakeHandle{saveErr: saveErr}

	_, err := ApplySettings(h, model.ReportSettings{}, ApplyOptions{Logger: quietLogger(&bytes.Buffer{})})
	var applyErr *ApplyError
	require.True(t, errors.As(err, &applyErr))
	assert.Equal(t, ApplySaveFailed, applyErr.Type)
	assert.True(t, errors.Is(err, saveErr))
}

func TestApplySettingsOnDesign(t *testing.T) {
	path := writeDesign(t, sampleDesign)
	d, err := Open(path)
	require.NoError(t, err)

	_, err = ApplySettings(d, model.ReportSettings{
		DisplayName: "Quarterly",
		Description: "Quarterly numbers",
		IconPath:    "q.gif",
	}, ApplyOptions{Logger: quietLogger(&bytes.Buffer{})})
	require.NoError(t, err)

	reopened, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, "Quarterly", reopened.DisplayName())
	assert.Equal(t, "Quarterly numbers", reopened.Description())
	assert.Equal(t, "q.gif", reopened.IconFile())
}

func TestProblems(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{name: "valid", content: sampleDesign},
		{
			name:    "missing version",
			content: `<report xmlns="http://www.eclipse.org/birt/2005/design"/>`,
			want:    []string{"missing version attribute"},
		},
		{
			name: "unsupported icon",
			content: `<report xmlns="http://www.eclipse.org/birt/2005/design" version="3.2.23">
    <property name="iconFile">logo.svg</property>
</report>`,
			want: []string{"icon file logo.svg is not a gif, png, jpg, bmp or ico image"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Open(writeDesign(t, tt.content))
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Problems())
		})
	}
}
