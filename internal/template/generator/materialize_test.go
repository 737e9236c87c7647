package generator

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tacogips/rptnew/internal/template/model"
	"github.com/tacogips/rptnew/internal/template/provider"
)

// trickleReader returns at most three bytes per Read.
type trickleReader struct {
	r io.Reader
}

func (t *trickleReader) Read(p []byte) (int, error) {
	if len(p) > 3 {
		p = p[:3]
	}
	return t.r.Read(p)
}

// failingReader returns some bytes and then an error.
type failingReader struct {
	sent bool
}

func (f *failingReader) Read(p []byte) (int, error) {
	if !f.sent {
		f.sent = true
		return copy(p, "partial"), nil
	}
	return 0, errors.New("connection reset")
}

// funcProvider serves a fixed stream for any path.
type funcProvider struct {
	open func() io.Reader
}

func (f *funcProvider) Name() string { return "func" }

func (f *funcProvider) Open(ctx context.Context, reportPath string) (io.ReadCloser, error) {
	return io.NopCloser(f.open()), nil
}

func largeContent() []byte {
	var buf bytes.Buffer
	for i := 0; buf.Len() < 256*1024; i++ {
		buf.WriteByte(byte(i % 251))
	}
	return buf.Bytes()
}

func bundleMaterializer(files fstest.MapFS) *Materializer {
	return NewMaterializer(provider.NewBundleProvider(files))
}

func requireGenType(t *testing.T, err error, want GeneratorErrorType) {
	t.Helper()
	var genErr *GeneratorError
	require.True(t, errors.As(err, &genErr), "expected GeneratorError, got %T: %v", err, err)
	assert.Equal(t, want, genErr.Type, "error: %v", err)
}

func TestMaterializeCopiesBytesExactly(t *testing.T) {
	content := largeContent()
	m := NewMaterializer(&funcProvider{open: func() io.Reader {
		return &trickleReader{r: bytes.NewReader(content)}
	}})
	dir := t.TempDir()

	res, err := m.Materialize(context.Background(), model.Template{ReportPath: "/templates/big.rptdesign"}, dir, "Big")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "Big.rptdesign"), res.Path)
	assert.Equal(t, int64(len(content)), res.Bytes)

	got, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(content, got), "destination bytes differ from source")
}

func TestMaterializeCreatesDirectories(t *testing.T) {
	m := bundleMaterializer(fstest.MapFS{
		"templates/blank.rptdesign": {Data: []byte("<report/>")},
	})
	dir := filepath.Join(t.TempDir(), "a", "b", "c")

	res, err := m.Materialize(context.Background(), model.Template{ReportPath: "/templates/blank.rptdesign"}, dir, "Report.rptdesign")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "Report.rptdesign"), res.Path)
	data, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	assert.Equal(t, "<report/>", string(data))
}

func TestMaterializeFallsBackToFilesystem(t *testing.T) {
	seedDir := t.TempDir()
	seed := filepath.Join(seedDir, "custom.rptdesign")
	require.NoError(t, os.WriteFile(seed, []byte("custom"), 0644))

	r := &provider.Router{
		Bundle: provider.NewBundleProvider(fstest.MapFS{}),
		Local:  provider.NewLocalProvider(),
	}
	m := NewMaterializer(r)
	dir := t.TempDir()

	res, err := m.Materialize(context.Background(), model.Template{ReportPath: seed}, dir, "Custom")
	require.NoError(t, err)
	data, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	assert.Equal(t, "custom", string(data))
}

func TestMaterializeTemplateNotFoundCreatesNothing(t *testing.T) {
	m := bundleMaterializer(fstest.MapFS{})
	dir := filepath.Join(t.TempDir(), "never")

	_, err := m.Materialize(context.Background(), model.Template{ReportPath: "/templates/missing.rptdesign"}, dir, "Report")
	requireGenType(t, err, GeneratorTemplateNotFound)

	_, statErr := os.Stat(dir)
	assert.True(t, os.IsNotExist(statErr), "directory must not be created")
}

func TestMaterializeCancelledBeforeCopy(t *testing.T) {
	m := bundleMaterializer(fstest.MapFS{
		"templates/blank.rptdesign": {Data: []byte("<report/>")},
	})
	dir := filepath.Join(t.TempDir(), "out")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := m.Materialize(ctx, model.Template{ReportPath: "/templates/blank.rptdesign"}, dir, "Report")
	requireGenType(t, err, GeneratorCancelled)
	assert.ErrorIs(t, err, context.Canceled)

	_, statErr := os.Stat(dir)
	assert.True(t, os.IsNotExist(statErr))
}

func TestMaterializeReadFailureLeavesNoFile(t *testing.T) {
	m := NewMaterializer(&funcProvider{open: func() io.Reader { return &failingReader{} }})
	dir := t.TempDir()

	_, err := m.Materialize(context.Background(), model.Template{ReportPath: "x"}, dir, "Report")
	requireGenType(t, err, GeneratorReadFailed)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "no destination or temporary file should remain")
}

func TestMaterializeReplacesExistingFile(t *testing.T) {
	m := bundleMaterializer(fstest.MapFS{
		"templates/blank.rptdesign": {Data: []byte("fresh")},
	})
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Report.rptdesign"), []byte("old content that is longer"), 0644))

	res, err := m.Materialize(context.Background(), model.Template{ReportPath: "/templates/blank.rptdesign"}, dir, "Report")
	require.NoError(t, err)

	data, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	assert.Equal(t, "fresh", string(data))
}

func TestMaterializeRejectsInvalidNames(t *testing.T) {
	m := bundleMaterializer(fstest.MapFS{
		"templates/blank.rptdesign": {Data: []byte("x")},
	})
	tmpl := model.Template{ReportPath: "/templates/blank.rptdesign"}

	for _, name := range []string{"", "sub/Report", "../Report"} {
		t.Run(name, func(t *testing.T) {
			_, err := m.Materialize(context.Background(), tmpl, t.TempDir(), name)
			requireGenType(t, err, GeneratorPathError)
		})
	}
}
