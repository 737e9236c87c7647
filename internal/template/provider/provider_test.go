package provider

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"testing/fstest"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readAll(t *testing.T, rc io.ReadCloser) string {
	t.Helper()
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	return string(data)
}

func requireType(t *testing.T, err error, want ProviderErrorType) {
	t.Helper()
	var perr *ProviderError
	require.True(t, errors.As(err, &perr), "expected ProviderError, got %T: %v", err, err)
	assert.Equal(t, want, perr.Type, "error: %v", err)
}

func TestBundleProvider(t *testing.T) {
	fsys := fstest.MapFS{
		"templates/blank.rptdesign": {Data: []byte("<report/>")},
		"templates/sub":             {Mode: os.ModeDir},
	}
	p := NewBundleProvider(fsys)

	tests := []struct {
		name     string
		path     string
		want     string
		wantType ProviderErrorType
		wantErr  bool
	}{
		{name: "leading slash", path: "/templates/blank.rptdesign", want: "<report/>"},
		{name: "relative", path: "templates/blank.rptdesign", want: "<report/>"},
		{name: "missing", path: "/templates/nope.rptdesign", wantErr: true, wantType: ProviderNotFound},
		{name: "directory", path: "/templates/sub", wantErr: true, wantType: ProviderNotFound},
		{name: "escape", path: "../etc/passwd", wantErr: true, wantType: ProviderNotFound},
		{name: "empty", path: "", wantErr: true, wantType: ProviderNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rc, err := p.Open(context.Background(), tt.path)
			if tt.wantErr {
				require.Error(t, err)
				requireType(t, err, tt.wantType)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, readAll(t, rc))
		})
	}
}

func TestLocalProvider(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "seed.rptdesign")
	require.NoError(t, os.WriteFile(file, []byte("local bytes"), 0644))

	p := NewLocalProviderWithBase(dir)

	t.Run("absolute path", func(t *testing.T) {
		rc, err := p.Open(context.Background(), file)
		require.NoError(t, err)
		assert.Equal(t, "local bytes", readAll(t, rc))
	})

	t.Run("relative to base", func(t *testing.T) {
		rc, err := p.Open(context.Background(), "seed.rptdesign")
		require.NoError(t, err)
		assert.Equal(t, "local bytes", readAll(t, rc))
	})

	t.Run("file URL", func(t *testing.T) {
		rc, err := p.Open(context.Background(), "file://"+filepath.ToSlash(file))
		require.NoError(t, err)
		assert.Equal(t, "local bytes", readAll(t, rc))
	})

	t.Run("missing", func(t *testing.T) {
		_, err := p.Open(context.Background(), filepath.Join(dir, "missing.rptdesign"))
		requireType(t, err, ProviderNotFound)
		assert.True(t, IsNotFound(err))
	})

	t.Run("directory", func(t *testing.T) {
		_, err := p.Open(context.Background(), dir)
		requireType(t, err, ProviderNotFound)
	})

	t.Run("remote file URL host", func(t *testing.T) {
		_, err := p.Open(context.Background(), "file://server/share/x.rptdesign")
		requireType(t, err, ProviderInvalidURL)
	})
}

func TestParseS3URL(t *testing.T) {
	tests := []struct {
		in         string
		wantBucket string
		wantKey    string
		wantErr    bool
	}{
		{in: "s3://bucket/templates/a.rptdesign", wantBucket: "bucket", wantKey: "templates/a.rptdesign"},
		{in: "s3://bucket/a", wantBucket: "bucket", wantKey: "a"},
		{in: "s3://bucket", wantErr: true},
		{in: "s3://bucket/", wantErr: true},
		{in: "s3:///key", wantErr: true},
		{in: "https://bucket/key", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			bucket, key, err := ParseS3URL(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantBucket, bucket)
			assert.Equal(t, tt.wantKey, key)
		})
	}
}

func TestHTTPProvider(t *testing.T) {
	var flaky atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok.rptdesign":
			_, _ = io.WriteString(w, "remote bytes")
		case "/secret.rptdesign":
			w.WriteHeader(http.StatusForbidden)
		case "/flaky.rptdesign":
			if flaky.Add(1) == 1 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			_, _ = io.WriteString(w, "after retry")
		case "/broken.rptdesign":
			w.WriteHeader(http.StatusTeapot)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	p := NewHTTPProvider(HTTPOptions{
		Timeout:      5 * time.Second,
		RetryMax:     2,
		RetryWaitMin: time.Millisecond,
		RetryWaitMax: 5 * time.Millisecond,
	})

	t.Run("ok", func(t *testing.T) {
		rc, err := p.Open(context.Background(), srv.URL+"/ok.rptdesign")
		require.NoError(t, err)
		assert.Equal(t, "remote bytes", readAll(t, rc))
	})

	t.Run("retries server errors", func(t *testing.T) {
		rc, err := p.Open(context.Background(), srv.URL+"/flaky.rptdesign")
		require.NoError(t, err)
		assert.Equal(t, "after retry", readAll(t, rc))
		assert.Equal(t, int32(2), flaky.Load())
	})

	t.Run("not found", func(t *testing.T) {
		_, err := p.Open(context.Background(), srv.URL+"/missing.rptdesign")
		requireType(t, err, ProviderNotFound)
	})

	t.Run("forbidden", func(t *testing.T) {
		_, err := p.Open(context.Background(), srv.URL+"/secret.rptdesign")
		requireType(t, err, ProviderAuthFailed)
	})

	t.Run("unexpected status", func(t *testing.T) {
		_, err := p.Open(context.Background(), srv.URL+"/broken.rptdesign")
		requireType(t, err, ProviderFetchFailed)
	})
}

type fakeS3 struct {
	objects map[string]string
	err     error
	gotKey  string
}

func (f *fakeS3) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.gotKey = *in.Bucket + "/" + *in.Key
	if f.err != nil {
		return nil, f.err
	}
	body, ok := f.objects[f.gotKey]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(body))}, nil
}

func TestS3Provider(t *testing.T) {
	fake := &fakeS3{objects: map[string]string{"reports/seed.rptdesign": "s3 bytes"}}
	p := NewS3ProviderWithClient(fake)

	rc, err := p.Open(context.Background(), "s3://reports/seed.rptdesign")
	require.NoError(t, err)
	assert.Equal(t, "s3 bytes", readAll(t, rc))
	assert.Equal(t, "reports/seed.rptdesign", fake.gotKey)

	_, err = p.Open(context.Background(), "s3://reports/missing.rptdesign")
	requireType(t, err, ProviderNotFound)

	_, err = p.Open(context.Background(), "s3://reports")
	requireType(t, err, ProviderInvalidURL)

	fake.err = &smithy.GenericAPIError{Code: "AccessDenied", Message: "denied"}
	_, err = p.Open(context.Background(), "s3://reports/seed.rptdesign")
	requireType(t, err, ProviderAuthFailed)
}

type stubProvider struct {
	name  string
	calls []string
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) Open(ctx context.Context, reportPath string) (io.ReadCloser, error) {
	s.calls = append(s.calls, reportPath)
	return io.NopCloser(strings.NewReader(s.name)), nil
}

func TestRouterDispatch(t *testing.T) {
	bundle := NewBundleProvider(fstest.MapFS{
		"templates/blank.rptdesign": {Data: []byte("bundled")},
	})
	local := &stubProvider{name: "local"}
	httpP := &stubProvider{name: "http"}
	s3P := &stubProvider{name: "s3"}
	r := &Router{Bundle: bundle, Local: local, HTTP: httpP, S3: s3P}

	tests := []struct {
		path string
		want string
	}{
		{path: "/templates/blank.rptdesign", want: "bundled"},
		{path: "/templates/other.rptdesign", want: "local"},
		{path: "file:///tmp/x.rptdesign", want: "local"},
		{path: "http://example.com/x.rptdesign", want: "http"},
		{path: "https://example.com/x.rptdesign", want: "http"},
		{path: "s3://bucket/x.rptdesign", want: "s3"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rc, err := r.Open(context.Background(), tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, readAll(t, rc))
		})
	}
}

func TestRouterNotFound(t *testing.T) {
	r := NewRouter(ProviderConfig{
		Bundle:  fstest.MapFS{},
		BaseDir: t.TempDir(),
	})

	_, err := r.Open(context.Background(), "/templates/missing.rptdesign")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}
