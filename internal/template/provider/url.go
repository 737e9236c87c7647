package provider

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/tacogips/rptnew/internal/template/model"
)

// ParseFileURL extracts the filesystem path from a file:// URL.
func ParseFileURL(raw string) (string, error) {
	if !strings.HasPrefix(raw, model.SchemeFile) {
		return "", fmt.Errorf("not a file URL: %s", raw)
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Host != "" && u.Host != "localhost" {
		return "", fmt.Errorf("file URL host must be empty or localhost: %s", raw)
	}
	if u.Path == "" {
		return "", fmt.Errorf("file URL has no path: %s", raw)
	}

	return filepath.FromSlash(u.Path), nil
}

// ParseS3URL splits an s3://bucket/key URL into bucket and key.
func ParseS3URL(raw string) (bucket, key string, err error) {
	if !strings.HasPrefix(raw, model.SchemeS3) {
		return "", "", fmt.Errorf("not an s3 URL: %s", raw)
	}

	rest := strings.TrimPrefix(raw, model.SchemeS3)
	bucket, key, found := strings.Cut(rest, "/")
	if !found || bucket == "" || key == "" {
		return "", "", fmt.Errorf("invalid s3 URL, expected s3://bucket/key: %s", raw)
	}

	return bucket, key, nil
}

// IsHTTPURL reports whether p uses the http or https scheme.
func IsHTTPURL(p string) bool {
	return strings.HasPrefix(p, model.SchemeHTTP) || strings.HasPrefix(p, model.SchemeHTTPS)
}

// IsS3URL reports whether p uses the s3 scheme.
func IsS3URL(p string) bool {
	return strings.HasPrefix(p, model.SchemeS3)
}

// IsFileURL reports whether p uses the file scheme.
func IsFileURL(p string) bool {
	return strings.HasPrefix(p, model.SchemeFile)
}

// bundlePath converts a bundled report path such as
// "/templates/blank_report.rptdesign" into an fs.FS path.
func bundlePath(reportPath string) string {
	return strings.TrimPrefix(filepath.ToSlash(reportPath), "/")
}
