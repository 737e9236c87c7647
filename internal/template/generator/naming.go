package generator

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tacogips/rptnew/internal/debug"
)

// DefaultMaxSuffixAttempts bounds the numeric suffix search.
const DefaultMaxSuffixAttempts = 10000

// timestampLayout is used for the fallback suffix once numeric suffixes run out.
const timestampLayout = "20060102T150405"

// NameSuggester finds a file name that does not exist in a directory.
type NameSuggester struct {
	// MaxAttempts is the highest numeric suffix tried before falling back
	// to a timestamp suffix.
	MaxAttempts int
	// Now returns the time used for the fallback suffix.
	Now func() time.Time
}

// NewNameSuggester creates a suggester with the given numeric bound.
func NewNameSuggester(maxAttempts int) *NameSuggester {
	if maxAttempts < 1 {
		maxAttempts = DefaultMaxSuffixAttempts
	}
	return &NameSuggester{
		MaxAttempts: maxAttempts,
		Now:         time.Now,
	}
}

// SuggestName returns the first free name among base+ext, base_1+ext,
// base_2+ext, ... in dir, using the default bound.
func SuggestName(dir, base, ext string) (string, error) {
	return NewNameSuggester(DefaultMaxSuffixAttempts).Suggest(dir, base, ext)
}

// Suggest returns the first of base+ext, base_1+ext, ..., base_N+ext that does
// not exist in dir, where N is MaxAttempts. If all are taken it tries
// base_<timestamp>+ext. dir need not exist. Only existence checks are made;
// concurrent creators may still race for the returned name.
func (s *NameSuggester) Suggest(dir, base, ext string) (string, error) {
	debug.Debug("[generator] Suggesting name in %s for %s%s", dir, base, ext)

	name := base + ext
	for count := 0; count <= s.MaxAttempts; count++ {
		if count > 0 {
			name = fmt.Sprintf("%s_%d%s", base, count, ext)
		}

		exists, err := pathExists(filepath.Join(dir, name))
		if err != nil {
			return "", err
		}
		if !exists {
			debug.Debug("[generator] Suggested name: %s", name)
			return name, nil
		}
	}

	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	name = fmt.Sprintf("%s_%s%s", base, now().Format(timestampLayout), ext)
	exists, err := pathExists(filepath.Join(dir, name))
	if err != nil {
		return "", err
	}
	if exists {
		return "", newGeneratorError(GeneratorNameExhausted,
			fmt.Sprintf("no free name for %s%s after %d attempts", base, ext, s.MaxAttempts),
			dir,
			nil)
	}

	debug.Debug("[generator] Numeric suffixes exhausted, using %s", name)
	return name, nil
}

// EnsureExtension appends ext to name unless name already ends with it.
func EnsureExtension(name, ext string) string {
	if strings.HasSuffix(name, ext) {
		return name
	}
	return name + ext
}

// pathExists reports whether anything exists at path. Errors other than
// "not exist" are returned so a failing check is never taken as "free".
func pathExists(path string) (bool, error) {
	_, err := os.Lstat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, newGeneratorError(GeneratorPathError, "failed to check file existence", path, err)
}
