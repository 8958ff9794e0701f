package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	kerrors "github.com/PolarWolf314/envcrypt/internal/errors"
)

// ResolveSourceFiles expands doublestar patterns relative to dir into the
// Go files that may carry directives. Test files and any path in exclude
// are skipped.
func ResolveSourceFiles(patterns []string, dir string, exclude ...string) ([]string, error) {
	if len(patterns) == 0 {
		patterns = []string{"*.go"}
	}

	skip := make(map[string]bool, len(exclude))
	for _, e := range exclude {
		if abs, err := filepath.Abs(e); err == nil {
			skip[abs] = true
		}
	}

	var files []string
	seen := make(map[string]bool) // Deduplicate.

	for _, pattern := range patterns {
		matches, err := expandGlob(pattern, dir)
		if err != nil {
			return nil, err
		}

		for _, m := range matches {
			if !isGoSource(m) || seen[m] || skip[m] {
				continue
			}
			seen[m] = true
			files = append(files, m)
		}
	}

	sort.Strings(files)
	return files, nil
}

// ResolveEnvFiles makes dotenv paths absolute relative to dir and checks
// that each exists.
func ResolveEnvFiles(paths []string, dir string) ([]string, error) {
	var files []string
	for _, p := range paths {
		abs := p
		if !filepath.IsAbs(p) {
			abs = filepath.Join(dir, p)
		}
		if _, err := os.Stat(abs); os.IsNotExist(err) {
			return nil, fmt.Errorf("env file %s: %w", p, kerrors.ErrFileNotFound)
		}
		files = append(files, abs)
	}
	return files, nil
}

func expandGlob(pattern string, dir string) ([]string, error) {
	absPattern := pattern
	if !filepath.IsAbs(pattern) {
		absPattern = filepath.Join(dir, pattern)
	}

	matches, err := doublestar.FilepathGlob(absPattern)
	if err != nil {
		return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
	}

	var files []string
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil || info.IsDir() {
			continue
		}
		abs, err := filepath.Abs(m)
		if err != nil {
			continue
		}
		files = append(files, abs)
	}
	return files, nil
}

func isGoSource(path string) bool {
	return strings.HasSuffix(path, ".go") && !strings.HasSuffix(path, "_test.go")
}
