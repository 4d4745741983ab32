package output

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrInvalidOutputPath is returned when a custom output directory resolves
// outside the allowed base directory.
var ErrInvalidOutputPath = errors.New("invalid output path")

// ResolveOutputDir decides where pages are written and creates the directory.
// Without custom, the directory is base joined with the sanitized file name
// of input minus its extension. A custom directory is accepted only when its
// parent exists and resolves inside base.
func ResolveOutputDir(input, custom, base string) (string, error) {
	baseAbs, err := realPath(base)
	if err != nil {
		return "", fmt.Errorf("failed to resolve base directory %s: %w", base, err)
	}

	var dir string
	if custom != "" {
		parent, err := realPath(filepath.Dir(custom))
		if err != nil || !within(parent, baseAbs) {
			return "", fmt.Errorf("%w: %s", ErrInvalidOutputPath, custom)
		}
		dir = custom
	} else {
		name := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
		dir = filepath.Join(base, SafeFileName(name))
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("directory %q was not created: %w", dir, err)
	}
	return dir, nil
}

func realPath(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}

func within(path, base string) bool {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
