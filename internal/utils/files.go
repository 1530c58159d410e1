package utils

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	kerrors "github.com/PolarWolf314/luacrypto/internal/errors"
)

// ResolveFiles takes user-provided paths, directories and globs and returns
// the matching regular files. Relative patterns are taken from base. A
// literal path that does not exist is an error; a glob matching nothing is
// not, but an overall empty result is.
func ResolveFiles(patterns []string, base string) ([]string, error) {
	var files []string
	seen := make(map[string]bool)

	for _, pattern := range patterns {
		resolved, err := resolvePattern(ExpandHome(pattern), base)
		if err != nil {
			return nil, err
		}

		for _, f := range resolved {
			if !seen[f] {
				seen[f] = true
				files = append(files, f)
			}
		}
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no matching files found", kerrors.ErrFile)
	}

	return files, nil
}

func resolvePattern(pattern, base string) ([]string, error) {
	full := pattern
	if !filepath.IsAbs(pattern) && base != "" {
		full = filepath.Join(base, pattern)
	}

	info, err := os.Stat(full)
	if err == nil && info.IsDir() {
		return findFilesInDir(full)
	}

	if strings.ContainsAny(pattern, "*?[{") {
		return expandGlob(pattern, full)
	}

	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", kerrors.ErrFile, pattern, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s: not a regular file", kerrors.ErrFile, pattern)
	}

	return []string{full}, nil
}

func expandGlob(pattern, full string) ([]string, error) {
	if !doublestar.ValidatePathPattern(full) {
		return nil, fmt.Errorf("%w: invalid glob pattern %q", kerrors.ErrInvalidArgument, pattern)
	}
	matches, err := doublestar.FilepathGlob(full)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid glob pattern %q: %v", kerrors.ErrInvalidArgument, pattern, err)
	}

	var filtered []string
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		filtered = append(filtered, m)
	}

	return filtered, nil
}

func findFilesInDir(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", kerrors.ErrFile, dir, err)
	}

	return files, nil
}

// ExpandHome replaces a leading "~" or "~/" with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
