// Package fsx expands user-supplied upload arguments into file paths.
package fsx

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// CollectFiles expands globs and walks directories, returning absolute,
// de-duplicated, sorted file paths. Paths that do not exist are passed
// through unchanged so the backend can report them. Hidden entries below a
// walked directory are skipped. shouldIgnore may be nil.
func CollectFiles(args []string, shouldIgnore func(path string) bool) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			files = append(files, p)
		}
	}

	for _, arg := range args {
		matches := []string{arg}
		if hasGlob(arg) {
			var err error
			matches, err = doublestar.FilepathGlob(arg)
			if err != nil {
				return nil, fmt.Errorf("invalid glob pattern %q: %w", arg, err)
			}
		}

		for _, m := range matches {
			p := normalizePath(m)
			if shouldIgnore != nil && shouldIgnore(p) {
				continue
			}

			info, err := os.Stat(p)
			if err != nil {
				if os.IsNotExist(err) {
					add(p)
					continue
				}
				return nil, fmt.Errorf("failed to stat %s: %w", m, err)
			}
			if !info.IsDir() {
				add(p)
				continue
			}

			err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					return nil
				}
				if path != p && shouldIgnore != nil && shouldIgnore(path) {
					if d.IsDir() {
						return filepath.SkipDir
					}
					return nil
				}
				if path != p && strings.HasPrefix(d.Name(), ".") {
					if d.IsDir() {
						return filepath.SkipDir
					}
					return nil
				}
				if !d.IsDir() {
					add(path)
				}
				return nil
			})
			if err != nil {
				return nil, fmt.Errorf("failed to walk %s: %w", p, err)
			}
		}
	}

	slices.Sort(files)
	return files, nil
}

func hasGlob(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[")
}

func normalizePath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return filepath.Clean(abs)
	}
	return filepath.Clean(p)
}
