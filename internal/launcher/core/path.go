package core

import (
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// ExpandLocalGlobs expands each pattern against the local filesystem. A
// pattern that matches nothing is kept as given since it may name a path on
// the cluster's filesystem. The result is de-duplicated, first occurrence wins.
func ExpandLocalGlobs(patterns []string) ([]string, error) {
	var files []string
	seen := make(map[string]struct{})
	add := func(name string) {
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		files = append(files, name)
	}

	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, err
		}
		if len(matches) == 0 {
			add(pattern)
			continue
		}
		for _, name := range matches {
			add(name)
		}
	}
	return files, nil
}

// ResolvePath returns the absolute, symlink-free path of an existing regular
// file.
func ResolvePath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(resolved)
	if err != nil {
		return "", err
	}
	if !info.Mode().IsRegular() {
		return "", &os.PathError{Op: "resolve", Path: path, Err: os.ErrInvalid}
	}
	return resolved, nil
}
