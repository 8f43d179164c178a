package utils

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/conduit-lang/modulegen/internal/compiler/snapshot"
)

// FindSnapshotFiles recursively finds all symbol snapshot files in the specified directory
func FindSnapshotFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		// Skip directories
		if d.IsDir() {
			return nil
		}

		if snapshot.IsSnapshotPath(path) {
			files = append(files, path)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return files, nil
}

// ExpandPaths resolves a mix of files and directories into a sorted, de-duplicated
// list of snapshot files. Explicit files are kept whatever their extension.
func ExpandPaths(inputs []string) ([]string, error) {
	seen := make(map[string]bool)
	var out []string

	add := func(path string) {
		clean := filepath.Clean(path)
		if !seen[clean] {
			seen[clean] = true
			out = append(out, clean)
		}
	}

	for _, input := range inputs {
		info, err := os.Stat(input)
		if err != nil {
			return nil, fmt.Errorf("cannot access %s: %w", input, err)
		}
		if !info.IsDir() {
			add(input)
			continue
		}
		files, err := FindSnapshotFiles(input)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", input, err)
		}
		for _, f := range files {
			add(f)
		}
	}

	sort.Strings(out)
	return out, nil
}
