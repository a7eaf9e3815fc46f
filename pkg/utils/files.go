package utils

import (
	"os"
	"path/filepath"
	"strings"
)

// skippedDirs are never descended into
var skippedDirs = map[string]bool{
	"vendor":       true,
	"node_modules": true,
}

// FindSourceFiles recursively finds the files under root accepted by include
func FindSourceFiles(root string, include func(path string) bool) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		// Skip dependency and hidden directories (but not the root directory)
		if d.IsDir() {
			if path == root {
				return nil
			}
			name := d.Name()
			if skippedDirs[name] || strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			return nil
		}

		if include(path) {
			files = append(files, path)
		}
		return nil
	})

	return files, err
}

// IsDirectory checks if the given path is a directory
func IsDirectory(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	return info.IsDir(), nil
}
