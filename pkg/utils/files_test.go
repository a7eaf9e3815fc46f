package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsDirectory(t *testing.T) {
	req := require.New(t)
	tempDir := t.TempDir()

	tempFile := filepath.Join(tempDir, "test.txt")
	err := os.WriteFile(tempFile, []byte("test"), 0644)
	req.NoError(err, "Failed to create temp file: %v", err)

	tests := []struct {
		name      string
		path      string
		expected  bool
		expectErr bool
	}{
		{
			name:     "existing directory",
			path:     tempDir,
			expected: true,
		},
		{
			name:     "existing file",
			path:     tempFile,
			expected: false,
		},
		{
			name:      "non-existent path",
			path:      "/non/existent/path",
			expectErr: true,
		},
		{
			name:     "current directory",
			path:     ".",
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			result, err := IsDirectory(tt.path)

			if tt.expectErr {
				req.Error(err, "IsDirectory(%q) expected error, got nil", tt.path)
			} else {
				req.NoError(err, "IsDirectory(%q) unexpected error: %v", tt.path, err)
				req.Equal(tt.expected, result, "IsDirectory(%q) = %v, want %v", tt.path, result, tt.expected)
			}
		})
	}
}

func isScript(path string) bool {
	return strings.HasSuffix(path, ".ts") || strings.HasSuffix(path, ".js")
}

func TestFindSourceFiles(t *testing.T) {
	req := require.New(t)
	tempDir := t.TempDir()

	dirs := []string{
		"src/components",
		"lib",
		"node_modules/lodash",
		"vendor/github.com/test",
		".git",
		".cache",
		"empty",
	}
	for _, dir := range dirs {
		err := os.MkdirAll(filepath.Join(tempDir, dir), 0755)
		req.NoError(err, "Failed to create directory %s: %v", dir, err)
	}

	files := map[string]string{
		"index.ts":                    "import 'a'",
		"src/components/button.ts":    "import 'a'",
		"src/components/button.css":   ".button {}", // Should be excluded (not accepted)
		"lib/util.js":                 "import 'a'",
		"node_modules/lodash/a.js":    "import 'a'", // Should be excluded (dependency dir)
		"vendor/github.com/test/b.js": "import 'a'", // Should be excluded (vendor dir)
		".cache/c.ts":                 "import 'a'", // Should be excluded (hidden dir)
		"README.md":                   "# README",
	}
	for filePath, content := range files {
		fullPath := filepath.Join(tempDir, filePath)
		err := os.WriteFile(fullPath, []byte(content), 0644)
		req.NoError(err, "Failed to create file %s: %v", filePath, err)
	}

	tests := []struct {
		name          string
		root          string
		expectedFiles []string
		expectErr     bool
	}{
		{
			name: "find source files in temp directory",
			root: tempDir,
			expectedFiles: []string{
				filepath.Join(tempDir, "index.ts"),
				filepath.Join(tempDir, "lib/util.js"),
				filepath.Join(tempDir, "src/components/button.ts"),
			},
		},
		{
			name:      "non-existent directory",
			root:      "/non/existent/path",
			expectErr: true,
		},
		{
			name: "empty directory",
			root: filepath.Join(tempDir, "empty"),
		},
		{
			name: "hidden root is still walked",
			root: filepath.Join(tempDir, ".cache"),
			expectedFiles: []string{
				filepath.Join(tempDir, ".cache/c.ts"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			result, err := FindSourceFiles(tt.root, isScript)

			if tt.expectErr {
				req.Error(err, "FindSourceFiles(%q) expected error, got nil", tt.root)
				return
			}

			req.NoError(err, "FindSourceFiles(%q) unexpected error: %v", tt.root, err)
			req.ElementsMatch(tt.expectedFiles, result, "FindSourceFiles(%q) found: %v", tt.root, result)
		})
	}
}
