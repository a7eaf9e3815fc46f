package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUtils_FindGoModule(t *testing.T) {
	req := require.New(t)
	tempDir := t.TempDir()

	goModContent := `module github.com/test/project

go 1.21
`
	req.NoError(os.WriteFile(filepath.Join(tempDir, "go.mod"), []byte(goModContent), 0644))

	subDir := filepath.Join(tempDir, "internal", "pkg")
	req.NoError(os.MkdirAll(subDir, 0755))

	testFile := filepath.Join(subDir, "test.go")
	req.NoError(os.WriteFile(testFile, []byte("package pkg"), 0644))

	// finds go.mod in a parent directory
	req.Equal("github.com/test/project", FindGoModule(testFile), "FindGoModule(%q)", testFile)

	// nested module wins over the outer one
	nestedDir := filepath.Join(tempDir, "tools")
	req.NoError(os.MkdirAll(nestedDir, 0755))
	req.NoError(os.WriteFile(filepath.Join(nestedDir, "go.mod"), []byte("module \"github.com/test/tools\"\n"), 0644))
	req.Equal("github.com/test/tools", FindGoModule(filepath.Join(nestedDir, "main.go")))
}

func TestUtils_FindGoModule_notFound(t *testing.T) {
	req := require.New(t)
	req.Empty(FindGoModule("/non/existent/path/file.go"), "Expected empty string for non-existent path")
}
