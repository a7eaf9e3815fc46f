package utils

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// maxModuleSearchDepth bounds how many parent directories are searched for go.mod
const maxModuleSearchDepth = 20

// FindGoModule returns the module path declared by the go.mod closest to filePath,
// or an empty string when there is none.
func FindGoModule(filePath string) string {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return ""
	}

	dir := filepath.Dir(absPath)
	for i := 0; i < maxModuleSearchDepth; i++ {
		if module, ok := readModulePath(filepath.Join(dir, "go.mod")); ok {
			return module
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

func readModulePath(goModPath string) (string, bool) {
	f, err := os.Open(goModPath)
	if err != nil {
		return "", false
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "module ") || strings.HasPrefix(line, "module\t") {
			module := strings.TrimSpace(strings.TrimPrefix(line, "module"))
			return strings.Trim(module, `"`), true
		}
	}
	return "", false
}
