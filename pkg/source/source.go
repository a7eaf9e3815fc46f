// Package source turns source files into the import occurrences checked by package order.
package source

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/siyuan-infoblox/ordered-imports/pkg/order"
)

// Extractor returns the import statements of a file in document order
type Extractor interface {
	Extract(filename string, src []byte) ([]order.Occurrence, error)
}

// ScriptExtensions are the JavaScript and TypeScript file extensions handled by ScriptExtractor
var ScriptExtensions = []string{".js", ".jsx", ".mjs", ".cjs", ".ts", ".tsx", ".mts", ".cts"}

// Registry maps file extensions to extractors
type Registry struct {
	byExt map[string]Extractor
}

// NewRegistry creates a Registry handling Go, JavaScript and TypeScript files
func NewRegistry() *Registry {
	r := &Registry{byExt: make(map[string]Extractor)}
	r.Register(".go", GoExtractor{})
	for _, ext := range ScriptExtensions {
		r.Register(ext, ScriptExtractor{})
	}
	return r
}

// Register sets the extractor for ext, e.g. ".ts"
func (r *Registry) Register(ext string, e Extractor) {
	r.byExt[strings.ToLower(ext)] = e
}

// ForPath returns the extractor for a file path
func (r *Registry) ForPath(path string) (Extractor, bool) {
	e, ok := r.byExt[strings.ToLower(filepath.Ext(path))]
	return e, ok
}

// Supports reports whether path has a registered extension
func (r *Registry) Supports(path string) bool {
	_, ok := r.ForPath(path)
	return ok
}

// Extensions returns the registered extensions in sorted order
func (r *Registry) Extensions() []string {
	exts := make([]string, 0, len(r.byExt))
	for ext := range r.byExt {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}
