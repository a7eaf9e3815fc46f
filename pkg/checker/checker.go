// Package checker runs the import order engine over files and directories.
package checker

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"runtime"
	"sort"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/errgroup"

	"github.com/siyuan-infoblox/ordered-imports/pkg/errors"
	"github.com/siyuan-infoblox/ordered-imports/pkg/order"
	"github.com/siyuan-infoblox/ordered-imports/pkg/source"
	"github.com/siyuan-infoblox/ordered-imports/pkg/utils"
)

// ModuleToken in a group order stands for the module of the checked Go file, as read from
// the nearest go.mod. It is dropped for files outside a Go module and for other languages.
const ModuleToken = "{module}"

// engineCacheSize bounds the number of per-module engines kept around
const engineCacheSize = 64

type CheckerConfig struct {
	Order      []string            // group order tokens
	BlankLines order.SpacingPolicy // blank lines between groups
	Parallel   int                 // number of files checked at once, defaults to the number of CPUs
	Exclude    []string            // regular expressions of paths to skip
}

// FileResult is the outcome of checking one file
type FileResult struct {
	Path       string
	Violations []order.Violation
	Err        error
}

// Result holds the results of all checked files, sorted by path
type Result struct {
	Files []FileResult
}

// ViolationCount returns the number of violations over all files
func (r *Result) ViolationCount() int {
	n := 0
	for _, f := range r.Files {
		n += len(f.Violations)
	}
	return n
}

// ErrorCount returns the number of files that could not be checked
func (r *Result) ErrorCount() int {
	n := 0
	for _, f := range r.Files {
		if f.Err != nil {
			n++
		}
	}
	return n
}

// Checker checks import order of source files
type Checker struct {
	config   CheckerConfig
	registry *source.Registry
	exclude  []*regexp.Regexp

	engine    *order.Engine // used when the order has no ModuleToken
	perModule *lru.Cache[string, *order.Engine]
}

// New validates config and creates a Checker. Configuration problems are returned as
// *errors.ConfigurationError.
func New(config CheckerConfig, registry *source.Registry) (*Checker, error) {
	if registry == nil {
		registry = source.NewRegistry()
	}
	if config.Parallel <= 0 {
		config.Parallel = runtime.NumCPU()
	}
	if len(config.Order) == 0 {
		config.Order = order.DefaultOrder
	}

	c := &Checker{config: config, registry: registry}

	for _, pattern := range config.Exclude {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, &errors.ConfigurationError{Msg: errors.ErrMsgInvalidExclude, Value: pattern, Index: -1, Err: err}
		}
		c.exclude = append(c.exclude, re)
	}

	// building the module-less engine validates every pattern up front
	engine, err := c.buildEngine("")
	if err != nil {
		return nil, err
	}
	if !c.usesModule() {
		c.engine = engine
		return c, nil
	}

	c.perModule, err = lru.New[string, *order.Engine](engineCacheSize)
	if err != nil {
		return nil, err
	}
	c.perModule.Add("", engine)
	return c, nil
}

func (c *Checker) usesModule() bool {
	for _, token := range c.config.Order {
		if token == ModuleToken {
			return true
		}
	}
	return false
}

func (c *Checker) buildEngine(module string) (*order.Engine, error) {
	tokens := make([]string, 0, len(c.config.Order))
	for _, token := range c.config.Order {
		if token != ModuleToken {
			tokens = append(tokens, token)
			continue
		}
		if module != "" {
			tokens = append(tokens, "^"+regexp.QuoteMeta(module)+"(/|$)")
		}
	}
	return order.NewEngine(order.Config{Order: tokens, BlankLines: c.config.BlankLines})
}

// engineFor returns the engine to check path with
func (c *Checker) engineFor(path string) (*order.Engine, error) {
	if c.engine != nil {
		return c.engine, nil
	}

	module := ""
	if strings.HasSuffix(path, ".go") {
		module = utils.FindGoModule(path)
	}
	if engine, ok := c.perModule.Get(module); ok {
		return engine, nil
	}

	engine, err := c.buildEngine(module)
	if err != nil {
		return nil, err
	}
	c.perModule.Add(module, engine)
	slog.Debug("Built engine for module", "module", module)
	return engine, nil
}

// CheckSource checks the imports of src, using path to pick the extractor
func (c *Checker) CheckSource(path string, src []byte) ([]order.Violation, error) {
	extractor, ok := c.registry.ForPath(path)
	if !ok {
		return nil, fmt.Errorf("%s: %s", errors.ErrMsgUnsupportedFile, path)
	}

	occurrences, err := extractor.Extract(path, src)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errors.ErrMsgFailedToExtractImports, err)
	}

	engine, err := c.engineFor(path)
	if err != nil {
		return nil, err
	}

	report := engine.Check(occurrences)
	slog.Debug("Checked file", "path", path, "imports", len(occurrences), "violations", len(report.Violations))
	return report.Violations, nil
}

// CheckFile reads and checks a single file
func (c *Checker) CheckFile(path string) FileResult {
	result := FileResult{Path: path}

	src, err := os.ReadFile(path)
	if err != nil {
		result.Err = fmt.Errorf("%s: %w", errors.ErrMsgFailedToReadFile, err)
		return result
	}

	result.Violations, result.Err = c.CheckSource(path, src)
	return result
}

// CheckPaths checks files and directories. Directories are walked recursively for files with
// a supported extension; files given explicitly are checked whatever their extension.
func (c *Checker) CheckPaths(ctx context.Context, paths []string) (*Result, error) {
	files, err := c.collectFiles(paths)
	if err != nil {
		return nil, err
	}

	results := make([]FileResult, len(files))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(c.config.Parallel)

	for i, file := range files {
		if groupCtx.Err() != nil {
			break
		}
		i, file := i, file
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			results[i] = c.CheckFile(file)
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return &Result{Files: results}, nil
}

func (c *Checker) collectFiles(paths []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string

	add := func(path string) {
		if seen[path] || c.excluded(path) {
			return
		}
		seen[path] = true
		files = append(files, path)
	}

	for _, path := range paths {
		isDir, err := utils.IsDirectory(path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", errors.ErrMsgFailedToCheckPath, err)
		}
		if !isDir {
			add(path)
			continue
		}

		found, err := utils.FindSourceFiles(path, c.registry.Supports)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", errors.ErrMsgFailedToFindFiles, err)
		}
		if len(found) == 0 {
			slog.Info(fmt.Sprintf(errors.InfoMsgNoSourceFilesFound, path))
		}
		for _, f := range found {
			add(f)
		}
	}

	sort.Strings(files)
	return files, nil
}

func (c *Checker) excluded(path string) bool {
	for _, re := range c.exclude {
		if re.MatchString(path) {
			slog.Debug("Excluded file", "path", path, "pattern", re.String())
			return true
		}
	}
	return false
}
