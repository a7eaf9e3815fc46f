package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/siyuan-infoblox/ordered-imports/pkg/checker"
	"github.com/siyuan-infoblox/ordered-imports/pkg/errors"
	"github.com/siyuan-infoblox/ordered-imports/pkg/order"
	"github.com/siyuan-infoblox/ordered-imports/pkg/source"
	"github.com/siyuan-infoblox/ordered-imports/pkg/version"
)

const (
	UseDescription   = "oi [flags] PATH..."
	ShortDescription = "Ordered imports - check that imports follow a group order"
	LongDescription  = `oi checks the order of import statements in Go, JavaScript and TypeScript files.

Imports are classified into an ordered list of groups:
  lib       modules that do not start with "." or "/" (packages, node_modules)
  user      modules that start with "." or "/" (relative and absolute paths)
  {module}  the module of the checked Go file, read from the nearest go.mod
  <regexp>  any other value is a regular expression; custom groups win over lib and user

A missing lib group is added first and a missing user group is added last. Imports must
not appear after an import of a later group. Optionally the blank lines between two
adjacent imports of different groups are checked as well.

PATH can be a file or a directory. Directories are walked recursively, skipping vendor,
node_modules and hidden directories. Settings are read from .ordered-imports.yaml and
OI_* environment variables; flags take precedence.`
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

type options struct {
	configFile  string
	verbose     bool
	showVersion bool
}

func newRootCmd() *cobra.Command {
	v := newConfig()
	opts := &options{}

	cmd := &cobra.Command{
		Use:          UseDescription,
		Short:        ShortDescription,
		Long:         LongDescription,
		SilenceUsage: true,
		Args: func(cmd *cobra.Command, args []string) error {
			// If version flag is set, we don't need path arguments
			if opts.showVersion {
				return nil
			}
			return cobra.MinimumNArgs(1)(cmd, args)
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := readConfig(v, opts.configFile); err != nil {
				return err
			}
			configureLogger(v, cmd.ErrOrStderr(), opts.verbose)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.showVersion {
				fmt.Fprintln(cmd.OutOrStdout(), version.Get())
				return nil
			}
			return run(cmd, v, args)
		},
	}

	configureFlags(cmd, v, opts)
	return cmd
}

func configureFlags(cmd *cobra.Command, v *viper.Viper, opts *options) {
	flags := cmd.PersistentFlags()

	flags.StringSlice(orderKey, order.DefaultOrder, `Comma-separated group order: "lib", "user", "{module}" or regular expressions`)
	bindFlagToConfig(v, flags.Lookup(orderKey), orderKey)

	flags.String(blankLinesKey, order.AnyNumberOfBlankLines.String(), "Blank lines between groups: "+strings.Join(order.SpacingPolicyNames(), ", "))
	bindFlagToConfig(v, flags.Lookup(blankLinesKey), blankLinesKey)

	formats := make([]string, 0, len(checker.Formats))
	for _, f := range checker.Formats {
		formats = append(formats, string(f))
	}
	flags.StringP(formatKey, "f", string(checker.TextFormat), "Output format: "+strings.Join(formats, ", "))
	bindFlagToConfig(v, flags.Lookup(formatKey), formatKey)

	flags.IntP(parallelKey, "p", v.GetInt(parallelKey), "Number of files checked in parallel")
	bindFlagToConfig(v, flags.Lookup(parallelKey), parallelKey)

	flags.StringArrayP(excludeKey, "x", []string{}, "Exclude paths matching regex (can be repeated)")
	bindFlagToConfig(v, flags.Lookup(excludeKey), excludeKey)

	flags.Bool(noColorKey, false, "Disable colored output")
	bindFlagToConfig(v, flags.Lookup(noColorKey), noColorKey)

	flags.String("log-file", "", "Write logs to a rotated file instead of stderr")
	bindFlagToConfig(v, flags.Lookup("log-file"), logFilenameKey)

	flags.StringVar(&opts.configFile, "config", "", "Config file (default .ordered-imports.yaml)")
	flags.BoolVar(&opts.verbose, "verbose", false, "Log debug information")
	flags.BoolVarP(&opts.showVersion, "version", "v", false, "Show version information")
}

func run(cmd *cobra.Command, v *viper.Viper, paths []string) error {
	policy, err := order.ParseSpacingPolicy(v.GetString(blankLinesKey))
	if err != nil {
		return err
	}
	format, err := checker.ParseFormat(v.GetString(formatKey))
	if err != nil {
		return err
	}

	c, err := checker.New(checker.CheckerConfig{
		Order:      v.GetStringSlice(orderKey),
		BlankLines: policy,
		Parallel:   v.GetInt(parallelKey),
		Exclude:    v.GetStringSlice(excludeKey),
	}, source.NewRegistry())
	if err != nil {
		return err
	}

	result, err := c.CheckPaths(cmd.Context(), paths)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	renderer := checker.Renderer{
		Format: format,
		Color:  !v.GetBool(noColorKey) && isTerminal(out),
	}
	if err := renderer.Render(out, result); err != nil {
		return err
	}

	if n := result.ErrorCount(); n > 0 {
		return fmt.Errorf(errors.ErrMsgFilesFailedToProcess, n)
	}
	if n := result.ViolationCount(); n > 0 {
		return fmt.Errorf(errors.ErrMsgViolationsFound, n)
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Execute runs the root command. version is the module version from the build info and is
// used when no version was set at build time.
func Execute(buildVersion string) error {
	if version.Version == "dev" && buildVersion != "" && buildVersion != "(devel)" {
		version.Version = buildVersion
	}
	return rootCmd.Execute()
}
