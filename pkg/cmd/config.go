package cmd

import (
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/siyuan-infoblox/ordered-imports/pkg/checker"
	"github.com/siyuan-infoblox/ordered-imports/pkg/errors"
	"github.com/siyuan-infoblox/ordered-imports/pkg/order"
)

const (
	configBaseName = ".ordered-imports"
	configType     = "yaml"
	envPrefix      = "OI"

	orderKey      = "order"
	blankLinesKey = "blank-lines"
	formatKey     = "format"
	parallelKey   = "parallel"
	excludeKey    = "exclude"
	noColorKey    = "no-color"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogLevel      = "warn"
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

// newConfig returns a viper instance with every default set
func newConfig() *viper.Viper {
	v := viper.New()
	v.SetConfigName(configBaseName)
	v.SetConfigType(configType)
	v.AddConfigPath(".")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	v.SetDefault(orderKey, order.DefaultOrder)
	v.SetDefault(blankLinesKey, order.AnyNumberOfBlankLines.String())
	v.SetDefault(formatKey, string(checker.TextFormat))
	v.SetDefault(parallelKey, runtime.NumCPU())
	v.SetDefault(excludeKey, []string{})
	v.SetDefault(noColorKey, false)

	// Logging defaults. An empty filename logs to stderr.
	v.SetDefault(logFilenameKey, "")
	v.SetDefault(logLevelKey, defaultLogLevel)
	v.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	v.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	v.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	v.SetDefault(logCompressKey, defaultLogCompress)
	return v
}

// readConfig loads path, or the default config file when path is empty. A missing default
// config file is not an error.
func readConfig(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && stderrors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("%s: %w", errors.ErrMsgFailedToReadConfig, err)
	}
	slog.Debug("Loaded config", "file", v.ConfigFileUsed())
	return nil
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(v *viper.Viper, flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(v.BindPFlag(key, flag))
}

func parseSlogLevel(value string, defaultLevel slog.Level) slog.Level {
	level := strings.ToLower(strings.TrimSpace(value))
	if level == "" {
		return defaultLevel
	}

	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	// Allow numeric slog levels as well (e.g. -4 for debug).
	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}

	return defaultLevel
}

// configureLogger sets the global slog logger. Logs go to the rotated log file when one is
// configured and to stderr otherwise; verbose forces the Debug level.
func configureLogger(v *viper.Viper, stderr io.Writer, verbose bool) {
	level := parseSlogLevel(v.GetString(logLevelKey), slog.LevelWarn)
	if verbose {
		level = slog.LevelDebug
	}

	var w io.Writer = stderr
	if logPath := strings.TrimSpace(v.GetString(logFilenameKey)); logPath != "" {
		w = &lumberjack.Logger{
			Filename:   logPath,
			MaxSize:    v.GetInt(logMaxSizeKey),
			MaxBackups: v.GetInt(logMaxBackupsKey),
			MaxAge:     v.GetInt(logMaxAgeKey),
			Compress:   v.GetBool(logCompressKey),
		}
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		AddSource: verbose,
		Level:     level,
	})
	slog.SetDefault(slog.New(handler))
}
