package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/moolen/fmea/internal/config"
	"github.com/moolen/fmea/internal/logging"
	"github.com/moolen/fmea/internal/metrics"
	"github.com/moolen/fmea/internal/worksheet"
)

// Version is the application version
const Version = "0.1.0"

var (
	configPath    string
	logLevelFlags []string // supports multiple --log-level flags

	// cfg is loaded by the root PersistentPreRunE.
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "fmea",
	Short: "fmea - failure link normalization and action priority engine",
	Long: `fmea repairs the failure link table of FMEA worksheets, classifies every
failure mode / failure cause pairing into an Action Priority (H/M/L) and keeps
the stage confirmation flags consistent.`,
	Version:           Version,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML config file")
	// Supports per-package log levels: --log-level debug --log-level linkage=debug
	rootCmd.PersistentFlags().StringSliceVar(&logLevelFlags, "log-level", nil,
		"Log level for packages. Use 'level' or 'default=level' for the default, or 'package=level' per package.\n"+
			"Examples: --log-level debug, --log-level linkage=debug --log-level config.*=warn")

	rootCmd.AddCommand(normalizeCmd)
	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(confirmCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(versionCmd)
}

// setup loads the config and initializes logging. Flags and LOG_LEVEL_*
// variables override the config file.
func setup(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}

	defaultLevel, packageLevels, err := parseLogLevelFlags(logLevelFlags)
	if err != nil {
		return err
	}
	if defaultLevel != "" {
		loaded.LogLevel = defaultLevel
	}
	if len(packageLevels) > 0 {
		merged := make(map[string]string, len(loaded.LogLevels)+len(packageLevels))
		for k, v := range loaded.LogLevels {
			merged[k] = v
		}
		for k, v := range packageLevels {
			merged[k] = v
		}
		loaded.LogLevels = merged
	}

	if err := logging.Initialize(loaded.LogLevel, loaded.LogLevels); err != nil {
		return err
	}
	cfg = loaded
	return nil
}

// parseLogLevelFlags merges LOG_LEVEL_* environment variables and CLI
// flags; flags win.
//
// CLI format: ["debug"], ["default=info", "config.watch=debug"]
// Env vars: LOG_LEVEL_CONFIG_WATCH=debug (package name uppercased, dots to underscores)
//
// The returned default level is "" when none was given.
func parseLogLevelFlags(flags []string) (string, map[string]string, error) {
	result := make(map[string]string)

	for _, envPair := range os.Environ() {
		if !strings.HasPrefix(envPair, "LOG_LEVEL_") {
			continue
		}
		key, level, ok := strings.Cut(envPair, "=")
		if !ok {
			continue
		}
		result[convertEnvKeyToPackageName(key)] = level
	}

	for _, flag := range flags {
		if pkg, level, ok := strings.Cut(flag, "="); ok {
			result[pkg] = level
		} else {
			result["default"] = flag
		}
	}

	defaultLevel := result["default"]
	delete(result, "default")

	if defaultLevel != "" {
		if _, err := logging.ParseLevel(defaultLevel); err != nil {
			return "", nil, err
		}
	}
	for pkg, level := range result {
		if _, err := logging.ParseLevel(level); err != nil {
			return "", nil, fmt.Errorf("invalid log level for package %q: %w", pkg, err)
		}
	}

	return defaultLevel, result, nil
}

// convertEnvKeyToPackageName converts LOG_LEVEL_CONFIG_WATCH -> config.watch
func convertEnvKeyToPackageName(envKey string) string {
	name := strings.TrimPrefix(envKey, "LOG_LEVEL_")
	return strings.ToLower(strings.ReplaceAll(name, "_", "."))
}

// newEngine builds a recompute engine from the loaded config.
func newEngine(m *metrics.Metrics) (*worksheet.Engine, error) {
	size := 0
	if cfg.Cache.Enabled {
		size = cfg.Cache.Size
	}
	return worksheet.NewEngine(worksheet.EngineConfig{
		Options:   cfg.LinkageOptions(),
		CacheSize: size,
		Metrics:   m,
	})
}
