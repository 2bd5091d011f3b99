package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/penwyp/go-tally/internal/config"
	"github.com/penwyp/go-tally/internal/presentation/display"
	"github.com/penwyp/go-tally/internal/util"
	"github.com/spf13/cobra"
)

var (
	// Logging related
	debug bool

	// Configuration sources
	configFile string
	dataDir    string
	timezone   string

	// Loaded by the root command before any subcommand runs
	cfg *config.Config

	rootCmd = &cobra.Command{
		Use:   "go-tally",
		Short: "Record, validate and export hand-collected time series",
		Long: `go-tally keeps time series of numbers and notes in plain CSV files laid out as
<data root>/<platform>/<account>/<metric>.<ext>, one "timestamp,value" row per record.

Examples:
  go-tally add data/twitter/alice/followers.csv   # Enter the next value of one series
  go-tally add data/twitter                       # Walk every series below a directory
  go-tally validate                               # Check every file under the data root
  go-tally validate --print data/youtube          # Print records while checking
  go-tally export -o export.csv                   # Merge integer series into one table
  go-tally list                                   # Overview of all series`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
	}
)

const (
	defaultLogFile    = "~/.go-tally/logs/app.log"
	defaultConfigFile = "~/.go-tally/config.yaml"
	configEnv         = "GO_TALLY_CONFIG"
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"Config file path (default "+defaultConfigFile+", or $"+configEnv+")")
	rootCmd.PersistentFlags().StringVar(&dataDir, "dir", "",
		"Data root directory (overrides data_root from the config)")
	rootCmd.PersistentFlags().StringVar(&timezone, "timezone", "",
		"Timezone for entering and showing timestamps (e.g., Asia/Shanghai, UTC)")

	// System and debugging
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"Enable debug mode")
}

func setup(cmd *cobra.Command, args []string) error {
	loaded, err := loadConfig()
	if err != nil {
		return err
	}

	// Determine log level based on debug flag
	logLevel := "info"
	if debug {
		logLevel = "debug"
	}

	logFile := expandPath(defaultLogFile)
	if err := ensureDir(filepath.Dir(logFile)); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	if err := util.InitLogger(logLevel, logFile, debug, util.LogFormat(loaded.LogFormat)); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	if err := util.InitializeTimeProvider(loaded.Timezone); err != nil {
		return err
	}

	cfg = loaded
	util.LogDebugf("Running %s with data root %s", cmd.Name(), cfg.DataRoot)
	return nil
}

// loadConfig merges defaults, the config file and flags, in increasing precedence.
func loadConfig() (*config.Config, error) {
	path := configFile
	if path == "" {
		path = os.Getenv(configEnv)
	}

	var (
		loaded *config.Config
		err    error
	)
	if path != "" {
		loaded, err = config.Load(expandPath(path))
	} else {
		loaded, err = config.LoadOptional(expandPath(defaultConfigFile))
	}
	if err != nil {
		return nil, err
	}

	if dataDir != "" {
		loaded.DataRoot = dataDir
	}
	if timezone != "" {
		loaded.Timezone = timezone
	}
	loaded.DataRoot = expandPath(loaded.DataRoot)

	if err := loaded.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return loaded, nil
}

// Execute runs the command line and reports a failure on stderr.
func Execute() error {
	defer util.CloseLogger()

	if err := rootCmd.Execute(); err != nil {
		display.NewPrinter(os.Stderr).Errorf("Error: %v", err)
		return err
	}
	return nil
}

// Helper functions

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}

func ensureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}

// pathsOrRoot returns args as absolute paths, or the data root when no path was given.
func pathsOrRoot(args []string) []string {
	if len(args) == 0 {
		return []string{cfg.DataRoot}
	}
	paths := make([]string, 0, len(args))
	for _, arg := range args {
		paths = append(paths, expandPath(arg))
	}
	return paths
}

func isSeries(path string) bool {
	_, ok := cfg.KindOf(path)
	return ok
}
