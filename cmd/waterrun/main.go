// waterrun is a terminal endless runner: carry water to the doors, jump the
// hydrants, and keep ahead of the dog.
//
// Usage:
//
//	waterrun play            - Pick a difficulty and play in this terminal
//	waterrun serve           - Start an SSH server, one run session per connection
//	waterrun sim             - Run headless simulations and print the results
//	waterrun difficulties    - List the difficulty tiers
//
// Global flags:
//
//	--config <path>     - YAML config (default search: ~/.waterrun, ./configs, embedded)
//	--seed <value>      - RNG seed for reproducible runs (0 = from the clock)
//	--log-level <lvl>   - debug, info, warn, error
//	--log-file <path>   - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/waterrun/internal/config"
)

var (
	// Global flags
	flagConfig   string
	flagSeed     int64
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "waterrun",
	Short: "Water Run - deliver water, dodge hydrants, outrun the dog",
	Long: `Water Run is an endless runner for the terminal.

The runner carries water past a street of doors. Deliver while a door is
lit, jump the hydrants, and do not let the dog catch up: every hydrant you
hit lets it close in.

Available commands:
  play          - Play in this terminal
  serve         - Start an SSH server for remote play
  sim           - Run headless simulations
  difficulties  - Show the difficulty tiers

Examples:
  waterrun play
  waterrun serve --ssh :2222
  waterrun sim --difficulty hard --autopilot --runs 10
  waterrun difficulties`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a config YAML")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(difficultiesCmd)
}

// newLogger builds the process logger. Logs go to --log-file when set and to
// fallback otherwise. The returned closer releases the file.
func newLogger(fallback io.Writer) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	w, closer := fallback, func() {}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w, closer = f, func() { f.Close() }
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "waterrun",
	})
	logger.SetLevel(level)
	return logger, closer, nil
}

// loadConfig resolves the configuration for a command.
func loadConfig(logger *log.Logger) (config.Config, error) {
	cfg, err := config.Load(flagConfig, logger)
	if err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}
