// two48 is a terminal 2048 with undo, resizable boards, save files and a
// local score history.
//
// Usage:
//
//	two48 play               - Play in the terminal
//	two48 scores             - Show high scores for a board size
//	two48 inspect <file>     - Decode a save file
//	two48 config             - Print the effective configuration
//
// Global flags:
//
//	--config <path>     - Use a custom config YAML
//	--seed <value>      - Set RNG seed for reproducible games
//	--db <path>         - Set database path (default: XDG data dir)
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/config"
)

var (
	// Global flags
	flagConfig   string
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "two48",
	Short: "2048 in your terminal",
	Long: `two48 is a terminal version of the 2048 sliding tile puzzle.

Slide the tiles in four directions; equal tiles merge and add their value to
the score. The game ends when no slide changes the board.

Available commands:
  play     - Start a game
  scores   - View high scores
  inspect  - Decode a save file
  config   - Print the effective configuration

Examples:
  two48 play
  two48 play --width 5 --height 5
  two48 play --load ./game.bin
  two48 scores --width 5 --height 5
  two48 inspect ~/.local/share/tui-2048/save.bin`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to scores database (default: XDG data dir)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig loads the configuration and applies the global flag overrides.
// modify runs before validation so commands can apply their own flags.
func loadConfig(modify func(*config.Config)) (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}

	if flagDBPath != "" {
		cfg.Paths.Scores = flagDBPath
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	if modify != nil {
		modify(&cfg)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	if err := cfg.ResolvePaths(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// newLogger builds the process logger writing to w.
func newLogger(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("two48: %w", err)
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "two48",
		Level:           lvl,
	})
	return logger, nil
}

// openLogFile opens the log file for appending.
func openLogFile(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("two48: cannot open log file: %w", err)
	}
	return f, nil
}
