package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/game"
	"github.com/vovakirdan/tui-2048/internal/platform/tui"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var (
	flagWidth      int
	flagHeight     int
	flagLoad       string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play 2048",
	Long: `Start a game in the terminal.

Controls:
  Arrows/WASD/HJKL - Slide tiles
  U                - Undo
  P/Esc            - Pause
  R                - New game
  Ctrl+S / Ctrl+O  - Save / load
  ] [ } {          - Wider, narrower, taller, shorter board
  ?                - Full help
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - 20 undo levels, 4s spawn 5% of the time
  normal - 5 undo levels, 4s spawn 10% of the time
  hard   - No undo, 4s spawn 25% of the time

Examples:
  two48 play
  two48 play --width 6 --height 4
  two48 play --difficulty hard
  two48 play --load ./game.bin
  two48 play --seed 42`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagWidth, "width", 0, "Board width (default from config)")
	playCmd.Flags().IntVar(&flagHeight, "height", 0, "Board height (default from config)")
	playCmd.Flags().StringVar(&flagLoad, "load", "", "Resume from a save file; saves go to the same file")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
}

func runPlay(cmd *cobra.Command, args []string) error {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(func(c *config.Config) {
		config.ApplyPreset(c, preset)
		if flagWidth > 0 {
			c.Board.Width = flagWidth
		}
		if flagHeight > 0 {
			c.Board.Height = flagHeight
		}
		if flagLoad != "" {
			c.Paths.Save = flagLoad
		}
	})
	if err != nil {
		return err
	}

	// Logs go to a file while the UI owns the terminal
	logFile, err := openLogFile(cfg.Log.File)
	if err != nil {
		return err
	}
	defer logFile.Close()

	logger, err := newLogger(logFile, cfg.Log.Level)
	if err != nil {
		return err
	}

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	rt := core.RuntimeConfig{
		ScreenW: width,
		ScreenH: height,
		Seed:    flagSeed,
	}.Resolve()
	logger.Debug("runtime", "seed", rt.Seed, "run", rt.RunID)

	g, err := game.New(game.Options{
		Width:  cfg.Board.Width,
		Height: cfg.Board.Height,
		Depth:  cfg.Undo.Depth,
		Spawn4: cfg.Spawn.FourProbability,
		Rand:   rt.Rand(),
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("two48: cannot start game: %w", err)
	}

	if flagLoad != "" {
		if err := g.Load(flagLoad); err != nil {
			return err
		}
	}

	// Open score storage
	var scores tui.ScoreStore
	store, err := storage.Open(cfg.Paths.Scores)
	if err != nil {
		// Continue without storage - game still works
		logger.Warn("could not open scores database", "path", cfg.Paths.Scores, "err", err)
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
	} else {
		defer store.Close()
		scores = store
	}

	if err := tui.Run(g, scores, cfg, rt, logger); err != nil {
		return fmt.Errorf("two48: %w", err)
	}
	return nil
}
