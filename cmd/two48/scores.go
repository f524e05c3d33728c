package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-2048/internal/platform/tui"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var (
	flagScoresWidth  int
	flagScoresHeight int
	flagScoresLimit  int
	flagScoresUI     bool
	flagScoresClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores for a board size",
	Long: `Display the top scores for a board size.

Without --width and --height the configured board size is used.

Examples:
  two48 scores
  two48 scores --width 5 --height 5 --limit 20
  two48 scores --ui`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresWidth, "width", 0, "Board width (default from config)")
	scoresCmd.Flags().IntVar(&flagScoresHeight, "height", 0, "Board height (default from config)")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagScoresUI, "ui", false, "Browse all board sizes interactively")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the scores for the board size")
}

func runScores(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(nil)
	if err != nil {
		return err
	}

	size := storage.Size{Width: cfg.Board.Width, Height: cfg.Board.Height}
	if flagScoresWidth > 0 {
		size.Width = flagScoresWidth
	}
	if flagScoresHeight > 0 {
		size.Height = flagScoresHeight
	}

	// Open score storage
	store, err := storage.Open(cfg.Paths.Scores)
	if err != nil {
		return fmt.Errorf("two48: cannot open scores database: %w", err)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearScores(size); err != nil {
			return err
		}
		fmt.Printf("Cleared scores for %s\n", size)
		return nil
	}

	if flagScoresUI {
		return browseScores(store, size)
	}

	scores, err := store.TopScores(size, flagScoresLimit)
	if err != nil {
		return err
	}
	best, err := store.HighScore(size)
	if err != nil {
		return err
	}

	printScores(os.Stdout, size, scores, best)
	return nil
}

func browseScores(store *storage.Store, size storage.Size) error {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return tui.RunScoreboard(store, size, width, height)
}

// printScores writes the score table for one board size.
func printScores(w io.Writer, size storage.Size, scores []storage.ScoreEntry, best uint32) {
	fmt.Fprintf(w, "High Scores - %s\n", size)
	fmt.Fprintln(w)

	if len(scores) == 0 {
		fmt.Fprintln(w, "No scores recorded yet.")
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Play 'two48 play --width %d --height %d' to set the first high score!\n", size.Width, size.Height)
		return
	}

	// Print header
	fmt.Fprintf(w, "  %-4s  %-10s  %-6s  %-6s  %s\n", "Rank", "Score", "Moves", "Tile", "Date")
	fmt.Fprintf(w, "  %-4s  %-10s  %-6s  %-6s  %s\n", "----", "-----", "-----", "----", "----")

	for i, entry := range scores {
		tile := fmt.Sprintf("%d", entry.MaxTile)
		if entry.Won {
			tile += "*"
		}
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Fprintf(w, "  %-4d  %-10d  %-6d  %-6s  %s\n", i+1, entry.Score, entry.Moves, tile, dateStr)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Best: %d\n", best)
}
