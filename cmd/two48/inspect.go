package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/board"
)

var flagInspectHistory bool

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Decode a save file",
	Long: `Print the content of a save file: board size, counters, the board and
the undo history.

Examples:
  two48 inspect ./game.bin
  two48 inspect --history=false ./game.bin`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().BoolVar(&flagInspectHistory, "history", true, "Print the undo snapshots")
}

func runInspect(cmd *cobra.Command, args []string) error {
	sf, err := board.ReadSaveFile(args[0])
	if err != nil {
		return err
	}

	printSaveFile(cmd.OutOrStdout(), sf, flagInspectHistory)
	return nil
}

// printSaveFile writes a readable dump of sf.
func printSaveFile(w io.Writer, sf *board.SaveFile, history bool) {
	fmt.Fprintf(w, "Board:   %dx%d\n", sf.Width, sf.Height)
	fmt.Fprintf(w, "Moves:   %d\n", sf.Counters.Moves)
	fmt.Fprintf(w, "Score:   %d\n", sf.Counters.Score)
	fmt.Fprintf(w, "Undo:    %d of %d\n", len(sf.History), sf.Depth)
	fmt.Fprintln(w)
	writeGrid(w, sf.Cells, int(sf.Width))

	if !history {
		return
	}
	// Newest snapshot is popped first
	for i := len(sf.History) - 1; i >= 0; i-- {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Undo %d:\n", len(sf.History)-i)
		writeGrid(w, sf.History[i], int(sf.Width))
	}
}

// writeGrid prints cells as rows of right-aligned numbers, "." for empty.
func writeGrid(w io.Writer, cells []uint32, width int) {
	cellW := 1
	for _, v := range cells {
		cellW = max(cellW, len(strconv.FormatUint(uint64(v), 10)))
	}

	for start := 0; start < len(cells); start += width {
		row := make([]string, 0, width)
		for _, v := range cells[start : start+width] {
			label := "."
			if v != 0 {
				label = strconv.FormatUint(uint64(v), 10)
			}
			row = append(row, fmt.Sprintf("%*s", cellW, label))
		}
		fmt.Fprintf(w, "  %s\n", strings.Join(row, " "))
	}
}
