package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-2048/internal/game"
)

// Tile sizes in terminal cells. The compact size is used when the roomy
// board does not fit the window.
const (
	cellWidth         = 8
	cellHeight        = 3
	compactCellWidth  = 7
	compactCellHeight = 1
	chromeHeight      = 6 // Title, status line, message and help
)

var (
	emptyTileColor = lipgloss.Color("#CBBFB2")
	boardColor     = lipgloss.Color("#BBADA0")
	darkText       = lipgloss.Color("#655F53")
	lightText      = lipgloss.Color("#FFFFFF")

	// tilePalette maps a tile to its background; larger tiles use the last entry.
	tilePalette = []struct {
		upTo  uint32
		color lipgloss.Color
	}{
		{2, lipgloss.Color("#EEE4DA")},
		{4, lipgloss.Color("#ECE0C8")},
		{8, lipgloss.Color("#EEB17B")},
		{16, lipgloss.Color("#F29669")},
		{32, lipgloss.Color("#F07D62")},
		{64, lipgloss.Color("#F35F41")},
		{128, lipgloss.Color("#E9CE77")},
		{256, lipgloss.Color("#ECCB67")},
		{512, lipgloss.Color("#ECC859")},
		{1024, lipgloss.Color("#E7C257")},
		{2048, lipgloss.Color("#E8BD4D")},
	}
	bigTileColor = lipgloss.Color("#2C2C2C")

	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))

	statusStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("250"))

	messageStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("42"))

	errorStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	overlayStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("229")).
		Bold(true).
		Padding(0, 2).
		Align(lipgloss.Center)
)

// tileBackground returns the background color for a non-empty tile.
func tileBackground(v uint32) lipgloss.Color {
	for _, p := range tilePalette {
		if v <= p.upTo {
			return p.color
		}
	}
	return bigTileColor
}

// tileForeground returns the text color for a non-empty tile.
func tileForeground(v uint32) lipgloss.Color {
	if v <= 4 {
		return darkText
	}
	return lightText
}

// tileStyle returns the style for a tile of the given size.
func tileStyle(v uint32, w, h int) lipgloss.Style {
	s := lipgloss.NewStyle().
		Width(w).
		Height(h).
		Align(lipgloss.Center, lipgloss.Center).
		Bold(true)

	if v == 0 {
		return s.Background(emptyTileColor)
	}
	return s.Background(tileBackground(v)).Foreground(tileForeground(v))
}

// boardSize returns the rendered size of a board in terminal cells,
// including the one-cell gutters around and between tiles.
func boardSize(cols, rows, cw, ch int) (w, h int) {
	return cols*(cw+1) + 1, rows*(ch+1) + 1
}

// cellSize picks the tile size that fits a board of cols x rows in a window
// of width x height. ok is false when even the compact tiles do not fit.
func cellSize(cols, rows, width, height int) (cw, ch int, ok bool) {
	w, h := boardSize(cols, rows, cellWidth, cellHeight)
	if w <= width && h+chromeHeight <= height {
		return cellWidth, cellHeight, true
	}
	w, h = boardSize(cols, rows, compactCellWidth, compactCellHeight)
	if w <= width && h+chromeHeight <= height {
		return compactCellWidth, compactCellHeight, true
	}
	return 0, 0, false
}

// renderBoard draws the tiles of s with the given tile size.
func renderBoard(s game.Snapshot, cw, ch int) string {
	gap := lipgloss.NewStyle().Background(boardColor)
	vgap := gap.Width(1).Height(ch).Render("")
	hgap := gap.Width(cw*s.Width + s.Width + 1).Render("")

	rows := make([]string, 0, 2*s.Height+1)
	rows = append(rows, hgap)
	for y := range s.Height {
		cells := make([]string, 0, 2*s.Width+1)
		cells = append(cells, vgap)
		for x := range s.Width {
			v := s.At(x, y)
			label := ""
			if v != 0 {
				label = strconv.FormatUint(uint64(v), 10)
			}
			cells = append(cells, tileStyle(v, cw, ch).Render(label), vgap)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...), hgap)
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// renderStatus draws the counters line.
func renderStatus(s game.Snapshot, best uint32) string {
	undo := "no undo"
	if s.CanUndo {
		undo = "undo ready"
	}
	return statusStyle.Render(fmt.Sprintf("Score %d  Best %d  Moves %d  %dx%d  %s",
		s.Score, max(best, s.Score), s.Moves, s.Width, s.Height, undo))
}

// renderOverlay returns the banner for the snapshot's state, or "" when
// nothing should be shown.
func renderOverlay(s game.Snapshot, won bool, winTile uint32) string {
	switch {
	case s.Status == game.StatusPaused:
		return overlayStyle.Render("PAUSED\nPress P to resume")
	case s.Status == game.StatusGameOver:
		return overlayStyle.Render(fmt.Sprintf("GAME OVER\nScore %d  Max tile %d\nPress R to restart", s.Score, s.MaxTile))
	case won:
		return overlayStyle.Render(fmt.Sprintf("%d!\nKeep going", winTile))
	}
	return ""
}

// centerText pads text on the left so it appears centered in width columns.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}
