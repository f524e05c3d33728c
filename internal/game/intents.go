package game

import (
	"fmt"

	"github.com/vovakirdan/tui-2048/internal/board"
)

// Move slides the board by one step along a single axis. dx > 0 is right,
// dy > 0 is down on screen (towards y = H-1). On a legal move one new tile is
// spawned and the counters advance. Returns whether the move was applied.
func (g *Game) Move(dx, dy int) bool {
	if g.state.Paused {
		g.logger.Debug("ignoring move while paused")
		return false
	}
	if (dx != 0) == (dy != 0) {
		g.logger.Debug("ignoring move along no single axis", "dx", dx, "dy", dy)
		return false
	}
	if !g.canMove {
		return false
	}

	var points uint32
	if dx != 0 {
		positive := dx > 0
		if !g.board.CanMoveHorizontally(positive) {
			g.logger.Debug("discarding blocked move", "dx", dx)
			return false
		}
		points = g.board.MoveHorizontally(positive)
	} else {
		positive := dy > 0
		if !g.board.CanMoveVertically(positive) {
			g.logger.Debug("discarding blocked move", "dy", dy)
			return false
		}
		points = g.board.MoveVertically(positive)
	}

	g.board.Spawn(board.RandomValue(g.rng, g.spawn4))
	g.moves++
	g.score += points
	g.canMove = g.board.CanMove()

	return true
}

// Undo restores the previous board. Moves and score are kept as they are.
// Undoing out of a loss revives the session.
func (g *Game) Undo() {
	if g.state.Paused {
		return
	}
	if !g.board.CanUndo() {
		g.logger.Info("nothing to undo")
		return
	}

	g.board.Undo()
	g.canMove = g.board.CanMove()
	if g.canMove {
		g.state.Terminated = false
	}
}

// Reset starts over on a new board at the target dimensions.
func (g *Game) Reset() {
	if g.state.Paused {
		return
	}

	b, err := g.newBoard()
	if err != nil {
		// Target dimensions are validated by New and SetBoardDimensions.
		g.logger.Warn("cannot reset board", "err", err)
		return
	}

	g.board = b
	g.moves = 0
	g.score = 0
	g.canMove = true
	g.state.Terminated = false

	g.logger.Info("reset board", "width", g.width, "height", g.height)
}

// SetBoardDimensions changes the target board size and resets the session.
// Non-positive sizes are ignored.
func (g *Game) SetBoardDimensions(width, height int) {
	if g.state.Paused {
		return
	}
	if width == g.width && height == g.height {
		return
	}
	if width <= 0 || height <= 0 {
		g.logger.Warn("ignoring invalid board dimensions", "width", width, "height", height)
		return
	}

	g.width = width
	g.height = height
	g.Reset()
}

// Save writes the board and the session counters to path.
func (g *Game) Save(path string) error {
	if err := g.board.Save(path, g.moves, g.score); err != nil {
		return fmt.Errorf("game: cannot save: %w", err)
	}
	return nil
}

// Load replaces the session with the save file at path. On failure the
// session is left untouched.
func (g *Game) Load(path string) error {
	counters, err := g.board.Load(path)
	if err != nil {
		return fmt.Errorf("game: cannot load: %w", err)
	}

	g.width = g.board.W()
	g.height = g.board.H()
	g.depth = g.board.Depth()
	g.moves = counters.Moves
	g.score = counters.Score
	g.canMove = g.board.CanMove()
	g.state.Terminated = false

	return nil
}
