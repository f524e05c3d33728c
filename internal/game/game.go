// Package game implements the 2048 session: one board plus score, move
// counter and pause state, with the random-spawn policy layered on top of
// raw board moves.
package game

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-2048/internal/board"
)

// Options configures a new session.
type Options struct {
	Width  int
	Height int
	Depth  int     // Undo history depth
	Spawn4 float64 // Probability of spawning a 4 instead of a 2

	Rand   board.Source
	Logger board.Logger
}

// DefaultOptions returns the classic 4x4 setup with five undo levels.
func DefaultOptions() Options {
	return Options{
		Width:  board.DefaultWidth,
		Height: board.DefaultHeight,
		Depth:  board.DefaultDepth,
		Spawn4: board.DefaultSpawn4,
	}
}

// State holds the session flags.
type State struct {
	Paused     bool
	Disabled   bool // Mirrors whether the UI accepts interaction
	Terminated bool // Set by Step once no move is left
}

// Game is a 2048 session.
type Game struct {
	state State

	width  int
	height int
	depth  int
	spawn4 float64

	board   *board.Board
	moves   uint32
	score   uint32
	canMove bool

	rng    board.Source
	logger board.Logger
}

// New creates a paused session with a freshly seeded board.
func New(opts Options) (*Game, error) {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	g := &Game{
		state: State{
			Paused:   true,
			Disabled: true,
		},
		width:  opts.Width,
		height: opts.Height,
		depth:  opts.Depth,
		spawn4: opts.Spawn4,
		rng:    opts.Rand,
		logger: opts.Logger,
	}

	b, err := g.newBoard()
	if err != nil {
		return nil, err
	}
	g.board = b
	g.canMove = true

	return g, nil
}

func (g *Game) newBoard() (*board.Board, error) {
	return board.New(board.Options{
		Width:  g.width,
		Height: g.height,
		Depth:  g.depth,
		Spawn4: g.spawn4,
		Rand:   g.rng,
		Logger: g.logger,
	})
}

// W returns the width of the current board.
func (g *Game) W() int {
	return g.board.W()
}

// H returns the height of the current board.
func (g *Game) H() int {
	return g.board.H()
}

// Board exposes the current board for read-only queries.
func (g *Game) Board() board.View {
	return g.board
}

// Moves returns the number of moves played on the current board.
func (g *Game) Moves() uint32 {
	return g.moves
}

// Score returns the accumulated score.
func (g *Game) Score() uint32 {
	return g.score
}

// State returns the session flags.
func (g *Game) State() State {
	return g.state
}

// Paused reports whether the session ignores intents.
func (g *Game) Paused() bool {
	return g.state.Paused
}

// CanMove reports whether at least one move is legal. False is the loss condition.
func (g *Game) CanMove() bool {
	return g.canMove
}

// CanUndo reports whether the board holds an undo snapshot.
func (g *Game) CanUndo() bool {
	return g.board.CanUndo()
}

// TogglePause flips the pause flag; the UI is enabled exactly when playing.
func (g *Game) TogglePause() {
	g.state.Paused = !g.state.Paused
	g.state.Disabled = g.state.Paused

	if g.state.Disabled {
		g.logger.Debug("disabled game UI")
	} else {
		g.logger.Debug("enabled game UI")
	}
}

// Step is the per-frame hook. It returns false once the session has reached
// the loss state, which it records as terminated.
func (g *Game) Step() bool {
	if g.state.Paused {
		return true
	}

	if !g.canMove {
		if !g.state.Terminated {
			g.logger.Info("no move left", "moves", g.moves, "score", g.score, "max", g.board.MaxTile())
		}
		g.state.Terminated = true
		return false
	}

	return true
}

// PerformAction is the hook for cell-targeted interaction at (x, y).
// It is ignored while the UI is disabled and has no effect otherwise.
func (g *Game) PerformAction(x, y int) {
	if g.state.Disabled {
		g.logger.Debug("ignoring action while disabled", "x", x, "y", y)
		return
	}
}
