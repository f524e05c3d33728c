// Package board implements the 2048 grid engine: a W x H array of tiles that
// slide and merge in four directions, with a bounded undo history and a fixed
// binary save format.
package board

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
)

// Default board parameters.
const (
	DefaultWidth  = 4
	DefaultHeight = 4
	DefaultDepth  = 5
	DefaultSpawn4 = 0.10

	// MaxDepth bounds the undo history so any board can be saved and loaded back.
	MaxDepth = 1 << 12
)

var (
	// ErrOutOfRange is returned when a cell coordinate lies outside the board.
	ErrOutOfRange = errors.New("board: coordinate out of range")

	// ErrInvalidDimensions is returned for non-positive widths/heights or an undo depth
	// outside [0, MaxDepth].
	ErrInvalidDimensions = errors.New("board: invalid dimensions")

	// ErrInvalidTile is returned when a tile value is neither 0 nor a power of two.
	ErrInvalidTile = errors.New("board: invalid tile value")
)

// Source is the randomness the engine consumes. *math/rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
	Float64() float64
}

// Logger is the logging capability injected by the host. *log.Logger from
// charmbracelet/log satisfies it.
type Logger interface {
	Debug(msg interface{}, keyvals ...interface{})
	Info(msg interface{}, keyvals ...interface{})
	Warn(msg interface{}, keyvals ...interface{})
}

// View is the read-only query surface handed to presentation code.
type View interface {
	W() int
	H() int
	Empty(x, y int) (bool, error)
	At(x, y int) (uint32, error)
	MaxTile() uint32
	Tiles() []uint32
	CanUndo() bool
}

// Options configures a new Board.
type Options struct {
	Width  int
	Height int
	Depth  int     // Undo history depth
	Spawn4 float64 // Probability that a seeded tile is a 4

	Rand   Source
	Logger Logger
}

func (o Options) withDefaults() Options {
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	if o.Rand == nil {
		o.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return o
}

func (o Options) validate() error {
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, o.Width, o.Height)
	}
	if o.Depth < 0 || o.Depth > MaxDepth {
		return fmt.Errorf("%w: undo depth %d", ErrInvalidDimensions, o.Depth)
	}
	return nil
}

// Board is a rectangular grid of tiles stored row-major.
type Board struct {
	width  int
	height int
	cells  []uint32

	history *history
	spawn4  float64

	rng    Source
	logger Logger
}

// New creates a board and seeds it with two random tiles.
func New(opts Options) (*Board, error) {
	opts = opts.withDefaults()
	if err := opts.validate(); err != nil {
		return nil, err
	}

	b := &Board{
		width:   opts.Width,
		height:  opts.Height,
		cells:   make([]uint32, opts.Width*opts.Height),
		history: newHistory(opts.Depth),
		spawn4:  opts.Spawn4,
		rng:     opts.Rand,
		logger:  opts.Logger,
	}
	b.Initialize()

	return b, nil
}

// FromRows builds a board from explicit rows without seeding any tile.
// Every row must have the same length.
func FromRows(rows [][]uint32, opts Options) (*Board, error) {
	opts.Height = len(rows)
	if opts.Height > 0 {
		opts.Width = len(rows[0])
	}
	opts = opts.withDefaults()
	if err := opts.validate(); err != nil {
		return nil, err
	}

	b := &Board{
		width:   opts.Width,
		height:  opts.Height,
		cells:   make([]uint32, 0, opts.Width*opts.Height),
		history: newHistory(opts.Depth),
		spawn4:  opts.Spawn4,
		rng:     opts.Rand,
		logger:  opts.Logger,
	}

	for y, row := range rows {
		if len(row) != opts.Width {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidDimensions, y, len(row), opts.Width)
		}
		for x, v := range row {
			if !validTile(v) {
				return nil, fmt.Errorf("%w: %d at %dx%d", ErrInvalidTile, v, x, y)
			}
		}
		b.cells = append(b.cells, row...)
	}

	return b, nil
}

// W returns the width of the board.
func (b *Board) W() int {
	return b.width
}

// H returns the height of the board.
func (b *Board) H() int {
	return b.height
}

// Depth returns the maximum number of undo snapshots kept.
func (b *Board) Depth() int {
	return b.history.depth
}

// Initialize clears the board and seeds two tiles at distinct empty cells.
func (b *Board) Initialize() {
	b.Reset()
	b.Spawn(RandomValue(b.rng, b.spawn4))
	b.Spawn(RandomValue(b.rng, b.spawn4))
}

// Reset zeroes every cell and drops the undo history.
func (b *Board) Reset() {
	clear(b.cells)
	b.history.clear()
}

// Empty reports whether the cell at (x, y) holds no tile.
func (b *Board) Empty(x, y int) (bool, error) {
	v, err := b.At(x, y)
	if err != nil {
		return false, err
	}
	return v == 0, nil
}

// At returns the tile at (x, y), 0 for an empty cell.
func (b *Board) At(x, y int) (uint32, error) {
	if x < 0 || y < 0 || x >= b.width || y >= b.height {
		return 0, fmt.Errorf("%w: %dx%d on a %dx%d board", ErrOutOfRange, x, y, b.width, b.height)
	}
	return b.cells[b.linear(x, y)], nil
}

// Spawn places value at a uniformly chosen empty cell.
// Returns false without touching the board when no cell is empty.
func (b *Board) Spawn(value uint32) bool {
	var available []int
	for id, v := range b.cells {
		if v == 0 {
			available = append(available, id)
		}
	}

	if len(available) == 0 {
		b.logger.Debug("no empty cell to spawn into", "value", value)
		return false
	}

	id := available[b.rng.Intn(len(available))]
	b.cells[id] = value

	b.logger.Debug("spawned tile", "value", value, "x", id%b.width, "y", id/b.width)
	return true
}

// Undo restores the most recent snapshot. Does nothing when the history is empty.
func (b *Board) Undo() {
	snap, ok := b.history.pop()
	if !ok {
		b.logger.Info("nothing to undo")
		return
	}
	copy(b.cells, snap)
}

// CanUndo reports whether a snapshot is available.
func (b *Board) CanUndo() bool {
	return b.history.len() > 0
}

// HistoryLen returns the number of stored snapshots.
func (b *Board) HistoryLen() int {
	return b.history.len()
}

// MaxTile returns the highest tile on the board.
func (b *Board) MaxTile() uint32 {
	var best uint32
	for _, v := range b.cells {
		best = max(best, v)
	}
	return best
}

// Tiles returns a row-major copy of the cells.
func (b *Board) Tiles() []uint32 {
	out := make([]uint32, len(b.cells))
	copy(out, b.cells)
	return out
}

// Count returns the number of non-empty cells.
func (b *Board) Count() int {
	n := 0
	for _, v := range b.cells {
		if v != 0 {
			n++
		}
	}
	return n
}

func (b *Board) linear(x, y int) int {
	return y*b.width + x
}

// RandomValue picks the value of a new tile: 4 with probability spawn4, else 2.
func RandomValue(src Source, spawn4 float64) uint32 {
	if src.Float64() < spawn4 {
		return 4
	}
	return 2
}

// validTile reports whether v is 0 or a power of two no smaller than 2.
func validTile(v uint32) bool {
	return v == 0 || (v >= 2 && v&(v-1) == 0)
}

var _ View = (*Board)(nil)
