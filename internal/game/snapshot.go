package game

// Status summarizes the session for presentation.
type Status string

const (
	StatusPlaying  Status = "playing"
	StatusPaused   Status = "paused"
	StatusGameOver Status = "game_over"
)

// Snapshot captures everything a renderer needs from the session.
type Snapshot struct {
	Width   int
	Height  int
	Tiles   []uint32 // Row-major, y*Width+x
	Moves   uint32
	Score   uint32
	MaxTile uint32
	CanUndo bool
	CanMove bool
	Status  Status
}

// At returns the tile at (x, y). Coordinates must be in range.
func (s Snapshot) At(x, y int) uint32 {
	return s.Tiles[y*s.Width+x]
}

// Snapshot returns a copy of the current session state.
func (g *Game) Snapshot() Snapshot {
	status := StatusPlaying
	switch {
	case g.state.Terminated || !g.canMove:
		status = StatusGameOver
	case g.state.Paused:
		status = StatusPaused
	}

	return Snapshot{
		Width:   g.board.W(),
		Height:  g.board.H(),
		Tiles:   g.board.Tiles(),
		Moves:   g.moves,
		Score:   g.score,
		MaxTile: g.board.MaxTile(),
		CanUndo: g.board.CanUndo(),
		CanMove: g.canMove,
		Status:  status,
	}
}
