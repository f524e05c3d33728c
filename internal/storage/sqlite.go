// Package storage provides SQLite-based persistence for finished 2048 runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for score persistence.
type Store struct {
	db *sql.DB
}

// Size identifies a board size. Scores are only comparable within one size.
type Size struct {
	Width  int
	Height int
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// Result is a finished run as recorded by the UI.
type Result struct {
	RunID   string
	Size    Size
	Score   uint32
	Moves   uint32
	MaxTile uint32
	Won     bool // Reached the configured win tile at some point
}

// ScoreEntry represents a single stored run.
type ScoreEntry struct {
	ID int64
	Result
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL UNIQUE,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			score INTEGER NOT NULL,
			moves INTEGER NOT NULL,
			max_tile INTEGER NOT NULL,
			won INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(width, height, score DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveScore records a finished run and returns its record ID. Saving a run
// ID again replaces the stored result of that run.
func (s *Store) SaveScore(r Result) (int64, error) {
	if r.RunID == "" {
		return 0, errors.New("storage: cannot save score: empty run ID")
	}

	var id int64
	err := s.db.QueryRow(
		`INSERT INTO scores (run_id, width, height, score, moves, max_tile, won)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(run_id) DO UPDATE SET
			width = excluded.width,
			height = excluded.height,
			score = excluded.score,
			moves = excluded.moves,
			max_tile = excluded.max_tile,
			won = excluded.won
		 RETURNING id`,
		r.RunID, r.Size.Width, r.Size.Height, r.Score, r.Moves, r.MaxTile, r.Won,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}

	return id, nil
}

// TopScores retrieves the top N scores for the given board size.
// Results are ordered by score descending, earlier runs first on ties.
func (s *Store) TopScores(size Size, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, run_id, width, height, score, moves, max_tile, won, created_at
		 FROM scores
		 WHERE width = ? AND height = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		size.Width, size.Height, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(
			&e.ID,
			&e.RunID,
			&e.Size.Width,
			&e.Size.Height,
			&e.Score,
			&e.Moves,
			&e.MaxTile,
			&e.Won,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// HighScore returns the highest score for the given board size.
// Returns 0 if no scores exist.
func (s *Store) HighScore(size Size) (uint32, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM scores WHERE width = ? AND height = ?",
		size.Width, size.Height,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return uint32(score.Int64), nil
}

// ClearScores deletes all scores for the given board size.
func (s *Store) ClearScores(size Size) error {
	_, err := s.db.Exec("DELETE FROM scores WHERE width = ? AND height = ?", size.Width, size.Height)
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// Stats contains aggregated statistics for one board size.
type Stats struct {
	Size       Size
	GamesCount int
	Wins       int
	HighScore  uint32
	BestTile   uint32
	AvgScore   float64
	TotalMoves int64
	LastPlayed time.Time
}

// GetStats retrieves aggregated statistics for a board size.
func (s *Store) GetStats(size Size) (*Stats, error) {
	stats := &Stats{Size: size}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(won), 0), COALESCE(MAX(score), 0), COALESCE(MAX(max_tile), 0),
		        COALESCE(AVG(score), 0), COALESCE(SUM(moves), 0), MAX(created_at)
		 FROM scores WHERE width = ? AND height = ?`,
		size.Width, size.Height,
	).Scan(&stats.GamesCount, &stats.Wins, &stats.HighScore, &stats.BestTile,
		&stats.AvgScore, &stats.TotalMoves, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// GetAllStats retrieves statistics for every board size that has been played,
// ordered by size.
func (s *Store) GetAllStats() ([]Stats, error) {
	rows, err := s.db.Query(
		`SELECT width, height, COUNT(*), SUM(won), MAX(score), MAX(max_tile), AVG(score), SUM(moves), MAX(created_at)
		 FROM scores
		 GROUP BY width, height
		 ORDER BY width, height`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all stats: %w", err)
	}
	defer rows.Close()

	var all []Stats
	for rows.Next() {
		var st Stats
		var lastPlayed any
		if err := rows.Scan(&st.Size.Width, &st.Size.Height, &st.GamesCount, &st.Wins, &st.HighScore,
			&st.BestTile, &st.AvgScore, &st.TotalMoves, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastPlayed = parseTime(lastPlayed)
		all = append(all, st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return all, nil
}

// parseTime handles the datetime shapes the driver returns.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
