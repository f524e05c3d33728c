// Package config provides YAML-based configuration loading for the 2048
// game: board bounds, undo depth, spawn odds and file locations.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-2048/internal/board"
)

// ErrInvalidConfig is returned by Validate for out-of-range settings.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config contains all configuration for a 2048 session.
type Config struct {
	Board   BoardConfig `yaml:"board"`
	Undo    UndoConfig  `yaml:"undo"`
	Spawn   SpawnConfig `yaml:"spawn"`
	WinTile uint32      `yaml:"win_tile"` // Tile that triggers the win banner
	Paths   PathsConfig `yaml:"paths"`
	Log     LogConfig   `yaml:"log"`
}

// BoardConfig defines the starting size and the bounds for in-game resizing.
type BoardConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	MinWidth  int `yaml:"min_width"`
	MaxWidth  int `yaml:"max_width"`
	MinHeight int `yaml:"min_height"`
	MaxHeight int `yaml:"max_height"`
}

// UndoConfig defines the undo history.
type UndoConfig struct {
	Depth int `yaml:"depth"` // 0 disables undo
}

// SpawnConfig defines the random tile policy.
type SpawnConfig struct {
	FourProbability float64 `yaml:"four_probability"`
}

// PathsConfig holds file locations. Empty values resolve to XDG defaults.
type PathsConfig struct {
	Save   string `yaml:"save"`
	Scores string `yaml:"scores"`
}

// LogConfig defines logging. An empty file logs to the XDG state directory.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`
}

// Validate checks that every setting is usable.
func (c *Config) Validate() error {
	b := c.Board
	if b.MinWidth < 2 || b.MinHeight < 2 {
		return fmt.Errorf("%w: board minimum %dx%d is below 2x2", ErrInvalidConfig, b.MinWidth, b.MinHeight)
	}
	if b.MaxWidth < b.MinWidth || b.MaxHeight < b.MinHeight {
		return fmt.Errorf("%w: board maximum %dx%d is below minimum %dx%d",
			ErrInvalidConfig, b.MaxWidth, b.MaxHeight, b.MinWidth, b.MinHeight)
	}
	if b.Width < b.MinWidth || b.Width > b.MaxWidth {
		return fmt.Errorf("%w: board width %d outside [%d, %d]", ErrInvalidConfig, b.Width, b.MinWidth, b.MaxWidth)
	}
	if b.Height < b.MinHeight || b.Height > b.MaxHeight {
		return fmt.Errorf("%w: board height %d outside [%d, %d]", ErrInvalidConfig, b.Height, b.MinHeight, b.MaxHeight)
	}
	if c.Undo.Depth < 0 || c.Undo.Depth > board.MaxDepth {
		return fmt.Errorf("%w: undo depth %d outside [0, %d]", ErrInvalidConfig, c.Undo.Depth, board.MaxDepth)
	}
	if p := c.Spawn.FourProbability; p < 0 || p > 1 {
		return fmt.Errorf("%w: four_probability %v outside [0, 1]", ErrInvalidConfig, p)
	}
	if c.WinTile < 4 || c.WinTile&(c.WinTile-1) != 0 {
		return fmt.Errorf("%w: win_tile %d is not a power of two", ErrInvalidConfig, c.WinTile)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, c.Log.Level)
	}
	return nil
}

// ClampWidth limits w to the configured width bounds.
func (c *Config) ClampWidth(w int) int {
	return clamp(w, c.Board.MinWidth, c.Board.MaxWidth)
}

// ClampHeight limits h to the configured height bounds.
func (c *Config) ClampHeight(h int) int {
	return clamp(h, c.Board.MinHeight, c.Board.MaxHeight)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
