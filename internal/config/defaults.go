package config

import (
	_ "embed"
)

//go:embed defaults/two48.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Board: BoardConfig{
			Width:     4,
			Height:    4,
			MinWidth:  2,
			MaxWidth:  8,
			MinHeight: 2,
			MaxHeight: 8,
		},
		Undo: UndoConfig{
			Depth: 5,
		},
		Spawn: SpawnConfig{
			FourProbability: 0.1,
		},
		WinTile: 2048,
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
