package config

import "fmt"

// DifficultyPreset represents a named set of undo and spawn settings.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// Presets lists the known presets in display order.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard}

// ParsePreset validates a preset name. The empty string means no preset.
func ParsePreset(name string) (DifficultyPreset, error) {
	if name == "" {
		return "", nil
	}
	for _, p := range Presets {
		if string(p) == name {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: unknown difficulty %q", ErrInvalidConfig, name)
}

// ApplyPreset modifies the config based on a difficulty preset.
// Easy keeps a deep undo history and rarely spawns 4s; hard disables undo.
func ApplyPreset(cfg *Config, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Undo.Depth = 20
		cfg.Spawn.FourProbability = 0.05
	case DifficultyNormal:
		cfg.Undo.Depth = 5
		cfg.Spawn.FourProbability = 0.1
	case DifficultyHard:
		cfg.Undo.Depth = 0
		cfg.Spawn.FourProbability = 0.25
	}
}
