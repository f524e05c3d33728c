package core

import (
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// RuntimeConfig contains what a session needs at startup beyond the YAML
// configuration: the screen size and the randomness.
type RuntimeConfig struct {
	ScreenW int    // Screen width in characters
	ScreenH int    // Screen height in characters
	Seed    int64  // RNG seed, 0 picks one from the clock
	RunID   string // Identifies the run in logs and the score store
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW: 80,
		ScreenH: 24,
		Seed:    0,
	}
}

// Resolve fills in the seed and run ID when they are unset.
func (c RuntimeConfig) Resolve() RuntimeConfig {
	if c.Seed == 0 {
		c.Seed = time.Now().UnixNano()
	}
	if c.RunID == "" {
		c.RunID = uuid.NewString()
	}
	return c
}

// Rand returns a random source seeded from the config. Call Resolve first
// so the seed is recorded.
func (c RuntimeConfig) Rand() *rand.Rand {
	return rand.New(rand.NewSource(c.Seed))
}
