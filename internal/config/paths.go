package config

import (
	"fmt"

	"github.com/adrg/xdg"
)

// Default file locations, relative to the XDG base directories.
const (
	xdgSaveFile   = "tui-2048/save.bin"
	xdgScoresFile = "tui-2048/scores.db"
	xdgLogFile    = "tui-2048/two48.log"
)

// ResolvePaths fills empty file locations with their XDG defaults, creating
// the parent directories as needed.
func (c *Config) ResolvePaths() error {
	var err error

	if c.Paths.Save == "" {
		if c.Paths.Save, err = xdg.DataFile(xdgSaveFile); err != nil {
			return fmt.Errorf("config: cannot resolve save path: %w", err)
		}
	}
	if c.Paths.Scores == "" {
		if c.Paths.Scores, err = xdg.DataFile(xdgScoresFile); err != nil {
			return fmt.Errorf("config: cannot resolve scores path: %w", err)
		}
	}
	if c.Log.File == "" {
		if c.Log.File, err = xdg.StateFile(xdgLogFile); err != nil {
			return fmt.Errorf("config: cannot resolve log path: %w", err)
		}
	}

	return nil
}
