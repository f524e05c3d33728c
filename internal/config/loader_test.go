package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adrg/xdg"

	"github.com/vovakirdan/tui-2048/internal/board"
)

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll() failed: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
}

// isolateXDG points every XDG base directory at a temporary location.
func isolateXDG(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(root, "config"))
	t.Setenv("XDG_CONFIG_DIRS", filepath.Join(root, "etc"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(root, "data"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(root, "state"))
	xdg.Reload()
	t.Cleanup(xdg.Reload)
	return root
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default().Validate() = %v, want nil", err)
	}
}

func TestEmbeddedYAMLMatchesDefault(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if cfg != Default() {
		t.Errorf("embedded config = %+v, want %+v", cfg, Default())
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	writeConfig(t, path, "board:\n  width: 6\n  height: 5\nundo:\n  depth: 0\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Board.Width != 6 || cfg.Board.Height != 5 {
		t.Errorf("board = %dx%d, want 6x5", cfg.Board.Width, cfg.Board.Height)
	}
	if cfg.Undo.Depth != 0 {
		t.Errorf("Undo.Depth = %d, want 0", cfg.Undo.Depth)
	}
	// Missing keys keep their defaults.
	if cfg.WinTile != 2048 || cfg.Board.MaxWidth != 8 || cfg.Spawn.FourProbability != 0.1 {
		t.Errorf("partial file lost defaults: %+v", cfg)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
		invalid bool
	}{
		{"missing file", "", false},
		{"malformed yaml", "board: [", false},
		{"width above max", "board:\n  width: 9\n", true},
		{"negative depth", "undo:\n  depth: -1\n", true},
		{"huge depth", "undo:\n  depth: 100000\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, strings.ReplaceAll(tt.name, " ", "_")+".yaml")
			if tt.content != "" {
				writeConfig(t, path, tt.content)
			}

			_, err := Load(path)
			if err == nil {
				t.Fatal("Load() should fail")
			}
			if errors.Is(err, ErrInvalidConfig) != tt.invalid {
				t.Errorf("Load() error = %v, ErrInvalidConfig = %v, want %v", err, !tt.invalid, tt.invalid)
			}
			if !strings.Contains(err.Error(), path) {
				t.Errorf("Load() error = %v, want it to name %s", err, path)
			}
		})
	}
}

func TestLoadSearchesXDGConfig(t *testing.T) {
	root := isolateXDG(t)
	writeConfig(t, filepath.Join(root, "config", "tui-2048", "config.yaml"), "win_tile: 512\n")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.WinTile != 512 {
		t.Errorf("WinTile = %d, want 512 from the XDG config", cfg.WinTile)
	}
}

func TestLoadFallsBackToEmbedded(t *testing.T) {
	isolateXDG(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg != Default() {
		t.Errorf("Load() = %+v, want %+v", cfg, Default())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		ok     bool
	}{
		{"default", func(*Config) {}, true},
		{"min width below 2", func(c *Config) { c.Board.MinWidth = 1; c.Board.Width = 1 }, false},
		{"max below min", func(c *Config) { c.Board.MaxHeight = 1 }, false},
		{"height below min", func(c *Config) { c.Board.Height = 1 }, false},
		{"undo disabled", func(c *Config) { c.Undo.Depth = 0 }, true},
		{"deepest undo", func(c *Config) { c.Undo.Depth = board.MaxDepth }, true},
		{"undo beyond max", func(c *Config) { c.Undo.Depth = board.MaxDepth + 1 }, false},
		{"probability above one", func(c *Config) { c.Spawn.FourProbability = 1.5 }, false},
		{"probability negative", func(c *Config) { c.Spawn.FourProbability = -0.1 }, false},
		{"always four", func(c *Config) { c.Spawn.FourProbability = 1 }, true},
		{"win tile not a power of two", func(c *Config) { c.WinTile = 1000 }, false},
		{"win tile 2", func(c *Config) { c.WinTile = 2 }, false},
		{"small win tile", func(c *Config) { c.WinTile = 64 }, true},
		{"unknown log level", func(c *Config) { c.Log.Level = "verbose" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(&cfg)

			err := cfg.Validate()
			if tt.ok && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	cfg := Default()
	if got := cfg.ClampWidth(1); got != 2 {
		t.Errorf("ClampWidth(1) = %d, want 2", got)
	}
	if got := cfg.ClampWidth(5); got != 5 {
		t.Errorf("ClampWidth(5) = %d, want 5", got)
	}
	if got := cfg.ClampHeight(12); got != 8 {
		t.Errorf("ClampHeight(12) = %d, want 8", got)
	}
}

func TestPresets(t *testing.T) {
	for _, p := range Presets {
		t.Run(string(p), func(t *testing.T) {
			parsed, err := ParsePreset(string(p))
			if err != nil || parsed != p {
				t.Fatalf("ParsePreset(%q) = %q, %v", p, parsed, err)
			}

			cfg := Default()
			ApplyPreset(&cfg, p)
			if err := cfg.Validate(); err != nil {
				t.Errorf("preset %s produced an invalid config: %v", p, err)
			}
		})
	}

	cfg := Default()
	ApplyPreset(&cfg, DifficultyHard)
	if cfg.Undo.Depth != 0 {
		t.Errorf("hard Undo.Depth = %d, want 0", cfg.Undo.Depth)
	}

	if _, err := ParsePreset("insane"); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("ParsePreset(insane) error = %v, want ErrInvalidConfig", err)
	}
	if p, err := ParsePreset(""); p != "" || err != nil {
		t.Errorf("ParsePreset(\"\") = %q, %v, want no preset", p, err)
	}
}

func TestResolvePaths(t *testing.T) {
	root := isolateXDG(t)

	cfg := Default()
	cfg.Paths.Scores = "/custom/scores.db"
	if err := cfg.ResolvePaths(); err != nil {
		t.Fatalf("ResolvePaths() failed: %v", err)
	}

	if want := filepath.Join(root, "data", "tui-2048", "save.bin"); cfg.Paths.Save != want {
		t.Errorf("Paths.Save = %s, want %s", cfg.Paths.Save, want)
	}
	if cfg.Paths.Scores != "/custom/scores.db" {
		t.Errorf("Paths.Scores = %s, want the configured value", cfg.Paths.Scores)
	}
	if want := filepath.Join(root, "state", "tui-2048", "two48.log"); cfg.Log.File != want {
		t.Errorf("Log.File = %s, want %s", cfg.Log.File, want)
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Paths.Save = "/tmp/save.bin"

	data, err := Marshal(cfg)
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	got, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if got != cfg {
		t.Errorf("Parse(Marshal()) = %+v, want %+v", got, cfg)
	}
}
