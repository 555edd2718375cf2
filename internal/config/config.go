package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Theme holds the TUI colors as ANSI color codes or hex strings
type Theme struct {
	Anchor     string `toml:"anchor"`
	AnchorIcon string `toml:"anchor_icon"`
	Menu       string `toml:"menu"`
	Hover      string `toml:"hover"`
	UserLine   string `toml:"user_line"`
	BotLine    string `toml:"bot_line"`
}

// Keys holds the chat keybindings
type Keys struct {
	Copy       []string `toml:"copy"`
	OpenToSide []string `toml:"open_to_side"`
	Quit       []string `toml:"quit"`
}

// File is the on-disk configuration
type File struct {
	WorkspaceRoot string `toml:"workspace_root"`
	GoplsPath     string `toml:"gopls_path"`
	TelemetryPath string `toml:"telemetry_path"`
	Theme         Theme  `toml:"theme"`
	Keys          Keys   `toml:"keys"`
}

// Default returns the built-in configuration
func Default() File {
	return File{
		WorkspaceRoot: ".",
		GoplsPath:     "gopls",
		Theme: Theme{
			Anchor:     "12",
			AnchorIcon: "6",
			Menu:       "7",
			Hover:      "8",
			UserLine:   "2",
			BotLine:    "7",
		},
		Keys: Keys{
			Copy:       []string{"c"},
			OpenToSide: []string{"enter"},
			Quit:       []string{"q", "ctrl+c"},
		},
	}
}

// Load reads the config file at path, layering it over the defaults. A
// missing file is not an error; the defaults apply.
func Load(path string) (File, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return File{}, fmt.Errorf("failed to decode config %s: %w", path, err)
	}
	if len(cfg.Keys.Quit) == 0 {
		cfg.Keys.Quit = Default().Keys.Quit
	}
	return cfg, nil
}
