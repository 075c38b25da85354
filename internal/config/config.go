package config

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"
)

const (
	// Particle field
	ParticleCount      = 80
	ConnectionDistance = 180.0
	PointerRadius      = 150.0
	PointerForce       = 0.02
	SpeedCap           = 1.0
	Damping            = 0.99

	// Edges
	EdgeMaxAlpha = 0.15
	EdgeWidth    = 0.5

	// Spawn ranges
	SpawnSpeed       = 0.5 // velocity components in [-SpawnSpeed/2, SpawnSpeed/2)
	SpawnRadiusMin   = 0.5
	SpawnRadiusSpan  = 2.0
	SpawnOpacityMin  = 0.2
	SpawnOpacitySpan = 0.5
	AccentChance     = 0.3

	// Palette
	AccentHex     = "#00f0ff"
	PrimaryHex    = "#0066ff"
	DimHex        = "#1a3a5c"
	BackgroundHex = "#0a0e17"
)

// Host defaults
const (
	WindowWidth  = 1024
	WindowHeight = 512
	WindowTitle  = "Particle Field - Esc/Q: Quit"
	TicksPerSec  = 60

	CellWidth  = 8
	CellHeight = 16
)

var ErrInvalid = errors.New("invalid config")

// Config holds the host settings. The field's own constants above are fixed.
type Config struct {
	Window   WindowConfig   `toml:"window"`
	Terminal TerminalConfig `toml:"terminal"`

	Background string `toml:"background"`
	Seed       uint64 `toml:"seed"`
	LogLevel   string `toml:"log_level"`
}

type WindowConfig struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
	TPS    int    `toml:"tps"`
	HUD    bool   `toml:"hud"`
}

type TerminalConfig struct {
	CellWidth  float64 `toml:"cell_width"`
	CellHeight float64 `toml:"cell_height"`
	TPS        int     `toml:"tps"`
}

func Default() Config {
	return Config{
		Window: WindowConfig{
			Width:  WindowWidth,
			Height: WindowHeight,
			Title:  WindowTitle,
			TPS:    TicksPerSec,
		},
		Terminal: TerminalConfig{
			CellWidth:  CellWidth,
			CellHeight: CellHeight,
			TPS:        TicksPerSec,
		},
		Background: BackgroundHex,
		LogLevel:   "info",
	}
}

// Load reads a TOML file over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("load %s: %w", path, err)
	}
	if err := checkDecoded(md, &cfg); err != nil {
		return Config{}, fmt.Errorf("load %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML text over the defaults.
func Parse(data string) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(data, &cfg)
	if err != nil {
		return Config{}, err
	}
	if err := checkDecoded(md, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// checkDecoded rejects keys Config does not know, so typos do not pass
// silently, and validates the result.
func checkDecoded(md toml.MetaData, cfg *Config) error {
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("%w: unknown key %q", ErrInvalid, undecoded[0].String())
	}
	return cfg.Validate()
}

func (c Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	case c.Window.TPS <= 0:
		return fmt.Errorf("%w: window tps %d", ErrInvalid, c.Window.TPS)
	case c.Terminal.CellWidth <= 0 || c.Terminal.CellHeight <= 0:
		return fmt.Errorf("%w: cell size %gx%g", ErrInvalid, c.Terminal.CellWidth, c.Terminal.CellHeight)
	case c.Terminal.TPS <= 0:
		return fmt.Errorf("%w: terminal tps %d", ErrInvalid, c.Terminal.TPS)
	}
	return nil
}
