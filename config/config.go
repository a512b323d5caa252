// Package config holds every tunable of the simulation and its front ends.
package config

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"snake-sim/game/types"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// ErrInvalid is returned when a configuration fails validation.
var ErrInvalid = errors.New("invalid configuration")

// Backends selectable with -backend.
const (
	BackendRaylib   = "raylib"
	BackendTerminal = "terminal"
	BackendEbiten   = "ebiten"
	BackendHeadless = "headless"
)

// Colors is the palette used by every renderer.
type Colors struct {
	Background types.Color `toml:"background"`
	Border     types.Color `toml:"border"`
	Apple      types.Color `toml:"apple"`
	Snake      types.Color `toml:"snake"`
}

type Config struct {
	// Board
	GridWidth  int `toml:"grid_width" validate:"min=1,max=1024"`
	GridHeight int `toml:"grid_height" validate:"min=1,max=1024"`
	CellSize   int `toml:"cell_size" validate:"min=1,max=256"`
	TickRate   int `toml:"tick_rate" validate:"min=1,max=1000"`

	Colors Colors `toml:"colors"`

	// Rules
	GraceSegments        int    `toml:"grace_segments" validate:"min=1"`
	AppleAvoidsSnake     bool   `toml:"apple_avoids_snake"`
	MaxPlacementAttempts int    `toml:"max_placement_attempts" validate:"min=0"`
	Seed                 uint64 `toml:"seed"`

	// Front end
	Backend       string `toml:"backend" validate:"oneof=raylib terminal ebiten headless"`
	Autopilot     bool   `toml:"autopilot"`
	Sound         bool   `toml:"sound"`
	HeadlessTicks int    `toml:"headless_ticks" validate:"min=1"`

	// Logging
	LogFile  string `toml:"log_file"`
	LogLevel string `toml:"log_level" validate:"oneof=trace debug info warn error disabled"`

	// ConfigFile is the TOML file the values were read from, if any.
	ConfigFile string `toml:"-"`
	// PrintConfig asks for the effective configuration to be written as TOML
	// instead of starting a game.
	PrintConfig bool `toml:"-"`
}

// Default returns the classic 640x480 board: 32x24 cells of 20 px at 20 ticks per second.
func Default() Config {
	return Config{
		GridWidth:  32,
		GridHeight: 24,
		CellSize:   20,
		TickRate:   20,
		Colors: Colors{
			Background: types.Color{R: 0, G: 0, B: 0},
			Border:     types.Color{R: 93, G: 216, B: 228},
			Apple:      types.Color{R: 255, G: 0, B: 0},
			Snake:      types.Color{R: 0, G: 255, B: 0},
		},
		GraceSegments:        4,
		AppleAvoidsSnake:     true,
		MaxPlacementAttempts: 1024,
		Backend:              BackendRaylib,
		HeadlessTicks:        10000,
		LogFile:              "snake.log",
		LogLevel:             "info",
	}
}

// Grid returns the board dimensions in cells.
func (c Config) Grid() types.Grid {
	return types.Grid{Width: c.GridWidth, Height: c.GridHeight}
}

// TickInterval returns the time between two ticks.
func (c Config) TickInterval() time.Duration {
	if c.TickRate <= 0 {
		return 0
	}
	return time.Second / time.Duration(c.TickRate)
}

// BoardPixels returns the size of the board in pixels.
func (c Config) BoardPixels() (int, int) {
	return c.GridWidth * c.CellSize, c.GridHeight * c.CellSize
}

// WindowPixels returns the board plus a two line status bar beneath it.
func (c Config) WindowPixels() (int, int) {
	w, h := c.BoardPixels()
	return w, h + 2*c.CellSize
}

var validate = validator.New()

// Validate checks field ranges and cross-field rules.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if c.GridWidth*c.GridHeight < 2 {
		return fmt.Errorf("%w: grid %dx%d must hold at least 2 cells", ErrInvalid, c.GridWidth, c.GridHeight)
	}
	return nil
}

// LoadFile overlays values from a TOML file. Unknown keys are rejected.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	c.ConfigFile = path
	return nil
}

// Encode renders the configuration as TOML.
func (c Config) Encode() ([]byte, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return data, nil
}

// BindFlags registers one flag per field, defaulting to the current values.
func (c *Config) BindFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.ConfigFile, "config", c.ConfigFile, "TOML configuration file")
	fs.BoolVar(&c.PrintConfig, "print-config", c.PrintConfig, "Print the effective configuration as TOML and exit")

	fs.IntVar(&c.GridWidth, "width", c.GridWidth, "Grid width in cells")
	fs.IntVar(&c.GridHeight, "height", c.GridHeight, "Grid height in cells")
	fs.IntVar(&c.CellSize, "cell", c.CellSize, "Cell size in pixels")
	fs.IntVar(&c.TickRate, "speed", c.TickRate, "Ticks per second")

	fs.TextVar(&c.Colors.Background, "bg", c.Colors.Background, "Background colour (#rrggbb)")
	fs.TextVar(&c.Colors.Border, "border", c.Colors.Border, "Cell border colour (#rrggbb)")
	fs.TextVar(&c.Colors.Apple, "apple", c.Colors.Apple, "Apple colour (#rrggbb)")
	fs.TextVar(&c.Colors.Snake, "snake", c.Colors.Snake, "Snake colour (#rrggbb)")

	fs.IntVar(&c.GraceSegments, "grace", c.GraceSegments, "Index of the first body segment the head can collide with")
	fs.BoolVar(&c.AppleAvoidsSnake, "avoid", c.AppleAvoidsSnake, "Never respawn the apple under the snake")
	fs.IntVar(&c.MaxPlacementAttempts, "attempts", c.MaxPlacementAttempts, "Random apple samples before scanning for a free cell")
	fs.Uint64Var(&c.Seed, "seed", c.Seed, "RNG seed (0 = time based)")

	fs.StringVar(&c.Backend, "backend", c.Backend, "Front end: raylib, terminal, ebiten or headless")
	fs.BoolVar(&c.Autopilot, "autopilot", c.Autopilot, "Let the Q-learning agent steer")
	fs.BoolVar(&c.Sound, "sound", c.Sound, "Play sound cues")
	fs.IntVar(&c.HeadlessTicks, "ticks", c.HeadlessTicks, "Ticks to simulate in headless mode")

	fs.StringVar(&c.LogFile, "log-file", c.LogFile, "Log file used while a window or terminal owns the screen")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "Log level: trace, debug, info, warn, error, disabled")
}

// Load builds the configuration from defaults, the optional -config file and
// the command line, in that order of precedence, and validates the result.
func Load(name string, args []string) (Config, error) {
	cfg := Default()
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	cfg.BindFlags(fs)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.ConfigFile != "" {
		fileCfg := Default()
		if err := fileCfg.LoadFile(cfg.ConfigFile); err != nil {
			return Config{}, err
		}

		// Flags given on the command line win over the file.
		fs = flag.NewFlagSet(name, flag.ContinueOnError)
		fileCfg.BindFlags(fs)
		if err := fs.Parse(args); err != nil {
			return Config{}, err
		}
		cfg = fileCfg
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
