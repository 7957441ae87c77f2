// Package config provides configuration loading and access for the heat field.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/heatfield/heatmap"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Display shapes.
const (
	ShapeSquare  = "square"
	ShapeRounded = "rounded"
	ShapeEllipse = "ellipse"
	ShapeNumbers = "numbers"
)

// Palettes.
const (
	PaletteRed     = "red"
	PaletteThermal = "thermal"
)

// Config holds all heat field configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Grid      GridConfig      `yaml:"grid"`
	Brush     BrushConfig     `yaml:"brush"`
	Mode      ModeConfig      `yaml:"mode"`
	Display   DisplayConfig   `yaml:"display"`
	Emitters  EmittersConfig  `yaml:"emitters"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// GridConfig holds heat grid geometry.
type GridConfig struct {
	Width         int     `yaml:"width"`          // Cells across
	Height        int     `yaml:"height"`         // Cells down
	CellSpacing   float64 `yaml:"cell_spacing"`   // World units between cell centres
	CellSize      float64 `yaml:"cell_size"`      // Drawn size of one cell
	MaxSaturation uint32  `yaml:"max_saturation"` // Cap on any cell value
	OriginX       float64 `yaml:"origin_x"`
	OriginY       float64 `yaml:"origin_y"`
	Center        bool    `yaml:"center"` // Ignore origin and centre the grid on the screen
}

// BrushConfig holds brush parameters.
type BrushConfig struct {
	Radius      float64 `yaml:"radius"`       // In cells, scaled by heat
	Intensity   float64 `yaml:"intensity"`    // Centre contribution, scaled by heat
	PointerHeat float64 `yaml:"pointer_heat"` // Heat attached to pointer input
}

// ModeConfig selects between dynamic (pointer driven) and static (replayed) input.
type ModeConfig struct {
	Static bool `yaml:"static"`
	TickMS int  `yaml:"tick_ms"` // Milliseconds between ticks in the terminal view
}

// DisplayConfig holds rendering parameters.
type DisplayConfig struct {
	Shape   string  `yaml:"shape"`
	Palette string  `yaml:"palette"`
	Alpha   float64 `yaml:"alpha"` // [0,1]
}

// EmittersConfig holds parameters for autonomous heat emitters.
type EmittersConfig struct {
	Count int     `yaml:"count"`
	Speed float64 `yaml:"speed"` // World units per tick
	Heat  float64 `yaml:"heat"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow int `yaml:"stats_window"` // Ticks between stats records
	PerfWindow  int `yaml:"perf_window"`  // Ticks averaged by the perf collector
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	OriginX, OriginY float64       // Resolved grid origin
	Tick             time.Duration // Mode.TickMS as a duration
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// Validate rejects configurations the heat field or its hosts cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Grid.Width < 1 || c.Grid.Height < 1:
		return fmt.Errorf("%w: grid %dx%d", heatmap.ErrConfiguration, c.Grid.Width, c.Grid.Height)
	case c.Grid.CellSpacing <= 0:
		return fmt.Errorf("%w: cell_spacing must be positive", heatmap.ErrConfiguration)
	case c.Grid.CellSize <= 0:
		return fmt.Errorf("%w: cell_size must be positive", heatmap.ErrConfiguration)
	case c.Brush.Radius <= 0 || c.Brush.Intensity <= 0:
		return fmt.Errorf("%w: brush radius and intensity must be positive", heatmap.ErrConfiguration)
	case c.Grid.MaxSaturation == 0:
		return fmt.Errorf("%w: max_saturation must be positive", heatmap.ErrConfiguration)
	case c.Display.Alpha < 0 || c.Display.Alpha > 1:
		return fmt.Errorf("%w: display alpha %g outside [0,1]", heatmap.ErrConfiguration, c.Display.Alpha)
	case c.Emitters.Count < 0:
		return fmt.Errorf("%w: negative emitter count", heatmap.ErrConfiguration)
	}

	switch c.Display.Shape {
	case ShapeSquare, ShapeRounded, ShapeEllipse, ShapeNumbers:
	default:
		return fmt.Errorf("%w: unknown display shape %q", heatmap.ErrConfiguration, c.Display.Shape)
	}
	switch c.Display.Palette {
	case PaletteRed, PaletteThermal:
	default:
		return fmt.Errorf("%w: unknown palette %q", heatmap.ErrConfiguration, c.Display.Palette)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.OriginX = c.Grid.OriginX
	c.Derived.OriginY = c.Grid.OriginY
	if c.Grid.Center {
		c.Derived.OriginX = (float64(c.Screen.Width) - float64(c.Grid.Width-1)*c.Grid.CellSpacing) / 2
		c.Derived.OriginY = (float64(c.Screen.Height) - float64(c.Grid.Height-1)*c.Grid.CellSpacing) / 2
	}

	tick := c.Mode.TickMS
	if tick <= 0 {
		tick = 50
	}
	c.Derived.Tick = time.Duration(tick) * time.Millisecond

	if c.Telemetry.StatsWindow < 1 {
		c.Telemetry.StatsWindow = 60
	}
	if c.Telemetry.PerfWindow < 1 {
		c.Telemetry.PerfWindow = 60
	}
}

// FieldParams returns the heat field parameters described by the config.
func (c *Config) FieldParams() heatmap.Params {
	return heatmap.Params{
		Width:          c.Grid.Width,
		Height:         c.Grid.Height,
		CellSpacing:    c.Grid.CellSpacing,
		BrushRadius:    c.Brush.Radius,
		BrushIntensity: c.Brush.Intensity,
		MaxSaturation:  c.Grid.MaxSaturation,
		XStart:         c.Derived.OriginX,
		YStart:         c.Derived.OriginY,
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
