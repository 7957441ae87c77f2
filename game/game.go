// Package game hosts the heat field in a raylib window.
package game

import (
	"log/slog"

	"github.com/pthm-cable/heatfield/config"
	"github.com/pthm-cable/heatfield/palette"
	"github.com/pthm-cable/heatfield/renderer"
	"github.com/pthm-cable/heatfield/sim"
	"github.com/pthm-cable/heatfield/ui"
)

// Shapes in the order the S key cycles through them.
var shapeCycle = []string{
	config.ShapeSquare,
	config.ShapeRounded,
	config.ShapeEllipse,
	config.ShapeNumbers,
}

const controlsText = "[Drag] Heat  [Space] Pause  [S] Shape  [P] Palette  [B] Brush  [E] Emitters  [C] Clear  [F11] Fullscreen"

// Game holds the simulation and everything needed to show it.
type Game struct {
	sim *sim.Simulation
	cfg *config.Config

	heat       *renderer.HeatRenderer
	hud        *ui.HUD
	brushPanel *ui.BrushPanel
	palette    string

	paused   bool
	headless bool

	screenWidth, screenHeight int32
}

// NewGame builds a game around a new simulation. Headless games never touch
// raylib and only support UpdateHeadless.
func NewGame(cfg *config.Config, opts sim.Options, headless bool) (*Game, error) {
	s, err := sim.New(cfg, opts)
	if err != nil {
		return nil, err
	}

	g := &Game{
		sim:          s,
		cfg:          cfg,
		palette:      cfg.Display.Palette,
		headless:     headless,
		screenWidth:  int32(cfg.Screen.Width),
		screenHeight: int32(cfg.Screen.Height),
	}
	if headless {
		return g, nil
	}

	color, err := palette.ByName(cfg.Display.Palette, cfg.Display.Alpha)
	if err != nil {
		s.Close()
		return nil, err
	}
	g.heat = renderer.NewHeatRenderer(s.Field(), cfg.Display.Shape, float32(cfg.Grid.CellSize), color)
	g.hud = ui.NewHUD()
	g.brushPanel = ui.NewBrushPanel(g.screenWidth-230, 10, 220)
	return g, nil
}

// Update handles input and advances one tick unless paused.
func (g *Game) Update() {
	g.handleInput()
	if !g.paused {
		g.sim.Step()
	}
	g.sim.Perf().RecordFrame()
}

// UpdateHeadless advances one tick without reading input.
func (g *Game) UpdateHeadless() {
	g.sim.Step()
}

// Sim returns the underlying simulation.
func (g *Game) Sim() *sim.Simulation {
	return g.sim
}

// Tick returns the number of completed ticks.
func (g *Game) Tick() int32 {
	return g.sim.Tick()
}

// Paused reports whether stepping is suspended.
func (g *Game) Paused() bool {
	return g.paused
}

// Unload flushes telemetry and closes output files.
func (g *Game) Unload() {
	if err := g.sim.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}

// nextShape returns the shape following current in shapeCycle.
func nextShape(current string) string {
	for i, s := range shapeCycle {
		if s == current {
			return shapeCycle[(i+1)%len(shapeCycle)]
		}
	}
	return shapeCycle[0]
}

// nextPalette toggles between the two palettes.
func nextPalette(current string) string {
	if current == config.PaletteRed {
		return config.PaletteThermal
	}
	return config.PaletteRed
}
