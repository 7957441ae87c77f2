// Package termview hosts the heat field in a terminal, one character per
// grid cell, with mouse input feeding the brush.
package termview

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/heatfield/heatmap"
	"github.com/pthm-cable/heatfield/palette"
	"github.com/pthm-cable/heatfield/sim"
)

const cellRune = '█'

// Open initializes a terminal screen with mouse reporting enabled.
func Open() (tcell.Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", heatmap.ErrResourceUnavailable, err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("%w: %v", heatmap.ErrResourceUnavailable, err)
	}
	screen.EnableMouse()
	screen.HideCursor()
	return screen, nil
}

// View draws a simulation to a tcell screen and routes input to it.
type View struct {
	screen   tcell.Screen
	sim      *sim.Simulation
	color    palette.Func
	tick     time.Duration
	maxTicks int
	paused   bool
}

// New creates a view. maxTicks stops Run after that many ticks (0 = unlimited).
func New(screen tcell.Screen, s *sim.Simulation, color palette.Func, maxTicks int) *View {
	return &View{
		screen:   screen,
		sim:      s,
		color:    color,
		tick:     s.Config().Derived.Tick,
		maxTicks: maxTicks,
	}
}

// Paused reports whether stepping is suspended.
func (v *View) Paused() bool {
	return v.paused
}

// Run steps and redraws the simulation every tick until the user quits,
// ctx is done or the tick limit is reached. The caller owns the screen and
// must Fini it afterwards.
func (v *View) Run(ctx context.Context) error {
	ticker := time.NewTicker(v.tick)
	defer ticker.Stop()

	done := make(chan struct{})
	defer close(done)

	events := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	v.Draw()
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-events:
			if !v.HandleEvent(ev) {
				return nil
			}

		case <-ticker.C:
			if !v.paused {
				v.sim.Step()
			}
			v.Draw()
			if v.maxTicks > 0 && int(v.sim.Tick()) >= v.maxTicks {
				return nil
			}
		}
	}
}

// HandleEvent applies one terminal event and reports whether the view
// should keep running.
func (v *View) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return v.handleKey(ev.Key(), ev.Rune())

	case *tcell.EventMouse:
		if ev.Buttons()&tcell.Button1 == 0 {
			return true
		}
		col, row := ev.Position()
		w, h := v.sim.Field().GridSize()
		if col < w && row < h && row < v.statusRow() {
			v.sim.PushCell(col, row)
		}

	case *tcell.EventResize:
		v.screen.Sync()
	}
	return true
}

func (v *View) handleKey(key tcell.Key, r rune) bool {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyRune:
		switch r {
		case 'q':
			return false
		case ' ':
			v.paused = !v.paused
		case 'e':
			v.sim.ToggleEmitters()
		case 'c':
			v.sim.Field().Reset()
		}
	}
	return true
}

// Draw repaints the grid and the status line.
func (v *View) Draw() {
	v.screen.Clear()

	status := v.statusRow()
	field := v.sim.Field()
	maxSat := field.MaxSaturation()
	field.ForEachActiveCell(heatmap.CellVisitorFunc(func(p heatmap.HeatPoint) {
		if p.Row >= status {
			return
		}
		c := v.color(p.Value, maxSat)
		style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
		v.screen.SetContent(p.Column, p.Row, cellRune, nil, style)
	}))

	line := fmt.Sprintf("tick %d  pending %d  emitters %d", v.sim.Tick(), v.sim.Pending(), v.sim.EmitterCount())
	if v.paused {
		line += "  [paused]"
	}
	v.drawText(0, status, line, tcell.StyleDefault.Foreground(tcell.ColorGray))

	v.screen.Show()
}

// statusRow is the last screen row, reserved for the status line. Grid rows
// at or below it are not shown.
func (v *View) statusRow() int {
	_, h := v.screen.Size()
	return h - 1
}

func (v *View) drawText(x, y int, text string, style tcell.Style) {
	for _, r := range text {
		v.screen.SetContent(x, y, r, nil, style)
		x++
	}
}
