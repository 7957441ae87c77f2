package renderer

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/heatfield/heatmap"
)

// OpenWindow creates the raylib window and reports heatmap.ErrResourceUnavailable
// when no drawing surface could be acquired.
func OpenWindow(width, height, targetFPS int32, title string) error {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(width, height, title)
	if !rl.IsWindowReady() {
		return fmt.Errorf("%w: raylib window %dx%d", heatmap.ErrResourceUnavailable, width, height)
	}
	rl.SetTargetFPS(targetFPS)
	return nil
}

// CloseWindow releases the raylib window.
func CloseWindow() {
	rl.CloseWindow()
}
