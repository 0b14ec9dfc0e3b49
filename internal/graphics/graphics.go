package graphics

import (
	"gallery/internal/config"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Hooks are the per-frame callbacks of Run. Any may be nil.
type Hooks struct {
	// Init runs once after the window and GL context exist.
	Init func()
	// Background is the clear colour; nil clears to black.
	Background func() rl.Color
	// Update gets the raw frame time in seconds, before drawing.
	Update func(dt float32)
	// Draw runs between BeginDrawing and EndDrawing.
	Draw func()
	// Unload runs once after the loop ends, while the GL context still exists.
	Unload func()
}

// Run opens the window and drives the main loop until the window is closed. Escape does not
// close the window; it releases pointer lock and closes the detail panel.
func Run(win config.Window, h Hooks) {
	if win.Fullscreen {
		rl.SetConfigFlags(rl.FlagFullscreenMode | rl.FlagMsaa4xHint)
		rl.InitWindow(int32(rl.GetMonitorWidth(0)), int32(rl.GetMonitorHeight(0)), win.Title)
	} else {
		rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
		rl.InitWindow(int32(win.Width), int32(win.Height), win.Title)
	}
	defer rl.CloseWindow()

	rl.SetExitKey(rl.KeyNull)
	rl.SetTargetFPS(int32(win.TargetFPS))
	if h.Init != nil {
		h.Init()
	}

	for !rl.WindowShouldClose() {
		if h.Update != nil {
			h.Update(rl.GetFrameTime())
		}

		bg := rl.Black
		if h.Background != nil {
			bg = h.Background()
		}
		rl.BeginDrawing()
		rl.ClearBackground(bg)
		if h.Draw != nil {
			h.Draw()
		}
		rl.EndDrawing()
	}
	if h.Unload != nil {
		h.Unload()
	}
}
