package controls

import rl "github.com/gen2brain/raylib-go/raylib"

// bindings names the raylib keys that can move the viewer by their keyboard code.
var bindings = []struct {
	key  int32
	code string
}{
	{rl.KeyW, "KeyW"},
	{rl.KeyA, "KeyA"},
	{rl.KeyS, "KeyS"},
	{rl.KeyD, "KeyD"},
	{rl.KeyUp, "ArrowUp"},
	{rl.KeyDown, "ArrowDown"},
	{rl.KeyLeft, "ArrowLeft"},
	{rl.KeyRight, "ArrowRight"},
}

// Read snapshots keyboard, mouse and touch state from raylib. Must run on the main thread.
func Read() Frame {
	f := Frame{
		Click:   rl.IsMouseButtonPressed(rl.MouseButtonLeft),
		Escape:  rl.IsKeyPressed(rl.KeyEscape),
		ScreenW: float32(rl.GetScreenWidth()),
		ScreenH: float32(rl.GetScreenHeight()),
	}
	for _, b := range bindings {
		if rl.IsKeyDown(b.key) {
			f.Held = append(f.Held, b.code)
		}
	}
	d := rl.GetMouseDelta()
	f.MouseDelta = [2]float32{d.X, d.Y}
	if rl.GetTouchPointCount() > 0 {
		p := rl.GetTouchPosition(0)
		f.Touching = true
		f.Touch = [2]float32{p.X, p.Y}
	}
	return f
}

// SetCursor applies a cursor change returned by Apply.
func SetCursor(c Cursor) {
	switch c {
	case CursorCapture:
		rl.DisableCursor()
	case CursorRelease:
		rl.EnableCursor()
	}
}
