// Package controls feeds device state into the input adapters and the session's pick/close
// actions. Frame is a snapshot of the devices for one tick; Read fills it from raylib.
package controls

import (
	"gallery/internal/input"

	"github.com/chewxy/math32"
)

// A touch is a tap when it travels under tapSlop pixels (summed over the gesture) and is
// released within tapFrames ticks. Longer holds are walks.
const (
	tapSlop   = 12
	tapFrames = 15
)

// Frame is the device state for one tick.
type Frame struct {
	Click      bool     // primary button pressed this frame
	Escape     bool     // escape pressed this frame
	Held       []string // key codes held down ("KeyW", "ArrowUp", ...)
	MouseDelta [2]float32
	Touching   bool
	Touch      [2]float32 // first touch point, valid while Touching
	ScreenW    float32
	ScreenH    float32
}

// Inspector is the part of the session controls drive directly.
type Inspector interface {
	Click() bool
	Tap(x, y, w, h float32) bool
	Inspecting() bool
	CloseInspection()
}

// Cursor is what the window should do with the OS cursor after Apply.
type Cursor int

const (
	CursorKeep Cursor = iota
	CursorCapture
	CursorRelease
)

// Controls routes frames to a pointer-lock or touch adapter.
type Controls struct {
	pointer *input.PointerLock
	touch   *input.Touch
	insp    Inspector

	last     [2]float32
	travel   float32
	held     int  // ticks the current touch has been down
	consumed bool // current touch closed the panel; ignore it until release
}

// New returns controls for adapter, which must be an *input.PointerLock or *input.Touch.
func New(adapter input.Adapter, insp Inspector) *Controls {
	c := &Controls{insp: insp}
	switch a := adapter.(type) {
	case *input.PointerLock:
		c.pointer = a
	case *input.Touch:
		c.touch = a
	}
	return c
}

// Apply feeds f to the adapter and returns the cursor change the window should make.
func (c *Controls) Apply(f Frame) Cursor {
	if c.touch != nil {
		c.applyTouch(f)
		return CursorKeep
	}
	if c.pointer != nil {
		return c.applyPointer(f)
	}
	return CursorKeep
}

func (c *Controls) applyPointer(f Frame) Cursor {
	p := c.pointer
	if c.insp.Inspecting() {
		if f.Escape || f.Click {
			c.insp.CloseInspection()
		}
		return CursorKeep
	}
	if !p.Locked() {
		if f.Click {
			p.SetLocked(true)
			return CursorCapture
		}
		return CursorKeep
	}
	if f.Escape {
		p.SetLocked(false)
		return CursorRelease
	}
	if f.Click {
		c.insp.Click()
	}
	var down [input.KeyRight + 1]bool
	for _, code := range f.Held {
		down[input.KeyFromCode(code)] = true
	}
	for _, k := range []input.Key{input.KeyForward, input.KeyBackward, input.KeyLeft, input.KeyRight} {
		hold(p, k, down[k])
	}
	p.PointerMove(f.MouseDelta[0], f.MouseDelta[1])
	return CursorKeep
}

func hold(p *input.PointerLock, k input.Key, down bool) {
	if down {
		p.KeyDown(k)
	} else {
		p.KeyUp(k)
	}
}

func (c *Controls) applyTouch(f Frame) {
	t := c.touch
	switch {
	case f.Touching && c.consumed:
	case f.Touching && !t.Active():
		if c.insp.Inspecting() {
			c.insp.CloseInspection()
			c.consumed = true
			return
		}
		t.TouchStart(f.Touch[0], f.Touch[1], f.ScreenH)
		c.last, c.travel, c.held = f.Touch, 0, 1
	case f.Touching:
		c.held++
		c.travel += math32.Abs(f.Touch[0]-c.last[0]) + math32.Abs(f.Touch[1]-c.last[1])
		t.TouchMove(f.Touch[0], f.Touch[1])
		c.last = f.Touch
	case t.Active():
		t.TouchEnd()
		if c.travel < tapSlop && c.held <= tapFrames {
			c.insp.Tap(c.last[0], c.last[1], f.ScreenW, f.ScreenH)
		}
	default:
		c.consumed = false
	}
}
