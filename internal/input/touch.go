package input

import "gallery/internal/locomotion"

// Touch is the touch-screen adapter. The first touch decides direction for the whole gesture:
// the upper half of the screen walks forward, the lower half backward. Horizontal drag turns.
type Touch struct {
	active  bool
	forward bool
	lastX   float32
	dx      float32
}

// NewTouch returns an idle touch adapter.
func NewTouch() *Touch {
	return &Touch{}
}

// TouchStart begins a gesture at (x, y) on a surface screenHeight tall.
func (t *Touch) TouchStart(x, y, screenHeight float32) {
	t.active = true
	t.forward = y < screenHeight/2
	t.lastX = x
}

// TouchMove updates the gesture. Only horizontal travel is used.
func (t *Touch) TouchMove(x, _ float32) {
	if !t.active {
		return
	}
	t.dx += x - t.lastX
	t.lastX = x
}

// TouchEnd stops walking.
func (t *Touch) TouchEnd() {
	t.active = false
}

// Active reports whether a gesture is in progress.
func (t *Touch) Active() bool {
	return t.active
}

func (t *Touch) Sample() locomotion.InputState {
	in := locomotion.InputState{
		Direct:          true,
		Forward:         t.active && t.forward,
		Backward:        t.active && !t.forward,
		PointerDeltaYaw: t.dx,
	}
	t.dx = 0
	return in
}

func (t *Touch) Engaged() bool {
	return true
}
