package input

import "gallery/internal/locomotion"

// PointerLock is the desktop adapter: keys move, relative mouse motion looks around while the
// pointer is locked.
type PointerLock struct {
	forward, backward, left, right bool

	locked bool
	dx, dy float32
}

// NewPointerLock returns an unlocked adapter with no keys held.
func NewPointerLock() *PointerLock {
	return &PointerLock{}
}

// KeyDown marks k as held.
func (p *PointerLock) KeyDown(k Key) { p.setKey(k, true) }

// KeyUp releases k.
func (p *PointerLock) KeyUp(k Key) { p.setKey(k, false) }

func (p *PointerLock) setKey(k Key, down bool) {
	switch k {
	case KeyForward:
		p.forward = down
	case KeyBackward:
		p.backward = down
	case KeyLeft:
		p.left = down
	case KeyRight:
		p.right = down
	}
}

// SetLocked records a pointer-lock change. Losing the lock releases every key and drops pending
// pointer motion, since key-up events are not delivered while unlocked.
func (p *PointerLock) SetLocked(locked bool) {
	p.locked = locked
	if !locked {
		p.forward, p.backward, p.left, p.right = false, false, false, false
		p.dx, p.dy = 0, 0
	}
}

// Locked reports whether the pointer is captured.
func (p *PointerLock) Locked() bool {
	return p.locked
}

// PointerMove accumulates relative mouse motion. Motion while unlocked is ignored.
func (p *PointerLock) PointerMove(dx, dy float32) {
	if !p.locked {
		return
	}
	p.dx += dx
	p.dy += dy
}

func (p *PointerLock) Sample() locomotion.InputState {
	in := locomotion.InputState{
		Forward:           p.forward,
		Backward:          p.backward,
		Left:              p.left,
		Right:             p.right,
		PointerDeltaYaw:   p.dx,
		PointerDeltaPitch: p.dy,
	}
	p.dx, p.dy = 0, 0
	return in
}

func (p *PointerLock) Engaged() bool {
	return p.locked
}
