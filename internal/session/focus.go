package session

import "github.com/charmbracelet/harmonica"

// focus eases the inspection zoom with a critically damped spring stepped once per frame.
type focus struct {
	spring   harmonica.Spring
	pos, vel float64
}

func newFocus(fps int) *focus {
	if fps <= 0 {
		fps = 60
	}
	return &focus{spring: harmonica.NewSpring(harmonica.FPS(fps), 8.0, 1.0)}
}

func (f *focus) update(active bool) {
	target := 0.0
	if active {
		target = 1
	}
	f.pos, f.vel = f.spring.Update(f.pos, f.vel, target)
}

func (f *focus) value() float32 {
	switch {
	case f.pos < 0:
		return 0
	case f.pos > 1:
		return 1
	}
	return float32(f.pos)
}
