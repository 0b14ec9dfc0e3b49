package input

import (
	"fmt"

	"gallery/internal/locomotion"
)

// Adapter turns device events into a normalized locomotion.InputState. Sample is called once
// per tick and resets accumulated pointer deltas. Engaged reports whether locomotion may run at
// all this tick (pointer lock held on desktop; always on touch).
type Adapter interface {
	Sample() locomotion.InputState
	Engaged() bool
}

// Mode selects which adapter the session is built with.
type Mode string

const (
	ModeDesktop Mode = "desktop"
	ModeTouch   Mode = "touch"
)

// ParseMode accepts "desktop" or "touch".
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeDesktop, ModeTouch:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("unknown input mode %q (use desktop or touch)", s)
	}
}

// Key is a movement direction bound to one or more physical keys.
type Key int

const (
	KeyNone Key = iota
	KeyForward
	KeyBackward
	KeyLeft
	KeyRight
)

// KeyFromCode maps a keyboard code name (W/A/S/D and arrows) to a movement key.
func KeyFromCode(code string) Key {
	switch code {
	case "ArrowUp", "KeyW":
		return KeyForward
	case "ArrowDown", "KeyS":
		return KeyBackward
	case "ArrowLeft", "KeyA":
		return KeyLeft
	case "ArrowRight", "KeyD":
		return KeyRight
	default:
		return KeyNone
	}
}

// Open returns a fresh adapter for mode.
func Open(mode Mode) (Adapter, error) {
	switch mode {
	case ModeDesktop:
		return NewPointerLock(), nil
	case ModeTouch:
		return NewTouch(), nil
	default:
		return nil, fmt.Errorf("unknown input mode %q", mode)
	}
}
