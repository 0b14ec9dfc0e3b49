package controls

import (
	"testing"

	"gallery/internal/input"

	"github.com/stretchr/testify/assert"
)

type fakeInspector struct {
	inspecting bool
	clicks     int
	taps       [][2]float32
	closes     int
}

func (f *fakeInspector) Click() bool {
	f.clicks++
	f.inspecting = true
	return true
}

func (f *fakeInspector) Tap(x, y, _, _ float32) bool {
	f.taps = append(f.taps, [2]float32{x, y})
	return false
}

func (f *fakeInspector) Inspecting() bool { return f.inspecting }

func (f *fakeInspector) CloseInspection() {
	f.closes++
	f.inspecting = false
}

func TestPointerLockFlow(t *testing.T) {
	pl := input.NewPointerLock()
	insp := &fakeInspector{}
	c := New(pl, insp)

	// Keys are ignored until the first click captures the pointer.
	assert.Equal(t, CursorKeep, c.Apply(Frame{Held: []string{"KeyW"}}))
	assert.False(t, pl.Sample().Forward)

	assert.Equal(t, CursorCapture, c.Apply(Frame{Click: true}))
	assert.True(t, pl.Locked())
	assert.Zero(t, insp.clicks)

	c.Apply(Frame{Held: []string{"ArrowUp", "KeyA", "Space"}, MouseDelta: [2]float32{4, -2}})
	in := pl.Sample()
	assert.True(t, in.Forward)
	assert.True(t, in.Left)
	assert.Equal(t, float32(4), in.PointerDeltaYaw)
	assert.Equal(t, float32(-2), in.PointerDeltaPitch)

	c.Apply(Frame{Held: []string{"ArrowLeft"}})
	in = pl.Sample()
	assert.False(t, in.Forward)
	assert.True(t, in.Left)

	assert.Equal(t, CursorRelease, c.Apply(Frame{Escape: true}))
	assert.False(t, pl.Locked())
}

func TestPointerLockInspection(t *testing.T) {
	pl := input.NewPointerLock()
	insp := &fakeInspector{}
	c := New(pl, insp)
	c.Apply(Frame{Click: true})

	c.Apply(Frame{Click: true})
	assert.Equal(t, 1, insp.clicks)
	assert.True(t, insp.inspecting)

	// Escape closes the panel without releasing the pointer.
	assert.Equal(t, CursorKeep, c.Apply(Frame{Escape: true}))
	assert.Equal(t, 1, insp.closes)
	assert.True(t, pl.Locked())
}

func TestTouchTapAndDrag(t *testing.T) {
	tc := input.NewTouch()
	insp := &fakeInspector{}
	c := New(tc, insp)
	screen := Frame{ScreenW: 800, ScreenH: 600}

	down := screen
	down.Touching, down.Touch = true, [2]float32{400, 100}
	c.Apply(down)
	assert.True(t, tc.Active())
	assert.True(t, tc.Sample().Forward)

	c.Apply(screen)
	assert.False(t, tc.Active())
	assert.Equal(t, [][2]float32{{400, 100}}, insp.taps)

	// A drag is not a tap.
	c.Apply(down)
	drag := down
	drag.Touch = [2]float32{460, 100}
	c.Apply(drag)
	assert.Equal(t, float32(60), tc.Sample().PointerDeltaYaw)
	c.Apply(screen)
	assert.Len(t, insp.taps, 1)
}

func TestTouchClosesInspection(t *testing.T) {
	tc := input.NewTouch()
	insp := &fakeInspector{inspecting: true}
	c := New(tc, insp)
	down := Frame{Touching: true, Touch: [2]float32{10, 500}, ScreenW: 800, ScreenH: 600}

	c.Apply(down)
	c.Apply(down)
	assert.Equal(t, 1, insp.closes)
	assert.False(t, tc.Active())

	c.Apply(Frame{ScreenW: 800, ScreenH: 600})
	assert.Empty(t, insp.taps)
	c.Apply(down)
	assert.True(t, tc.Active())
}

func TestTouchHoldIsNotTap(t *testing.T) {
	tc := input.NewTouch()
	insp := &fakeInspector{}
	c := New(tc, insp)
	down := Frame{Touching: true, Touch: [2]float32{400, 100}, ScreenW: 800, ScreenH: 600}

	// Three seconds of walking forward without moving the finger.
	for i := 0; i < 180; i++ {
		c.Apply(down)
	}
	assert.True(t, tc.Sample().Forward)
	c.Apply(Frame{ScreenW: 800, ScreenH: 600})
	assert.False(t, tc.Active())
	assert.Empty(t, insp.taps)

	// A quick press at the same spot still picks.
	for i := 0; i < tapFrames; i++ {
		c.Apply(down)
	}
	c.Apply(Frame{ScreenW: 800, ScreenH: 600})
	assert.Len(t, insp.taps, 1)
}
