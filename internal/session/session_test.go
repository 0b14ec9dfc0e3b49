package session

import (
	"errors"
	"testing"

	"gallery/internal/catalog"
	"gallery/internal/input"
	"gallery/internal/layout"
	"gallery/internal/locomotion"
	"gallery/internal/picking"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

const frame = float32(1.0 / 60)

type recordingPanel struct {
	shown  []picking.Metadata
	hidden int
}

func (p *recordingPanel) Show(md picking.Metadata) { p.shown = append(p.shown, md) }
func (p *recordingPanel) Hide()                    { p.hidden++ }

func testOptions() Options {
	return Options{
		Hall:      layout.DefaultParams(),
		Movement:  locomotion.DefaultConfig(),
		EyeHeight: 10,
		FovY:      75,
		FocusFovY: 40,
		Near:      1,
		Far:       1000,
		TargetFPS: 60,
	}
}

func newDesktop(t *testing.T) (*Session, *input.PointerLock, *recordingPanel) {
	t.Helper()
	pl := input.NewPointerLock()
	panel := &recordingPanel{}
	s, err := New(catalog.Sample(), testOptions(), pl, panel, zap.NewNop())
	require.NoError(t, err)
	return s, pl, panel
}

// turnTo rotates the avatar to yaw through pointer motion, the way a user would.
func turnTo(s *Session, pl *input.PointerLock, yaw float32) {
	sens := testOptions().Movement.LookSensitivity
	pl.PointerMove((s.Avatar().Yaw-yaw)/sens, 0)
	s.Tick(frame)
}

func TestNewRejectsEmptyCatalog(t *testing.T) {
	_, err := New(catalog.Catalog{}, testOptions(), input.NewTouch(), nil, nil)
	assert.True(t, errors.Is(err, layout.ErrEmptyCatalog))

	opts := testOptions()
	opts.Hall.RowSpacing = 0
	_, err = New(catalog.Sample(), opts, input.NewTouch(), nil, nil)
	assert.True(t, errors.Is(err, layout.ErrInvalidParams))
}

func TestNewRequiresAdapter(t *testing.T) {
	s, err := New(catalog.Sample(), testOptions(), nil, nil, nil)
	assert.ErrorIs(t, err, ErrNoAdapter)
	assert.Nil(t, s)
}

func TestStartsAtEntrance(t *testing.T) {
	s, _, _ := newDesktop(t)
	assert.Equal(t, float32(10), s.Avatar().Position.Y())
	assert.Equal(t, float32(0), s.Avatar().Position.Z())
	assert.Len(t, s.Placements(), 2*(25+2*3))
	assert.Equal(t, 0, s.Row())
}

func TestUnlockedDesktopDoesNotMove(t *testing.T) {
	s, pl, _ := newDesktop(t)
	pl.KeyDown(input.KeyForward)
	for i := 0; i < 30; i++ {
		s.Tick(frame)
	}
	assert.Equal(t, float32(0), s.Avatar().Position.Z())
	assert.False(t, s.Avatar().Locked)
}

func TestWalkingWrapsForever(t *testing.T) {
	s, pl, _ := newDesktop(t)
	pl.SetLocked(true)
	pl.KeyDown(input.KeyForward)
	loop := s.Hall().LoopDistance()
	for i := 0; i < 60*60; i++ {
		s.Tick(frame)
		z := s.Avatar().Position.Z()
		require.GreaterOrEqual(t, z, -loop, "tick %d", i)
		require.LessOrEqual(t, z, float32(0), "tick %d", i)
	}
	assert.GreaterOrEqual(t, s.Wraps(), 3)
	// Wrapping moved the avatar but left its momentum alone.
	assert.InDelta(t, -40, s.Avatar().Velocity.Z(), 0.5)
	assert.True(t, s.Avatar().Locked)
}

func TestWalkingBackwardWraps(t *testing.T) {
	s, pl, _ := newDesktop(t)
	pl.SetLocked(true)
	pl.KeyDown(input.KeyBackward)
	for i := 0; i < 60; i++ {
		s.Tick(frame)
	}
	assert.Equal(t, -1, s.Wraps())
	assert.Less(t, s.Avatar().Position.Z(), float32(-500))
}

func TestBoundedHallDoesNotWrap(t *testing.T) {
	opts := testOptions()
	opts.Hall.Loop = false
	pl := input.NewPointerLock()
	s, err := New(catalog.Sample(), opts, pl, nil, nil)
	require.NoError(t, err)
	pl.SetLocked(true)
	pl.KeyDown(input.KeyBackward)
	for i := 0; i < 60; i++ {
		s.Tick(frame)
	}
	assert.Greater(t, s.Avatar().Position.Z(), float32(0))
	assert.Zero(t, s.Wraps())
}

func TestClickInspectsAndGates(t *testing.T) {
	s, pl, panel := newDesktop(t)
	pl.SetLocked(true)

	assert.False(t, s.Click(), "looking down the corridor")
	assert.Empty(t, panel.shown)

	turnTo(s, pl, layout.RightYaw)
	require.True(t, s.Click())
	require.Len(t, panel.shown, 1)
	assert.Equal(t, catalog.Sample().At(1).Title, panel.shown[0].Title)
	assert.True(t, s.Inspecting())
	md, ok := s.Selected()
	assert.True(t, ok)
	assert.Equal(t, panel.shown[0], md)

	// No second pick and no movement while the panel is open.
	assert.False(t, s.Click())
	pl.KeyDown(input.KeyForward)
	pl.PointerMove(500, 0)
	before := s.Avatar()
	for i := 0; i < 30; i++ {
		s.Tick(frame)
	}
	assert.Equal(t, before.Position, s.Avatar().Position)
	assert.Equal(t, before.Yaw, s.Avatar().Yaw)

	s.CloseInspection()
	s.CloseInspection()
	assert.Equal(t, 1, panel.hidden)
	assert.False(t, s.Inspecting())
	s.Tick(frame)
	assert.NotEqual(t, before.Position, s.Avatar().Position)
	// Pointer motion made while inspecting was dropped.
	assert.Equal(t, before.Yaw, s.Avatar().Yaw)
}

func TestZoomFollowsInspection(t *testing.T) {
	s, pl, _ := newDesktop(t)
	pl.SetLocked(true)
	turnTo(s, pl, layout.LeftYaw)
	assert.Zero(t, s.Zoom())
	assert.Equal(t, float32(75), s.Camera().FovY)

	require.True(t, s.Click())
	for i := 0; i < 90; i++ {
		s.Tick(frame)
	}
	assert.Greater(t, s.Zoom(), float32(0.9))
	assert.InDelta(t, 40, s.Camera().FovY, 4)

	s.CloseInspection()
	for i := 0; i < 120; i++ {
		s.Tick(frame)
	}
	assert.Less(t, s.Zoom(), float32(0.05))
}

func TestTouchSession(t *testing.T) {
	tc := input.NewTouch()
	panel := &recordingPanel{}
	s, err := New(catalog.Sample(), testOptions(), tc, panel, nil)
	require.NoError(t, err)

	tc.TouchStart(400, 100, 600)
	for i := 0; i < 75; i++ {
		s.Tick(frame)
	}
	tc.TouchEnd()
	// 1.25s at 400*0.1 units/s puts the avatar level with row 2.
	assert.InDelta(t, -50, s.Avatar().Position.Z(), 0.1)
	assert.Equal(t, 2, s.Row())

	// Tap the centre of the screen after turning to face the left wall.
	tc.TouchStart(400, 100, 600)
	tc.TouchMove(400-(math32.Pi/2)/testOptions().Movement.TouchSensitivity, 100)
	tc.TouchEnd()
	s.Tick(frame)
	require.True(t, s.Tap(400, 300, 800, 600))
	require.Len(t, panel.shown, 1)
	assert.False(t, s.Tap(400, 300, 800, 600))
}

func TestWrapIsLogged(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	pl := input.NewPointerLock()
	s, err := New(catalog.Sample(), testOptions(), pl, nil, zap.New(core))
	require.NoError(t, err)
	assert.Equal(t, 1, logs.FilterMessage("hall generated").Len())

	pl.SetLocked(true)
	pl.KeyDown(input.KeyBackward)
	s.Tick(frame)
	assert.Equal(t, 1, logs.FilterMessage("wrapped").Len())
}
