package picking

import (
	"testing"

	"gallery/internal/catalog"
	"gallery/internal/layout"
	"gallery/internal/locomotion"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func facingViewer(z float32, title string) Surface {
	return Surface{
		ID:       uuid.New(),
		Center:   mgl32.Vec3{0, 0, z},
		Width:    4,
		Height:   4,
		Metadata: Metadata{Title: title},
	}
}

func TestPickNearest(t *testing.T) {
	r := Ray{Origin: mgl32.Vec3{}, Direction: mgl32.Vec3{0, 0, -1}}
	far := facingViewer(-7, "far")
	near := facingViewer(-3, "near")

	for _, set := range [][]Surface{{far, near}, {near, far}} {
		md, ok := Pick(r, set)
		require.True(t, ok)
		assert.Equal(t, "near", md.Title)
	}
	h, ok := PickSurface(r, []Surface{far, near})
	require.True(t, ok)
	assert.InDelta(t, 3, h.T, 1e-6)
}

func TestPickMiss(t *testing.T) {
	s := facingViewer(-5, "x")
	cases := map[string]Ray{
		"behind":   {Origin: mgl32.Vec3{}, Direction: mgl32.Vec3{0, 0, 1}},
		"parallel": {Origin: mgl32.Vec3{}, Direction: mgl32.Vec3{1, 0, 0}},
		"beside":   {Origin: mgl32.Vec3{2.5, 0, 0}, Direction: mgl32.Vec3{0, 0, -1}},
		"above":    {Origin: mgl32.Vec3{0, 2.1, 0}, Direction: mgl32.Vec3{0, 0, -1}},
	}
	for name, r := range cases {
		_, ok := Pick(r, []Surface{s})
		assert.False(t, ok, name)
	}
	_, ok := Pick(Ray{Direction: mgl32.Vec3{0, 0, -1}}, nil)
	assert.False(t, ok)
}

func TestPickFromHall(t *testing.T) {
	cat := catalog.New([]catalog.Exhibit{
		{ImageRef: "a.png", Title: "A"},
		{ImageRef: "b.png", Title: "B", Subtitle: "2020", Description: "d"},
	})
	p := layout.DefaultParams()
	placements, err := layout.Generate(cat, p)
	require.NoError(t, err)
	surfaces := FromPlacements(placements)
	require.Len(t, surfaces, len(placements))

	// Standing at row 0 and looking at the right wall (yaw -π/2 faces +X).
	avatar := locomotion.AvatarState{Position: mgl32.Vec3{0, p.HangHeight, 0}, Yaw: layout.RightYaw}
	md, ok := Pick(CenterRay(avatar), surfaces)
	require.True(t, ok)
	assert.Equal(t, "B", md.Title)
	assert.Equal(t, "2020", md.Subtitle)
	assert.Equal(t, "b.png", md.ImageRef)
	assert.Equal(t, SyntheticPopularity("B"), md.Popularity)

	avatar.Yaw = layout.LeftYaw
	md, ok = Pick(CenterRay(avatar), surfaces)
	require.True(t, ok)
	assert.Equal(t, "A", md.Title)

	// Looking down the corridor hits nothing.
	avatar.Yaw = 0
	_, ok = Pick(CenterRay(avatar), surfaces)
	assert.False(t, ok)
}

func TestScreenRayCenter(t *testing.T) {
	cam := Camera{Position: mgl32.Vec3{0, 10, -40}, Yaw: 0.3, Pitch: 0.1, FovY: 75, Near: 1, Far: 1000}
	r, err := ScreenRay(cam, 400, 300, 800, 600)
	require.NoError(t, err)
	want := locomotion.ViewDirection(cam.Yaw, cam.Pitch)
	for i := 0; i < 3; i++ {
		assert.InDelta(t, want[i], r.Direction[i], 1e-2)
	}
	assert.Equal(t, cam.Position, r.Origin)

	// Left half of the screen points left of the view direction.
	left, err := ScreenRay(cam, 0, 300, 800, 600)
	require.NoError(t, err)
	assert.Less(t, left.Direction.Dot(locomotion.RightVector(cam.Yaw)), float32(0))

	_, err = ScreenRay(cam, 0, 0, 0, 600)
	assert.ErrorIs(t, err, ErrViewport)
}

func TestSyntheticPopularity(t *testing.T) {
	got := SyntheticPopularity("作品 No.1")
	assert.Equal(t, 18073, got)
	for i := 0; i < 5; i++ {
		assert.Equal(t, got, SyntheticPopularity("作品 No.1"))
	}
	for _, title := range []string{"", "Night Walk", "🎨", "a much longer title with many characters in it"} {
		v := SyntheticPopularity(title)
		assert.GreaterOrEqual(t, v, 1000, title)
		assert.Less(t, v, 50000, title)
	}
	assert.Equal(t, 31369, SyntheticPopularity("Night Walk"))
	// Composed and decomposed é agree.
	assert.Equal(t, SyntheticPopularity("caf\u00e9"), SyntheticPopularity("cafe\u0301"))
}
