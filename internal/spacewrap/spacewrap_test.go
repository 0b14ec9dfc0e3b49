package spacewrap

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

const loop = float32(625)

func TestWrapInsideWindowIsNoop(t *testing.T) {
	for _, z := range []float32{0, -1, -312.5, -625} {
		p := mgl32.Vec3{3, 10, z}
		assert.Equal(t, p, Wrap(p, loop))
	}
}

func TestWrapEdges(t *testing.T) {
	const eps = float32(0.5)
	got := Wrap(mgl32.Vec3{1, 10, -loop - eps}, loop)
	assert.InDelta(t, -eps, got.Z(), 1e-4)
	assert.Equal(t, float32(1), got.X())
	assert.Equal(t, float32(10), got.Y())

	got = Wrap(mgl32.Vec3{0, 10, eps}, loop)
	assert.InDelta(t, eps-loop, got.Z(), 1e-4)
}

func TestWrapIdempotent(t *testing.T) {
	for _, z := range []float32{-1e6, -5000.25, -1250, -626, -625.001, 0.001, 1, 624, 625, 9999} {
		once := Wrap(mgl32.Vec3{0, 0, z}, loop)
		twice := Wrap(once, loop)
		assert.Equal(t, once, twice, "z=%v", z)
		assert.GreaterOrEqual(t, once.Z(), -loop, "z=%v", z)
		assert.LessOrEqual(t, once.Z(), float32(0), "z=%v", z)
	}
}

func TestWrapDisabled(t *testing.T) {
	p := mgl32.Vec3{0, 0, -9000}
	assert.Equal(t, p, Wrap(p, 0))
	assert.Equal(t, p, Wrap(p, -1))
}

func TestCrossed(t *testing.T) {
	before := mgl32.Vec3{0, 0, -626}
	after := Wrap(before, loop)
	assert.Equal(t, 1, Crossed(before, after, loop))

	before = mgl32.Vec3{0, 0, 2}
	after = Wrap(before, loop)
	assert.Equal(t, -1, Crossed(before, after, loop))
	assert.Equal(t, 0, Crossed(after, after, loop))
}
