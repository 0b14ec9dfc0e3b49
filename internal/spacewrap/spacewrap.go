package spacewrap

import (
	"math"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Wrap keeps p.Z inside the traversal window [-loopDistance, 0]. A position past either edge is
// shifted by whole loop lengths back into the window, so Wrap(Wrap(p)) == Wrap(p). X and Y are
// never touched. A non-positive loopDistance disables wrapping.
func Wrap(p mgl32.Vec3, loopDistance float32) mgl32.Vec3 {
	if !(loopDistance > 0) {
		return p
	}
	z := p[2]
	if z >= -loopDistance && z <= 0 {
		return p
	}
	z -= loopDistance * math32.Ceil(z/loopDistance)
	// Rounding can leave z a hair outside on very large inputs.
	if z < -loopDistance {
		z += loopDistance
	} else if z > 0 {
		z -= loopDistance
	}
	p[2] = z
	return p
}

// Crossed reports how many loop lengths were removed going from before to after, positive when
// the avatar walked off the far (-Z) edge.
func Crossed(before, after mgl32.Vec3, loopDistance float32) int {
	if !(loopDistance > 0) {
		return 0
	}
	return int(math.Round(float64((after[2] - before[2]) / loopDistance)))
}
