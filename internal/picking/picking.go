package picking

import (
	"errors"
	"fmt"

	"gallery/internal/layout"
	"gallery/internal/locomotion"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

// Metadata is what the content panel shows for a picked exhibit.
type Metadata struct {
	Title       string
	Subtitle    string
	Description string
	ImageRef    string
	// Popularity is a display-only number derived from the title; see SyntheticPopularity.
	Popularity int
}

// Ray is a half-line; Direction need not be unit length but t is measured in its units.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

// At returns the point at parameter t.
func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// Surface is an interactive, vertical rectangle: the face of one framed exhibit. Walls, floor
// and frames are never surfaces.
type Surface struct {
	ID       uuid.UUID
	Center   mgl32.Vec3
	Yaw      float32
	Width    float32
	Height   float32
	Metadata Metadata
}

// Normal is the direction the surface faces. Yaw 0 faces +Z.
func (s Surface) Normal() mgl32.Vec3 {
	return mgl32.Vec3{math32.Sin(s.Yaw), 0, math32.Cos(s.Yaw)}
}

func (s Surface) tangent() mgl32.Vec3 {
	return mgl32.Vec3{math32.Cos(s.Yaw), 0, -math32.Sin(s.Yaw)}
}

const parallelEpsilon = 1e-6

// Intersect returns the ray parameter of the hit, if the ray crosses the rectangle in front of
// its origin. Both faces count.
func (s Surface) Intersect(r Ray) (float32, bool) {
	n := s.Normal()
	denom := r.Direction.Dot(n)
	if math32.Abs(denom) < parallelEpsilon {
		return 0, false
	}
	t := s.Center.Sub(r.Origin).Dot(n) / denom
	if t <= 0 {
		return 0, false
	}
	d := r.At(t).Sub(s.Center)
	if math32.Abs(d.Dot(s.tangent())) > s.Width/2 || math32.Abs(d[1]) > s.Height/2 {
		return 0, false
	}
	return t, true
}

// Hit is the nearest surface found by PickSurface.
type Hit struct {
	Surface Surface
	T       float32
}

// PickSurface returns the surface nearest along r.
func PickSurface(r Ray, surfaces []Surface) (Hit, bool) {
	var best Hit
	found := false
	for _, s := range surfaces {
		t, ok := s.Intersect(r)
		if !ok || (found && t >= best.T) {
			continue
		}
		best, found = Hit{Surface: s, T: t}, true
	}
	return best, found
}

// Pick returns the metadata of the nearest surface along r. A miss is not an error.
func Pick(r Ray, surfaces []Surface) (Metadata, bool) {
	h, ok := PickSurface(r, surfaces)
	if !ok {
		return Metadata{}, false
	}
	return h.Surface.Metadata, true
}

// FromPlacements builds the interactive set for a generated hall.
func FromPlacements(placements []layout.Placement) []Surface {
	out := make([]Surface, 0, len(placements))
	for _, p := range placements {
		out = append(out, Surface{
			ID:     p.SurfaceID,
			Center: p.Position,
			Yaw:    p.Yaw,
			Width:  p.Width,
			Height: p.Height,
			Metadata: Metadata{
				Title:       p.Exhibit.Title,
				Subtitle:    p.Exhibit.Subtitle,
				Description: p.Exhibit.Description,
				ImageRef:    p.Exhibit.ImageRef,
				Popularity:  SyntheticPopularity(p.Exhibit.Title),
			},
		})
	}
	return out
}

// CenterRay is the ray through the middle of the viewport.
func CenterRay(a locomotion.AvatarState) Ray {
	return Ray{Origin: a.Position, Direction: locomotion.ViewDirection(a.Yaw, a.Pitch)}
}

// Camera is the projection the scene renders with. FovY is in degrees.
type Camera struct {
	Position mgl32.Vec3
	Yaw      float32
	Pitch    float32
	FovY     float32
	Near     float32
	Far      float32
}

// ErrViewport is returned by ScreenRay for an empty viewport or a degenerate projection.
var ErrViewport = errors.New("picking: degenerate viewport")

// ScreenRay returns the ray through window pixel (x, y), y growing downwards, on a viewport w×h.
func ScreenRay(cam Camera, x, y, w, h float32) (Ray, error) {
	if !(w > 0) || !(h > 0) {
		return Ray{}, ErrViewport
	}
	eye := cam.Position
	view := mgl32.LookAtV(eye, eye.Add(locomotion.ViewDirection(cam.Yaw, cam.Pitch)), mgl32.Vec3{0, 1, 0})
	proj := mgl32.Perspective(mgl32.DegToRad(cam.FovY), w/h, cam.Near, cam.Far)
	near, err := mgl32.UnProject(mgl32.Vec3{x, h - y, 0}, view, proj, 0, 0, int(w), int(h))
	if err != nil {
		return Ray{}, fmt.Errorf("%w: %v", ErrViewport, err)
	}
	far, err := mgl32.UnProject(mgl32.Vec3{x, h - y, 1}, view, proj, 0, 0, int(w), int(h))
	if err != nil {
		return Ray{}, fmt.Errorf("%w: %v", ErrViewport, err)
	}
	return Ray{Origin: eye, Direction: far.Sub(near).Normalize()}, nil
}
