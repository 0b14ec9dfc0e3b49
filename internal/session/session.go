package session

import (
	"errors"
	"fmt"

	"gallery/internal/catalog"
	"gallery/internal/input"
	"gallery/internal/layout"
	"gallery/internal/locomotion"
	"gallery/internal/picking"
	"gallery/internal/spacewrap"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// ContentPanel displays a picked exhibit. The session calls Show when an exhibit is inspected
// and Hide when inspection ends.
type ContentPanel interface {
	Show(md picking.Metadata)
	Hide()
}

// ErrNoAdapter is returned by New when no input adapter is given.
var ErrNoAdapter = errors.New("session: nil input adapter")

type nopPanel struct{}

func (nopPanel) Show(picking.Metadata) {}
func (nopPanel) Hide()                 {}

// Options is everything a session needs besides the catalog and its collaborators.
type Options struct {
	Hall      layout.Params
	Movement  locomotion.Config
	EyeHeight float32
	FovY      float32
	FocusFovY float32
	Near      float32
	Far       float32
	TargetFPS int
}

// Session is one viewer walking one hall. It owns the avatar and the generated layout; input
// arrives through the adapter, inspection output leaves through the panel. All methods must be
// called from the frame loop goroutine.
type Session struct {
	log     *zap.Logger
	opts    Options
	loop    float32
	ctrl    *locomotion.Controller
	adapter input.Adapter
	panel   ContentPanel

	avatar     locomotion.AvatarState
	placements []layout.Placement
	surfaces   []picking.Surface

	inspecting bool
	selected   picking.Metadata
	focus      *focus
	wraps      int
}

// New generates the hall and places the avatar at its entrance. Layout errors are returned
// before anything is shown.
func New(cat catalog.Catalog, opts Options, adapter input.Adapter, panel ContentPanel, log *zap.Logger) (*Session, error) {
	if adapter == nil {
		return nil, ErrNoAdapter
	}
	placements, err := layout.Generate(cat, opts.Hall)
	if err != nil {
		return nil, fmt.Errorf("generate hall: %w", err)
	}
	if panel == nil {
		panel = nopPanel{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	s := &Session{
		log:        log,
		opts:       opts,
		ctrl:       locomotion.New(opts.Movement),
		adapter:    adapter,
		panel:      panel,
		placements: placements,
		surfaces:   picking.FromPlacements(placements),
		focus:      newFocus(opts.TargetFPS),
		avatar: locomotion.AvatarState{
			Position: mgl32.Vec3{0, opts.EyeHeight, 0},
		},
	}
	if opts.Hall.Loop {
		s.loop = opts.Hall.LoopDistance()
	}
	log.Info("hall generated",
		zap.Int("placements", len(placements)),
		zap.Int("catalog", cat.Len()),
		zap.Int("rows_per_loop", opts.Hall.RowsPerLoop()),
		zap.Float32("loop_distance", s.loop),
	)
	return s, nil
}

// Tick runs one frame: sample input, step locomotion, wrap. Locomotion is skipped while an
// exhibit is being inspected or the adapter is not engaged; the sample is still consumed so
// stale pointer motion does not leak into the next active frame.
func (s *Session) Tick(dt float32) {
	s.focus.update(s.inspecting)
	in := s.adapter.Sample()
	s.avatar.Locked = s.adapter.Engaged()
	if s.inspecting || !s.avatar.Locked {
		return
	}
	s.avatar = s.ctrl.Step(in, dt, s.avatar)
	if s.loop <= 0 {
		return
	}
	stepped := s.avatar.Position
	s.avatar.Position = spacewrap.Wrap(stepped, s.loop)
	if n := spacewrap.Crossed(stepped, s.avatar.Position, s.loop); n != 0 {
		s.wraps += n
		s.log.Debug("wrapped", zap.Int("loops", n), zap.Float32("from_z", stepped[2]), zap.Float32("to_z", s.avatar.Position[2]))
	}
}

// Click inspects the exhibit under the viewport centre. It reports whether one was hit.
func (s *Session) Click() bool {
	if s.inspecting {
		return false
	}
	return s.pick(picking.CenterRay(s.avatar))
}

// Tap inspects the exhibit under window pixel (x, y) of a w×h viewport.
func (s *Session) Tap(x, y, w, h float32) bool {
	if s.inspecting {
		return false
	}
	r, err := picking.ScreenRay(s.Camera(), x, y, w, h)
	if err != nil {
		s.log.Debug("tap ignored", zap.Error(err))
		return false
	}
	return s.pick(r)
}

func (s *Session) pick(r picking.Ray) bool {
	md, ok := picking.Pick(r, s.surfaces)
	if !ok {
		return false
	}
	s.inspecting = true
	s.selected = md
	s.panel.Show(md)
	s.log.Info("inspecting", zap.String("title", md.Title), zap.String("image", md.ImageRef))
	return true
}

// CloseInspection hides the panel and gives control back to locomotion.
func (s *Session) CloseInspection() {
	if !s.inspecting {
		return
	}
	s.inspecting = false
	s.selected = picking.Metadata{}
	s.panel.Hide()
}

// Inspecting reports whether the content panel is open.
func (s *Session) Inspecting() bool {
	return s.inspecting
}

// Selected returns the inspected exhibit, if any.
func (s *Session) Selected() (picking.Metadata, bool) {
	return s.selected, s.inspecting
}

// Avatar returns the current avatar state.
func (s *Session) Avatar() locomotion.AvatarState {
	return s.avatar
}

// Placements returns the generated hall. Callers must not modify it.
func (s *Session) Placements() []layout.Placement {
	return s.placements
}

// Hall returns the layout parameters the session was built with.
func (s *Session) Hall() layout.Params {
	return s.opts.Hall
}

// Wraps is the net number of loops walked, positive going forward.
func (s *Session) Wraps() int {
	return s.wraps
}

// Row is the row index nearest the avatar.
func (s *Session) Row() int {
	return int(math32.Floor(-s.avatar.Position[2]/s.opts.Hall.RowSpacing + 0.5))
}

// Zoom is the inspection focus in [0, 1]; 1 means fully zoomed on the inspected piece.
func (s *Session) Zoom() float32 {
	return s.focus.value()
}

// Camera is the projection for the current frame, narrowed toward FocusFovY while inspecting.
func (s *Session) Camera() picking.Camera {
	fov := s.opts.FovY + (s.opts.FocusFovY-s.opts.FovY)*s.Zoom()
	return picking.Camera{
		Position: s.avatar.Position,
		Yaw:      s.avatar.Yaw,
		Pitch:    s.avatar.Pitch,
		FovY:     fov,
		Near:     s.opts.Near,
		Far:      s.opts.Far,
	}
}
