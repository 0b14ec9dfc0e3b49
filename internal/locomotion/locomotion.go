package locomotion

import (
	"math"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// InputState is one frame of normalized input. Adapters overwrite it; the controller reads it
// once per tick. Direct marks touch input, which moves the avatar without momentum.
type InputState struct {
	Forward  bool
	Backward bool
	Left     bool
	Right    bool

	PointerDeltaYaw   float32
	PointerDeltaPitch float32

	Direct bool
}

// AvatarState is the first-person viewer. Velocity is in the avatar's local frame: +X is right,
// -Z is forward, Y unused.
type AvatarState struct {
	Position mgl32.Vec3
	Velocity mgl32.Vec3
	Yaw      float32
	Pitch    float32
	Locked   bool
}

// Config holds the movement tunables.
type Config struct {
	MaxSpeed         float32 `yaml:"max_speed" env:"MAX_SPEED"`
	Damping          float32 `yaml:"damping" env:"DAMPING"`
	FrameClamp       float32 `yaml:"frame_clamp" env:"FRAME_CLAMP"`
	LookSensitivity  float32 `yaml:"look_sensitivity" env:"LOOK_SENSITIVITY"`
	TouchSensitivity float32 `yaml:"touch_sensitivity" env:"TOUCH_SENSITIVITY"`
	TouchSpeedFactor float32 `yaml:"touch_speed_factor" env:"TOUCH_SPEED_FACTOR"`
	PitchLimit       float32 `yaml:"pitch_limit" env:"PITCH_LIMIT"`
}

// DefaultConfig matches the desktop feel of the gallery: 400 units/s² of thrust against a
// damping of 10 settles at 40 units/s.
func DefaultConfig() Config {
	return Config{
		MaxSpeed:         400,
		Damping:          10,
		FrameClamp:       0.1,
		LookSensitivity:  0.002,
		TouchSensitivity: 0.005,
		TouchSpeedFactor: 0.1,
		PitchLimit:       math32.Pi/2 - 0.001,
	}
}

// Controller integrates avatar motion. It holds no per-frame state; Step is a pure function of
// its arguments.
type Controller struct {
	cfg Config
}

// New returns a controller using cfg.
func New(cfg Config) *Controller {
	return &Controller{cfg: cfg}
}

// ClampDelta limits a frame time to [0, FrameClamp] so a long frame (backgrounded window, GC
// pause) cannot produce a jump.
func (c *Controller) ClampDelta(dt float32) float32 {
	if !(dt > 0) {
		return 0
	}
	if c.cfg.FrameClamp > 0 && dt > c.cfg.FrameClamp {
		return c.cfg.FrameClamp
	}
	return dt
}

// Step advances s by one frame of input in.
func (c *Controller) Step(in InputState, dt float32, s AvatarState) AvatarState {
	dt = c.ClampDelta(dt)
	s = c.look(in, s)
	if in.Direct {
		return c.direct(in, dt, s)
	}
	return c.damped(in, dt, s)
}

func (c *Controller) look(in InputState, s AvatarState) AvatarState {
	sens := c.cfg.LookSensitivity
	if in.Direct {
		sens = c.cfg.TouchSensitivity
	}
	s.Yaw = normalizeAngle(s.Yaw - in.PointerDeltaYaw*sens)
	if in.Direct {
		return s
	}
	s.Pitch -= in.PointerDeltaPitch * sens
	if lim := c.cfg.PitchLimit; lim > 0 {
		s.Pitch = mgl32.Clamp(s.Pitch, -lim, lim)
	}
	return s
}

func (c *Controller) damped(in InputState, dt float32, s AvatarState) AvatarState {
	// Capped at 1 so a large damping*dt stops the avatar instead of reversing it.
	k := c.cfg.Damping * dt
	if k > 1 {
		k = 1
	}
	v := s.Velocity
	v[0] -= v[0] * k
	v[2] -= v[2] * k

	dir := mgl32.Vec3{axis(in.Right, in.Left), 0, axis(in.Backward, in.Forward)}
	if l := dir.Len(); l > 0 {
		dir = dir.Mul(1 / l)
	}
	if in.Forward || in.Backward {
		v[2] += dir[2] * c.cfg.MaxSpeed * dt
	}
	if in.Left || in.Right {
		v[0] += dir[0] * c.cfg.MaxSpeed * dt
	}
	s.Velocity = v

	move := RightVector(s.Yaw).Mul(v[0] * dt).Add(FlatForward(s.Yaw).Mul(-v[2] * dt))
	s.Position = s.Position.Add(move)
	return s
}

func (c *Controller) direct(in InputState, dt float32, s AvatarState) AvatarState {
	s.Velocity = mgl32.Vec3{}
	d := -axis(in.Backward, in.Forward)
	if d == 0 {
		return s
	}
	step := d * c.cfg.MaxSpeed * dt * c.cfg.TouchSpeedFactor
	s.Position = s.Position.Add(FlatForward(s.Yaw).Mul(step))
	return s
}

// axis returns 1 when only pos is held, -1 when only neg is held, otherwise 0.
func axis(pos, neg bool) float32 {
	var v float32
	if pos {
		v++
	}
	if neg {
		v--
	}
	return v
}

// ViewDirection is the unit vector the camera looks along. Yaw 0 looks down -Z; positive yaw
// turns left.
func ViewDirection(yaw, pitch float32) mgl32.Vec3 {
	cp := math32.Cos(pitch)
	return mgl32.Vec3{-math32.Sin(yaw) * cp, math32.Sin(pitch), -math32.Cos(yaw) * cp}
}

// FlatForward is ViewDirection with the pitch removed.
func FlatForward(yaw float32) mgl32.Vec3 {
	return mgl32.Vec3{-math32.Sin(yaw), 0, -math32.Cos(yaw)}
}

// RightVector is the horizontal unit vector to the avatar's right.
func RightVector(yaw float32) mgl32.Vec3 {
	return mgl32.Vec3{math32.Cos(yaw), 0, -math32.Sin(yaw)}
}

func normalizeAngle(a float32) float32 {
	if a > math32.Pi || a < -math32.Pi {
		a = float32(math.Remainder(float64(a), 2*math.Pi))
	}
	return a
}
