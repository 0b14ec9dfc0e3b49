package main

import (
	"gallery/internal/input"
	"gallery/internal/locomotion"
	"gallery/internal/session"

	"go.uber.org/zap"
)

// nopAdapter never engages; sessions built with it stay at the entrance.
type nopAdapter struct{}

func (nopAdapter) Sample() locomotion.InputState { return locomotion.InputState{} }
func (nopAdapter) Engaged() bool                 { return false }

// simulation walks a headless session with a held key and constant pointer motion.
type simulation struct {
	ticks    int
	backward bool
	turn     float64
	pick     bool
}

func (sim simulation) run(a *app) error {
	pl := input.NewPointerLock()
	s, err := session.New(a.catalog, a.sessionOptions(), pl, nil, a.log)
	if err != nil {
		return err
	}
	fps := a.cfg.Window.TargetFPS
	if fps <= 0 {
		fps = 60
	}
	dt := 1 / float32(fps)

	key := input.KeyForward
	if sim.backward {
		key = input.KeyBackward
	}
	pl.SetLocked(true)
	pl.KeyDown(key)
	for i := 0; i < sim.ticks; i++ {
		pl.PointerMove(float32(sim.turn), 0)
		s.Tick(dt)
	}
	pl.KeyUp(key)

	av := s.Avatar()
	fields := []zap.Field{
		zap.Int("ticks", sim.ticks),
		zap.Float32s("position", av.Position[:]),
		zap.Float32s("velocity", av.Velocity[:]),
		zap.Float32("yaw", av.Yaw),
		zap.Int("row", s.Row()),
		zap.Int("wraps", s.Wraps()),
	}
	if sim.pick {
		hit := s.Click()
		fields = append(fields, zap.Bool("hit", hit))
		if md, ok := s.Selected(); ok {
			fields = append(fields, zap.String("title", md.Title), zap.Int("popularity", md.Popularity))
		}
	}
	a.log.Info("simulation finished", fields...)
	return nil
}
