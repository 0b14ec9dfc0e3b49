package main

import (
	"gallery/internal/assets"
	"gallery/internal/controls"
	"gallery/internal/debug"
	"gallery/internal/fonts"
	"gallery/internal/graphics"
	"gallery/internal/panel"
	"gallery/internal/scene"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"
)

// fontSize is the rasterization size; text is drawn scaled from it.
const fontSize = 32

// catalogText is every string the panel can show, for glyph selection.
func (a *app) catalogText() []string {
	out := make([]string, 0, 3*a.catalog.Len()+1)
	out = append(out, panel.CloseHint)
	for _, e := range a.catalog.Exhibits {
		out = append(out, e.Title, e.Subtitle, e.Description)
	}
	return out
}

// runWindow opens the window and walks the hall until it is closed. F3 toggles the overlays.
func runWindow(a *app) error {
	pnl := panel.New()
	sess, adapter, err := a.newSession(pnl)
	if err != nil {
		return err
	}
	loader := assets.NewLoader(a.log, assets.Options{
		MaxSize:  a.cfg.Assets.MaxTextureSize,
		Workers:  a.cfg.Assets.Workers,
		CacheDir: a.cfg.Assets.CacheDir,
	})
	defer loader.Close()

	scn := scene.New(a.cfg, sess.Hall(), sess.Placements(), loader, a.log)
	ctl := controls.New(adapter, sess)
	hud := debug.New(a.recorder)
	hud.ShowFPS = a.cfg.ShowFPS

	status := func() debug.Status {
		av := sess.Avatar()
		return debug.Status{
			Position:   av.Position,
			Yaw:        av.Yaw,
			Row:        sess.Row(),
			Wraps:      sess.Wraps(),
			Locked:     av.Locked,
			Inspecting: sess.Inspecting(),
		}
	}

	var font rl.Font
	graphics.Run(a.cfg.Window, graphics.Hooks{
		Init: func() {
			if a.cfg.Font == "" {
				return
			}
			f, err := fonts.Load(a.cfg.Font, fontSize, fonts.Codepoints(a.catalogText()...))
			if err != nil {
				a.log.Warn("font not loaded, using built-in font", zap.Error(err))
				return
			}
			font = f
			pnl.SetFont(font)
			hud.SetFont(font)
		},
		Background: scn.Background,
		Update: func(dt float32) {
			if rl.IsKeyPressed(rl.KeyF3) {
				hud.Toggle()
			}
			controls.SetCursor(ctl.Apply(controls.Read()))
			sess.Tick(dt)
			scn.SetView(sess.Camera())
		},
		Draw: func() {
			scn.Draw()
			pnl.Draw()
			hud.Draw(status())
		},
		Unload: func() {
			scn.Unload()
			if font.Texture.ID != 0 {
				rl.UnloadFont(font)
			}
		},
	})
	a.log.Info("window closed", zap.Int("wraps", sess.Wraps()), zap.Int("row", sess.Row()))
	return nil
}
