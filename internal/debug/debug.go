package debug

import (
	"fmt"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	fontSize   = 20
	padding    = 12
	lineHeight = fontSize + 4
	logSize    = 14
	logHeight  = logSize + 3
	// Text is refreshed every updateInterval frames to limit allocations.
	updateInterval = 30
)

// Status is the per-frame gallery state shown by the overlay.
type Status struct {
	Position   [3]float32
	Yaw        float32
	Row        int
	Wraps      int
	Locked     bool
	Inspecting bool
}

// LineSource supplies recent log lines, newest last.
type LineSource interface {
	Lines() []string
}

// Debug draws runtime overlays: FPS and memory top-right, avatar status top-left and recent log
// lines bottom-left. All overlays are off by default.
type Debug struct {
	ShowFPS      bool
	ShowMemAlloc bool
	ShowStatus   bool
	ShowLog      bool

	log          LineSource
	font         rl.Font
	frameCount   uint32
	fpsText      string
	memText      string
	statusText   string
	lastMemStats runtime.MemStats
}

// New returns a Debug system with all overlays hidden. log may be nil.
func New(log LineSource) *Debug {
	return &Debug{log: log}
}

// SetFont sets the overlay font. Zero texture ID = raylib default.
func (d *Debug) SetFont(font rl.Font) {
	d.font = font
}

// Toggle flips every overlay on or off together.
func (d *Debug) Toggle() {
	on := !(d.ShowFPS || d.ShowStatus || d.ShowLog)
	d.ShowFPS, d.ShowMemAlloc, d.ShowStatus, d.ShowLog = on, on, on, on
}

// FormatStatus renders s as the status overlay text.
func FormatStatus(s Status) string {
	mode := "free"
	switch {
	case s.Inspecting:
		mode = "inspecting"
	case !s.Locked:
		mode = "unlocked"
	}
	return fmt.Sprintf("pos %.1f %.1f %.1f  yaw %.2f\nrow %d  wraps %d  %s",
		s.Position[0], s.Position[1], s.Position[2], s.Yaw, s.Row, s.Wraps, mode)
}

func (d *Debug) text(s string, x, y, size int32, c rl.Color) {
	if d.font.Texture.ID != 0 {
		rl.DrawTextEx(d.font, s, rl.NewVector2(float32(x), float32(y)), float32(size), 1, c)
		return
	}
	rl.DrawText(s, x, y, size, c)
}

func (d *Debug) width(s string, size int32) int32 {
	if d.font.Texture.ID != 0 {
		return int32(rl.MeasureTextEx(d.font, s, float32(size), 1).X)
	}
	return rl.MeasureText(s, size)
}

// Draw renders the enabled overlays. Call last in the draw loop.
func (d *Debug) Draw(s Status) {
	d.frameCount++
	update := d.frameCount%updateInterval == 0
	if (d.ShowFPS && d.fpsText == "") || (d.ShowMemAlloc && d.memText == "") || (d.ShowStatus && d.statusText == "") {
		update = true
	}

	screenW := int32(rl.GetScreenWidth())
	y := int32(padding)
	if d.ShowFPS {
		if update {
			d.fpsText = fmt.Sprintf("FPS: %d", rl.GetFPS())
		}
		d.text(d.fpsText, screenW-d.width(d.fpsText, fontSize)-padding, y, fontSize, rl.Green)
		y += lineHeight
	}
	if d.ShowMemAlloc {
		if update {
			runtime.ReadMemStats(&d.lastMemStats)
			d.memText = fmt.Sprintf("Mem: %.2f MiB", float64(d.lastMemStats.Alloc)/(1024*1024))
		}
		d.text(d.memText, screenW-d.width(d.memText, fontSize)-padding, y, fontSize, rl.Green)
	}

	if d.ShowStatus {
		if update {
			d.statusText = FormatStatus(s)
		}
		d.text(d.statusText, padding, padding, fontSize, rl.Green)
	}

	if d.ShowLog && d.log != nil {
		lines := d.log.Lines()
		y := int32(rl.GetScreenHeight()) - padding - int32(len(lines))*logHeight
		for _, line := range lines {
			d.text(line, padding, y, logSize, rl.LightGray)
			y += logHeight
		}
	}
}
