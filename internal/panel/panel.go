package panel

import (
	"fmt"
	"strings"

	"gallery/internal/picking"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	width         = 360
	padding       = 16
	titleSize     = 28
	bodySize      = 20
	lineGap       = 6
	closeHintSize = 16
)

// CloseHint is drawn at the bottom of the panel.
const CloseHint = "Esc or click to close"

// Panel is the detail view for the exhibit under inspection, drawn on the right edge of the
// screen. Show and Hide are called by the session; Draw by the render loop.
type Panel struct {
	visible bool
	meta    picking.Metadata
	lines   []string // wrapped description, rebuilt on Show
	font    rl.Font  // zero texture = raylib default font
	measure func(text string, size int32) int32
}

// New returns a hidden panel.
func New() *Panel {
	p := &Panel{}
	p.measure = p.measureText
	return p
}

// SetFont sets the font used for all panel text.
func (p *Panel) SetFont(font rl.Font) {
	p.font = font
}

// Show fills the panel from m and makes it visible.
func (p *Panel) Show(m picking.Metadata) {
	p.meta = m
	p.lines = wrap(m.Description, width-2*padding, bodySize, p.measure)
	p.visible = true
}

// Hide hides the panel. The last metadata is kept until the next Show.
func (p *Panel) Hide() {
	p.visible = false
}

func (p *Panel) measureText(text string, size int32) int32 {
	if p.font.Texture.ID != 0 {
		return int32(rl.MeasureTextEx(p.font, text, float32(size), 1).X)
	}
	return rl.MeasureText(text, size)
}

func (p *Panel) text(s string, x, y, size int32, c rl.Color) {
	if p.font.Texture.ID != 0 {
		rl.DrawTextEx(p.font, s, rl.NewVector2(float32(x), float32(y)), float32(size), 1, c)
		return
	}
	rl.DrawText(s, x, y, size, c)
}

// Draw renders the panel when visible. Call after the 3D scene.
func (p *Panel) Draw() {
	if !p.visible {
		return
	}
	screenW := int32(rl.GetScreenWidth())
	screenH := int32(rl.GetScreenHeight())
	x := screenW - width
	rl.DrawRectangle(x, 0, width, screenH, rl.NewColor(16, 16, 20, 220))
	rl.DrawLine(x, 0, x, screenH, rl.Gray)

	x += padding
	y := int32(padding)
	p.text(p.meta.Title, x, y, titleSize, rl.RayWhite)
	y += titleSize + lineGap
	if p.meta.Subtitle != "" {
		p.text(p.meta.Subtitle, x, y, bodySize, rl.LightGray)
		y += bodySize + lineGap
	}
	p.text(fmt.Sprintf("%d views", p.meta.Popularity), x, y, bodySize, rl.Gold)
	y += bodySize + 2*lineGap
	for _, line := range p.lines {
		p.text(line, x, y, bodySize, rl.RayWhite)
		y += bodySize + lineGap
	}
	p.text(CloseHint, x, screenH-padding-closeHintSize, closeHintSize, rl.Gray)
}

// wrap breaks text into lines no wider than maxWidth. Lines break at spaces; a run wider than
// a whole line (CJK text has no spaces) is broken between runes. Explicit newlines start a new
// paragraph.
func wrap(text string, maxWidth, size int32, measure func(string, int32) int32) []string {
	var out []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			if para != "" || len(out) > 0 {
				out = append(out, "")
			}
			continue
		}
		line := ""
		add := func(piece, sep string) {
			switch {
			case line == "":
				line = piece
			case measure(line+sep+piece, size) > maxWidth:
				out = append(out, line)
				line = piece
			default:
				line += sep + piece
			}
		}
		for _, w := range words {
			pieces := breakRunes(w, maxWidth, size, measure)
			add(pieces[0], " ")
			for _, piece := range pieces[1:] {
				add(piece, "")
			}
		}
		out = append(out, line)
	}
	return out
}

// breakRunes splits word into the longest rune runs that fit maxWidth. A single rune wider than
// maxWidth is kept whole.
func breakRunes(word string, maxWidth, size int32, measure func(string, int32) int32) []string {
	if measure(word, size) <= maxWidth {
		return []string{word}
	}
	var out []string
	cur := ""
	for _, r := range word {
		if cur != "" && measure(cur+string(r), size) > maxWidth {
			out = append(out, cur)
			cur = ""
		}
		cur += string(r)
	}
	return append(out, cur)
}
