package debug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatStatus(t *testing.T) {
	s := Status{Position: [3]float32{0, 10, -612.5}, Yaw: 1.5, Row: 25, Wraps: 1, Locked: true}
	assert.Equal(t, "pos 0.0 10.0 -612.5  yaw 1.50\nrow 25  wraps 1  free", FormatStatus(s))

	s.Inspecting = true
	assert.Contains(t, FormatStatus(s), "inspecting")
	s.Inspecting, s.Locked = false, false
	assert.Contains(t, FormatStatus(s), "unlocked")
}

func TestToggle(t *testing.T) {
	d := New(nil)
	d.Toggle()
	assert.True(t, d.ShowFPS)
	assert.True(t, d.ShowLog)
	d.Toggle()
	assert.False(t, d.ShowStatus)
	assert.False(t, d.ShowMemAlloc)
}
