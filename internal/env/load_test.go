package env

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(`# local overrides
GALLERY_LOG_LEVEL=debug
export GALLERY_WINDOW_TITLE="Night Hall"
GALLERY_HALL_LOOP='false'
GALLERY_INPUT_MODE=touch
OTHER_KEY=ignored
`), 0644))
	t.Setenv("GALLERY_INPUT_MODE", "desktop")
	t.Setenv("GALLERY_LOG_LEVEL", "")
	os.Unsetenv("GALLERY_LOG_LEVEL")
	t.Setenv("GALLERY_WINDOW_TITLE", "")
	os.Unsetenv("GALLERY_WINDOW_TITLE")
	t.Setenv("GALLERY_HALL_LOOP", "")
	os.Unsetenv("GALLERY_HALL_LOOP")
	t.Setenv("OTHER_KEY", "")
	os.Unsetenv("OTHER_KEY")

	n, err := Load(path, "GALLERY_")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, "debug", os.Getenv("GALLERY_LOG_LEVEL"))
	assert.Equal(t, "Night Hall", os.Getenv("GALLERY_WINDOW_TITLE"))
	assert.Equal(t, "false", os.Getenv("GALLERY_HALL_LOOP"))
	assert.Equal(t, "desktop", os.Getenv("GALLERY_INPUT_MODE"))
	_, ok := os.LookupEnv("OTHER_KEY")
	assert.False(t, ok)
}

func TestLoadMissing(t *testing.T) {
	n, err := Load(filepath.Join(t.TempDir(), ".env"), "GALLERY_")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("GALLERY_OK=1\nnot a pair\n"), 0644))
	t.Setenv("GALLERY_OK", "")
	os.Unsetenv("GALLERY_OK")
	_, err := Load(path, "GALLERY_")
	assert.ErrorContains(t, err, ".env:2")
}
