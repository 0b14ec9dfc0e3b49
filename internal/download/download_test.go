package download

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsRemote(t *testing.T) {
	assert.True(t, IsRemote("https://example.com/a.jpg"))
	assert.True(t, IsRemote("http://example.com/a.jpg"))
	assert.False(t, IsRemote("assets/images/a.jpg"))
	assert.False(t, IsRemote("/tmp/https://x"))
}

func TestCachePath(t *testing.T) {
	a := CachePath("https://example.com/art/Night Walk.JPG?size=large", "cache")
	assert.Equal(t, "cache", filepath.Dir(a))
	assert.True(t, strings.HasPrefix(filepath.Base(a), "Night_Walk-"), a)
	assert.True(t, strings.HasSuffix(a, ".jpg"), a)
	assert.Equal(t, a, CachePath("https://example.com/art/Night Walk.JPG?size=large", "cache"))
	assert.NotEqual(t, a, CachePath("https://example.com/art/Night Walk.JPG?size=small", "cache"))
	assert.Equal(t, "image", sanitizeFilename(""))
}

func TestFetch(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Path == "/missing.png" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("pixels"))
	}))
	defer srv.Close()
	dir := t.TempDir()

	path, err := Fetch(context.Background(), srv.URL+"/work.png", dir)
	require.NoError(t, err)
	body, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "pixels", string(body))

	again, err := Fetch(context.Background(), srv.URL+"/work.png", dir)
	require.NoError(t, err)
	assert.Equal(t, path, again)
	assert.Equal(t, int32(1), hits.Load())

	_, err = Fetch(context.Background(), srv.URL+"/missing.png", dir)
	assert.ErrorIs(t, err, ErrStatus)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFetchCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Fetch(ctx, "http://127.0.0.1:1/a.png", t.TempDir())
	assert.ErrorIs(t, err, context.Canceled)
}
