package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

const userAgent = "gallery/1.0"

// ErrStatus is wrapped by Fetch for any non-200 response.
var ErrStatus = errors.New("download: unexpected status")

// cacheNamespace scopes the name-based ids used as cache file names.
var cacheNamespace = uuid.MustParse("0b3f6f64-8f5e-4f3a-a3f2-5d1c2b9e7a41")

var client = &http.Client{Timeout: 60 * time.Second}

// IsRemote reports whether ref is an http(s) URL rather than a local path.
func IsRemote(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

// CachePath is where Fetch stores url under dir. The name is stable for a given url so a
// second run reuses the file.
func CachePath(url, dir string) string {
	ext := extensionFromURL(url)
	return filepath.Join(dir, sanitizeFilename(filenameFromURL(url))+"-"+uuid.NewSHA1(cacheNamespace, []byte(url)).String()[:8]+ext)
}

// Fetch downloads url into dir and returns the saved path. A file already cached for url is
// returned without a request. Partial downloads are removed.
func Fetch(ctx context.Context, url, dir string) (string, error) {
	path := CachePath(url, dir)
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: HTTP %d", ErrStatus, resp.StatusCode)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".fetch-*")
	if err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	_, err = io.Copy(tmp, resp.Body)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Rename(tmp.Name(), path)
	}
	if err != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("download: %w", err)
	}
	return path, nil
}

func extensionFromURL(url string) string {
	path := url
	if idx := strings.IndexAny(path, "?#"); idx >= 0 {
		path = path[:idx]
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png", ".jpg", ".jpeg", ".gif", ".webp", ".bmp", ".ttf", ".otf":
		return ext
	}
	return ""
}

func filenameFromURL(url string) string {
	path := url
	if idx := strings.IndexAny(path, "?#"); idx >= 0 {
		path = path[:idx]
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

var safeNameRe = regexp.MustCompile(`[^a-zA-Z0-9_.-]+`)

func sanitizeFilename(name string) string {
	name = safeNameRe.ReplaceAllString(name, "_")
	if name == "" || name == "." || name == "_" {
		return "image"
	}
	if len(name) > 64 {
		name = name[:64]
	}
	return name
}
