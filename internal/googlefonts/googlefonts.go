package googlefonts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrNotFound is returned when no folder for a family exists, or it has no font files.
var ErrNotFound = errors.New("google fonts: family not found")

const (
	apiBase   = "https://api.github.com/repos/google/fonts/contents/ofl"
	rawPrefix = "https://raw.githubusercontent.com/google/fonts/"
)

type githubFile struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	DownloadURL string `json:"download_url"`
}

// Client looks up font files in the google/fonts repository. Only download URLs under
// RawPrefix are returned.
type Client struct {
	APIBase   string
	RawPrefix string
	HTTP      *http.Client
}

// New returns a client for the public google/fonts repository.
func New() *Client {
	return &Client{APIBase: apiBase, RawPrefix: rawPrefix, HTTP: &http.Client{Timeout: 15 * time.Second}}
}

// NormalizeFamily converts a display name to candidate folder names in google/fonts ofl:
// "Noto Sans JP" -> ["notosansjp", "noto-sans-jp"].
func NormalizeFamily(name string) []string {
	lower := strings.ToLower(strings.TrimSpace(name))
	if lower == "" {
		return nil
	}
	noSpaces := strings.ReplaceAll(lower, " ", "")
	out := []string{noSpaces}
	if hyphens := strings.ReplaceAll(lower, " ", "-"); hyphens != noSpaces {
		out = append(out, hyphens)
	}
	return out
}

// folderURL lists one ofl folder. Upright faces win over italics.
func (c *Client) folderURL(ctx context.Context, folder string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.APIBase+"/"+url.PathEscape(folder), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("google fonts: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return "", fmt.Errorf("%w: %s", ErrNotFound, folder)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("google fonts: HTTP %d", resp.StatusCode)
	}
	var files []githubFile
	if err := json.NewDecoder(resp.Body).Decode(&files); err != nil {
		return "", fmt.Errorf("google fonts: %w", err)
	}
	var italic string
	for _, f := range files {
		lower := strings.ToLower(f.Name)
		if f.Type != "file" || !strings.HasPrefix(f.DownloadURL, c.RawPrefix) {
			continue
		}
		if !strings.HasSuffix(lower, ".ttf") && !strings.HasSuffix(lower, ".otf") {
			continue
		}
		if strings.Contains(lower, "italic") {
			if italic == "" {
				italic = f.DownloadURL
			}
			continue
		}
		return f.DownloadURL, nil
	}
	if italic != "" {
		return italic, nil
	}
	return "", fmt.Errorf("%w: %s has no .ttf/.otf", ErrNotFound, folder)
}

// Resolve returns the download URL of a font file for family, trying each NormalizeFamily
// candidate in turn.
func (c *Client) Resolve(ctx context.Context, family string) (string, error) {
	candidates := NormalizeFamily(family)
	if len(candidates) == 0 {
		return "", fmt.Errorf("%w: empty family name", ErrNotFound)
	}
	var lastErr error
	for _, folder := range candidates {
		u, err := c.folderURL(ctx, folder)
		if err == nil {
			return u, nil
		}
		lastErr = err
	}
	return "", lastErr
}
