package fonts

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Exts are the font file extensions ScanDir picks up.
var Exts = []string{".ttf", ".otf"}

// BaseDirs are searched in order by FindFont, relative to the working directory.
var BaseDirs = []string{"assets/fonts", "../../assets/fonts"}

// ScanDir returns relative paths of all font files under dir (e.g. "Noto/NotoSansJP-Regular.ttf").
// Paths use forward slashes. A missing dir yields no paths and no error.
func ScanDir(dir string) ([]string, error) {
	var out []string
	dir = filepath.Clean(dir)
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if info.IsDir() || !isFont(path) {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		out = append(out, filepath.ToSlash(rel))
		return nil
	})
	return out, err
}

func isFont(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Exts {
		if ext == e {
			return true
		}
	}
	return false
}

// normalizeForMatch lowercases and removes spaces, dashes and underscores.
func normalizeForMatch(s string) string {
	s = strings.ToLower(s)
	return strings.NewReplacer(" ", "", "-", "", "_", "").Replace(s)
}

// FindFont resolves search to a font file. search may be an existing path, a family name
// ("Noto Sans JP") or part of a file name ("NotoSansJP-Regular"); names are matched loosely
// under dirs. When several files match, one with "regular" in its path wins.
func FindFont(search string, dirs ...string) (string, error) {
	if isFont(search) {
		if _, err := os.Stat(search); err == nil {
			return search, nil
		}
	}
	norm := normalizeForMatch(strings.TrimSuffix(search, filepath.Ext(search)))
	if norm == "" {
		return "", os.ErrNotExist
	}
	if len(dirs) == 0 {
		dirs = BaseDirs
	}
	var matches []string
	for _, base := range dirs {
		list, err := ScanDir(base)
		if err != nil {
			continue
		}
		for _, rel := range list {
			if strings.Contains(normalizeForMatch(rel), norm) {
				matches = append(matches, filepath.Join(base, filepath.FromSlash(rel)))
			}
		}
	}
	if len(matches) == 0 {
		return "", os.ErrNotExist
	}
	for _, m := range matches {
		if strings.Contains(strings.ToLower(m), "regular") {
			return m, nil
		}
	}
	return matches[0], nil
}

// Codepoints returns the sorted set of runes needed to draw texts, always including printable
// ASCII. Fonts are rasterized for exactly these glyphs.
func Codepoints(texts ...string) []rune {
	set := make(map[rune]struct{}, 128)
	for r := rune(32); r < 127; r++ {
		set[r] = struct{}{}
	}
	for _, t := range texts {
		for _, r := range t {
			if r >= 32 {
				set[r] = struct{}{}
			}
		}
	}
	out := make([]rune, 0, len(set))
	for r := range set {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
