package fonts

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Load rasterizes the font found for search at size pixels with the given codepoints. Call
// after the window exists. The returned font must be released with rl.UnloadFont.
func Load(search string, size int32, codepoints []rune) (rl.Font, error) {
	path, err := FindFont(search)
	if err != nil {
		return rl.Font{}, fmt.Errorf("font %q: %w", search, err)
	}
	f := rl.LoadFontEx(path, size, codepoints)
	if f.Texture.ID == 0 {
		return rl.Font{}, fmt.Errorf("font %q: could not load %s", search, path)
	}
	rl.SetTextureFilter(f.Texture, rl.FilterBilinear)
	return f, nil
}
