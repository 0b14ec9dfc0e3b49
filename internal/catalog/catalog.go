package catalog

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrEmpty is returned when a catalog file parses but lists no exhibits.
var ErrEmpty = errors.New("catalog: no exhibits")

// Exhibit describes one artwork. Width/Height are the intrinsic size of the image in pixels
// (0 when unknown); layout only uses them for the aspect ratio.
type Exhibit struct {
	ImageRef    string  `yaml:"image"`
	Width       float32 `yaml:"width,omitempty"`
	Height      float32 `yaml:"height,omitempty"`
	Title       string  `yaml:"title"`
	Subtitle    string  `yaml:"subtitle,omitempty"`
	Description string  `yaml:"description,omitempty"`
}

// Aspect returns height/width, or 0 when the intrinsic size is unknown.
func (e Exhibit) Aspect() float32 {
	if e.Width <= 0 || e.Height <= 0 {
		return 0
	}
	return e.Height / e.Width
}

// Catalog is the ordered list of distinct exhibits. Order matters: layout maps slots to
// entries cyclically by index.
type Catalog struct {
	Exhibits []Exhibit `yaml:"exhibits"`
}

// New returns a catalog over a copy of exhibits.
func New(exhibits []Exhibit) Catalog {
	out := make([]Exhibit, len(exhibits))
	copy(out, exhibits)
	return Catalog{Exhibits: out}
}

// Len returns the number of exhibits.
func (c Catalog) Len() int {
	return len(c.Exhibits)
}

// At returns the exhibit at index i. i must be in [0, Len()).
func (c Catalog) At(i int) Exhibit {
	return c.Exhibits[i]
}

// Load reads a YAML catalog (top-level "exhibits:" list).
func Load(path string) (Catalog, error) {
	var c Catalog
	raw, err := os.ReadFile(path)
	if err != nil {
		return c, err
	}
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return c, fmt.Errorf("%s: %w", path, err)
	}
	if c.Len() == 0 {
		return c, fmt.Errorf("%s: %w", path, ErrEmpty)
	}
	for i, e := range c.Exhibits {
		if e.ImageRef == "" {
			return c, fmt.Errorf("%s: exhibit %d: missing image", path, i)
		}
	}
	return c, nil
}

// Sample returns a built-in catalog of twelve placeholder pieces, used when no catalog file is
// configured.
func Sample() Catalog {
	ex := make([]Exhibit, 0, 12)
	for i := 1; i <= 12; i++ {
		ex = append(ex, Exhibit{
			ImageRef:    fmt.Sprintf("assets/images/gallery/work-%02d.jpg", i),
			Title:       fmt.Sprintf("作品 No.%d", i),
			Subtitle:    fmt.Sprintf("20%02d", 10+i),
			Description: "Oil on canvas.",
		})
	}
	return New(ex)
}
