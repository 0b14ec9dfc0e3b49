package layout

import (
	"errors"
	"fmt"
	"math"

	"gallery/internal/catalog"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

var (
	// ErrEmptyCatalog is returned when Generate is asked to fill slots from no exhibits.
	ErrEmptyCatalog = errors.New("layout: empty catalog")
	// ErrInvalidParams wraps every other configuration problem found by Params.Validate.
	ErrInvalidParams = errors.New("layout: invalid params")
)

// surfaceNamespace scopes the name-based UUIDs handed out as surface ids.
var surfaceNamespace = uuid.MustParse("5f0c7a52-3c61-4b1e-9d0e-6b7a8f9e2a10")

// Side is the wall an exhibit hangs on.
type Side int

const (
	Left Side = iota
	Right
	EndCap
)

func (s Side) String() string {
	switch s {
	case Left:
		return "left"
	case Right:
		return "right"
	case EndCap:
		return "end"
	default:
		return "unknown"
	}
}

// Wall yaws: left and right walls face into the hall, the end-cap faces the entry.
const (
	LeftYaw   float32 = math.Pi / 2
	RightYaw  float32 = -math.Pi / 2
	EndCapYaw float32 = 0
)

// Sizing derives a frame size from a catalog index. Width steps through three sizes; height
// keeps the image aspect when known, otherwise alternates between two sizes.
type Sizing struct {
	BaseWidth  float32 `yaml:"base_width" env:"BASE_WIDTH"`
	WidthStep  float32 `yaml:"width_step" env:"WIDTH_STEP"`
	BaseHeight float32 `yaml:"base_height" env:"BASE_HEIGHT"`
	HeightStep float32 `yaml:"height_step" env:"HEIGHT_STEP"`
}

// Size returns the frame width and height for catalog index idx.
func (s Sizing) Size(idx int, e catalog.Exhibit) (w, h float32) {
	w = s.BaseWidth + float32(idx%3)*s.WidthStep
	if a := e.Aspect(); a > 0 {
		return w, w * a
	}
	return w, s.BaseHeight + float32(idx%2)*s.HeightStep
}

// Params controls hall generation. TotalSlots is the number of logical exhibits in one loop
// (two per row); BufferRows extra rows are generated on both ends so wrapping never shows an
// empty wall. LeftX/RightX are the wall planes, HangHeight the Y of frame centres.
type Params struct {
	TotalSlots int
	BufferRows int
	RowSpacing float32
	LeftX      float32
	RightX     float32
	HangHeight float32
	Sizing     Sizing
	// Loop generates the endless corridor. When false the hall is a single bounded run of
	// rows with no buffer, closed by an end-cap exhibit when EndCap is set.
	Loop   bool
	EndCap bool
}

// DefaultParams returns the hall used by the bundled config: 50 slots, 25 units between rows.
func DefaultParams() Params {
	return Params{
		TotalSlots: 50,
		BufferRows: 3,
		RowSpacing: 25,
		LeftX:      -20,
		RightX:     20,
		HangHeight: 10,
		Sizing: Sizing{
			BaseWidth:  10,
			WidthStep:  2.5,
			BaseHeight: 10,
			HeightStep: 3,
		},
		Loop: true,
	}
}

// Validate reports the first problem with p, wrapped in ErrInvalidParams.
func (p Params) Validate() error {
	switch {
	case p.TotalSlots <= 0:
		return fmt.Errorf("%w: total slots %d must be positive", ErrInvalidParams, p.TotalSlots)
	case p.BufferRows < 0:
		return fmt.Errorf("%w: buffer rows %d must not be negative", ErrInvalidParams, p.BufferRows)
	case !(p.RowSpacing > 0):
		return fmt.Errorf("%w: row spacing %v must be positive", ErrInvalidParams, p.RowSpacing)
	case !(p.LeftX < p.RightX):
		return fmt.Errorf("%w: left wall x %v must be less than right wall x %v", ErrInvalidParams, p.LeftX, p.RightX)
	case !(p.Sizing.BaseWidth > 0):
		return fmt.Errorf("%w: base width %v must be positive", ErrInvalidParams, p.Sizing.BaseWidth)
	}
	return nil
}

// RowsPerLoop is the number of rows in one period of the corridor.
func (p Params) RowsPerLoop() int {
	return (p.TotalSlots + 1) / 2
}

// LoopDistance is the length of the traversal window. It is a whole number of rows so the
// wrap seam lands on a row boundary.
func (p Params) LoopDistance() float32 {
	return float32(p.RowsPerLoop()) * p.RowSpacing
}

// RowZ is the Z of row; rows advance toward -Z.
func (p Params) RowZ(row int) float32 {
	return -float32(row) * p.RowSpacing
}

// CatalogIndex maps any slot, negative included, into [0, n).
func CatalogIndex(slot, n int) int {
	return ((slot % n) + n) % n
}

// RowIndices returns the catalog indices shown on the left and right walls of row.
func RowIndices(row, rowsPerLoop, n int) (left, right int) {
	r := CatalogIndex(row, rowsPerLoop)
	return (r * 2) % n, (r*2 + 1) % n
}

// Placement is one exhibit hung in the hall. Placements are created by Generate and not
// modified afterwards.
type Placement struct {
	Exhibit      catalog.Exhibit
	CatalogIndex int
	Row          int
	Side         Side
	Position     mgl32.Vec3
	Yaw          float32
	Width        float32
	Height       float32
	SurfaceID    uuid.UUID
}

// SurfaceID returns the interactive surface id for the exhibit at row/side. Ids are
// name-based so the same hall produces the same ids on every run.
func SurfaceID(row int, side Side) uuid.UUID {
	return uuid.NewSHA1(surfaceNamespace, []byte(fmt.Sprintf("%d/%s", row, side)))
}

// Generate places exhibits from cat along both walls. It has no side effects; hanging the
// result in a scene is up to the caller.
func Generate(cat catalog.Catalog, p Params) ([]Placement, error) {
	n := cat.Len()
	if n == 0 {
		return nil, ErrEmptyCatalog
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	rowsPerLoop := p.RowsPerLoop()
	first, last := -p.BufferRows, rowsPerLoop+p.BufferRows
	if !p.Loop {
		first, last = 0, rowsPerLoop
	}

	out := make([]Placement, 0, 2*(last-first)+1)
	for row := first; row < last; row++ {
		li, ri := RowIndices(row, rowsPerLoop, n)
		z := p.RowZ(row)
		out = append(out,
			p.place(cat, li, row, Left, mgl32.Vec3{p.LeftX, p.HangHeight, z}, LeftYaw),
			p.place(cat, ri, row, Right, mgl32.Vec3{p.RightX, p.HangHeight, z}, RightYaw),
		)
	}
	if !p.Loop && p.EndCap {
		// Half a row past the last pair, centred between the walls.
		z := p.RowZ(last) + p.RowSpacing/2
		x := (p.LeftX + p.RightX) / 2
		idx := CatalogIndex(2*rowsPerLoop, n)
		out = append(out, p.place(cat, idx, last, EndCap, mgl32.Vec3{x, p.HangHeight, z}, EndCapYaw))
	}
	return out, nil
}

func (p Params) place(cat catalog.Catalog, idx, row int, side Side, pos mgl32.Vec3, yaw float32) Placement {
	e := cat.At(idx)
	w, h := p.Sizing.Size(idx, e)
	return Placement{
		Exhibit:      e,
		CatalogIndex: idx,
		Row:          row,
		Side:         side,
		Position:     pos,
		Yaw:          yaw,
		Width:        w,
		Height:       h,
		SurfaceID:    SurfaceID(row, side),
	}
}
