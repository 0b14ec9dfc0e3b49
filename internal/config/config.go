package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gallery/internal/input"
	"gallery/internal/layout"
	"gallery/internal/locomotion"
	"gallery/internal/logger"

	"github.com/caarlos0/env/v11"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// Path is the gallery config file, relative to the process working directory.
const Path = "config/gallery.yaml"

// EnvPrefix is prepended to every environment override, e.g. GALLERY_HALL_TOTAL_SLOTS.
const EnvPrefix = "GALLERY_"

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Config is everything the gallery can be tuned with. Decoration (palette) is plain data the
// scene reads; nothing in the core depends on it.
type Config struct {
	// CatalogPath is a YAML exhibit list; empty uses the built-in sample catalog.
	CatalogPath string `yaml:"catalog" env:"CATALOG"`
	InputMode   string `yaml:"input_mode" env:"INPUT_MODE"`
	LogLevel    string `yaml:"log_level" env:"LOG_LEVEL"`
	LogFile     string `yaml:"log_file" env:"LOG_FILE"`
	ShowFPS     bool   `yaml:"show_fps" env:"SHOW_FPS"`
	// Font is a font file or family name under assets/fonts; empty uses raylib's built-in font,
	// which has no glyphs outside ASCII.
	Font string `yaml:"font" env:"FONT"`

	Hall     Hall              `yaml:"hall" envPrefix:"HALL_"`
	Movement locomotion.Config `yaml:"movement" envPrefix:"MOVE_"`
	Camera   Camera            `yaml:"camera" envPrefix:"CAMERA_"`
	Window   Window            `yaml:"window" envPrefix:"WINDOW_"`
	Assets   Assets            `yaml:"assets" envPrefix:"ASSETS_"`
	Palette  Palette           `yaml:"palette" envPrefix:"PALETTE_"`
}

// Hall is the corridor geometry.
type Hall struct {
	TotalSlots int           `yaml:"total_slots" env:"TOTAL_SLOTS"`
	BufferRows int           `yaml:"buffer_rows" env:"BUFFER_ROWS"`
	RowSpacing float32       `yaml:"row_spacing" env:"ROW_SPACING"`
	Width      float32       `yaml:"width" env:"WIDTH"`
	Height     float32       `yaml:"height" env:"HEIGHT"`
	HangHeight float32       `yaml:"hang_height" env:"HANG_HEIGHT"`
	Loop       bool          `yaml:"loop" env:"LOOP"`
	EndCap     bool          `yaml:"end_cap" env:"END_CAP"`
	Sizing     layout.Sizing `yaml:"sizing" envPrefix:"SIZING_"`
}

// Params converts the hall to layout parameters; walls sit at ±Width/2.
func (h Hall) Params() layout.Params {
	return layout.Params{
		TotalSlots: h.TotalSlots,
		BufferRows: h.BufferRows,
		RowSpacing: h.RowSpacing,
		LeftX:      -h.Width / 2,
		RightX:     h.Width / 2,
		HangHeight: h.HangHeight,
		Sizing:     h.Sizing,
		Loop:       h.Loop,
		EndCap:     h.EndCap,
	}
}

// Camera is the viewer's eye. FovY is in degrees.
type Camera struct {
	EyeHeight float32 `yaml:"eye_height" env:"EYE_HEIGHT"`
	FovY      float32 `yaml:"fov_y" env:"FOV_Y"`
	FocusFovY float32 `yaml:"focus_fov_y" env:"FOCUS_FOV_Y"`
	Near      float32 `yaml:"near" env:"NEAR"`
	Far       float32 `yaml:"far" env:"FAR"`
}

// Window is the raylib window.
type Window struct {
	Width      int    `yaml:"width" env:"WIDTH"`
	Height     int    `yaml:"height" env:"HEIGHT"`
	Title      string `yaml:"title" env:"TITLE"`
	Fullscreen bool   `yaml:"fullscreen" env:"FULLSCREEN"`
	TargetFPS  int    `yaml:"target_fps" env:"TARGET_FPS"`
}

// Assets controls texture decoding. Remote images are cached under CacheDir.
type Assets struct {
	MaxTextureSize int    `yaml:"max_texture_size" env:"MAX_TEXTURE_SIZE"`
	Workers        int    `yaml:"workers" env:"WORKERS"`
	CacheDir       string `yaml:"cache_dir" env:"CACHE_DIR"`
}

// Palette holds hex colours (#rrggbb or #rrggbbaa) for hall decoration.
type Palette struct {
	Background  string `yaml:"background" env:"BACKGROUND"`
	Wall        string `yaml:"wall" env:"WALL"`
	Floor       string `yaml:"floor" env:"FLOOR"`
	Ceiling     string `yaml:"ceiling" env:"CEILING"`
	Frame       string `yaml:"frame" env:"FRAME"`
	Placeholder string `yaml:"placeholder" env:"PLACEHOLDER"`
}

// Default returns the stock gallery: a 40-wide endless hall, twelve-piece sample catalog.
func Default() Config {
	p := layout.DefaultParams()
	return Config{
		InputMode: string(input.ModeDesktop),
		LogLevel:  "info",
		LogFile:   logger.DefaultFile,
		Hall: Hall{
			TotalSlots: p.TotalSlots,
			BufferRows: p.BufferRows,
			RowSpacing: p.RowSpacing,
			Width:      p.RightX - p.LeftX,
			Height:     30,
			HangHeight: p.HangHeight,
			Loop:       p.Loop,
			Sizing:     p.Sizing,
		},
		Movement: locomotion.DefaultConfig(),
		Camera: Camera{
			EyeHeight: 10,
			FovY:      75,
			FocusFovY: 40,
			Near:      1,
			Far:       1000,
		},
		Window: Window{
			Width:     1280,
			Height:    720,
			Title:     "Gallery",
			TargetFPS: 60,
		},
		Assets: Assets{
			MaxTextureSize: 1024,
			Workers:        4,
			CacheDir:       "assets/cache",
		},
		Palette: Palette{
			Background:  "#ffffff",
			Wall:        "#f4f1ea",
			Floor:       "#cccccc",
			Ceiling:     "#fafafa",
			Frame:       "#333333",
			Placeholder: "#8a8a8a",
		},
	}
}

// Load reads path over Default(), then applies GALLERY_* environment overrides, then validates.
// A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("%s: %w", path, err)
		}
	case !errors.Is(err, os.ErrNotExist):
		return cfg, err
	}
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Save writes cfg as YAML, creating the directory if needed.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate reports every problem at once, wrapped in ErrInvalid.
func (c Config) Validate() error {
	var errs error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = multierr.Append(errs, fmt.Errorf(format, args...))
		}
	}
	if _, err := input.ParseMode(c.InputMode); err != nil {
		errs = multierr.Append(errs, err)
	}
	if err := c.Hall.Params().Validate(); err != nil {
		errs = multierr.Append(errs, err)
	}
	check(c.Hall.Height > 0, "hall height %v must be positive", c.Hall.Height)
	check(c.Hall.HangHeight > 0 && c.Hall.HangHeight < c.Hall.Height, "hang height %v must be inside the hall", c.Hall.HangHeight)

	m := c.Movement
	check(m.MaxSpeed > 0, "max speed %v must be positive", m.MaxSpeed)
	check(m.Damping >= 0, "damping %v must not be negative", m.Damping)
	check(m.FrameClamp > 0, "frame clamp %v must be positive", m.FrameClamp)
	check(m.TouchSpeedFactor >= 0, "touch speed factor %v must not be negative", m.TouchSpeedFactor)

	check(c.Camera.FovY > 0 && c.Camera.FovY < 180, "fov %v out of range", c.Camera.FovY)
	check(c.Camera.FocusFovY > 0 && c.Camera.FocusFovY <= c.Camera.FovY, "focus fov %v must be in (0, fov]", c.Camera.FocusFovY)
	check(c.Camera.Near > 0 && c.Camera.Near < c.Camera.Far, "near/far %v/%v invalid", c.Camera.Near, c.Camera.Far)
	check(c.Window.TargetFPS > 0, "target fps %d must be positive", c.Window.TargetFPS)
	check(c.Assets.Workers > 0, "asset workers %d must be positive", c.Assets.Workers)
	check(c.Assets.MaxTextureSize >= 0, "max texture size %d must not be negative", c.Assets.MaxTextureSize)

	for _, entry := range []struct{ name, hex string }{
		{"background", c.Palette.Background},
		{"wall", c.Palette.Wall},
		{"floor", c.Palette.Floor},
		{"ceiling", c.Palette.Ceiling},
		{"frame", c.Palette.Frame},
		{"placeholder", c.Palette.Placeholder},
	} {
		if _, err := ParseColor(entry.hex); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("palette %s: %w", entry.name, err))
		}
	}
	if errs != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, errs)
	}
	return nil
}

// ParseColor parses #rrggbb or #rrggbbaa into RGBA.
func ParseColor(s string) ([4]uint8, error) {
	var out [4]uint8
	h := strings.TrimPrefix(s, "#")
	if len(h) != 6 && len(h) != 8 {
		return out, fmt.Errorf("bad colour %q", s)
	}
	if len(h) == 6 {
		h += "ff"
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return out, fmt.Errorf("bad colour %q", s)
	}
	out[0], out[1], out[2], out[3] = uint8(v>>24), uint8(v>>16), uint8(v>>8), uint8(v)
	return out, nil
}
