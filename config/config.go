package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file read by cmd/demo when -config is not given.
const DefaultPath = "config/engine.yaml"

// Variant names accepted in Config.Variant.
const (
	VariantWalker = "walker" // orbit camera following a ground hero
	VariantFlyer  = "flyer"  // free-fly camera with a plane ahead of the viewer
)

// Layout styles accepted in LayoutConfig.Style.
const (
	StyleTiles = "tiles" // fixed height, fixed gray
	StyleCity  = "city"  // power-shaped random height, random colour
)

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
	VSync  bool   `yaml:"vsync"`
	// ClearColor is the background behind the ground plane.
	ClearColor [3]float32 `yaml:"clear_color"`
}

// WorldConfig ties the ground plane, the layout grid and the actor clamp
// together. The ground quad spans [-Size, Size] on X and Z.
type WorldConfig struct {
	Size float32 `yaml:"size"`
	// DisplayScale maps hero coordinates to world coordinates for the
	// orbit camera's look-at point.
	DisplayScale float32 `yaml:"display_scale"`
}

type LayoutConfig struct {
	Style           string     `yaml:"style"`
	Width           float32    `yaml:"width"`
	Length          float32    `yaml:"length"`
	Spacing         int        `yaml:"spacing"`
	Margin          float32    `yaml:"margin"`
	KeepProbability float64    `yaml:"keep_probability"`
	RequireOddCells bool       `yaml:"require_odd_cells"`
	TileHeight      float32    `yaml:"tile_height"`
	HeightScale     float32    `yaml:"height_scale"`
	HeightOffset    float32    `yaml:"height_offset"`
	TileColor       [3]float32 `yaml:"tile_color"`
	// Seed 0 draws a time-based seed.
	Seed int64 `yaml:"seed"`
}

type CameraConfig struct {
	Radius           float32 `yaml:"radius"`
	MinRadius        float32 `yaml:"min_radius"`
	Theta            float32 `yaml:"theta"`
	Phi              float32 `yaml:"phi"`
	MoveSpeed        float32 `yaml:"move_speed"`
	RotateSpeed      float32 `yaml:"rotate_speed"`
	MouseSensitivity float32 `yaml:"mouse_sensitivity"`
	FOV              float32 `yaml:"fov"`
	Near             float32 `yaml:"near"`
	Far              float32 `yaml:"far"`
}

type ActorConfig struct {
	Step           float32 `yaml:"step"`
	TurnStep       float32 `yaml:"turn_step"`
	HoverAmplitude float32 `yaml:"hover_amplitude"`
	// ModelPath optionally replaces the built-in actor geometry with a
	// .glb, .gltf or .obj mesh.
	ModelPath string `yaml:"model_path,omitempty"`
}

type LightConfig struct {
	Direction [3]float32 `yaml:"direction"`
	Color     [3]float32 `yaml:"color"`
}

// Config is the full demo configuration.
type Config struct {
	Window  WindowConfig `yaml:"window"`
	Variant string       `yaml:"variant"`
	World   WorldConfig  `yaml:"world"`
	Layout  LayoutConfig `yaml:"layout"`
	Camera  CameraConfig `yaml:"camera"`
	Actor   ActorConfig  `yaml:"actor"`
	Light   LightConfig  `yaml:"light"`
}

// Default returns the reference configuration: the walker variant over the
// gray tile grid.
func Default() Config {
	return Config{
		Window: WindowConfig{
			Width:  640,
			Height: 480,
			Title:  "A3: The Cabin In The Woods",
			VSync:  true,
		},
		Variant: VariantWalker,
		World: WorldConfig{
			Size:         55,
			DisplayScale: 0.1,
		},
		Layout: LayoutConfig{
			Style:           StyleTiles,
			Width:           100,
			Length:          100,
			Spacing:         1,
			Margin:          5,
			KeepProbability: 1,
			RequireOddCells: true,
			TileHeight:      0.3,
			HeightScale:     10,
			HeightOffset:    1,
			TileColor:       [3]float32{0.4, 0.4, 0.4},
		},
		Camera: CameraConfig{
			Radius:           25,
			MinRadius:        2,
			Theta:            -math.Pi / 7,
			Phi:              math.Pi / 1.2,
			MoveSpeed:        0.25,
			RotateSpeed:      0.02,
			MouseSensitivity: 0.005,
			FOV:              math.Pi / 4,
			Near:             0.001,
			Far:              1000,
		},
		Actor: ActorConfig{
			Step:           1,
			TurnStep:       0.05,
			HoverAmplitude: 0.1,
		},
		Light: LightConfig{
			Direction: [3]float32{-1, -1, -1},
			Color:     [3]float32{1, 1, 1},
		},
	}
}

// ApplyStyle switches the layout to the given style, resetting the
// style-dependent keep probability.
func (c *Config) ApplyStyle(style string) {
	c.Layout.Style = style
	switch style {
	case StyleCity:
		c.Layout.KeepProbability = 0.6
	case StyleTiles:
		c.Layout.KeepProbability = 1
	}
}

// ActorBound is the per-axis clamp applied to the walker's hero position.
// Scaled by DisplayScale it lands exactly on the ground plane's edge.
func (c Config) ActorBound() float32 {
	return c.World.Size / c.World.DisplayScale
}

// GridExtent returns the half extents of the layout domain on X and Z.
func (c Config) GridExtent() (float32, float32) {
	return c.Layout.Width/2 + c.Layout.Margin, c.Layout.Length/2 + c.Layout.Margin
}

// Validate reports inconsistent settings.
func (c Config) Validate() error {
	var errs []error

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	switch c.Variant {
	case VariantWalker, VariantFlyer:
	default:
		errs = append(errs, fmt.Errorf("unknown variant %q", c.Variant))
	}
	if c.World.Size <= 0 {
		errs = append(errs, fmt.Errorf("world size %v must be positive", c.World.Size))
	}
	if c.World.DisplayScale <= 0 {
		errs = append(errs, fmt.Errorf("display scale %v must be positive", c.World.DisplayScale))
	}

	switch c.Layout.Style {
	case StyleTiles, StyleCity:
	default:
		errs = append(errs, fmt.Errorf("unknown layout style %q", c.Layout.Style))
	}
	if c.Layout.Spacing <= 0 {
		errs = append(errs, fmt.Errorf("layout spacing %d must be positive", c.Layout.Spacing))
	}
	if c.Layout.Width < 0 || c.Layout.Length < 0 || c.Layout.Margin < 0 {
		errs = append(errs, errors.New("layout width, length and margin must not be negative"))
	}
	if ex, ez := c.GridExtent(); ex > c.World.Size || ez > c.World.Size {
		errs = append(errs, fmt.Errorf("layout extent (%v, %v) exceeds world size %v", ex, ez, c.World.Size))
	}
	if c.Layout.KeepProbability < 0 || c.Layout.KeepProbability > 1 {
		errs = append(errs, fmt.Errorf("keep probability %v outside [0,1]", c.Layout.KeepProbability))
	}
	if c.Layout.Style == StyleTiles && c.Layout.TileHeight <= 0 {
		errs = append(errs, fmt.Errorf("tile height %v must be positive", c.Layout.TileHeight))
	}

	if c.Camera.Radius <= 0 || c.Camera.MinRadius <= 0 {
		errs = append(errs, errors.New("camera radius and min radius must be positive"))
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		errs = append(errs, fmt.Errorf("camera clip planes near=%v far=%v invalid", c.Camera.Near, c.Camera.Far))
	}
	if c.Actor.Step < 0 {
		errs = append(errs, fmt.Errorf("actor step %v must not be negative", c.Actor.Step))
	}
	if d := c.Light.Direction; d[0] == 0 && d[1] == 0 && d[2] == 0 {
		errs = append(errs, errors.New("light direction must not be zero"))
	}

	return errors.Join(errs...)
}

// Load reads the YAML file at path over the defaults. A missing file is not
// an error and yields Default(). The result is not validated: callers apply
// their overrides first and then call Validate.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse config %q: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg as YAML, creating the parent directory if needed.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
