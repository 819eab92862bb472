package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"cabin-engine/config"
	"cabin-engine/input"
)

// Settings are the scene-level constants derived from the configuration.
type Settings struct {
	WorldSize    float32
	DisplayScale float32
	// ActorBound clamps the walker's hero on X and Z.
	ActorBound float32

	Step           float32
	TurnStep       float32
	HoverAmplitude float32

	Radius           float32
	MinRadius        float32
	Theta            float32
	Phi              float32
	MoveSpeed        float32
	RotateSpeed      float32
	MouseSensitivity float32
	Lens             Lens

	GroundColor mgl32.Vec3
}

// SettingsFromConfig maps the configuration onto scene settings.
func SettingsFromConfig(cfg config.Config) Settings {
	return Settings{
		WorldSize:        cfg.World.Size,
		DisplayScale:     cfg.World.DisplayScale,
		ActorBound:       cfg.ActorBound(),
		Step:             cfg.Actor.Step,
		TurnStep:         cfg.Actor.TurnStep,
		HoverAmplitude:   cfg.Actor.HoverAmplitude,
		Radius:           cfg.Camera.Radius,
		MinRadius:        cfg.Camera.MinRadius,
		Theta:            cfg.Camera.Theta,
		Phi:              cfg.Camera.Phi,
		MoveSpeed:        cfg.Camera.MoveSpeed,
		RotateSpeed:      cfg.Camera.RotateSpeed,
		MouseSensitivity: cfg.Camera.MouseSensitivity,
		Lens: Lens{
			FOV:    cfg.Camera.FOV,
			Aspect: float32(cfg.Window.Width) / float32(cfg.Window.Height),
			Near:   cfg.Camera.Near,
			Far:    cfg.Camera.Far,
		},
		GroundColor: mgl32.Vec3{0.9, 0.9, 0.9},
	}
}

// DefaultSettings returns the settings of config.Default().
func DefaultSettings() Settings {
	return SettingsFromConfig(config.Default())
}

// LayoutOptionsFromConfig maps the layout section onto generator options.
func LayoutOptionsFromConfig(cfg config.Config) LayoutOptions {
	l := cfg.Layout
	opts := LayoutOptions{
		Style:           LayoutTiles,
		Width:           l.Width,
		Length:          l.Length,
		Spacing:         l.Spacing,
		Margin:          l.Margin,
		KeepProbability: l.KeepProbability,
		RequireOddCells: l.RequireOddCells,
		TileHeight:      l.TileHeight,
		TileColor:       mgl32.Vec3(l.TileColor),
		HeightScale:     l.HeightScale,
		HeightOffset:    l.HeightOffset,
		Seed:            l.Seed,
	}
	if l.Style == config.StyleCity {
		opts.Style = LayoutCity
	}
	return opts
}

// Scene ties together the single camera, the single actor and the
// immutable layout. Exactly one Variant drives its per-frame update.
type Scene struct {
	Camera   Camera
	Actor    Actor
	Layout   *Layout
	Settings Settings

	variant Variant
	frames  uint64
}

// NewScene builds the scene for the named variant.
func NewScene(variant string, settings Settings, layout *Layout) (*Scene, error) {
	switch variant {
	case config.VariantWalker:
		return NewWalkerScene(settings, layout), nil
	case config.VariantFlyer:
		return NewFlyerScene(settings, layout), nil
	}
	return nil, fmt.Errorf("unknown variant %q", variant)
}

// Update advances the scene by one frame. There is no delta time: every
// held action moves state by one fixed increment per call.
func (s *Scene) Update(in *input.Latch) {
	s.variant.Update(s, in)
	s.frames++
}

// ActorTransform is the actor's model matrix for the current frame.
func (s *Scene) ActorTransform() mgl32.Mat4 {
	return s.variant.ActorTransform(s)
}

// Step returns the number of Update calls so far.
func (s *Scene) Step() uint64 { return s.frames }

func (s *Scene) Variant() Variant { return s.variant }

// UseActorMesh replaces the actor's built-in geometry with mesh.
func (s *Scene) UseActorMesh(mesh *Mesh, color mgl32.Vec3) {
	s.Actor = WithMesh(s.Actor, mesh, color)
}
