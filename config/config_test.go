package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default: expected valid config, got %v", err)
	}
	if got := cfg.ActorBound(); got != 550 {
		t.Errorf("ActorBound: expected 550, got %v", got)
	}
	ex, ez := cfg.GridExtent()
	if ex > cfg.World.Size || ez > cfg.World.Size {
		t.Errorf("GridExtent: (%v,%v) exceeds world size %v", ex, ez, cfg.World.Size)
	}
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: unexpected error %v", err)
	}
	if cfg.Variant != VariantWalker || cfg.World.Size != 55 {
		t.Errorf("Load: expected defaults, got variant=%q size=%v", cfg.Variant, cfg.World.Size)
	}
}

func TestLoadOverridesOnlyGivenKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.yaml")
	doc := `
variant: flyer
layout:
  style: city
  keep_probability: 0.25
  seed: 42
light:
  direction: [0, -1, 0]
`
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: unexpected error %v", err)
	}
	if cfg.Variant != VariantFlyer {
		t.Errorf("Variant: expected flyer, got %q", cfg.Variant)
	}
	if cfg.Layout.Style != StyleCity || cfg.Layout.KeepProbability != 0.25 || cfg.Layout.Seed != 42 {
		t.Errorf("Layout: got %+v", cfg.Layout)
	}
	if cfg.Layout.Width != 100 || cfg.Layout.Spacing != 1 {
		t.Errorf("Layout: expected untouched width/spacing, got %v/%v", cfg.Layout.Width, cfg.Layout.Spacing)
	}
	if cfg.Light.Direction != [3]float32{0, -1, 0} {
		t.Errorf("Light.Direction: got %v", cfg.Light.Direction)
	}
	if cfg.Camera.Radius != 25 {
		t.Errorf("Camera.Radius: expected default 25, got %v", cfg.Camera.Radius)
	}
}

func TestLoadDefersValidation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.yaml")
	if err := os.WriteFile(path, []byte("layout:\n  width: 200\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Layout.Width != 200 {
		t.Errorf("Layout.Width: expected 200, got %v", cfg.Layout.Width)
	}
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "exceeds world size") {
		t.Errorf("Validate: expected extent error, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"variant", func(c *Config) { c.Variant = "tank" }, "unknown variant"},
		{"display scale", func(c *Config) { c.World.DisplayScale = 0 }, "display scale"},
		{"spacing", func(c *Config) { c.Layout.Spacing = 0 }, "spacing"},
		{"probability", func(c *Config) { c.Layout.KeepProbability = 1.5 }, "keep probability"},
		{"radius", func(c *Config) { c.Camera.MinRadius = 0 }, "radius"},
		{"light", func(c *Config) { c.Light.Direction = [3]float32{} }, "light direction"},
		{"style", func(c *Config) { c.Layout.Style = "forest" }, "layout style"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Validate: expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestApplyStyle(t *testing.T) {
	cfg := Default()
	cfg.ApplyStyle(StyleCity)
	if cfg.Layout.Style != StyleCity || cfg.Layout.KeepProbability != 0.6 {
		t.Errorf("ApplyStyle(city): got style=%q p=%v", cfg.Layout.Style, cfg.Layout.KeepProbability)
	}
	cfg.ApplyStyle(StyleTiles)
	if cfg.Layout.KeepProbability != 1 {
		t.Errorf("ApplyStyle(tiles): expected p=1, got %v", cfg.Layout.KeepProbability)
	}
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "engine.yaml")
	cfg := Default()
	cfg.Variant = VariantFlyer
	cfg.Actor.ModelPath = "models/plane.glb"

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Variant != VariantFlyer || got.Actor.ModelPath != "models/plane.glb" {
		t.Errorf("Load after Save: got variant=%q model=%q", got.Variant, got.Actor.ModelPath)
	}
}

func TestShippedConfigMatchesDefaults(t *testing.T) {
	cfg, err := Load("engine.yaml")
	if err != nil {
		t.Fatalf("Load(engine.yaml): %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate(engine.yaml): %v", err)
	}
	def := Default()
	if cfg.Window != def.Window || cfg.World != def.World || cfg.Layout != def.Layout {
		t.Errorf("engine.yaml: window/world/layout differ from Default()")
	}
	if cfg.ActorBound() != 550 {
		t.Errorf("ActorBound: expected 550, got %v", cfg.ActorBound())
	}
}
