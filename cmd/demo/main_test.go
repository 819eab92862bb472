package main

import (
	"os"
	"path/filepath"
	"testing"

	"cabin-engine/config"
)

func TestParseFlagsDefaults(t *testing.T) {
	opts, err := parseFlags(nil)
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}
	if opts.configPath != config.DefaultPath {
		t.Errorf("configPath: expected %s, got %s", config.DefaultPath, opts.configPath)
	}
	if opts.seedSet {
		t.Error("seedSet: expected false without -seed")
	}
}

func TestLoadConfigAppliesFlags(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "none.yaml")
	opts, err := parseFlags([]string{"-config", missing, "-variant", "flyer", "-style", "city", "-seed", "42"})
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Variant != config.VariantFlyer {
		t.Errorf("Variant: expected flyer, got %s", cfg.Variant)
	}
	if cfg.Layout.Style != config.StyleCity || cfg.Layout.KeepProbability != 0.6 {
		t.Errorf("Layout: expected city with p=0.6, got %s p=%v", cfg.Layout.Style, cfg.Layout.KeepProbability)
	}
	if cfg.Layout.Seed != 42 {
		t.Errorf("Seed: expected 42, got %d", cfg.Layout.Seed)
	}
}

func TestLoadConfigRejectsBadVariant(t *testing.T) {
	opts := options{configPath: filepath.Join(t.TempDir(), "none.yaml"), variant: "submarine"}
	if _, err := loadConfig(opts); err == nil {
		t.Error("loadConfig: expected error for an unknown variant")
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.yaml")
	if err := os.WriteFile(path, []byte("layout:\n  seed: 9\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := loadConfig(options{configPath: path})
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Layout.Seed != 9 {
		t.Errorf("Seed: expected 9, got %d", cfg.Layout.Seed)
	}
}

func TestLoadConfigFlagsOverrideInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.yaml")
	if err := os.WriteFile(path, []byte("variant: submarine\nlayout:\n  style: villages\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := loadConfig(options{configPath: path, variant: "flyer", style: "tiles"})
	if err != nil {
		t.Fatalf("loadConfig: expected flags to fix the file, got %v", err)
	}
	if cfg.Variant != config.VariantFlyer || cfg.Layout.Style != config.StyleTiles {
		t.Errorf("overrides: expected flyer/tiles, got %s/%s", cfg.Variant, cfg.Layout.Style)
	}

	if _, err := loadConfig(options{configPath: path}); err == nil {
		t.Error("loadConfig: expected error without overrides")
	}
}

func TestStatusOverlay(t *testing.T) {
	so := &statusOverlay{}
	so.AddLine("FPS: %d", 60)
	so.AddLine("walker")
	if got := so.Title(); got != "FPS: 60 | walker" {
		t.Errorf("Title: expected %q, got %q", "FPS: 60 | walker", got)
	}
	so.Clear()
	if got := so.Title(); got != "" {
		t.Errorf("Clear: expected empty title, got %q", got)
	}
}
