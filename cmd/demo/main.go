package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"cabin-engine/config"
	"cabin-engine/core"
	"cabin-engine/input"
	"cabin-engine/renderer"
	"cabin-engine/scene"
)

// options are the command-line overrides applied on top of the config file.
type options struct {
	configPath string
	variant    string
	style      string
	seed       int64
	seedSet    bool
}

func parseFlags(args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("demo", flag.ContinueOnError)
	fs.StringVar(&opts.configPath, "config", config.DefaultPath, "path to the YAML configuration")
	fs.StringVar(&opts.variant, "variant", "", "walker (orbit camera) or flyer (free-fly camera)")
	fs.StringVar(&opts.style, "style", "", "layout style: tiles or city")
	fs.Int64Var(&opts.seed, "seed", 0, "layout seed, 0 for a time-based seed")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			opts.seedSet = true
		}
	})
	return opts, nil
}

// loadConfig reads the config file and applies the flag overrides.
func loadConfig(opts options) (config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return cfg, err
	}
	if opts.variant != "" {
		cfg.Variant = opts.variant
	}
	if opts.style != "" {
		cfg.ApplyStyle(opts.style)
	}
	if opts.seedSet {
		cfg.Layout.Seed = opts.seed
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "[ERROR]: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	layoutOpts := scene.LayoutOptionsFromConfig(cfg)
	layout := scene.GenerateLayout(layoutOpts, scene.NewLayoutRand(layoutOpts.Seed))
	ex, ez := layout.Extent()
	fmt.Printf("[Layout] %s: %d objects, extent ±%.0f x ±%.0f, ground ±%.0f\n",
		cfg.Layout.Style, layout.Len(), ex, ez, cfg.World.Size)

	wc := core.DefaultWindowConfig()
	wc.Width, wc.Height = cfg.Window.Width, cfg.Window.Height
	wc.Title = cfg.Window.Title
	wc.VSync = cfg.Window.VSync
	window, err := core.NewWindow(wc)
	if err != nil {
		return fmt.Errorf("failed to create window: %w", err)
	}
	defer window.Destroy()

	light := renderer.Light{
		Direction: mgl32.Vec3(cfg.Light.Direction),
		Color:     mgl32.Vec3(cfg.Light.Color),
	}
	renderEngine, err := renderer.NewRenderEngine(window, light)
	if err != nil {
		return fmt.Errorf("failed to create render engine: %w", err)
	}
	defer renderEngine.Destroy()

	settings := scene.SettingsFromConfig(cfg)
	fbW, fbH := window.FramebufferSize()
	settings.Lens.SetAspect(float32(fbW), float32(fbH))

	s, err := scene.NewScene(cfg.Variant, settings, layout)
	if err != nil {
		return err
	}
	if cfg.Actor.ModelPath != "" {
		model, err := scene.LoadModel(cfg.Actor.ModelPath)
		if err != nil {
			fmt.Printf("[WARN]: actor model %q not loaded, using built-in geometry: %v\n", cfg.Actor.ModelPath, err)
		} else {
			s.UseActorMesh(model.Mesh, model.Color)
			fmt.Printf("[INFO]: actor model %q loaded (%d vertices)\n", cfg.Actor.ModelPath, model.Mesh.VertexCount())
		}
	}
	renderEngine.ClearColor = mgl32.Vec3(cfg.Window.ClearColor)
	renderEngine.FrustumCulling = true
	renderEngine.SetScene(s)
	window.OnResize(renderEngine.Resize)

	latch := input.NewLatch()
	window.BindInput(latch, core.BindingsFor(cfg.Variant))

	printControls(cfg.Variant)

	hud := &statusOverlay{}
	frameCount := 0
	lastTime := time.Now()

	for !window.ShouldClose() {
		if err := renderEngine.Render(); err != nil {
			return fmt.Errorf("render: %w", err)
		}

		s.Update(latch)

		renderEngine.Present()
		window.PollEvents()

		if latch.Held(input.Quit) {
			window.SetShouldClose(true)
		}

		frameCount++
		now := time.Now()
		elapsed := now.Sub(lastTime)

		draws, tris, culled := renderEngine.DrawStats()
		hud.Clear()
		hud.AddLine("%s", cfg.Window.Title)
		hud.AddLine("FPS: %d", hud.fps)
		eye := s.Camera.Position()
		hud.AddLine("%s eye (%.1f, %.1f, %.1f)", s.Variant().Name(), eye.X(), eye.Y(), eye.Z())
		hud.AddLine("Draws: %d  Tris: %d  Culled: %d", draws, tris, culled)

		// Refresh the title once per second
		if elapsed.Seconds() >= 1.0 {
			hud.fps = frameCount
			window.SetTitle(hud.Title())
			frameCount = 0
			lastTime = now
		}

		if s.Step()%60 == 0 {
			fmt.Printf("[Frame %d] %s\n", s.Step(), hud.Title())
		}
	}

	fmt.Println("[INFO]: Exiting...")
	return nil
}

func printControls(variant string) {
	fmt.Println("===========================================")
	fmt.Println("  The Cabin In The Woods")
	fmt.Println("===========================================")
	switch variant {
	case config.VariantFlyer:
		fmt.Println("  Space          fly forward (Shift: backward)")
		fmt.Println("  A / D          yaw")
		fmt.Println("  Up / Down, S/W pitch")
		fmt.Println("  Left drag      look around")
	default:
		fmt.Println("  W / S          walk forward / backward")
		fmt.Println("  A / D          turn")
		fmt.Println("  Left drag      orbit the camera")
		fmt.Println("  Shift + drag   zoom")
	}
	fmt.Println("  Q / Escape     quit")
	fmt.Println("")
}
