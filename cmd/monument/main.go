// Command monument renders the textured, Phong-lit stone monument scene in a window.
//
// Controls: A/D or Left/Right orbit, Up/Down tilt, W/S or the scroll wheel zoom, Q/E raise and
// lower the view, left-drag orbits, L toggles lighting, R resets the camera, Escape quits.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/Carmen-Shannon/oxy-monument/config"
	"github.com/Carmen-Shannon/oxy-monument/content/monument"
	"github.com/Carmen-Shannon/oxy-monument/engine"
	"github.com/Carmen-Shannon/oxy-monument/engine/camera"
	"github.com/Carmen-Shannon/oxy-monument/engine/renderer"
	"github.com/Carmen-Shannon/oxy-monument/engine/renderer/texture"
	"github.com/Carmen-Shannon/oxy-monument/engine/scene"
	"github.com/Carmen-Shannon/oxy-monument/engine/window"
	"github.com/go-gl/mathgl/mgl32"
)

func main() {
	configPath := flag.String("config", "", "path to a .toml or .yaml configuration file")
	texturesDir := flag.String("textures", "", "directory holding the <name>Texture.jpg images (overrides the config)")
	profile := flag.Bool("profile", false, "log frame rate and memory statistics")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("[Monument] %v", err)
	}
	if *texturesDir != "" {
		cfg.Textures.Dir = *texturesDir
	}
	if *profile {
		cfg.Engine.Profile = true
	}

	if err := run(cfg); err != nil {
		log.Fatalf("[Monument] %v", err)
	}
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func run(cfg config.Config) error {
	win, err := window.NewWindow(windowOptions(cfg.Window)...)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}

	r, err := renderer.NewRenderer(win, rendererOptions(cfg.Renderer)...)
	if err != nil {
		_ = win.Close()
		return fmt.Errorf("create renderer: %w", err)
	}
	defer r.Release()

	ctrl := camera.NewCameraController(controllerOptions(cfg.Camera)...)
	cam := camera.NewCamera(
		camera.WithFov(cfg.Camera.Fov),
		camera.WithClipPlanes(cfg.Camera.Near, cfg.Camera.Far),
		camera.WithController(ctrl),
	)

	options := append(monument.Options(cfg.Textures.Dir),
		scene.WithStrictTextures(cfg.Textures.Strict),
		scene.WithTextureOptions(
			texture.WithCapacity(cfg.Textures.Capacity),
			texture.WithMipmaps(cfg.Textures.Mipmaps),
			texture.WithDecodeWorkers(cfg.Textures.Workers),
		),
	)
	sc := scene.NewScene(monument.Name, r, options...)

	in := newInput(ctrl, sc)
	in.attach(win)

	eng := engine.NewEngine(win, r, sc,
		engine.WithCamera(cam),
		engine.WithProfiling(cfg.Engine.Profile),
		engine.WithRenderFrameLimit(cfg.Engine.FrameLimit),
		engine.WithTickCallback(in.tick),
	)

	log.Printf("[Monument] textures from %s", cfg.Textures.Dir)
	return eng.Run()
}

func windowOptions(cfg config.Window) []window.WindowBuilderOption {
	return []window.WindowBuilderOption{
		window.WithTitle(cfg.Title),
		window.WithSize(cfg.Width, cfg.Height),
		window.WithMinSize(cfg.MinWidth, cfg.MinHeight),
	}
}

// controllerOptions converts the configured angles from degrees.
func controllerOptions(cfg config.Camera) []camera.CameraControllerOption {
	return []camera.CameraControllerOption{
		camera.WithRadius(cfg.Radius),
		camera.WithAzimuth(mgl32.DegToRad(cfg.Azimuth)),
		camera.WithElevation(mgl32.DegToRad(cfg.Elevation)),
		camera.WithTarget(cfg.Target[0], cfg.Target[1], cfg.Target[2]),
		camera.WithOrbitSpeed(cfg.OrbitSpeed),
		camera.WithZoomSpeed(cfg.ZoomSpeed),
		camera.WithMouseSensitivity(cfg.MouseSensitivity),
	}
}

func rendererOptions(cfg config.Renderer) []renderer.RendererBuilderOption {
	mode := renderer.PresentModeVSync
	if cfg.PresentMode == config.PresentModeUncapped {
		mode = renderer.PresentModeUncapped
	}
	return []renderer.RendererBuilderOption{
		renderer.WithPresentMode(mode),
		renderer.WithMSAA(renderer.MSAASampleCount(cfg.MSAA)),
		renderer.WithMaxObjects(cfg.MaxObjects),
		renderer.WithClearColor(cfg.ClearColor[0], cfg.ClearColor[1], cfg.ClearColor[2]),
		renderer.WithForceSoftwareRenderer(cfg.ForceSoftware),
	}
}
