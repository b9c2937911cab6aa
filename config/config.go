// Package config loads the monument application settings from TOML or YAML files.
// Every field has a default, so a file only needs to name the values it changes.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Present modes accepted in Renderer.PresentMode.
const (
	PresentModeVSync    = "vsync"
	PresentModeUncapped = "uncapped"
)

// MaxTextureCapacity is the number of texture units the scene shader samples.
const MaxTextureCapacity = 16

var (
	// ErrUnsupportedFormat is returned by Load for file extensions other than .toml, .yaml and .yml.
	ErrUnsupportedFormat = errors.New("config: unsupported file format")

	// ErrInvalid wraps every Validate failure.
	ErrInvalid = errors.New("config: invalid value")
)

// Window holds the window settings.
type Window struct {
	Title     string `toml:"title" yaml:"title"`
	Width     int    `toml:"width" yaml:"width"`
	Height    int    `toml:"height" yaml:"height"`
	MinWidth  int    `toml:"min_width" yaml:"min_width"`
	MinHeight int    `toml:"min_height" yaml:"min_height"`
}

// Renderer holds the GPU renderer settings.
type Renderer struct {
	PresentMode   string     `toml:"present_mode" yaml:"present_mode"`
	MSAA          int        `toml:"msaa" yaml:"msaa"`
	MaxObjects    int        `toml:"max_objects" yaml:"max_objects"`
	ClearColor    [3]float64 `toml:"clear_color" yaml:"clear_color"`
	ForceSoftware bool       `toml:"force_software" yaml:"force_software"`
}

// Textures holds the texture registry settings.
type Textures struct {
	Dir      string `toml:"dir" yaml:"dir"`
	Capacity int    `toml:"capacity" yaml:"capacity"`
	Strict   bool   `toml:"strict" yaml:"strict"`
	Mipmaps  bool   `toml:"mipmaps" yaml:"mipmaps"`
	Workers  int    `toml:"workers" yaml:"workers"`
}

// Camera holds the perspective and orbit settings. Angles are in degrees.
type Camera struct {
	Fov       float32    `toml:"fov" yaml:"fov"`
	Near      float32    `toml:"near" yaml:"near"`
	Far       float32    `toml:"far" yaml:"far"`
	Radius    float32    `toml:"radius" yaml:"radius"`
	Azimuth   float32    `toml:"azimuth" yaml:"azimuth"`
	Elevation float32    `toml:"elevation" yaml:"elevation"`
	Target    [3]float32 `toml:"target" yaml:"target"`

	// OrbitSpeed is in radians per held-key tick, MouseSensitivity in radians per pixel dragged.
	OrbitSpeed       float32 `toml:"orbit_speed" yaml:"orbit_speed"`
	ZoomSpeed        float32 `toml:"zoom_speed" yaml:"zoom_speed"`
	MouseSensitivity float32 `toml:"mouse_sensitivity" yaml:"mouse_sensitivity"`
}

// Engine holds the frame loop settings.
type Engine struct {
	FrameLimit float64 `toml:"frame_limit" yaml:"frame_limit"`
	Profile    bool    `toml:"profile" yaml:"profile"`
}

// Config is the complete application configuration.
type Config struct {
	Window   Window   `toml:"window" yaml:"window"`
	Renderer Renderer `toml:"renderer" yaml:"renderer"`
	Textures Textures `toml:"textures" yaml:"textures"`
	Camera   Camera   `toml:"camera" yaml:"camera"`
	Engine   Engine   `toml:"engine" yaml:"engine"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Window: Window{Title: "Monument", Width: 1000, Height: 800, MinWidth: 320, MinHeight: 240},
		Renderer: Renderer{
			PresentMode: PresentModeVSync,
			MSAA:        4,
			MaxObjects:  64,
			ClearColor:  [3]float64{0.1, 0.1, 0.1},
		},
		Textures: Textures{
			Dir:      "assets/textures",
			Capacity: MaxTextureCapacity,
			Mipmaps:  true,
		},
		Camera: Camera{
			Fov:       45,
			Near:      0.1,
			Far:       100,
			Radius:    22,
			Elevation: 15,
			Target:    [3]float32{0, 4, 0},

			OrbitSpeed:       0.03,
			ZoomSpeed:        1,
			MouseSensitivity: 0.005,
		},
	}
}

// Load reads the file at path over the defaults. The format follows the extension.
//
// Parameters:
//   - path: a .toml, .yaml or .yml file
//
// Returns:
//   - Config: the defaults overlaid with the file's values
//   - error: read, parse or validation failure
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes data over the defaults and validates the result.
//
// Parameters:
//   - data: the file contents
//   - ext: the format extension, ".toml", ".yaml" or ".yml"
//
// Returns:
//   - Config: the decoded configuration
//   - error: ErrUnsupportedFormat, a decode error, or a Validate error
func Parse(data []byte, ext string) (Config, error) {
	cfg := Default()
	var err error
	switch strings.ToLower(ext) {
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		return Config{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every out-of-range value, joined.
func (c Config) Validate() error {
	var errs []error
	invalid := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		invalid("window size %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Window.MinWidth < 0 || c.Window.MinHeight < 0 ||
		c.Window.MinWidth > c.Window.Width || c.Window.MinHeight > c.Window.Height {
		invalid("window minimum size %dx%d", c.Window.MinWidth, c.Window.MinHeight)
	}

	switch c.Renderer.PresentMode {
	case PresentModeVSync, PresentModeUncapped:
	default:
		invalid("present mode %q", c.Renderer.PresentMode)
	}
	switch c.Renderer.MSAA {
	case 1, 4, 8, 16:
	default:
		invalid("msaa sample count %d", c.Renderer.MSAA)
	}
	if c.Renderer.MaxObjects <= 0 {
		invalid("max objects %d", c.Renderer.MaxObjects)
	}

	if c.Textures.Capacity <= 0 || c.Textures.Capacity > MaxTextureCapacity {
		invalid("texture capacity %d, want 1..%d", c.Textures.Capacity, MaxTextureCapacity)
	}
	if c.Textures.Workers < 0 {
		invalid("texture workers %d", c.Textures.Workers)
	}

	if c.Camera.Fov <= 0 || c.Camera.Fov >= 180 {
		invalid("camera fov %g", c.Camera.Fov)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		invalid("camera clip planes %g..%g", c.Camera.Near, c.Camera.Far)
	}
	if c.Camera.Radius <= 0 {
		invalid("camera radius %g", c.Camera.Radius)
	}
	if c.Camera.OrbitSpeed <= 0 || c.Camera.ZoomSpeed <= 0 || c.Camera.MouseSensitivity <= 0 {
		invalid("camera speeds orbit %g zoom %g mouse %g", c.Camera.OrbitSpeed, c.Camera.ZoomSpeed, c.Camera.MouseSensitivity)
	}

	if c.Engine.FrameLimit < 0 {
		invalid("frame limit %g", c.Engine.FrameLimit)
	}
	return errors.Join(errs...)
}
