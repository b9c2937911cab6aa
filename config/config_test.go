package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestParseTOMLOverlaysDefaults(t *testing.T) {
	data := []byte(`
[window]
title = "Monument (debug)"
width = 1280

[renderer]
present_mode = "uncapped"
msaa = 1
clear_color = [0.2, 0.3, 0.4]

[textures]
dir = "testdata/textures"
strict = true

[camera]
target = [0.0, 5.0, 1.0]
orbit_speed = 0.05
mouse_sensitivity = 0.002

[engine]
frame_limit = 30.0
profile = true
`)
	cfg, err := Parse(data, ".toml")
	require.NoError(t, err)

	assert.Equal(t, "Monument (debug)", cfg.Window.Title)
	assert.Equal(t, 1280, cfg.Window.Width)
	assert.Equal(t, 800, cfg.Window.Height)
	assert.Equal(t, PresentModeUncapped, cfg.Renderer.PresentMode)
	assert.Equal(t, 1, cfg.Renderer.MSAA)
	assert.Equal(t, [3]float64{0.2, 0.3, 0.4}, cfg.Renderer.ClearColor)
	assert.Equal(t, 64, cfg.Renderer.MaxObjects)
	assert.Equal(t, "testdata/textures", cfg.Textures.Dir)
	assert.True(t, cfg.Textures.Strict)
	assert.True(t, cfg.Textures.Mipmaps)
	assert.Equal(t, MaxTextureCapacity, cfg.Textures.Capacity)
	assert.Equal(t, [3]float32{0, 5, 1}, cfg.Camera.Target)
	assert.Equal(t, float32(22), cfg.Camera.Radius)
	assert.Equal(t, float32(0.05), cfg.Camera.OrbitSpeed)
	assert.Equal(t, float32(0.002), cfg.Camera.MouseSensitivity)
	assert.Equal(t, float32(1), cfg.Camera.ZoomSpeed)
	assert.Equal(t, 320, cfg.Window.MinWidth)
	assert.Equal(t, 30.0, cfg.Engine.FrameLimit)
	assert.True(t, cfg.Engine.Profile)
}

func TestParseYAML(t *testing.T) {
	data := []byte(`
window:
  height: 600
  min_height: 400
textures:
  capacity: 8
  workers: 2
camera:
  fov: 60
  far: 250
`)
	for _, ext := range []string{".yaml", ".YML"} {
		cfg, err := Parse(data, ext)
		require.NoError(t, err, ext)
		assert.Equal(t, 600, cfg.Window.Height)
		assert.Equal(t, 1000, cfg.Window.Width)
		assert.Equal(t, 400, cfg.Window.MinHeight)
		assert.Equal(t, 8, cfg.Textures.Capacity)
		assert.Equal(t, 2, cfg.Textures.Workers)
		assert.Equal(t, float32(60), cfg.Camera.Fov)
		assert.Equal(t, float32(250), cfg.Camera.Far)
	}
}

func TestParseUnsupportedFormat(t *testing.T) {
	_, err := Parse([]byte(`{}`), ".json")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestParseMalformed(t *testing.T) {
	_, err := Parse([]byte("[window\nwidth = "), ".toml")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalid)
}

func TestValidateRejectsOutOfRangeValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Window.Width = 0 }},
		{"negative height", func(c *Config) { c.Window.Height = -1 }},
		{"present mode", func(c *Config) { c.Renderer.PresentMode = "mailbox" }},
		{"msaa", func(c *Config) { c.Renderer.MSAA = 2 }},
		{"max objects", func(c *Config) { c.Renderer.MaxObjects = 0 }},
		{"texture capacity", func(c *Config) { c.Textures.Capacity = MaxTextureCapacity + 1 }},
		{"texture workers", func(c *Config) { c.Textures.Workers = -2 }},
		{"fov", func(c *Config) { c.Camera.Fov = 180 }},
		{"clip planes", func(c *Config) { c.Camera.Far = c.Camera.Near }},
		{"minimum width", func(c *Config) { c.Window.MinWidth = -1 }},
		{"minimum above size", func(c *Config) { c.Window.MinHeight = c.Window.Height + 1 }},
		{"radius", func(c *Config) { c.Camera.Radius = 0 }},
		{"orbit speed", func(c *Config) { c.Camera.OrbitSpeed = 0 }},
		{"zoom speed", func(c *Config) { c.Camera.ZoomSpeed = -1 }},
		{"mouse sensitivity", func(c *Config) { c.Camera.MouseSensitivity = 0 }},
		{"frame limit", func(c *Config) { c.Engine.FrameLimit = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}
}

func TestValidateJoinsEveryFailure(t *testing.T) {
	cfg := Default()
	cfg.Window.Width = 0
	cfg.Renderer.MSAA = 3
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "window size")
	assert.Contains(t, err.Error(), "msaa sample count 3")
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "monument.toml")
	require.NoError(t, os.WriteFile(path, []byte("[engine]\nprofile = true\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.Engine.Profile)

	_, err = Load(filepath.Join(dir, "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("textures:\n  capacity: 32\n"), 0o644))
	_, err = Load(bad)
	assert.ErrorIs(t, err, ErrInvalid)
}
