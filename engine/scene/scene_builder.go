package scene

import (
	"github.com/Carmen-Shannon/oxy-monument/engine/light"
	"github.com/Carmen-Shannon/oxy-monument/engine/mesh"
	"github.com/Carmen-Shannon/oxy-monument/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-monument/engine/renderer/params"
	"github.com/Carmen-Shannon/oxy-monument/engine/renderer/texture"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithTextures sets the texture set loaded by Prepare. Slot indices follow the order given.
//
// Parameters:
//   - specs: the textures to load
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithTextures(specs ...texture.Spec) SceneBuilderOption {
	return func(s *scene) {
		s.textureSpecs = append(s.textureSpecs, specs...)
	}
}

// WithTextureOptions configures the scene's texture registry (capacity, decoder, sampler, workers).
//
// Parameters:
//   - options: texture registry options
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithTextureOptions(options ...texture.RegistryBuilderOption) SceneBuilderOption {
	return func(s *scene) {
		s.textureOptions = append(s.textureOptions, options...)
	}
}

// WithStrictTextures makes any texture load or bind failure fail Prepare.
// By default failed textures are logged and their objects fall back to flat color.
//
// Parameters:
//   - strict: true to fail Prepare on texture errors
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithStrictTextures(strict bool) SceneBuilderOption {
	return func(s *scene) {
		s.strictTextures = strict
	}
}

// WithMaterials sets the materials defined by Prepare.
//
// Parameters:
//   - materials: the materials, looked up by tag with the first match winning
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithMaterials(materials ...material.Material) SceneBuilderOption {
	return func(s *scene) {
		s.materialDefs = append(s.materialDefs, materials...)
	}
}

// WithLights sets the lights applied by Prepare, at most params.MaxLights.
//
// Parameters:
//   - lights: the lights in slot order
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithLights(lights ...light.Light) SceneBuilderOption {
	return func(s *scene) {
		s.lights = append(s.lights, lights...)
	}
}

// WithLighting sets whether Phong lighting is on after Prepare. Defaults to true.
//
// Parameters:
//   - enabled: true to light the scene
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithLighting(enabled bool) SceneBuilderOption {
	return func(s *scene) {
		s.lightingEnabled = enabled
	}
}

// WithObjects appends authored objects. RenderFrame draws them in the order given.
//
// Parameters:
//   - objects: the objects to draw
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithObjects(objects ...RenderObject) SceneBuilderOption {
	return func(s *scene) {
		s.objects = append(s.objects, objects...)
	}
}

// WithMeshProvider replaces the provider that builds the primitive shapes.
//
// Parameters:
//   - p: the mesh provider
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithMeshProvider(p mesh.Provider) SceneBuilderOption {
	return func(s *scene) {
		s.meshes = p
	}
}

// WithParams replaces the parameter store the scene writes into.
//
// Parameters:
//   - store: the parameter store
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithParams(store params.Store) SceneBuilderOption {
	return func(s *scene) {
		s.store = store
	}
}
