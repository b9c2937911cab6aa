package material

import "github.com/go-gl/mathgl/mgl32"

// MaterialBuilderOption is a function that configures a material during construction.
type MaterialBuilderOption func(*Material)

// WithAmbient is an option builder that sets the ambient color and strength of the material.
//
// Parameters:
//   - color: the ambient RGB color
//   - strength: the ambient term multiplier
//
// Returns:
//   - MaterialBuilderOption: a function that applies the ambient option to a material
func WithAmbient(color mgl32.Vec3, strength float32) MaterialBuilderOption {
	return func(m *Material) {
		m.AmbientColor = color
		m.AmbientStrength = strength
	}
}

// WithDiffuseColor is an option builder that sets the diffuse color of the material.
//
// Parameters:
//   - color: the diffuse RGB color
//
// Returns:
//   - MaterialBuilderOption: a function that applies the diffuse color option to a material
func WithDiffuseColor(color mgl32.Vec3) MaterialBuilderOption {
	return func(m *Material) {
		m.DiffuseColor = color
	}
}

// WithSpecularColor is an option builder that sets the specular color of the material.
//
// Parameters:
//   - color: the specular RGB color
//
// Returns:
//   - MaterialBuilderOption: a function that applies the specular color option to a material
func WithSpecularColor(color mgl32.Vec3) MaterialBuilderOption {
	return func(m *Material) {
		m.SpecularColor = color
	}
}

// WithShininess is an option builder that sets the shininess of the material.
//
// Parameters:
//   - shininess: the specular multiplier
//
// Returns:
//   - MaterialBuilderOption: a function that applies the shininess option to a material
func WithShininess(shininess float32) MaterialBuilderOption {
	return func(m *Material) {
		m.Shininess = shininess
	}
}
