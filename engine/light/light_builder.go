package light

import "github.com/go-gl/mathgl/mgl32"

// LightBuilderOption is a function that configures a Light instance during construction.
type LightBuilderOption func(*lightImpl)

// WithPosition is an option builder that sets the world-space position of the light.
//
// Parameters:
//   - x: the x position component
//   - y: the y position component
//   - z: the z position component
//
// Returns:
//   - LightBuilderOption: a function that applies the position option to a lightImpl
func WithPosition(x, y, z float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.position = mgl32.Vec3{x, y, z}
	}
}

// WithAmbientColor is an option builder that sets the ambient color of the light.
//
// Parameters:
//   - r, g, b: the color components
//
// Returns:
//   - LightBuilderOption: a function that applies the ambient color option to a lightImpl
func WithAmbientColor(r, g, b float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.ambientColor = mgl32.Vec3{r, g, b}
	}
}

// WithDiffuseColor is an option builder that sets the diffuse color of the light.
//
// Parameters:
//   - r, g, b: the color components
//
// Returns:
//   - LightBuilderOption: a function that applies the diffuse color option to a lightImpl
func WithDiffuseColor(r, g, b float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.diffuseColor = mgl32.Vec3{r, g, b}
	}
}

// WithSpecularColor is an option builder that sets the specular color of the light.
//
// Parameters:
//   - r, g, b: the color components
//
// Returns:
//   - LightBuilderOption: a function that applies the specular color option to a lightImpl
func WithSpecularColor(r, g, b float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.specularColor = mgl32.Vec3{r, g, b}
	}
}

// WithFocalStrength is an option builder that sets the specular exponent.
//
// Parameters:
//   - focalStrength: the exponent
//
// Returns:
//   - LightBuilderOption: a function that applies the focal strength option to a lightImpl
func WithFocalStrength(focalStrength float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.focalStrength = focalStrength
	}
}

// WithSpecularIntensity is an option builder that sets the specular multiplier.
//
// Parameters:
//   - intensity: the multiplier, 0 disables highlights
//
// Returns:
//   - LightBuilderOption: a function that applies the specular intensity option to a lightImpl
func WithSpecularIntensity(intensity float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.specularIntensity = intensity
	}
}

// WithEnabled is an option builder that sets whether the light is enabled.
//
// Parameters:
//   - enabled: true to enable
//
// Returns:
//   - LightBuilderOption: a function that applies the enabled option to a lightImpl
func WithEnabled(enabled bool) LightBuilderOption {
	return func(l *lightImpl) {
		l.enabled = enabled
	}
}
