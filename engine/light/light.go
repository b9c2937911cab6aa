package light

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-monument/engine/renderer/params"
	"github.com/go-gl/mathgl/mgl32"
)

// lightImpl is the implementation of the Light interface.
type lightImpl struct {
	position          mgl32.Vec3
	ambientColor      mgl32.Vec3
	diffuseColor      mgl32.Vec3
	specularColor     mgl32.Vec3
	focalStrength     float32
	specularIntensity float32
	enabled           bool
}

// Light defines the interface for a Phong point light.
//
// A light contributes an ambient term, a diffuse term attenuated by the angle between the surface
// normal and the light direction, and a specular highlight whose tightness is set by the focal
// strength. Lights occupy one of params.MaxLights indexed slots in the parameter store.
type Light interface {
	// Position returns the world-space position of the light.
	//
	// Returns:
	//   - mgl32.Vec3: position as (x, y, z)
	Position() mgl32.Vec3

	// AmbientColor returns the color the light adds to every surface regardless of orientation.
	//
	// Returns:
	//   - mgl32.Vec3: color as (r, g, b)
	AmbientColor() mgl32.Vec3

	// DiffuseColor returns the color of direct illumination.
	//
	// Returns:
	//   - mgl32.Vec3: color as (r, g, b)
	DiffuseColor() mgl32.Vec3

	// SpecularColor returns the color of specular highlights.
	//
	// Returns:
	//   - mgl32.Vec3: color as (r, g, b)
	SpecularColor() mgl32.Vec3

	// FocalStrength returns the specular exponent. Larger values give tighter highlights.
	//
	// Returns:
	//   - float32: the exponent
	FocalStrength() float32

	// SpecularIntensity returns the specular term multiplier. Zero disables highlights.
	//
	// Returns:
	//   - float32: the multiplier
	SpecularIntensity() float32

	// Enabled returns whether this light contributes to shading.
	//
	// Returns:
	//   - bool: true if the light is enabled
	Enabled() bool

	// SetPosition sets the world-space position of the light.
	//
	// Parameters:
	//   - x, y, z: position components
	SetPosition(x, y, z float32)

	// SetEnabled enables or disables the light.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)

	// Apply writes the light into slot index of the parameter store. A disabled light writes
	// zero colors and intensities so the slot contributes nothing.
	//
	// Parameters:
	//   - store: the parameter store
	//   - index: the light slot in [0, params.MaxLights)
	//
	// Returns:
	//   - error: error if index is out of range
	Apply(store params.Writer, index int) error
}

var _ Light = &lightImpl{}

// NewLight creates a new white point light at the origin with any provided options applied.
//
// Parameters:
//   - opts: variadic list of LightBuilderOption functions to configure the light
//
// Returns:
//   - Light: a new Light instance
func NewLight(opts ...LightBuilderOption) Light {
	l := &lightImpl{
		diffuseColor:  mgl32.Vec3{1, 1, 1},
		specularColor: mgl32.Vec3{1, 1, 1},
		focalStrength: 32.0,
		enabled:       true,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *lightImpl) Position() mgl32.Vec3 {
	return l.position
}

func (l *lightImpl) AmbientColor() mgl32.Vec3 {
	return l.ambientColor
}

func (l *lightImpl) DiffuseColor() mgl32.Vec3 {
	return l.diffuseColor
}

func (l *lightImpl) SpecularColor() mgl32.Vec3 {
	return l.specularColor
}

func (l *lightImpl) FocalStrength() float32 {
	return l.focalStrength
}

func (l *lightImpl) SpecularIntensity() float32 {
	return l.specularIntensity
}

func (l *lightImpl) Enabled() bool {
	return l.enabled
}

func (l *lightImpl) SetPosition(x, y, z float32) {
	l.position = mgl32.Vec3{x, y, z}
}

func (l *lightImpl) SetEnabled(enabled bool) {
	l.enabled = enabled
}

func (l *lightImpl) Apply(store params.Writer, index int) error {
	if index < 0 || index >= params.MaxLights {
		return fmt.Errorf("light: slot %d out of range [0, %d)", index, params.MaxLights)
	}

	store.SetVec3(params.LightKey(index, params.LightPosition), l.position)
	store.SetFloat(params.LightKey(index, params.LightFocalStrength), l.focalStrength)
	if !l.enabled {
		store.SetVec3(params.LightKey(index, params.LightAmbientColor), mgl32.Vec3{})
		store.SetVec3(params.LightKey(index, params.LightDiffuseColor), mgl32.Vec3{})
		store.SetVec3(params.LightKey(index, params.LightSpecularColor), mgl32.Vec3{})
		store.SetFloat(params.LightKey(index, params.LightSpecularIntensity), 0)
		return nil
	}

	store.SetVec3(params.LightKey(index, params.LightAmbientColor), l.ambientColor)
	store.SetVec3(params.LightKey(index, params.LightDiffuseColor), l.diffuseColor)
	store.SetVec3(params.LightKey(index, params.LightSpecularColor), l.specularColor)
	store.SetFloat(params.LightKey(index, params.LightSpecularIntensity), l.specularIntensity)
	return nil
}

// ApplyAll writes lights into consecutive slots starting at 0 and disables the remaining slots.
//
// Parameters:
//   - store: the parameter store
//   - lights: at most params.MaxLights lights
//
// Returns:
//   - error: error if more lights are given than there are slots
func ApplyAll(store params.Writer, lights []Light) error {
	if len(lights) > params.MaxLights {
		return fmt.Errorf("light: %d lights exceed the %d available slots", len(lights), params.MaxLights)
	}
	for i, l := range lights {
		if err := l.Apply(store, i); err != nil {
			return err
		}
	}
	off := NewLight(WithEnabled(false))
	for i := len(lights); i < params.MaxLights; i++ {
		_ = off.Apply(store, i)
	}
	return nil
}
