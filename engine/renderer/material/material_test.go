package material

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestNewAppliesOptions(t *testing.T) {
	m := New("torus",
		WithAmbient(mgl32.Vec3{0.1, 0.1, 0.1}, 0.1),
		WithDiffuseColor(mgl32.Vec3{0.3, 0.7, 0.5}),
		WithSpecularColor(mgl32.Vec3{0.2, 0.3, 0.4}),
		WithShininess(0.7),
	)

	assert.Equal(t, Material{
		Tag:             "torus",
		AmbientColor:    mgl32.Vec3{0.1, 0.1, 0.1},
		AmbientStrength: 0.1,
		DiffuseColor:    mgl32.Vec3{0.3, 0.7, 0.5},
		SpecularColor:   mgl32.Vec3{0.2, 0.3, 0.4},
		Shininess:       0.7,
	}, m)
}

func TestLookupEmptyRegistry(t *testing.T) {
	r := NewRegistry()
	m, ok := r.Lookup("box1")
	assert.False(t, ok)
	assert.Equal(t, Material{}, m)
	assert.Equal(t, 0, r.Len())
}

func TestLookupFirstMatchWins(t *testing.T) {
	r := NewRegistry()
	r.Define(New("box1", WithShininess(0.5)))
	r.Define(New("prism", WithShininess(0.6)))
	r.Define(New("box1", WithShininess(0.9)))

	m, ok := r.Lookup("box1")
	assert.True(t, ok)
	assert.Equal(t, float32(0.5), m.Shininess)

	_, ok = r.Lookup("torus")
	assert.False(t, ok)
	assert.Equal(t, 3, r.Len())
}

func TestMaterialsReturnsCopy(t *testing.T) {
	r := NewRegistry()
	r.Define(New("ground"))

	list := r.Materials()
	list[0].Tag = "changed"

	_, ok := r.Lookup("ground")
	assert.True(t, ok)
}
