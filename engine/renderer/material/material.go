// Package material defines Phong surface materials and the tagged registry the scene looks them up in.
package material

import "github.com/go-gl/mathgl/mgl32"

// Material describes how a surface responds to Phong lighting. Materials are plain values and are not
// modified after definition.
type Material struct {
	// Tag is the lookup name.
	Tag string
	// AmbientColor is the surface color under ambient light.
	AmbientColor mgl32.Vec3
	// AmbientStrength scales the ambient term.
	AmbientStrength float32
	// DiffuseColor is the surface color under direct light.
	DiffuseColor mgl32.Vec3
	// SpecularColor tints specular highlights.
	SpecularColor mgl32.Vec3
	// Shininess scales the specular term.
	Shininess float32
}

// New creates a material tagged tag. Unset properties are zero.
//
// Parameters:
//   - tag: the lookup name
//   - options: functional options
//
// Returns:
//   - Material: the material
func New(tag string, options ...MaterialBuilderOption) Material {
	m := Material{Tag: tag}
	for _, option := range options {
		option(&m)
	}
	return m
}

// registry is the implementation of the Registry interface.
type registry struct {
	materials []Material
}

// Registry is an ordered collection of materials looked up by tag.
// Duplicate tags are permitted; lookups return the first definition.
type Registry interface {
	// Define appends a material to the registry.
	//
	// Parameters:
	//   - m: the material
	Define(m Material)

	// Lookup finds the first material defined under tag.
	//
	// Parameters:
	//   - tag: the lookup name
	//
	// Returns:
	//   - Material: the material, or the zero Material
	//   - bool: true if a material is defined under tag
	Lookup(tag string) (Material, bool)

	// Len returns the number of defined materials.
	Len() int

	// Materials returns a copy of the defined materials in definition order.
	Materials() []Material
}

var _ Registry = &registry{}

// NewRegistry creates an empty material registry.
//
// Returns:
//   - Registry: the registry
func NewRegistry() Registry {
	return &registry{}
}

func (r *registry) Define(m Material) {
	r.materials = append(r.materials, m)
}

func (r *registry) Lookup(tag string) (Material, bool) {
	for _, m := range r.materials {
		if m.Tag == tag {
			return m, true
		}
	}
	return Material{}, false
}

func (r *registry) Len() int {
	return len(r.materials)
}

func (r *registry) Materials() []Material {
	out := make([]Material, len(r.materials))
	copy(out, r.materials)
	return out
}
