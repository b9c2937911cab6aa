package mesh

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// provider is the implementation of the Provider interface.
type provider struct {
	torusMainSegments int
	torusTubeSegments int
	torusMainRadius   float32
	torusTubeRadius   float32
	cylinderSegments  int
}

// Provider builds primitive meshes on the CPU.
type Provider interface {
	// Build generates the mesh for kind.
	//
	// Parameters:
	//   - kind: the primitive shape
	//
	// Returns:
	//   - *Mesh: the generated mesh
	//   - error: wraps ErrUnknownKind if kind is not a primitive shape
	Build(kind Kind) (*Mesh, error)
}

var _ Provider = &provider{}

// NewProvider creates a mesh provider with default tessellation.
//
// Parameters:
//   - options: functional options
//
// Returns:
//   - Provider: the provider
func NewProvider(options ...ProviderBuilderOption) Provider {
	p := &provider{
		torusMainSegments: 48,
		torusTubeSegments: 24,
		torusMainRadius:   1.0,
		torusTubeRadius:   0.2,
		cylinderSegments:  36,
	}
	for _, option := range options {
		option(p)
	}
	return p
}

func (p *provider) Build(kind Kind) (*Mesh, error) {
	m := &Mesh{Kind: kind}
	switch kind {
	case KindPlane:
		buildPlane(m)
	case KindBox:
		buildBox(m)
	case KindTorus:
		buildTorus(m, p.torusMainRadius, p.torusTubeRadius, p.torusMainSegments, p.torusTubeSegments)
	case KindTaperedCylinder:
		buildTaperedCylinder(m, 1.0, 0.5, 1.0, p.cylinderSegments)
	case KindPrism:
		buildPrism(m)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownKind, kind)
	}
	return m, nil
}

// buildPlane spans [-1, 1] on X and Z at y = 0, facing +Y.
func buildPlane(m *Mesh) {
	m.quad(mgl32.Vec3{}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0})
}

// buildBox spans [-0.5, 0.5] on every axis with one quad per face.
func buildBox(m *Mesh) {
	faces := []struct{ normal, u, v mgl32.Vec3 }{
		{mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}},
		{mgl32.Vec3{0, -1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, 1}},
		{mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{0, 0, -1}, mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 1, 0}},
	}
	for _, f := range faces {
		m.quad(f.normal.Mul(0.5), f.u.Mul(0.5), f.v.Mul(0.5), f.normal)
	}
}

// buildTorus lies in the XY plane around the Z axis.
func buildTorus(m *Mesh, mainRadius, tubeRadius float32, mainSegments, tubeSegments int) {
	for i := 0; i <= mainSegments; i++ {
		theta := 2 * math32.Pi * float32(i) / float32(mainSegments)
		cosTheta, sinTheta := math32.Cos(theta), math32.Sin(theta)
		for j := 0; j <= tubeSegments; j++ {
			phi := 2 * math32.Pi * float32(j) / float32(tubeSegments)
			cosPhi, sinPhi := math32.Cos(phi), math32.Sin(phi)

			normal := mgl32.Vec3{cosPhi * cosTheta, cosPhi * sinTheta, sinPhi}
			center := mgl32.Vec3{mainRadius * cosTheta, mainRadius * sinTheta, 0}
			uv := mgl32.Vec2{float32(i) / float32(mainSegments), float32(j) / float32(tubeSegments)}
			m.vertex(center.Add(normal.Mul(tubeRadius)), normal, uv)
		}
	}

	stride := uint32(tubeSegments + 1)
	for i := uint32(0); i < uint32(mainSegments); i++ {
		for j := uint32(0); j < uint32(tubeSegments); j++ {
			a := i*stride + j
			b := (i+1)*stride + j
			c := (i+1)*stride + j + 1
			d := i*stride + j + 1
			m.triangle(a, b, c)
			m.triangle(a, c, d)
		}
	}
}

// buildTaperedCylinder stands on y = 0 and rises to y = height, narrowing from bottomRadius to topRadius.
// Both ends are capped.
func buildTaperedCylinder(m *Mesh, bottomRadius, topRadius, height float32, segments int) {
	slope := (bottomRadius - topRadius) / height
	sideStart := uint32(len(m.Vertices))
	for i := 0; i <= segments; i++ {
		theta := 2 * math32.Pi * float32(i) / float32(segments)
		cosTheta, sinTheta := math32.Cos(theta), math32.Sin(theta)
		normal := mgl32.Vec3{cosTheta, slope, sinTheta}.Normalize()
		u := float32(i) / float32(segments)

		m.vertex(mgl32.Vec3{bottomRadius * cosTheta, 0, bottomRadius * sinTheta}, normal, mgl32.Vec2{u, 0})
		m.vertex(mgl32.Vec3{topRadius * cosTheta, height, topRadius * sinTheta}, normal, mgl32.Vec2{u, 1})
	}
	for i := uint32(0); i < uint32(segments); i++ {
		bottom, top := sideStart+i*2, sideStart+i*2+1
		nextBottom, nextTop := bottom+2, top+2
		m.triangle(bottom, nextTop, nextBottom)
		m.triangle(bottom, top, nextTop)
	}

	addCap := func(radius, y float32, normal mgl32.Vec3) {
		center := m.vertex(mgl32.Vec3{0, y, 0}, normal, mgl32.Vec2{0.5, 0.5})
		ringStart := uint32(len(m.Vertices))
		for i := 0; i <= segments; i++ {
			theta := 2 * math32.Pi * float32(i) / float32(segments)
			cosTheta, sinTheta := math32.Cos(theta), math32.Sin(theta)
			m.vertex(mgl32.Vec3{radius * cosTheta, y, radius * sinTheta}, normal,
				mgl32.Vec2{0.5 + 0.5*cosTheta, 0.5 + 0.5*sinTheta})
		}
		for i := uint32(0); i < uint32(segments); i++ {
			m.triangle(center, ringStart+i, ringStart+i+1)
		}
	}
	addCap(bottomRadius, 0, mgl32.Vec3{0, -1, 0})
	addCap(topRadius, height, mgl32.Vec3{0, 1, 0})
}

// buildPrism extrudes the triangle with base (±0.5, -0.5) and apex (0, 0.5) along Z over [-0.5, 0.5].
func buildPrism(m *Mesh) {
	baseLeft := mgl32.Vec2{-0.5, -0.5}
	baseRight := mgl32.Vec2{0.5, -0.5}
	apex := mgl32.Vec2{0, 0.5}

	for _, z := range []float32{0.5, -0.5} {
		normal := mgl32.Vec3{0, 0, z * 2}
		a := m.vertex(mgl32.Vec3{baseLeft.X(), baseLeft.Y(), z}, normal, mgl32.Vec2{0, 0})
		b := m.vertex(mgl32.Vec3{baseRight.X(), baseRight.Y(), z}, normal, mgl32.Vec2{1, 0})
		c := m.vertex(mgl32.Vec3{apex.X(), apex.Y(), z}, normal, mgl32.Vec2{0.5, 1})
		m.triangle(a, b, c)
	}

	sides := [][2]mgl32.Vec2{{baseLeft, baseRight}, {baseRight, apex}, {apex, baseLeft}}
	for _, side := range sides {
		from, to := side[0], side[1]
		edge := to.Sub(from)
		normal := mgl32.Vec3{edge.Y(), -edge.X(), 0}.Normalize()
		mid := from.Add(to).Mul(0.5)
		m.quad(mgl32.Vec3{mid.X(), mid.Y(), 0}, mgl32.Vec3{edge.X() * 0.5, edge.Y() * 0.5, 0}, mgl32.Vec3{0, 0, 0.5}, normal)
	}
}
