// Package mesh generates the primitive shapes the scene is composed from.
//
// Every shape is built around the origin in model space: the plane spans [-1, 1] on X and Z, the box,
// prism and tapered cylinder fit the unit cube, and the torus lies in the XY plane. Scene objects
// scale, rotate and translate these primitives into place.
package mesh

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Kind identifies one of the primitive shapes.
type Kind int

const (
	KindPlane Kind = iota
	KindBox
	KindTorus
	KindTaperedCylinder
	KindPrism

	kindCount
)

// Kinds lists every primitive shape.
var Kinds = []Kind{KindPlane, KindBox, KindTorus, KindTaperedCylinder, KindPrism}

var kindNames = [...]string{
	KindPlane:           "plane",
	KindBox:             "box",
	KindTorus:           "torus",
	KindTaperedCylinder: "tapered_cylinder",
	KindPrism:           "prism",
}

func (k Kind) String() string {
	if k >= 0 && k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ErrUnknownKind is returned when a shape is requested that the provider cannot build.
var ErrUnknownKind = errors.New("mesh: unknown kind")

// VertexSize is the byte stride of a marshaled Vertex.
const VertexSize = 32

// Vertex is the GPU vertex layout shared by every primitive.
// Matches the WGSL VertexInput struct layout exactly (32 bytes).
type Vertex struct {
	Position mgl32.Vec3 // offset  0: model-space position
	Normal   mgl32.Vec3 // offset 12: unit surface normal
	TexCoord mgl32.Vec2 // offset 24: UV coordinate
}

// Size returns the size of the Vertex struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes (32)
func (v *Vertex) Size() int {
	return VertexSize
}

// Marshal serializes the Vertex into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 32-byte buffer ready for GPU upload
func (v *Vertex) Marshal() []byte {
	buf := make([]byte, VertexSize)
	v.marshalInto(buf)
	return buf
}

func (v *Vertex) marshalInto(buf []byte) {
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(v.Position[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(v.Position[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(v.Position[2]))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(v.Normal[0]))
	binary.LittleEndian.PutUint32(buf[16:20], math.Float32bits(v.Normal[1]))
	binary.LittleEndian.PutUint32(buf[20:24], math.Float32bits(v.Normal[2]))
	binary.LittleEndian.PutUint32(buf[24:28], math.Float32bits(v.TexCoord[0]))
	binary.LittleEndian.PutUint32(buf[28:32], math.Float32bits(v.TexCoord[1]))
}

// Mesh is an indexed triangle list. Triangles are wound counter-clockwise when viewed from the side
// their vertex normals point to.
type Mesh struct {
	Kind     Kind
	Vertices []Vertex
	Indices  []uint32
}

// VertexData returns the vertices marshaled back to back.
//
// Returns:
//   - []byte: len(Vertices) * VertexSize bytes
func (m *Mesh) VertexData() []byte {
	buf := make([]byte, len(m.Vertices)*VertexSize)
	for i := range m.Vertices {
		m.Vertices[i].marshalInto(buf[i*VertexSize : (i+1)*VertexSize])
	}
	return buf
}

// IndexData returns the indices as little-endian uint32 values.
//
// Returns:
//   - []byte: len(Indices) * 4 bytes
func (m *Mesh) IndexData() []byte {
	buf := make([]byte, len(m.Indices)*4)
	for i, idx := range m.Indices {
		binary.LittleEndian.PutUint32(buf[i*4:i*4+4], idx)
	}
	return buf
}

// IndexCount returns the number of indices to draw.
func (m *Mesh) IndexCount() int {
	return len(m.Indices)
}

// vertex appends a vertex and returns its index.
func (m *Mesh) vertex(position, normal mgl32.Vec3, uv mgl32.Vec2) uint32 {
	m.Vertices = append(m.Vertices, Vertex{Position: position, Normal: normal, TexCoord: uv})
	return uint32(len(m.Vertices) - 1)
}

// triangle appends a triangle, flipping its winding if needed so that it faces the same way as the
// normal of its first vertex.
func (m *Mesh) triangle(a, b, c uint32) {
	pa, pb, pc := m.Vertices[a].Position, m.Vertices[b].Position, m.Vertices[c].Position
	if pb.Sub(pa).Cross(pc.Sub(pa)).Dot(m.Vertices[a].Normal) < 0 {
		b, c = c, b
	}
	m.Indices = append(m.Indices, a, b, c)
}

// quad appends the rectangle center ± u ± v facing normal, with UVs spanning [0, 1].
func (m *Mesh) quad(center, u, v, normal mgl32.Vec3) {
	i0 := m.vertex(center.Sub(u).Sub(v), normal, mgl32.Vec2{0, 0})
	i1 := m.vertex(center.Add(u).Sub(v), normal, mgl32.Vec2{1, 0})
	i2 := m.vertex(center.Add(u).Add(v), normal, mgl32.Vec2{1, 1})
	i3 := m.vertex(center.Sub(u).Add(v), normal, mgl32.Vec2{0, 1})
	m.triangle(i0, i1, i2)
	m.triangle(i0, i2, i3)
}
