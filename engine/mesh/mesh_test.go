package mesh

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildAll(t *testing.T) map[Kind]*Mesh {
	t.Helper()
	p := NewProvider(WithTorusSegments(16, 8), WithCylinderSegments(12))
	out := map[Kind]*Mesh{}
	for _, kind := range Kinds {
		m, err := p.Build(kind)
		require.NoError(t, err, kind.String())
		out[kind] = m
	}
	return out
}

func TestBuildUnknownKind(t *testing.T) {
	_, err := NewProvider().Build(Kind(42))
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestKindNames(t *testing.T) {
	assert.Equal(t, "plane", KindPlane.String())
	assert.Equal(t, "tapered_cylinder", KindTaperedCylinder.String())
	assert.Equal(t, "Kind(9)", Kind(9).String())
	assert.Len(t, Kinds, int(kindCount))
}

func TestMeshesAreWellFormed(t *testing.T) {
	for kind, m := range buildAll(t) {
		require.NotEmpty(t, m.Vertices, kind.String())
		require.Zero(t, len(m.Indices)%3, kind.String())
		assert.Equal(t, kind, m.Kind)

		for _, idx := range m.Indices {
			require.Less(t, int(idx), len(m.Vertices), kind.String())
		}
		for _, v := range m.Vertices {
			assert.InDelta(t, 1, v.Normal.Len(), 1e-4, kind.String())
		}
		for i := 0; i < len(m.Indices); i += 3 {
			a, b, c := m.Vertices[m.Indices[i]], m.Vertices[m.Indices[i+1]], m.Vertices[m.Indices[i+2]]
			face := b.Position.Sub(a.Position).Cross(c.Position.Sub(a.Position))
			assert.GreaterOrEqual(t, face.Dot(a.Normal), float32(0), "%s triangle %d faces away from its normal", kind, i/3)
		}
	}
}

func TestShapeExtents(t *testing.T) {
	meshes := buildAll(t)

	bounds := func(m *Mesh) (lo, hi mgl32.Vec3) {
		lo = mgl32.Vec3{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32}
		hi = lo.Mul(-1)
		for _, v := range m.Vertices {
			for i := 0; i < 3; i++ {
				lo[i] = min(lo[i], v.Position[i])
				hi[i] = max(hi[i], v.Position[i])
			}
		}
		return lo, hi
	}

	lo, hi := bounds(meshes[KindPlane])
	assert.Equal(t, mgl32.Vec3{-1, 0, -1}, lo)
	assert.Equal(t, mgl32.Vec3{1, 0, 1}, hi)
	assert.Len(t, meshes[KindPlane].Indices, 6)

	lo, hi = bounds(meshes[KindBox])
	assert.Equal(t, mgl32.Vec3{-0.5, -0.5, -0.5}, lo)
	assert.Equal(t, mgl32.Vec3{0.5, 0.5, 0.5}, hi)
	assert.Len(t, meshes[KindBox].Vertices, 24)
	assert.Len(t, meshes[KindBox].Indices, 36)

	lo, hi = bounds(meshes[KindTorus])
	assert.InDelta(t, 1.2, hi.X(), 1e-4)
	assert.InDelta(t, -1.2, lo.Y(), 1e-4)
	assert.InDelta(t, 0.2, hi.Z(), 1e-4)

	lo, hi = bounds(meshes[KindTaperedCylinder])
	assert.InDelta(t, 0, lo.Y(), 1e-6)
	assert.InDelta(t, 1, hi.Y(), 1e-6)
	assert.InDelta(t, 1, hi.X(), 1e-6)

	lo, hi = bounds(meshes[KindPrism])
	assert.Equal(t, mgl32.Vec3{-0.5, -0.5, -0.5}, lo)
	assert.Equal(t, mgl32.Vec3{0.5, 0.5, 0.5}, hi)
	assert.Len(t, meshes[KindPrism].Indices, 2*3+3*6)
}

func TestMarshalLayout(t *testing.T) {
	m, err := NewProvider().Build(KindPlane)
	require.NoError(t, err)

	data := m.VertexData()
	require.Len(t, data, len(m.Vertices)*VertexSize)
	v := m.Vertices[1]
	assert.Equal(t, v.Marshal(), data[VertexSize:2*VertexSize])
	assert.Equal(t, math.Float32bits(v.Normal.Y()), binary.LittleEndian.Uint32(data[VertexSize+16:VertexSize+20]))

	indices := m.IndexData()
	require.Len(t, indices, m.IndexCount()*4)
	assert.Equal(t, m.Indices[2], binary.LittleEndian.Uint32(indices[8:12]))
}

func TestTorusRadii(t *testing.T) {
	m, err := NewProvider(WithTorusRadii(2, 0.5), WithTorusSegments(16, 8)).Build(KindTorus)
	require.NoError(t, err)

	var maxX, maxZ float32
	for _, v := range m.Vertices {
		maxX = max(maxX, v.Position.X())
		maxZ = max(maxZ, v.Position.Z())
	}
	assert.InDelta(t, 2.5, maxX, 1e-4)
	assert.InDelta(t, 0.5, maxZ, 1e-4)
}
