package bind_group_provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewBindGroupProvider_Empty(t *testing.T) {
	p := NewBindGroupProvider("mesh:box")

	assert.Equal(t, "mesh:box", p.Label())
	assert.Nil(t, p.BindGroup())
	assert.Nil(t, p.Buffer(0))
	assert.Nil(t, p.Texture(0))
	assert.Nil(t, p.TextureView(0))
	assert.Nil(t, p.Sampler(0))
	assert.Nil(t, p.VertexBuffer())
	assert.Nil(t, p.IndexBuffer())
	assert.Zero(t, p.IndexCount())
}

func TestSetMeshBuffers_IndexCount(t *testing.T) {
	p := NewBindGroupProvider("mesh:plane")
	p.SetMeshBuffers(nil, nil, 6)
	assert.Equal(t, 6, p.IndexCount())
}

func TestRelease_WithoutGPUObjects(t *testing.T) {
	p := NewBindGroupProvider("texture:stone", WithBuffer(0, nil), WithSampler(1, nil))
	p.SetTexture(0, nil, nil)
	p.SetMeshBuffers(nil, nil, 36)

	assert.NotPanics(t, p.Release)
	assert.NotPanics(t, p.Release)
	assert.Zero(t, p.IndexCount())
}
