package pipeline

import (
	"github.com/Carmen-Shannon/oxy-monument/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// pipeline is the implementation of the Pipeline interface.
type pipeline struct {
	pipelineKey string
	shader      shader.Shader

	// GPU objects populated by the renderer backend on registration.
	renderPipeline   *wgpu.RenderPipeline
	bindGroupLayouts []*wgpu.BindGroupLayout

	// dynamicGroups lists the bind groups whose buffer bindings use dynamic offsets.
	dynamicGroups map[int]bool

	depthTestEnabled  bool
	depthWriteEnabled bool
	blendEnabled      bool
	cullMode          wgpu.CullMode
	topology          wgpu.PrimitiveTopology
	frontFace         wgpu.FrontFace
	writeMask         wgpu.ColorWriteMask
	blendState        *wgpu.BlendState
}

// Pipeline describes a render pipeline: the shader program it runs and the fixed-function
// state the renderer backend uses when creating the GPU pipeline.
type Pipeline interface {
	// PipelineKey returns the unique identifier of this pipeline.
	//
	// Returns:
	//   - string: the pipeline key
	PipelineKey() string

	// Shader returns the validated program containing both the vertex and fragment entry points.
	//
	// Returns:
	//   - shader.Shader: the shader
	Shader() shader.Shader

	// RenderPipeline returns the created GPU pipeline, or nil before registration.
	//
	// Returns:
	//   - *wgpu.RenderPipeline: the GPU pipeline or nil
	RenderPipeline() *wgpu.RenderPipeline

	// BindGroupLayout returns the created layout for a group index, or nil before registration.
	//
	// Parameters:
	//   - group: the @group index
	//
	// Returns:
	//   - *wgpu.BindGroupLayout: the layout or nil
	BindGroupLayout(group int) *wgpu.BindGroupLayout

	// LayoutDescriptors returns the shader's bind group layout descriptors with dynamic offsets
	// enabled on the buffer bindings of every dynamic group.
	//
	// Returns:
	//   - map[int]wgpu.BindGroupLayoutDescriptor: descriptors keyed by group index
	LayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor

	// DynamicGroup reports whether buffer bindings in the group use dynamic offsets.
	//
	// Parameters:
	//   - group: the @group index
	//
	// Returns:
	//   - bool: true when the group was configured with WithDynamicGroup
	DynamicGroup(group int) bool

	DepthTestEnabled() bool
	DepthWriteEnabled() bool
	BlendEnabled() bool
	CullMode() wgpu.CullMode
	Topology() wgpu.PrimitiveTopology
	FrontFace() wgpu.FrontFace
	WriteMask() wgpu.ColorWriteMask
	BlendState() *wgpu.BlendState

	// SetRenderPipeline stores the GPU pipeline and the layouts it was created with.
	// Called by the renderer backend during registration.
	//
	// Parameters:
	//   - rp: the created render pipeline
	//   - layouts: the created bind group layouts, indexed by group
	SetRenderPipeline(rp *wgpu.RenderPipeline, layouts []*wgpu.BindGroupLayout)

	// Release releases the GPU pipeline and its bind group layouts.
	Release()
}

var _ Pipeline = &pipeline{}

// NewPipeline creates a render Pipeline for the given shader with depth testing on, no culling,
// triangle lists and counter-clockwise front faces unless overridden by options.
//
// Parameters:
//   - pipelineKey: the unique identifier for the pipeline
//   - s: the validated shader program
//   - opts: variadic list of PipelineBuilderOption functions
//
// Returns:
//   - Pipeline: the configured pipeline
func NewPipeline(pipelineKey string, s shader.Shader, opts ...PipelineBuilderOption) Pipeline {
	if s == nil {
		panic("pipeline: shader must not be nil")
	}
	p := &pipeline{
		pipelineKey:       pipelineKey,
		shader:            s,
		dynamicGroups:     make(map[int]bool),
		depthTestEnabled:  true,
		depthWriteEnabled: true,
		cullMode:          wgpu.CullModeNone,
		topology:          wgpu.PrimitiveTopologyTriangleList,
		frontFace:         wgpu.FrontFaceCCW,
		writeMask:         wgpu.ColorWriteMaskAll,
		blendState: &wgpu.BlendState{
			Color: wgpu.BlendComponent{
				SrcFactor: wgpu.BlendFactorSrcAlpha,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
				Operation: wgpu.BlendOperationAdd,
			},
			Alpha: wgpu.BlendComponent{
				SrcFactor: wgpu.BlendFactorOne,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
				Operation: wgpu.BlendOperationAdd,
			},
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *pipeline) PipelineKey() string {
	return p.pipelineKey
}

func (p *pipeline) Shader() shader.Shader {
	return p.shader
}

func (p *pipeline) RenderPipeline() *wgpu.RenderPipeline {
	return p.renderPipeline
}

func (p *pipeline) BindGroupLayout(group int) *wgpu.BindGroupLayout {
	if group < 0 || group >= len(p.bindGroupLayouts) {
		return nil
	}
	return p.bindGroupLayouts[group]
}

func (p *pipeline) LayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor {
	src := p.shader.BindGroupLayoutDescriptors()
	out := make(map[int]wgpu.BindGroupLayoutDescriptor, len(src))
	for group, desc := range src {
		if !p.dynamicGroups[group] {
			out[group] = desc
			continue
		}
		entries := make([]wgpu.BindGroupLayoutEntry, len(desc.Entries))
		copy(entries, desc.Entries)
		for i := range entries {
			if entries[i].Buffer.Type != wgpu.BufferBindingTypeUndefined {
				entries[i].Buffer.HasDynamicOffset = true
			}
		}
		out[group] = wgpu.BindGroupLayoutDescriptor{Label: desc.Label, Entries: entries}
	}
	return out
}

func (p *pipeline) DynamicGroup(group int) bool {
	return p.dynamicGroups[group]
}

func (p *pipeline) DepthTestEnabled() bool {
	return p.depthTestEnabled
}

func (p *pipeline) DepthWriteEnabled() bool {
	return p.depthWriteEnabled
}

func (p *pipeline) BlendEnabled() bool {
	return p.blendEnabled
}

func (p *pipeline) CullMode() wgpu.CullMode {
	return p.cullMode
}

func (p *pipeline) Topology() wgpu.PrimitiveTopology {
	return p.topology
}

func (p *pipeline) FrontFace() wgpu.FrontFace {
	return p.frontFace
}

func (p *pipeline) WriteMask() wgpu.ColorWriteMask {
	return p.writeMask
}

func (p *pipeline) BlendState() *wgpu.BlendState {
	return p.blendState
}

func (p *pipeline) SetRenderPipeline(rp *wgpu.RenderPipeline, layouts []*wgpu.BindGroupLayout) {
	p.renderPipeline = rp
	p.bindGroupLayouts = layouts
}

func (p *pipeline) Release() {
	if p.renderPipeline != nil {
		p.renderPipeline.Release()
		p.renderPipeline = nil
	}
	for i, layout := range p.bindGroupLayouts {
		if layout != nil {
			layout.Release()
			p.bindGroupLayouts[i] = nil
		}
	}
	p.bindGroupLayouts = nil
}
