package shader

import (
	"fmt"
	"slices"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gogpu/naga/ir"
)

// vertexFormatInfo holds the wgpu vertex format and its byte size for offset calculation
type vertexFormatInfo struct {
	format wgpu.VertexFormat
	size   uint64
}

type vertexFormatKey struct {
	kind  ir.ScalarKind
	width uint8
	size  ir.VectorSize // 1 for scalars
}

// vertexFormats maps 32-bit scalar and vector input types to their vertex formats.
var vertexFormats = map[vertexFormatKey]vertexFormatInfo{
	{ir.ScalarFloat, 4, 1}:       {wgpu.VertexFormatFloat32, 4},
	{ir.ScalarFloat, 4, ir.Vec2}: {wgpu.VertexFormatFloat32x2, 8},
	{ir.ScalarFloat, 4, ir.Vec3}: {wgpu.VertexFormatFloat32x3, 12},
	{ir.ScalarFloat, 4, ir.Vec4}: {wgpu.VertexFormatFloat32x4, 16},
	{ir.ScalarSint, 4, 1}:        {wgpu.VertexFormatSint32, 4},
	{ir.ScalarSint, 4, ir.Vec2}:  {wgpu.VertexFormatSint32x2, 8},
	{ir.ScalarSint, 4, ir.Vec3}:  {wgpu.VertexFormatSint32x3, 12},
	{ir.ScalarSint, 4, ir.Vec4}:  {wgpu.VertexFormatSint32x4, 16},
	{ir.ScalarUint, 4, 1}:        {wgpu.VertexFormatUint32, 4},
	{ir.ScalarUint, 4, ir.Vec2}:  {wgpu.VertexFormatUint32x2, 8},
	{ir.ScalarUint, 4, ir.Vec3}:  {wgpu.VertexFormatUint32x3, 12},
	{ir.ScalarUint, 4, ir.Vec4}:  {wgpu.VertexFormatUint32x4, 16},
}

var textureViewDimensions = map[ir.ImageDimension]wgpu.TextureViewDimension{
	ir.Dim1D:   wgpu.TextureViewDimension1D,
	ir.Dim2D:   wgpu.TextureViewDimension2D,
	ir.Dim3D:   wgpu.TextureViewDimension3D,
	ir.DimCube: wgpu.TextureViewDimensionCube,
}

type vertexInput struct {
	location uint32
	typ      ir.TypeHandle
}

func findEntryPoint(module *ir.Module, stage ir.ShaderStage) (ir.EntryPoint, bool) {
	for _, ep := range module.EntryPoints {
		if ep.Stage == stage {
			return ep, true
		}
	}
	return ir.EntryPoint{}, false
}

// reflectVertexLayouts builds a single interleaved vertex buffer layout from the @location inputs of
// the vertex entry point. Inputs may be declared directly as arguments or as members of a struct
// argument. Attributes are packed tightly in location order.
//
// Parameters:
//   - module: the lowered shader module
//   - entry: the vertex entry point
//
// Returns:
//   - []wgpu.VertexBufferLayout: the vertex buffer layouts, nil when the entry point takes no vertex inputs
//   - error: error if an input type has no vertex format
func reflectVertexLayouts(module *ir.Module, entry ir.EntryPoint) ([]wgpu.VertexBufferLayout, error) {
	if int(entry.Function) >= len(module.Functions) {
		return nil, fmt.Errorf("vertex entry point %s references missing function %d", entry.Name, entry.Function)
	}
	fn := module.Functions[entry.Function]

	var inputs []vertexInput
	for _, arg := range fn.Arguments {
		if arg.Binding != nil {
			if loc, ok := (*arg.Binding).(ir.LocationBinding); ok {
				inputs = append(inputs, vertexInput{location: loc.Location, typ: arg.Type})
			}
			continue
		}
		st, ok := module.Types[arg.Type].Inner.(ir.StructType)
		if !ok {
			continue
		}
		for _, member := range st.Members {
			if member.Binding == nil {
				continue
			}
			if loc, ok := (*member.Binding).(ir.LocationBinding); ok {
				inputs = append(inputs, vertexInput{location: loc.Location, typ: member.Type})
			}
		}
	}
	if len(inputs) == 0 {
		return nil, nil
	}
	slices.SortFunc(inputs, func(a, b vertexInput) int {
		return int(a.location) - int(b.location)
	})

	attrs := make([]wgpu.VertexAttribute, 0, len(inputs))
	var offset uint64
	for _, in := range inputs {
		info, ok := vertexFormatOf(module.Types[in.typ].Inner)
		if !ok {
			return nil, fmt.Errorf("vertex input at location %d has no vertex format", in.location)
		}
		attrs = append(attrs, wgpu.VertexAttribute{
			Format:         info.format,
			Offset:         offset,
			ShaderLocation: in.location,
		})
		offset += info.size
	}

	return []wgpu.VertexBufferLayout{{
		ArrayStride: offset,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes:  attrs,
	}}, nil
}

func vertexFormatOf(inner ir.TypeInner) (vertexFormatInfo, bool) {
	switch t := inner.(type) {
	case ir.ScalarType:
		info, ok := vertexFormats[vertexFormatKey{t.Kind, t.Width, 1}]
		return info, ok
	case ir.VectorType:
		info, ok := vertexFormats[vertexFormatKey{t.Scalar.Kind, t.Scalar.Width, t.Size}]
		return info, ok
	}
	return vertexFormatInfo{}, false
}

// reflectBindGroupLayouts creates a bind group layout descriptor for every @group used by the
// module's resource variables. Buffers are visible to both render stages, textures and samplers
// to the fragment stage only.
//
// Parameters:
//   - key: the shader key, used to label the descriptors
//   - module: the lowered shader module
//
// Returns:
//   - map[int]wgpu.BindGroupLayoutDescriptor: descriptors keyed by group index, entries ordered by binding
//   - map[int]map[int]string: variable names keyed by group and binding index
//   - error: error if a resource variable has an unsupported type
func reflectBindGroupLayouts(key string, module *ir.Module) (map[int]wgpu.BindGroupLayoutDescriptor, map[int]map[int]string, error) {
	entries := make(map[int][]wgpu.BindGroupLayoutEntry)
	names := make(map[int]map[int]string)

	for _, gv := range module.GlobalVariables {
		if gv.Binding == nil {
			continue
		}
		entry, err := classifyResource(module, gv)
		if err != nil {
			return nil, nil, err
		}
		group := int(gv.Binding.Group)
		entries[group] = append(entries[group], entry)
		if names[group] == nil {
			names[group] = make(map[int]string)
		}
		names[group][int(gv.Binding.Binding)] = gv.Name
	}

	descriptors := make(map[int]wgpu.BindGroupLayoutDescriptor, len(entries))
	for group, groupEntries := range entries {
		slices.SortFunc(groupEntries, func(a, b wgpu.BindGroupLayoutEntry) int {
			return int(a.Binding) - int(b.Binding)
		})
		descriptors[group] = wgpu.BindGroupLayoutDescriptor{
			Label:   fmt.Sprintf("%s_group_%d", key, group),
			Entries: groupEntries,
		}
	}
	return descriptors, names, nil
}

// classifyResource creates a wgpu.BindGroupLayoutEntry from a resource variable's address
// space and type.
//
// Parameters:
//   - module: the lowered shader module
//   - gv: the global variable carrying a @group/@binding pair
//
// Returns:
//   - wgpu.BindGroupLayoutEntry: a fully populated layout entry for the resource
//   - error: error if the variable's type cannot be bound
func classifyResource(module *ir.Module, gv ir.GlobalVariable) (wgpu.BindGroupLayoutEntry, error) {
	entry := wgpu.BindGroupLayoutEntry{
		Binding: gv.Binding.Binding,
	}
	inner := module.Types[gv.Type].Inner

	switch gv.Space {
	case ir.SpaceUniform:
		entry.Visibility = wgpu.ShaderStageVertex | wgpu.ShaderStageFragment
		entry.Buffer.Type = wgpu.BufferBindingTypeUniform
		entry.Buffer.MinBindingSize = bufferSize(inner)
		return entry, nil
	case ir.SpaceStorage:
		entry.Visibility = wgpu.ShaderStageVertex | wgpu.ShaderStageFragment
		entry.Buffer.Type = wgpu.BufferBindingTypeReadOnlyStorage
		entry.Buffer.MinBindingSize = bufferSize(inner)
		return entry, nil
	}

	entry.Visibility = wgpu.ShaderStageFragment
	switch t := inner.(type) {
	case ir.SamplerType:
		if t.Comparison {
			entry.Sampler.Type = wgpu.SamplerBindingTypeComparison
		} else {
			entry.Sampler.Type = wgpu.SamplerBindingTypeFiltering
		}
	case ir.ImageType:
		if t.Class == ir.ImageClassStorage {
			return entry, fmt.Errorf("resource %s: storage textures are not supported", gv.Name)
		}
		entry.Texture.ViewDimension = textureViewDimensions[t.Dim]
		if t.Arrayed {
			switch t.Dim {
			case ir.Dim2D:
				entry.Texture.ViewDimension = wgpu.TextureViewDimension2DArray
			case ir.DimCube:
				entry.Texture.ViewDimension = wgpu.TextureViewDimensionCubeArray
			}
		}
		entry.Texture.Multisampled = t.Multisampled
		if t.Class == ir.ImageClassDepth {
			entry.Texture.SampleType = wgpu.TextureSampleTypeDepth
		} else {
			entry.Texture.SampleType = wgpu.TextureSampleTypeFloat
		}
	default:
		return entry, fmt.Errorf("resource %s: unsupported binding type %T", gv.Name, inner)
	}
	return entry, nil
}

// bufferSize returns the host-shareable size of a buffer's type, or 0 when it has no fixed size.
func bufferSize(inner ir.TypeInner) uint64 {
	switch t := inner.(type) {
	case ir.StructType:
		return uint64(t.Span)
	case ir.ArrayType:
		if t.Size.Constant != nil {
			return uint64(t.Stride) * uint64(*t.Size.Constant)
		}
	case ir.MatrixType:
		if t.Rows == ir.Vec2 {
			return uint64(t.Columns) * 8
		}
		return uint64(t.Columns) * 16
	case ir.VectorType:
		return uint64(t.Size) * uint64(t.Scalar.Width)
	case ir.ScalarType:
		return uint64(t.Width)
	}
	return 0
}
