package shader

import (
	_ "embed"
	"errors"
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gogpu/naga"
	"github.com/gogpu/naga/ir"
)

// PhongSource is the WGSL program used to draw every scene object.
//
//go:embed assets/phong.wgsl
var PhongSource string

// ErrInvalidShader is returned when WGSL source fails to parse, lower or validate.
var ErrInvalidShader = errors.New("invalid shader source")

// ErrMissingEntryPoint is returned when a render shader lacks a @vertex or @fragment entry point.
var ErrMissingEntryPoint = errors.New("shader is missing a render entry point")

// shader is the implementation of the Shader interface.
// It holds the validated source together with the layouts reflected from its IR.
type shader struct {
	key                        string
	source                     string
	vertexEntryPoint           string
	fragmentEntryPoint         string
	bindGroupLayoutDescriptors map[int]wgpu.BindGroupLayoutDescriptor
	bindingVarNames            map[int]map[int]string
	vertexLayouts              []wgpu.VertexBufferLayout
	module                     *wgpu.ShaderModuleDescriptor
}

// Shader defines the interface for a validated WGSL render program. It exposes the program's
// entry points, bind group layout descriptors and vertex buffer layouts needed for pipeline creation.
type Shader interface {
	// Key retrieves the unique identifier for this shader.
	//
	// Returns:
	//   - string: the shader's unique key
	Key() string

	// Source retrieves the WGSL shader source code.
	//
	// Returns:
	//   - string: the WGSL source code of the shader
	Source() string

	// VertexEntryPoint returns the name of the @vertex function.
	//
	// Returns:
	//   - string: the vertex entry point name (e.g. "vs_main")
	VertexEntryPoint() string

	// FragmentEntryPoint returns the name of the @fragment function.
	//
	// Returns:
	//   - string: the fragment entry point name (e.g. "fs_main")
	FragmentEntryPoint() string

	// BindGroupLayoutDescriptor retrieves the bind group layout descriptor for a group index.
	//
	// Parameters:
	//   - group: the @group index
	//
	// Returns:
	//   - wgpu.BindGroupLayoutDescriptor: the descriptor, or an empty descriptor if the group is unused
	BindGroupLayoutDescriptor(group int) wgpu.BindGroupLayoutDescriptor

	// BindGroupLayoutDescriptors retrieves every reflected bind group layout descriptor.
	// The renderer creates the wgpu.BindGroupLayout GPU objects from these.
	//
	// Returns:
	//   - map[int]wgpu.BindGroupLayoutDescriptor: descriptors keyed by group index
	BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor

	// BindGroupVarName retrieves the variable name declared at a group and binding index.
	//
	// Parameters:
	//   - group: the bind group index
	//   - binding: the binding index within the group
	//
	// Returns:
	//   - string: the variable name, or an empty string if not found
	BindGroupVarName(group, binding int) string

	// BindGroupFromVarName retrieves the binding index for a variable name within a group.
	//
	// Parameters:
	//   - group: the bind group index
	//   - varName: the variable name within the group
	//
	// Returns:
	//   - int: the binding index, or -1 if not found
	//   - bool: true if the variable name was found
	BindGroupFromVarName(group int, varName string) (int, bool)

	// VertexLayouts retrieves the vertex buffer layouts consumed by the vertex entry point.
	//
	// Returns:
	//   - []wgpu.VertexBufferLayout: one layout per vertex buffer slot
	VertexLayouts() []wgpu.VertexBufferLayout

	// Module returns the wgpu.ShaderModuleDescriptor built from the validated source.
	//
	// Returns:
	//   - *wgpu.ShaderModuleDescriptor: the descriptor containing the WGSL code and label
	Module() *wgpu.ShaderModuleDescriptor
}

var _ Shader = &shader{}

// NewShader validates WGSL source and reflects its layouts.
// The source must declare exactly one @vertex and one @fragment entry point.
//
// Parameters:
//   - key: a unique identifier for the shader, used as the module label
//   - source: the WGSL source code
//
// Returns:
//   - Shader: the validated shader
//   - error: ErrInvalidShader or ErrMissingEntryPoint wrapped with detail
func NewShader(key, source string) (Shader, error) {
	module, err := Validate(source)
	if err != nil {
		return nil, fmt.Errorf("shader %s: %w", key, err)
	}

	s := &shader{
		key:    key,
		source: source,
		module: &wgpu.ShaderModuleDescriptor{
			Label: key,
			WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
				Code: source,
			},
		},
	}

	vertex, ok := findEntryPoint(module, ir.StageVertex)
	if !ok {
		return nil, fmt.Errorf("shader %s: %w: no @vertex function", key, ErrMissingEntryPoint)
	}
	fragment, ok := findEntryPoint(module, ir.StageFragment)
	if !ok {
		return nil, fmt.Errorf("shader %s: %w: no @fragment function", key, ErrMissingEntryPoint)
	}
	s.vertexEntryPoint = vertex.Name
	s.fragmentEntryPoint = fragment.Name

	s.vertexLayouts, err = reflectVertexLayouts(module, vertex)
	if err != nil {
		return nil, fmt.Errorf("shader %s: %w", key, err)
	}
	s.bindGroupLayoutDescriptors, s.bindingVarNames, err = reflectBindGroupLayouts(key, module)
	if err != nil {
		return nil, fmt.Errorf("shader %s: %w", key, err)
	}
	return s, nil
}

// Validate parses, lowers and validates WGSL source with naga.
//
// Parameters:
//   - source: the WGSL source code
//
// Returns:
//   - *ir.Module: the lowered module
//   - error: ErrInvalidShader joined with every reported problem
func Validate(source string) (*ir.Module, error) {
	ast, err := naga.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidShader, err)
	}
	module, err := naga.LowerWithSource(ast, source)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidShader, err)
	}
	problems, err := naga.Validate(module)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidShader, err)
	}
	if len(problems) > 0 {
		errs := make([]error, 0, len(problems)+1)
		errs = append(errs, ErrInvalidShader)
		for _, p := range problems {
			errs = append(errs, p)
		}
		return nil, errors.Join(errs...)
	}
	return module, nil
}

func (s *shader) Key() string {
	return s.key
}

func (s *shader) Source() string {
	return s.source
}

func (s *shader) VertexEntryPoint() string {
	return s.vertexEntryPoint
}

func (s *shader) FragmentEntryPoint() string {
	return s.fragmentEntryPoint
}

func (s *shader) BindGroupLayoutDescriptor(group int) wgpu.BindGroupLayoutDescriptor {
	return s.bindGroupLayoutDescriptors[group]
}

func (s *shader) BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor {
	return s.bindGroupLayoutDescriptors
}

func (s *shader) BindGroupVarName(group, binding int) string {
	if s.bindingVarNames[group] == nil {
		return ""
	}
	return s.bindingVarNames[group][binding]
}

func (s *shader) BindGroupFromVarName(group int, varName string) (int, bool) {
	if s.bindingVarNames[group] == nil {
		return -1, false
	}
	for binding, name := range s.bindingVarNames[group] {
		if name == varName {
			return binding, true
		}
	}
	return -1, false
}

func (s *shader) VertexLayouts() []wgpu.VertexBufferLayout {
	return s.vertexLayouts
}

func (s *shader) Module() *wgpu.ShaderModuleDescriptor {
	return s.module
}
