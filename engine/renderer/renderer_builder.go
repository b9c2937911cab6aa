package renderer

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// RendererBuilderOption is a functional option applied to a renderer during construction via NewRenderer.
type RendererBuilderOption func(*renderer)

// WithPresentMode sets the surface present mode which controls how frames are delivered to the display.
//
// Parameters:
//   - mode: the PresentMode to use (VSync or Uncapped)
//
// Returns:
//   - RendererBuilderOption: a function that applies the present mode option to a renderer
func WithPresentMode(mode PresentMode) RendererBuilderOption {
	return func(r *renderer) {
		r.presentMode = mode
	}
}

// WithMSAA sets the multisample anti-aliasing sample count for the renderer.
// When not specified, the default is MSAA4x. Use MSAAOff to disable MSAA entirely.
// Higher values (MSAA8x, MSAA16x) are adapter-dependent and may not be supported
// by all hardware.
//
// Parameters:
//   - count: the MSAASampleCount to use (MSAAOff, MSAA4x, MSAA8x, or MSAA16x)
//
// Returns:
//   - RendererBuilderOption: a function that applies the MSAA option to a renderer
func WithMSAA(count MSAASampleCount) RendererBuilderOption {
	return func(r *renderer) {
		r.msaa = count
	}
}

// WithForceSoftwareRenderer forces WGPU to use a CPU/software fallback adapter instead of
// hardware GPU acceleration. This requires a software Vulkan ICD to be installed on the system
// (e.g. SwiftShader or lavapipe).
//
// Parameters:
//   - force: true to force the software fallback adapter, false to use hardware (default)
//
// Returns:
//   - RendererBuilderOption: a function that applies the force software renderer option to a renderer
func WithForceSoftwareRenderer(force bool) RendererBuilderOption {
	return func(r *renderer) {
		r.forceFallbackAdapter = force
	}
}

// WithClearColor sets the color the render pass clears to before drawing.
//
// Parameters:
//   - red, green, blue: the color components in [0, 1]
//
// Returns:
//   - RendererBuilderOption: a function that applies the clear color option to a renderer
func WithClearColor(red, green, blue float64) RendererBuilderOption {
	return func(r *renderer) {
		r.clearColor = wgpu.Color{R: red, G: green, B: blue, A: 1.0}
	}
}

// WithMaxObjects sets how many DrawPrimitive calls a single frame can hold.
// Non-positive values keep the default.
//
// Parameters:
//   - n: the maximum number of draws per frame
//
// Returns:
//   - RendererBuilderOption: a function that applies the object limit option to a renderer
func WithMaxObjects(n int) RendererBuilderOption {
	return func(r *renderer) {
		if n > 0 {
			r.maxObjects = n
		}
	}
}

// WithShaderSource replaces the built-in Phong program. The replacement must declare the same
// uniform and texture groups.
//
// Parameters:
//   - key: the pipeline key of the program
//   - source: the WGSL source
//
// Returns:
//   - RendererBuilderOption: a function that applies the shader option to a renderer
func WithShaderSource(key, source string) RendererBuilderOption {
	return func(r *renderer) {
		r.shaderKey = key
		r.shaderSource = source
	}
}

// WithCullMode sets the face culling mode of the pipeline. Defaults to wgpu.CullModeNone.
//
// Parameters:
//   - mode: the wgpu.CullMode to use
//
// Returns:
//   - RendererBuilderOption: a function that applies the cull mode option to a renderer
func WithCullMode(mode wgpu.CullMode) RendererBuilderOption {
	return func(r *renderer) {
		r.cullMode = mode
	}
}
