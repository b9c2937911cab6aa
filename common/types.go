// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// TextureHandle is an opaque identifier for a GPU texture created by a renderer.
// The zero value never refers to a live texture.
type TextureHandle uint64

// InvalidTextureHandle is the zero handle, returned alongside errors.
const InvalidTextureHandle TextureHandle = 0

// DecodedImage is the CPU-side result of decoding an image file.
type DecodedImage struct {
	// Pixels is the tightly packed pixel data, Channels bytes per pixel, row-major.
	// Rows are ordered bottom-to-top when the decoder flips vertically.
	Pixels []byte
	// Width is the image width in pixels.
	Width int
	// Height is the image height in pixels.
	Height int
	// Channels is the number of 8-bit channels per pixel (1 = gray, 3 = RGB, 4 = RGBA).
	Channels int
}

// TextureStagingData holds pixel data for a texture pending GPU upload.
// This is what a texture registry hands to the renderer after decoding and validating an image.
type TextureStagingData struct {
	// Label is a debug label for the created GPU texture.
	Label string
	// Pixels is the byte slice representing the actual pixel data for the texture, Channels bytes per pixel.
	Pixels []byte
	// Width is the width of the texture in pixels. This is required to correctly create the GPU texture and interpret the pixel data.
	Width uint32
	// Height is the height of the texture in pixels. This is required to correctly create the GPU texture and interpret the pixel data.
	Height uint32
	// Channels is either 3 (RGB) or 4 (RGBA).
	Channels int
	// GenerateMipmaps requests a full mip chain down to 1x1.
	GenerateMipmaps bool
}

// SamplerStagingData holds the configuration for a sampler binding pending GPU creation.
// Zero values are replaced with repeat addressing and linear filtering by the renderer.
type SamplerStagingData struct {
	// AddressModeU, AddressModeV, AddressModeW specify the addressing mode for texture coordinates outside the [0, 1] range in each dimension (U, V, W).
	AddressModeU, AddressModeV, AddressModeW wgpu.AddressMode
	// MagFilter and MinFilter specify the filtering mode for magnification and minification.
	MagFilter, MinFilter wgpu.FilterMode
	// MipmapFilter specifies the filtering mode for mipmap level selection.
	MipmapFilter wgpu.MipmapFilterMode
	// LodMinClamp and LodMaxClamp specify the minimum and maximum level of detail (LOD) for mipmapping.
	LodMinClamp, LodMaxClamp float32
	// MaxAnisotropy specifies the maximum anisotropy level for anisotropic filtering.
	MaxAnisotropy uint16
}

// RepeatLinearSampler returns the sampler configuration used for scene textures:
// repeat wrapping on every axis with bilinear min/mag filtering between mip levels.
//
// Returns:
//   - SamplerStagingData: the sampler configuration
func RepeatLinearSampler() SamplerStagingData {
	return SamplerStagingData{
		AddressModeU: wgpu.AddressModeRepeat,
		AddressModeV: wgpu.AddressModeRepeat,
		AddressModeW: wgpu.AddressModeRepeat,
		MagFilter:    wgpu.FilterModeLinear,
		MinFilter:    wgpu.FilterModeLinear,
		MipmapFilter: wgpu.MipmapFilterModeLinear,
		LodMaxClamp:  32.0,
	}
}
