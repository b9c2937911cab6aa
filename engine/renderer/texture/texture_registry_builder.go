package texture

import "github.com/Carmen-Shannon/oxy-monument/common"

// RegistryBuilderOption is a function that configures a registry instance during construction.
type RegistryBuilderOption func(*registry)

// WithCapacity is an option builder that sets the maximum number of texture slots.
// Values below 1 are ignored.
//
// Parameters:
//   - capacity: the slot count
//
// Returns:
//   - RegistryBuilderOption: a function that applies the capacity option to a registry
func WithCapacity(capacity int) RegistryBuilderOption {
	return func(r *registry) {
		if capacity > 0 {
			r.capacity = capacity
		}
	}
}

// WithDecoder is an option builder that replaces the image decoder.
//
// Parameters:
//   - decoder: the decoder, which must be safe for concurrent use
//
// Returns:
//   - RegistryBuilderOption: a function that applies the decoder option to a registry
func WithDecoder(decoder Decoder) RegistryBuilderOption {
	return func(r *registry) {
		if decoder != nil {
			r.decoder = decoder
		}
	}
}

// WithSampler is an option builder that sets the sampler configuration used for every texture.
//
// Parameters:
//   - sampler: the sampler configuration
//
// Returns:
//   - RegistryBuilderOption: a function that applies the sampler option to a registry
func WithSampler(sampler common.SamplerStagingData) RegistryBuilderOption {
	return func(r *registry) {
		r.sampler = sampler
	}
}

// WithMipmaps is an option builder that toggles mip-chain generation on upload.
//
// Parameters:
//   - enabled: true to generate mipmaps
//
// Returns:
//   - RegistryBuilderOption: a function that applies the mipmap option to a registry
func WithMipmaps(enabled bool) RegistryBuilderOption {
	return func(r *registry) {
		r.mipmaps = enabled
	}
}

// WithDecodeWorkers is an option builder that sets how many images LoadAll decodes in parallel.
//
// Parameters:
//   - workers: the worker count, values below 1 are ignored
//
// Returns:
//   - RegistryBuilderOption: a function that applies the worker count option to a registry
func WithDecodeWorkers(workers int) RegistryBuilderOption {
	return func(r *registry) {
		if workers > 0 {
			r.workers = workers
		}
	}
}
