package mesh

// ProviderBuilderOption is a function that configures a provider instance during construction.
type ProviderBuilderOption func(*provider)

// WithTorusSegments is an option builder that sets the torus tessellation.
// Values below 3 are ignored.
//
// Parameters:
//   - mainSegments: segments around the main ring
//   - tubeSegments: segments around the tube
//
// Returns:
//   - ProviderBuilderOption: a function that applies the torus tessellation to a provider
func WithTorusSegments(mainSegments, tubeSegments int) ProviderBuilderOption {
	return func(p *provider) {
		if mainSegments >= 3 {
			p.torusMainSegments = mainSegments
		}
		if tubeSegments >= 3 {
			p.torusTubeSegments = tubeSegments
		}
	}
}

// WithTorusRadii is an option builder that sets the torus ring and tube radii.
//
// Parameters:
//   - mainRadius: distance from the origin to the tube center
//   - tubeRadius: radius of the tube
//
// Returns:
//   - ProviderBuilderOption: a function that applies the torus radii to a provider
func WithTorusRadii(mainRadius, tubeRadius float32) ProviderBuilderOption {
	return func(p *provider) {
		p.torusMainRadius = mainRadius
		p.torusTubeRadius = tubeRadius
	}
}

// WithCylinderSegments is an option builder that sets the tapered cylinder tessellation.
// Values below 3 are ignored.
//
// Parameters:
//   - segments: segments around the axis
//
// Returns:
//   - ProviderBuilderOption: a function that applies the cylinder tessellation to a provider
func WithCylinderSegments(segments int) ProviderBuilderOption {
	return func(p *provider) {
		if segments >= 3 {
			p.cylinderSegments = segments
		}
	}
}
