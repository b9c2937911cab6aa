package common

// Coalesce returns the first non-zero value, or the zero value if all are zero.
// Sampler and limit fields use it to fall back to defaults.
//
// Parameters:
//   - values: candidates in priority order
//
// Returns:
//   - T: the first non-zero value from the input, or the zero value if all are zero
func Coalesce[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}

// AlignUp rounds size up to the next multiple of alignment. An alignment of 0 returns size unchanged.
//
// Parameters:
//   - size: the byte size to round
//   - alignment: the required multiple, typically a device offset alignment
//
// Returns:
//   - T: the aligned size
func AlignUp[T ~uint32 | ~uint64 | ~int](size, alignment T) T {
	if alignment == 0 {
		return size
	}
	return (size + alignment - 1) / alignment * alignment
}
