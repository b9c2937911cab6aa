package texture

import "errors"

// NotFound is the slot index reported for a tag that has not been registered.
const NotFound = -1

var (
	// ErrDecodeFailure is returned when an image file cannot be read or decoded.
	ErrDecodeFailure = errors.New("texture: image could not be decoded")
	// ErrUnsupportedChannelFormat is returned when a decoded image is neither RGB nor RGBA.
	ErrUnsupportedChannelFormat = errors.New("texture: unsupported channel format")
	// ErrCapacityExceeded is returned when every texture slot is already occupied.
	ErrCapacityExceeded = errors.New("texture: registry capacity exceeded")
	// ErrDuplicateTag is returned when a tag is registered twice.
	ErrDuplicateTag = errors.New("texture: duplicate tag")
	// ErrTagNotFound is returned when a tag does not resolve to a registered texture.
	ErrTagNotFound = errors.New("texture: tag not found")
)
