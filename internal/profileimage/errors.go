package profileimage

import "errors"

var (
	// ErrNotFound means the user has never uploaded an image. Callers must
	// treat this as an empty result, not a failure.
	ErrNotFound = errors.New("profile image not found")

	// ErrInvalidInput covers empty payloads and non-image content types,
	// detected before any decode attempt.
	ErrInvalidInput = errors.New("only image files are allowed")

	// ErrInvalidImage means the payload could not be decoded as a raster image.
	ErrInvalidImage = errors.New("invalid image file")
)
