package catalog

import "errors"

// Sentinel errors for catalog operations.
var (
	// ErrShoeNotFound is returned when the requested shoe does not exist.
	ErrShoeNotFound = errors.New("shoe not found")

	// ErrInvalidShoe is returned when shoe fields fail validation.
	ErrInvalidShoe = errors.New("invalid shoe")

	// ErrImageNotFound is returned when the requested image does not exist.
	ErrImageNotFound = errors.New("image not found")

	// ErrImageTooLarge is returned when an uploaded image exceeds the size limit.
	ErrImageTooLarge = errors.New("image too large")

	// ErrUnsupportedImage is returned when the upload is not an image.
	ErrUnsupportedImage = errors.New("unsupported image type")
)
