package detdecode

import "github.com/pkg/errors"

var (
	// ErrInvalidGeometry is returned when the target canvas has a zero or
	// negative dimension, or the source image has zero area
	ErrInvalidGeometry = errors.New("invalid geometry")

	// ErrMalformedInput is returned when the raw output tensor shape does not
	// match the declared class count or contains non finite values
	ErrMalformedInput = errors.New("malformed input")
)
