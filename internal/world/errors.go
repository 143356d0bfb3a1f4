package world

import "errors"

var (
	// ErrInvalidDimensions indicates a non-positive or non-finite size.
	ErrInvalidDimensions = errors.New("world: width and height must be positive and finite")

	// ErrUnknownBoundary indicates a boundary policy name that cannot be parsed.
	ErrUnknownBoundary = errors.New("world: unknown boundary policy")
)
