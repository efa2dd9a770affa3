package rng

import "errors"

var (
	// ErrInvalidRange is returned when a range has max < min.
	ErrInvalidRange = errors.New("rng: invalid range")
	// ErrNilSource is returned when no sample source is supplied.
	ErrNilSource = errors.New("rng: nil source")
)
