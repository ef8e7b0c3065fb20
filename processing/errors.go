package processing

import "errors"

var (
	// ErrShapeMismatch is returned when parallel width and height vectors differ in length.
	ErrShapeMismatch = errors.New("processing: widths and heights must have the same length")
	// ErrInvalidParameter is returned for a non-positive base size, ratio, scale or stride.
	ErrInvalidParameter = errors.New("processing: invalid anchor parameter")
)
