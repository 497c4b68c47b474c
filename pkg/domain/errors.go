package domain

import "errors"

// ErrInvalidGeometry is the sentinel matched by every InvalidGeometryError.
var ErrInvalidGeometry = errors.New("invalid geometry")

// ErrUnknownStitch is returned when a stitch key is not part of the catalog.
var ErrUnknownStitch = errors.New("unknown stitch")

// ErrInvalidStitch is returned when custom stitch dimensions are not positive.
var ErrInvalidStitch = errors.New("invalid stitch dimensions")

// ErrPatternNotCached is returned by caches on a miss.
var ErrPatternNotCached = errors.New("pattern not cached")

// ErrPatternNotFound is returned when a saved pattern does not exist in the library.
var ErrPatternNotFound = errors.New("pattern not found")

// InvalidGeometryError reports that the requested sphere cannot be crocheted with
// the chosen stitch. Message is shown to the user verbatim.
type InvalidGeometryError struct {
	Message string
}

func (e *InvalidGeometryError) Error() string {
	return e.Message
}

// Is makes errors.Is(err, ErrInvalidGeometry) succeed for any InvalidGeometryError.
func (e *InvalidGeometryError) Is(target error) bool {
	return target == ErrInvalidGeometry
}

// NewInvalidGeometryError builds an InvalidGeometryError with the given message.
func NewInvalidGeometryError(message string) error {
	return &InvalidGeometryError{Message: message}
}
