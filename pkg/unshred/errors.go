package unshred

import "errors"

// Errors reported by the band-ordering stages. Call sites wrap them with the
// offending band indices, so match them with errors.Is.
var (
	// ErrOutOfBounds marks a pixel lookup outside the image. It never aborts a
	// run by itself: the affected band pair becomes undefined in the matrix.
	ErrOutOfBounds = errors.New("pixel out of bounds")

	// ErrNoValidCandidate means a band has no positive, defined distance to any other band
	ErrNoValidCandidate = errors.New("no valid match candidate")

	// ErrAmbiguousStart means the leftmost band cannot be told apart from the others
	ErrAmbiguousStart = errors.New("ambiguous start band")

	// ErrBrokenChain means the successor walk revisited a band before placing all of them
	ErrBrokenChain = errors.New("broken band chain")

	// ErrTooFewBands is returned when fewer than two bands are requested
	ErrTooFewBands = errors.New("at least two bands are required")

	// ErrUnevenWidth is returned when the image width is not a multiple of the band width
	ErrUnevenWidth = errors.New("image width is not a multiple of the band width")

	// ErrInvalidBands covers band settings that cannot describe the image
	ErrInvalidBands = errors.New("invalid band settings")
)
