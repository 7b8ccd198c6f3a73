package unshred

import (
	"fmt"

	"unshredder/internal/models"
)

// Layout describes how an image of a given width is divided into bands
type Layout struct {
	// NumBands is the number of bands taking part in matching
	NumBands int

	// BandWidth is the width of every band in pixels
	BandWidth int

	// Width is the full image width, including any remainder columns
	Width int
}

// NewLayout derives the band layout for an image of the given width.
// Exactly one of bands and bandWidth may be zero; if both are set they must agree.
// Unless allowTruncate is set, the width must divide evenly into bands.
func NewLayout(width, bands, bandWidth int, allowTruncate bool) (Layout, error) {
	if width <= 0 {
		return Layout{}, fmt.Errorf("%w: image width %d", ErrInvalidBands, width)
	}
	if bands < 0 || bandWidth < 0 {
		return Layout{}, fmt.Errorf("%w: bands=%d bandWidth=%d", ErrInvalidBands, bands, bandWidth)
	}

	switch {
	case bands == 0 && bandWidth == 0:
		return Layout{}, fmt.Errorf("%w: either a band count or a band width is required", ErrInvalidBands)
	case bands == 0:
		if bandWidth > width {
			return Layout{}, fmt.Errorf("%w: band width %d exceeds image width %d", ErrInvalidBands, bandWidth, width)
		}
		bands = width / bandWidth
	case bandWidth == 0:
		if bands > width {
			return Layout{}, fmt.Errorf("%w: %d bands do not fit in %d columns", ErrInvalidBands, bands, width)
		}
		bandWidth = width / bands
	default:
		if bands*bandWidth > width || width/bands != bandWidth {
			return Layout{}, fmt.Errorf("%w: %d bands of width %d do not match image width %d",
				ErrInvalidBands, bands, bandWidth, width)
		}
	}

	if bands < 2 {
		return Layout{}, fmt.Errorf("%w: got %d", ErrTooFewBands, bands)
	}

	l := Layout{NumBands: bands, BandWidth: bandWidth, Width: width}
	if l.Remainder() != 0 && !allowTruncate {
		return Layout{}, fmt.Errorf("%w: width %d, band width %d leaves %d columns",
			ErrUnevenWidth, width, bandWidth, l.Remainder())
	}

	return l, nil
}

// Remainder returns the number of columns right of the last band
func (l Layout) Remainder() int {
	return l.Width - l.NumBands*l.BandWidth
}

// Band returns band i in shuffled order
func (l Layout) Band(i int) models.Band {
	return models.Band{
		Index: i,
		X0:    i * l.BandWidth,
		Width: l.BandWidth,
	}
}

// Bands returns all bands in shuffled order
func (l Layout) Bands() []models.Band {
	bands := make([]models.Band, l.NumBands)
	for i := range bands {
		bands[i] = l.Band(i)
	}
	return bands
}
