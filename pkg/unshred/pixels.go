package unshred

import (
	"fmt"
	"image"
)

// Channels is the length of every pixel tuple returned by Pixels
const Channels = 4

// Pixels gives bounds-checked access to the channel values of an image.
// Coordinates are relative to the image origin, so sub-images behave like
// images that start at 0,0.
type Pixels struct {
	img    image.Image
	bounds image.Rectangle
}

// NewPixels wraps img for read-only pixel access
func NewPixels(img image.Image) *Pixels {
	return &Pixels{
		img:    img,
		bounds: img.Bounds(),
	}
}

// Width returns the image width in pixels
func (p *Pixels) Width() int {
	return p.bounds.Dx()
}

// Height returns the image height in pixels
func (p *Pixels) Height() int {
	return p.bounds.Dy()
}

// At returns the R, G, B, A values of the pixel at x, y on a 0-255 scale
func (p *Pixels) At(x, y int) ([]float64, error) {
	if x < 0 || y < 0 || x >= p.Width() || y >= p.Height() {
		return nil, fmt.Errorf("%w: (%d,%d) outside %dx%d", ErrOutOfBounds, x, y, p.Width(), p.Height())
	}

	r, g, b, a := p.img.At(p.bounds.Min.X+x, p.bounds.Min.Y+y).RGBA()
	return []float64{
		float64(r >> 8),
		float64(g >> 8),
		float64(b >> 8),
		float64(a >> 8),
	}, nil
}

// Column returns every pixel of column x, top to bottom
func (p *Pixels) Column(x int) ([][]float64, error) {
	column := make([][]float64, p.Height())
	for y := range column {
		px, err := p.At(x, y)
		if err != nil {
			return nil, err
		}
		column[y] = px
	}
	return column, nil
}
