package unshred

import (
	"fmt"
	"image"

	"unshredder/internal/models"
	"unshredder/pkg/imageio"
)

// Reassemble walks the left-to-right sequence from start and copies each band
// into the next slot of a new image with the same dimensions as img. Columns
// beyond the last band are copied through unchanged. A band reached twice
// before all bands are placed aborts the walk with ErrBrokenChain.
func Reassemble(img image.Image, l Layout, l2r models.Sequence, start int) (*image.RGBA, models.Order, error) {
	n := l.NumBands
	if len(l2r) != n {
		return nil, nil, fmt.Errorf("sequence has %d entries, layout has %d bands", len(l2r), n)
	}
	if !inRange(start, n) {
		return nil, nil, fmt.Errorf("start band %d outside 0..%d", start, n-1)
	}

	height := img.Bounds().Dy()
	out := image.NewRGBA(image.Rect(0, 0, l.Width, height))

	order := make(models.Order, 0, n)
	placed := make([]int, n)
	for i := range placed {
		placed[i] = -1
	}

	current := start
	for step := 0; step < n; step++ {
		if !inRange(current, n) {
			return nil, nil, fmt.Errorf("%w: step %d reached band %d outside 0..%d", ErrBrokenChain, step, current, n-1)
		}
		if placed[current] >= 0 {
			return nil, nil, fmt.Errorf("%w: band %d revisited at step %d (first placed at step %d), chain %v",
				ErrBrokenChain, current, step, placed[current], order)
		}
		placed[current] = step
		order = append(order, current)

		band := l.Band(current)
		region := imageio.Crop(img, band.X0, 0, band.X0+band.Width, height)
		imageio.Paste(out, region, step*l.BandWidth, 0)

		current = l2r[current].Index
	}

	if rem := l.Remainder(); rem > 0 {
		x0 := n * l.BandWidth
		imageio.Paste(out, imageio.Crop(img, x0, 0, l.Width, height), x0, 0)
	}

	return out, order, nil
}
