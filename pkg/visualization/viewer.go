package visualization

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/mat"

	"unshredder/internal/models"
	"unshredder/pkg/imageio"
)

// Viewer extracts individual bands from a shredded image for inspection
type Viewer struct {
	// img is the shuffled input image
	img image.Image

	// bands are the bands of img in shuffled order
	bands []models.Band
}

// NewViewer creates a viewer over img and its band layout
func NewViewer(img image.Image, bands []models.Band) *Viewer {
	return &Viewer{
		img:   img,
		bands: bands,
	}
}

// ExtractBand returns band index as a standalone image
func (v *Viewer) ExtractBand(index int) (image.Image, error) {
	if index < 0 || index >= len(v.bands) {
		return nil, fmt.Errorf("band %d outside 0..%d", index, len(v.bands)-1)
	}

	b := v.bands[index]
	height := v.img.Bounds().Dy()
	return imageio.Crop(v.img, b.X0, 0, b.X0+b.Width, height), nil
}

// SaveBandSequence saves every band of order as a PNG, named by its final
// position and its shuffled index
func (v *Viewer) SaveBandSequence(order models.Order, outputDir string) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return err
	}

	for pos, index := range order {
		img, err := v.ExtractBand(index)
		if err != nil {
			return err
		}

		filename := filepath.Join(outputDir, fmt.Sprintf("band_%03d_from_%03d.png", pos, index))
		if err := imageio.Save(img, filename, imageio.FormatPNG); err != nil {
			return err
		}
	}

	return nil
}

// Heatmap renders a distance matrix with cellSize pixels per cell.
// Small distances are dark, large distances bright; undefined cells are red.
func Heatmap(m mat.Matrix, cellSize int) *image.RGBA {
	if cellSize < 1 {
		cellSize = 1
	}
	rows, cols := m.Dims()
	img := image.NewRGBA(image.Rect(0, 0, cols*cellSize, rows*cellSize))

	lo, hi := math.Inf(1), math.Inf(-1)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v := m.At(i, j)
			if i == j || math.IsNaN(v) {
				continue
			}
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}

	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			c := cellColor(m.At(i, j), i == j, lo, hi)
			for y := i * cellSize; y < (i+1)*cellSize; y++ {
				for x := j * cellSize; x < (j+1)*cellSize; x++ {
					img.SetRGBA(x, y, c)
				}
			}
		}
	}

	return img
}

func cellColor(v float64, diagonal bool, lo, hi float64) color.RGBA {
	switch {
	case math.IsNaN(v):
		return color.RGBA{R: 255, A: 255}
	case diagonal:
		return color.RGBA{A: 255}
	case hi <= lo:
		return color.RGBA{R: 128, G: 128, B: 128, A: 255}
	}

	g := uint8(math.Round((v - lo) / (hi - lo) * 255))
	return color.RGBA{R: g, G: g, B: g, A: 255}
}
