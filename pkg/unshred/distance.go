package unshred

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// Metric selects how two band edges are compared
type Metric int

const (
	// MetricEuclidean sums the per-row Euclidean distance between edge pixels
	MetricEuclidean Metric = iota

	// MetricChecksum compares one checksum per edge column
	MetricChecksum
)

func (m Metric) String() string {
	switch m {
	case MetricEuclidean:
		return "euclidean"
	case MetricChecksum:
		return "checksum"
	default:
		return "unknown"
	}
}

// ParseMetric converts a configuration value into a Metric
func ParseMetric(s string) (Metric, error) {
	switch strings.ToLower(s) {
	case "", "euclidean":
		return MetricEuclidean, nil
	case "checksum":
		return MetricChecksum, nil
	default:
		return 0, fmt.Errorf("unknown edge metric %q", s)
	}
}

// PixelDistance returns the Euclidean distance between two channel tuples
func PixelDistance(p1, p2 []float64) float64 {
	return floats.Distance(p1, p2, 2)
}

// ColumnDistance sums PixelDistance row by row over two columns of equal height
func ColumnDistance(a, b [][]float64) float64 {
	sum := 0.0
	for y := range a {
		sum += PixelDistance(a[y], b[y])
	}
	return sum
}

// ColumnChecksum folds a column into a single value. Each pixel hashes its
// colour channels as h = 17*h + c starting from 37; the hashes are summed.
func ColumnChecksum(column [][]float64) float64 {
	sum := 0.0
	for _, px := range column {
		h := 37.0
		for c := 0; c < 3; c++ {
			h = 17*h + px[c]
		}
		sum += h
	}
	return sum
}

// EdgeDistance compares the right edge of band i with the left edge of band j.
// The right edge is the last column of i, the left edge the first column of j,
// so a small distance means j belongs immediately right of i. EdgeDistance(i, i)
// is 0 by definition. A lookup outside the image makes the result undefined and
// is reported as an error wrapping ErrOutOfBounds.
func EdgeDistance(p *Pixels, l Layout, metric Metric, i, j int) (float64, error) {
	if i == j {
		return 0, nil
	}

	right, err := p.Column(l.Band(i).LastColumn())
	if err != nil {
		return math.NaN(), fmt.Errorf("right edge of band %d: %w", i, err)
	}
	left, err := p.Column(l.Band(j).FirstColumn())
	if err != nil {
		return math.NaN(), fmt.Errorf("left edge of band %d: %w", j, err)
	}

	return edgeDistance(metric, right, left), nil
}

func edgeDistance(metric Metric, right, left [][]float64) float64 {
	if metric == MetricChecksum {
		return math.Abs(ColumnChecksum(right) - ColumnChecksum(left))
	}
	return ColumnDistance(right, left)
}
