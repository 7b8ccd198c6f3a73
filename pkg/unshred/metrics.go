package unshred

import (
	"fmt"
	"io"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"unshredder/internal/models"
)

// Metrics summarises how well the chosen chain fits the distance matrix
type Metrics struct {
	// MeanLink is the mean edge distance between consecutive bands of the chain
	MeanLink float64 `yaml:"meanLink"`

	// StdDevLink is the standard deviation of those distances
	StdDevLink float64 `yaml:"stdDevLink"`

	// WeakestLink is the chain position whose link to the next band has the largest distance
	WeakestLink int `yaml:"weakestLink"`

	// WeakestDistance is the distance of that link
	WeakestDistance float64 `yaml:"weakestDistance"`

	// Confidence is the mean ratio of second-best to best candidate over all bands.
	// Values near 1 mean the best match barely beat the runner-up.
	Confidence float64 `yaml:"confidence"`

	// Undefined is the number of band pairs excluded because an edge was out of bounds
	Undefined int `yaml:"undefined"`
}

// BandMatches is one row of the match table: the best neighbours of a band
type BandMatches struct {
	Band  int          `yaml:"band"`
	Left  models.Match `yaml:"left"`
	Right models.Match `yaml:"right"`
}

// Report collects the outcome of a run
type Report struct {
	Start   int           `yaml:"start"`
	Order   models.Order  `yaml:"order"`
	Matches []BandMatches `yaml:"matches"`
	Metrics Metrics       `yaml:"metrics"`
}

// CalculateMetrics computes the chain metrics for order against m
func CalculateMetrics(m mat.Matrix, order models.Order) Metrics {
	metrics := Metrics{
		WeakestLink: -1,
		Undefined:   UndefinedCells(m),
	}

	if len(order) >= 2 {
		links := make([]float64, len(order)-1)
		for k := range links {
			links[k] = m.At(order[k], order[k+1])
		}

		if len(links) > 1 {
			metrics.MeanLink, metrics.StdDevLink = stat.MeanStdDev(links, nil)
		} else {
			metrics.MeanLink = links[0]
		}
		metrics.WeakestLink = floats.MaxIdx(links)
		metrics.WeakestDistance = links[metrics.WeakestLink]
	}

	var ratios []float64
	rows, _ := m.Dims()
	for i := 0; i < rows; i++ {
		best, second := bestTwo(m, i)
		if !math.IsInf(second, 1) {
			ratios = append(ratios, second/best)
		}
	}
	if len(ratios) > 0 {
		metrics.Confidence = stat.Mean(ratios, nil)
	}

	return metrics
}

// bestTwo returns the smallest and second smallest positive defined values of row i
func bestTwo(m mat.Matrix, i int) (float64, float64) {
	_, cols := m.Dims()
	best, second := math.Inf(1), math.Inf(1)
	for j := 0; j < cols; j++ {
		v := m.At(i, j)
		if math.IsNaN(v) || v <= 0 {
			continue
		}
		switch {
		case v < best:
			best, second = v, best
		case v < second:
			second = v
		}
	}
	return best, second
}

// NewReport assembles the match table and metrics of a finished run
func NewReport(m mat.Matrix, l2r, r2l models.Sequence, start int, order models.Order) Report {
	matches := make([]BandMatches, len(l2r))
	for i := range l2r {
		matches[i] = BandMatches{Band: i, Left: r2l[i], Right: l2r[i]}
	}

	return Report{
		Start:   start,
		Order:   order,
		Matches: matches,
		Metrics: CalculateMetrics(m, order),
	}
}

// WriteTable prints the match table: best left neighbour, band, best right neighbour
func (r Report) WriteTable(w io.Writer) {
	fmt.Fprintf(w, "%5s %5s %5s %12s %12s\n", "left", "band", "right", "leftDist", "rightDist")
	for _, m := range r.Matches {
		fmt.Fprintf(w, "%5d %5d %5d %12.1f %12.1f\n",
			m.Left.Index, m.Band, m.Right.Index, m.Left.Distance, m.Right.Distance)
	}
}
