package unshred

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/mat"
)

// BuildMatrix computes the NumBands x NumBands edge distance matrix.
// Cell (i, j) holds EdgeDistance(i, j); the diagonal is 0 and pairs touching
// an out-of-bounds edge hold NaN. Rows are computed on up to workers goroutines.
func BuildMatrix(p *Pixels, l Layout, metric Metric, workers int) *mat.Dense {
	n := l.NumBands
	if workers < 1 {
		workers = 1
	}

	// Edge columns are read once per band; a nil column is undefined
	rights := make([][][]float64, n)
	lefts := make([][][]float64, n)
	for i := 0; i < n; i++ {
		band := l.Band(i)
		rights[i], _ = p.Column(band.LastColumn())
		lefts[i], _ = p.Column(band.FirstColumn())
	}

	m := mat.NewDense(n, n, nil)

	var wg sync.WaitGroup
	sem := make(chan struct{}, workers)

	for i := 0; i < n; i++ {
		wg.Add(1)
		sem <- struct{}{}

		// Each goroutine owns one row, so cells are never shared
		go func(row int) {
			defer wg.Done()
			defer func() { <-sem }()

			for j := 0; j < n; j++ {
				switch {
				case row == j:
					m.Set(row, j, 0)
				case rights[row] == nil || lefts[j] == nil:
					m.Set(row, j, math.NaN())
				default:
					m.Set(row, j, edgeDistance(metric, rights[row], lefts[j]))
				}
			}
		}(i)
	}

	wg.Wait()
	return m
}

// UndefinedCells counts the off-diagonal cells of m that hold NaN
func UndefinedCells(m mat.Matrix) int {
	r, c := m.Dims()
	count := 0
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if i != j && math.IsNaN(m.At(i, j)) {
				count++
			}
		}
	}
	return count
}
