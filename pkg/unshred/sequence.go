package unshred

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"unshredder/internal/models"
)

// BuildSequence picks, for every band i, the band j with the smallest positive
// defined m[i][j]: its best right neighbour. Equal distances keep the lower index.
func BuildSequence(m mat.Matrix) (models.Sequence, error) {
	return buildSequence(m, models.LeftToRight)
}

// BuildReverseSequence picks, for every band i, the band k with the smallest
// positive defined m[k][i]: its best left neighbour.
func BuildReverseSequence(m mat.Matrix) (models.Sequence, error) {
	return buildSequence(m.T(), models.RightToLeft)
}

func buildSequence(m mat.Matrix, dir models.Direction) (models.Sequence, error) {
	rows, cols := m.Dims()
	seq := make(models.Sequence, rows)

	for i := 0; i < rows; i++ {
		best := -1
		bestValue := math.Inf(1)

		for j := 0; j < cols; j++ {
			v := m.At(i, j)
			// The diagonal is 0 and undefined pairs are NaN; neither qualifies
			if math.IsNaN(v) || v <= 0 {
				continue
			}
			if v < bestValue {
				best = j
				bestValue = v
			}
		}

		if best < 0 {
			return nil, fmt.Errorf("%w: band %d has no %s match", ErrNoValidCandidate, i, dir)
		}
		seq[i] = models.Match{Index: best, Distance: bestValue}
	}

	return seq, nil
}
