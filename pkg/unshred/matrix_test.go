package unshred

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"unshredder/internal/models"
)

func TestBuildMatrix(t *testing.T) {
	img := shred(createGradientImage(48, 4), 8, []int{3, 5, 0, 2, 1, 4})
	p := NewPixels(img)
	l, err := NewLayout(48, 6, 0, false)
	if err != nil {
		t.Fatalf("NewLayout failed: %v", err)
	}

	for _, metric := range []Metric{MetricEuclidean, MetricChecksum} {
		t.Run(metric.String(), func(t *testing.T) {
			m := BuildMatrix(p, l, metric, 3)

			r, c := m.Dims()
			if r != 6 || c != 6 {
				t.Fatalf("Expected 6x6 matrix, got %dx%d", r, c)
			}

			for i := 0; i < 6; i++ {
				for j := 0; j < 6; j++ {
					want, err := EdgeDistance(p, l, metric, i, j)
					if err != nil {
						t.Fatalf("EdgeDistance(%d,%d) failed: %v", i, j, err)
					}
					if got := m.At(i, j); got != want {
						t.Errorf("m[%d][%d] = %v, EdgeDistance = %v", i, j, got, want)
					}
				}
				if m.At(i, i) != 0 {
					t.Errorf("Diagonal m[%d][%d] should be 0, got %v", i, i, m.At(i, i))
				}
			}

			if UndefinedCells(m) != 0 {
				t.Errorf("Expected no undefined cells, got %d", UndefinedCells(m))
			}
		})
	}
}

// TestBuildMatrixWorkers verifies the matrix does not depend on the number of workers
func TestBuildMatrixWorkers(t *testing.T) {
	img := shred(createGradientImage(64, 6), 8, []int{7, 6, 5, 4, 3, 2, 1, 0})
	p := NewPixels(img)
	l, err := NewLayout(64, 8, 0, false)
	if err != nil {
		t.Fatalf("NewLayout failed: %v", err)
	}

	serial := BuildMatrix(p, l, MetricEuclidean, 1)
	for _, workers := range []int{0, 2, 8, 32} {
		if parallel := BuildMatrix(p, l, MetricEuclidean, workers); !mat.Equal(serial, parallel) {
			t.Errorf("Matrix built with %d workers differs from the serial one", workers)
		}
	}
}

// TestBuildMatrixOutOfBounds verifies that out-of-frame bands are undefined, never zero
func TestBuildMatrixOutOfBounds(t *testing.T) {
	p := NewPixels(createGradientImage(16, 3))
	l := Layout{NumBands: 3, BandWidth: 8, Width: 24}

	m := BuildMatrix(p, l, MetricEuclidean, 2)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			undefined := i != j && (i == 2 || j == 2)
			if math.IsNaN(m.At(i, j)) != undefined {
				t.Errorf("m[%d][%d] = %v, undefined expected %v", i, j, m.At(i, j), undefined)
			}
		}
	}
	if UndefinedCells(m) != 4 {
		t.Errorf("Expected 4 undefined cells, got %d", UndefinedCells(m))
	}

	_, err := BuildSequence(m)
	if !errors.Is(err, ErrNoValidCandidate) {
		t.Errorf("Expected ErrNoValidCandidate, got %v", err)
	}
}

func TestBuildSequence(t *testing.T) {
	m := mat.NewDense(4, 4, []float64{
		0, 2, 9, 7,
		8, 0, 3, math.NaN(),
		5, 6, 0, 1,
		4, 4, 9, 0,
	})

	l2r, err := BuildSequence(m)
	if err != nil {
		t.Fatalf("BuildSequence failed: %v", err)
	}
	wantL2R := models.Sequence{{Index: 1, Distance: 2}, {Index: 2, Distance: 3}, {Index: 3, Distance: 1}, {Index: 0, Distance: 4}}
	for i := range wantL2R {
		if l2r[i] != wantL2R[i] {
			t.Errorf("l2r[%d] = %+v, expected %+v", i, l2r[i], wantL2R[i])
		}
	}

	r2l, err := BuildReverseSequence(m)
	if err != nil {
		t.Fatalf("BuildReverseSequence failed: %v", err)
	}
	wantR2L := models.Sequence{{Index: 3, Distance: 4}, {Index: 0, Distance: 2}, {Index: 1, Distance: 3}, {Index: 2, Distance: 1}}
	for i := range wantR2L {
		if r2l[i] != wantR2L[i] {
			t.Errorf("r2l[%d] = %+v, expected %+v", i, r2l[i], wantR2L[i])
		}
	}
}

// TestBuildSequenceNeverSelf verifies the positivity filter keeps bands from matching themselves
func TestBuildSequenceNeverSelf(t *testing.T) {
	img := shred(createGradientImage(64, 4), 8, []int{2, 7, 4, 0, 6, 1, 3, 5})
	l, err := NewLayout(64, 8, 0, false)
	if err != nil {
		t.Fatalf("NewLayout failed: %v", err)
	}
	m := BuildMatrix(NewPixels(img), l, MetricEuclidean, 4)

	for _, build := range []func(mat.Matrix) (models.Sequence, error){BuildSequence, BuildReverseSequence} {
		seq, err := build(m)
		if err != nil {
			t.Fatalf("Sequence failed: %v", err)
		}
		for i, match := range seq {
			if match.Index == i {
				t.Errorf("Band %d matched itself", i)
			}
			if match.Distance <= 0 {
				t.Errorf("Band %d has non-positive best distance %v", i, match.Distance)
			}
		}
	}
}

func TestBuildSequenceNoCandidate(t *testing.T) {
	tests := []struct {
		name string
		m    *mat.Dense
	}{
		{"all undefined", mat.NewDense(2, 2, []float64{0, math.NaN(), math.NaN(), 0})},
		{"only zero", mat.NewDense(2, 2, []float64{0, 0, 1, 0})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := BuildSequence(tt.m); !errors.Is(err, ErrNoValidCandidate) {
				t.Errorf("Expected ErrNoValidCandidate, got %v", err)
			}
		})
	}
}

// TestBuildSequenceTies verifies equal distances keep the lowest index
func TestBuildSequenceTies(t *testing.T) {
	m := mat.NewDense(3, 3, []float64{
		0, 5, 5,
		5, 0, 5,
		5, 5, 0,
	})

	seq, err := BuildSequence(m)
	if err != nil {
		t.Fatalf("BuildSequence failed: %v", err)
	}
	want := []int{1, 0, 0}
	for i := range want {
		if seq[i].Index != want[i] {
			t.Errorf("seq[%d] = %d, expected %d", i, seq[i].Index, want[i])
		}
	}
}
