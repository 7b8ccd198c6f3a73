package unshred

import (
	"fmt"
	"strings"

	"unshredder/internal/models"
)

// StartStrategy selects how the leftmost band is resolved
type StartStrategy int

const (
	// StartInDegree picks the band that no other band claims as its right
	// neighbour, falling back to StartLegacy when every band is claimed.
	StartInDegree StartStrategy = iota

	// StartLegacy runs a single pass comparing each band's left link with the
	// right link of its left neighbour. The last band marked wins.
	StartLegacy
)

func (s StartStrategy) String() string {
	switch s {
	case StartInDegree:
		return "indegree"
	case StartLegacy:
		return "legacy"
	default:
		return "unknown"
	}
}

// ParseStartStrategy converts a configuration value into a StartStrategy
func ParseStartStrategy(s string) (StartStrategy, error) {
	switch strings.ToLower(s) {
	case "", "indegree":
		return StartInDegree, nil
	case "legacy":
		return StartLegacy, nil
	default:
		return 0, fmt.Errorf("unknown start strategy %q", s)
	}
}

// ResolveStart returns the index of the leftmost band given the
// left-to-right and right-to-left sequences.
func ResolveStart(l2r, r2l models.Sequence, strategy StartStrategy) (int, error) {
	if len(l2r) != len(r2l) {
		return -1, fmt.Errorf("sequence length mismatch: %d left-to-right, %d right-to-left", len(l2r), len(r2l))
	}
	if len(l2r) < 2 {
		return -1, fmt.Errorf("%w: got %d", ErrTooFewBands, len(l2r))
	}
	for i := range l2r {
		if !inRange(l2r[i].Index, len(l2r)) || !inRange(r2l[i].Index, len(r2l)) {
			return -1, fmt.Errorf("band %d has a match outside 0..%d", i, len(l2r)-1)
		}
	}

	if strategy == StartInDegree {
		if start, ok := inDegreeStart(l2r, r2l); ok {
			return start, nil
		}
	}

	start, ok := legacyStart(l2r, r2l)
	if !ok {
		return -1, fmt.Errorf("%w: all %d left and right links are symmetric", ErrAmbiguousStart, len(l2r))
	}
	return start, nil
}

// inDegreeStart looks for bands that are nobody's right neighbour. When there
// are several, the one with the weakest left link wins; ties keep the lower index.
func inDegreeStart(l2r, r2l models.Sequence) (int, bool) {
	inDegree := make([]int, len(l2r))
	for _, m := range l2r {
		inDegree[m.Index]++
	}

	start := -1
	for i, d := range inDegree {
		if d != 0 {
			continue
		}
		if start < 0 || r2l[i].Distance > r2l[start].Distance {
			start = i
		}
	}

	return start, start >= 0
}

// legacyStart walks all bands once. For band i, leftMatch is its best left
// neighbour and rightMatch is what leftMatch believes sits to its right.
// Whichever link is weaker marks a candidate; the last candidate wins.
func legacyStart(l2r, r2l models.Sequence) (int, bool) {
	candidate := -1

	for i := range r2l {
		leftMatch := r2l[i].Index
		leftValue := r2l[i].Distance
		rightMatch := l2r[leftMatch].Index
		rightValue := l2r[leftMatch].Distance

		switch {
		case leftValue < rightValue:
			candidate = rightMatch
		case rightValue < leftValue:
			candidate = i
		}
	}

	return candidate, candidate >= 0
}

func inRange(i, n int) bool {
	return i >= 0 && i < n
}
