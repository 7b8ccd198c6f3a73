package models

// Band is one vertical strip of a shredded image
type Band struct {
	// Index is the position of the band in the shuffled input, not its final position
	Index int

	// X0 is the first column of the band in the input image
	X0 int

	// Width is the band width in pixels
	Width int
}

// FirstColumn returns the leftmost column of the band
func (b Band) FirstColumn() int {
	return b.X0
}

// LastColumn returns the rightmost column of the band
func (b Band) LastColumn() int {
	return b.X0 + b.Width - 1
}

// Match is the best neighbour candidate found for a band
type Match struct {
	// Index of the band judged most similar
	Index int `yaml:"index"`

	// Distance is the aggregated edge distance to that band
	Distance float64 `yaml:"distance"`
}

// Sequence holds one Match per band, indexed by shuffled band index.
// Two sequences exist per run: left-to-right (successors) and
// right-to-left (predecessors).
type Sequence []Match

// Order is the final left-to-right ordering of shuffled band indices
type Order []int

// Direction selects which neighbour a sequence describes
type Direction int

const (
	LeftToRight Direction = iota
	RightToLeft
)

func (d Direction) String() string {
	switch d {
	case LeftToRight:
		return "left-to-right"
	case RightToLeft:
		return "right-to-left"
	default:
		return "unknown"
	}
}
