package unshred

import (
	"fmt"
	"image"

	"gonum.org/v1/gonum/mat"

	"unshredder/internal/models"
	"unshredder/pkg/config"
)

// Params holds the settings of a single run
type Params struct {
	// Bands is the number of bands; 0 derives it from BandWidth
	Bands int

	// BandWidth is the band width in pixels; 0 derives it from Bands
	BandWidth int

	// Metric selects the edge distance
	Metric Metric

	// Start selects the start-band strategy
	Start StartStrategy

	// AllowTruncate accepts widths that do not divide evenly into bands
	AllowTruncate bool

	// NumCores bounds the goroutines used to build the distance matrix
	NumCores int

	// Verbose prints progress and the match table
	Verbose bool

	// SaveIntermediaryResults writes the heatmap, bands and report to IntermediaryDir
	SaveIntermediaryResults bool

	// IntermediaryDir is where intermediary results are written
	IntermediaryDir string
}

// NewParams converts a validated configuration into run parameters
func NewParams(cfg *config.Config) (*Params, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	metric, err := ParseMetric(cfg.Processing.Metric)
	if err != nil {
		return nil, err
	}
	start, err := ParseStartStrategy(cfg.Processing.StartStrategy)
	if err != nil {
		return nil, err
	}

	bands, bandWidth := cfg.BandSettings()
	return &Params{
		Bands:                   bands,
		BandWidth:               bandWidth,
		Metric:                  metric,
		Start:                   start,
		AllowTruncate:           cfg.Processing.AllowTruncate,
		NumCores:                cfg.Processing.NumCores,
		Verbose:                 cfg.Output.Verbose,
		SaveIntermediaryResults: cfg.Output.SaveIntermediaryResults,
		IntermediaryDir:         cfg.Output.IntermediaryDir,
	}, nil
}

// Unshredder holds the state of one run over one image. Every stage result is
// computed once and cached; nothing is shared between runs.
//
// The run consists of:
// 1. Computing the band edge distance matrix
// 2. Building the left-to-right and right-to-left sequences
// 3. Resolving the leftmost band
// 4. Walking the chain and reassembling the image
type Unshredder struct {
	params *Params

	// img is the shuffled input image; it is never modified
	img    image.Image
	pixels *Pixels
	layout Layout

	matrix *mat.Dense
	l2r    models.Sequence
	r2l    models.Sequence
	start  int
	order  models.Order
	output *image.RGBA
}

// New prepares a run over img. It fails if the band settings cannot describe
// the image, for example fewer than two bands or an uneven width.
func New(img image.Image, params *Params) (*Unshredder, error) {
	pixels := NewPixels(img)
	layout, err := NewLayout(pixels.Width(), params.Bands, params.BandWidth, params.AllowTruncate)
	if err != nil {
		return nil, err
	}

	return &Unshredder{
		params: params,
		img:    img,
		pixels: pixels,
		layout: layout,
		start:  -1,
	}, nil
}

// Layout returns the band layout of the run
func (u *Unshredder) Layout() Layout {
	return u.layout
}

// Matrix returns the edge distance matrix, computing it on first use
func (u *Unshredder) Matrix() *mat.Dense {
	if u.matrix == nil {
		u.matrix = BuildMatrix(u.pixels, u.layout, u.params.Metric, u.params.NumCores)
	}
	return u.matrix
}

// Sequences returns the left-to-right and right-to-left sequences
func (u *Unshredder) Sequences() (l2r, r2l models.Sequence, err error) {
	if u.l2r == nil {
		m := u.Matrix()
		if u.l2r, err = BuildSequence(m); err != nil {
			return nil, nil, err
		}
		if u.r2l, err = BuildReverseSequence(m); err != nil {
			u.l2r = nil
			return nil, nil, err
		}
	}
	return u.l2r, u.r2l, nil
}

// Start returns the resolved leftmost band
func (u *Unshredder) Start() (int, error) {
	if u.start < 0 {
		l2r, r2l, err := u.Sequences()
		if err != nil {
			return -1, err
		}
		start, err := ResolveStart(l2r, r2l, u.params.Start)
		if err != nil {
			return -1, err
		}
		u.start = start
	}
	return u.start, nil
}

// Process runs the complete pipeline and returns the reassembled image
func (u *Unshredder) Process() (*image.RGBA, error) {
	if u.output != nil {
		return u.output, nil
	}

	u.logf("Step 1: Computing edge distances for %d bands of width %d (%s metric)...\n",
		u.layout.NumBands, u.layout.BandWidth, u.params.Metric)
	m := u.Matrix()
	if undefined := UndefinedCells(m); undefined > 0 {
		u.logf("Warning: %d band pairs have undefined edge distances\n", undefined)
	}
	if rem := u.layout.Remainder(); rem > 0 {
		u.logf("Warning: %d remainder columns are excluded from matching\n", rem)
	}

	u.logf("Step 2: Building neighbour sequences...\n")
	l2r, _, err := u.Sequences()
	if err != nil {
		return nil, fmt.Errorf("failed to build sequences: %w", err)
	}

	u.logf("Step 3: Resolving start band (%s)...\n", u.params.Start)
	start, err := u.Start()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve start band: %w", err)
	}
	u.logf("Start band: %d\n", start)

	u.logf("Step 4: Reassembling bands...\n")
	output, order, err := Reassemble(u.img, u.layout, l2r, start)
	if err != nil {
		return nil, fmt.Errorf("failed to reassemble image: %w", err)
	}
	u.output = output
	u.order = order

	if u.params.Verbose {
		report := u.Report()
		report.WriteTable(stdout)
		fmt.Fprintf(stdout, "Order: %v\n", order)
	}

	if u.params.SaveIntermediaryResults {
		u.logf("Saving intermediary results to %s...\n", u.params.IntermediaryDir)
		u.saveIntermediaryResults()
	}

	return output, nil
}

// Order returns the final band order, or nil before Process succeeded
func (u *Unshredder) Order() models.Order {
	return u.order
}

// Report returns the match table and chain metrics of a processed run
func (u *Unshredder) Report() Report {
	return NewReport(u.Matrix(), u.l2r, u.r2l, u.start, u.order)
}

func (u *Unshredder) logf(format string, args ...interface{}) {
	if u.params.Verbose {
		fmt.Fprintf(stdout, format, args...)
	}
}
