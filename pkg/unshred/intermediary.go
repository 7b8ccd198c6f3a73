package unshred

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/mat"
	"gopkg.in/yaml.v3"

	"unshredder/pkg/imageio"
	"unshredder/pkg/visualization"
)

// stdout receives progress output; tests replace it
var stdout io.Writer = os.Stdout

// heatmapCellSize is the size in pixels of one matrix cell in the heatmap
const heatmapCellSize = 16

// saveIntermediaryResults writes the artefacts of a processed run. Failures
// are reported as warnings and do not abort the run.
func (u *Unshredder) saveIntermediaryResults() {
	m := u.Matrix()
	if err := u.saveIntermediaryResult("01_distance_matrix", "matrix", m); err != nil {
		fmt.Fprintf(stdout, "Warning: Failed to save distance matrix: %v\n", err)
	}
	if err := u.saveIntermediaryResult("01_distance_matrix", "heatmap", visualization.Heatmap(m, heatmapCellSize)); err != nil {
		fmt.Fprintf(stdout, "Warning: Failed to save heatmap: %v\n", err)
	}

	viewer := visualization.NewViewer(u.img, u.layout.Bands())
	if err := viewer.SaveBandSequence(u.order, filepath.Join(u.params.IntermediaryDir, "02_ordered_bands")); err != nil {
		fmt.Fprintf(stdout, "Warning: Failed to save ordered bands: %v\n", err)
	}

	if err := u.saveIntermediaryResult("03_report", "report", u.Report()); err != nil {
		fmt.Fprintf(stdout, "Warning: Failed to save report: %v\n", err)
	}
}

// saveIntermediaryResult saves one artefact under stage, choosing the file
// format from the type of data
func (u *Unshredder) saveIntermediaryResult(stage, name string, data interface{}) error {
	stageDir := filepath.Join(u.params.IntermediaryDir, stage)
	if err := os.MkdirAll(stageDir, 0755); err != nil {
		return fmt.Errorf("failed to create intermediary directory: %w", err)
	}

	switch v := data.(type) {
	case image.Image:
		return imageio.Save(v, filepath.Join(stageDir, name+".png"), imageio.FormatPNG)

	case mat.Matrix:
		file, err := os.Create(filepath.Join(stageDir, name+".txt"))
		if err != nil {
			return fmt.Errorf("failed to create matrix file: %w", err)
		}
		defer file.Close()

		fmt.Fprintf(file, "%.1f\n", mat.Formatted(v, mat.Squeeze()))
		return file.Close()

	case Report:
		out, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to marshal report: %w", err)
		}
		return os.WriteFile(filepath.Join(stageDir, name+".yaml"), out, 0644)

	default:
		return fmt.Errorf("unsupported intermediary result type %T", data)
	}
}
