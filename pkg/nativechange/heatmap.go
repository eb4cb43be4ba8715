package nativechange

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// ErrCategoryMissing marks a transition whose analysis produced no commit at
// all for the requested category. An absent category is a data gap, not a
// zero: the cell is left out of the matrix instead of being defaulted.
var ErrCategoryMissing = errors.New("category absent from analysis result")

// ErrUnknownCategory is returned when the requested category label is not in
// the closed category set. Checked before the walk starts.
var ErrUnknownCategory = errors.New("unknown category")

// HeatmapMatrix maps addon name to transition label ("<source>-<target>")
// to the aggregated line-change value of one fixed category. Serialized
// as-is, this is the exact JSON document the visualization consumer reads.
type HeatmapMatrix map[string]map[string]int

// CellError records one failed matrix cell: the walk continues past it and
// the cell stays absent from the matrix.
type CellError struct {
	Addon      string
	Transition string
	Err        error
}

func (e CellError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Addon, e.Transition, e.Err)
}

func (e CellError) Unwrap() error {
	return e.Err
}

// HeatmapResult is a walk outcome: the successfully computed cells plus the
// per-cell failures, kept separate so callers can tell a data gap from a
// genuine zero.
type HeatmapResult struct {
	Matrix HeatmapMatrix
	Errors []CellError
}

// Walker chains single-transition analyses over a version boundary sequence
// and assembles the heatmap matrix for one category. Cells are visited
// strictly sequentially; the matrix is owned by the walk for its duration.
type Walker struct {
	Analyzer *Analyzer
	MinLines int
	Category Category

	// Remote, when set, prefixes version labels to form branch refs
	// ("origin" turns "17.0" into "origin/17.0").
	Remote string

	// Log receives per-cell failure warnings. Defaults to slog.Default().
	Log *slog.Logger
}

// BuildHeatmap walks every adjacent pair of the version chain for every
// addon. The chain must already be ordered newest to oldest; the walker only
// consumes adjacent pairs and never sorts. A chain with fewer than two
// entries yields an empty matrix, which is valid output. Per-cell failures
// (diff resolution errors or a missing category) are logged and collected
// but do not abort the walk. Each cell is attempted exactly once.
func (w *Walker) BuildHeatmap(ctx context.Context, addons []string, chain []Version) (*HeatmapResult, error) {
	if !ValidCategory(string(w.Category)) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, w.Category)
	}

	logger := w.Log
	if logger == nil {
		logger = slog.Default()
	}

	result := &HeatmapResult{Matrix: HeatmapMatrix{}}

	for _, addon := range addons {
		for i := 0; i+1 < len(chain); i++ {
			source, target := chain[i], chain[i+1]
			transition := fmt.Sprintf("%s-%s", source, target)

			value, err := w.cellValue(ctx, addon, source, target)
			if err != nil {
				cellErr := CellError{Addon: addon, Transition: transition, Err: err}
				result.Errors = append(result.Errors, cellErr)
				logger.Warn("skipping heatmap cell",
					"addon", addon, "transition", transition, "error", err)

				continue
			}

			if result.Matrix[addon] == nil {
				result.Matrix[addon] = map[string]int{}
			}

			result.Matrix[addon][transition] = value
		}
	}

	return result, nil
}

// cellValue runs one single-transition analysis and extracts the configured
// category's line-change total.
func (w *Walker) cellValue(ctx context.Context, addon string, source, target Version) (int, error) {
	analysis, err := w.Analyzer.Analyze(ctx, addon, w.ref(source), w.ref(target), w.MinLines)
	if err != nil {
		return 0, err
	}

	stats, ok := analysis.Categories[w.Category]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrCategoryMissing, w.Category)
	}

	return stats.LineChanges, nil
}

func (w *Walker) ref(v Version) string {
	if w.Remote == "" {
		return v.String()
	}

	return w.Remote + "/" + v.String()
}

// WriteJSON serializes the matrix as the single nested JSON document the
// visualization consumer depends on: top-level keys are addon names, values
// map transition labels to numbers.
func (m HeatmapMatrix) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("encode heatmap: %w", err)
	}

	return nil
}

// ReadHeatmap decodes a heatmap matrix document.
func ReadHeatmap(r io.Reader) (HeatmapMatrix, error) {
	var matrix HeatmapMatrix

	if err := json.NewDecoder(r).Decode(&matrix); err != nil {
		return nil, fmt.Errorf("decode heatmap: %w", err)
	}

	return matrix, nil
}
