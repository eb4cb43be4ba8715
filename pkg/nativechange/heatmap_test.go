package nativechange_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oca-tools/addonscope/pkg/nativechange"
)

var errBranchGone = errors.New("branch gone")

// stubDiff keys commit fixtures by "addon|source|target" and records every
// lookup it served.
type stubDiff struct {
	commits map[string][]nativechange.Commit
	fail    map[string]error
	calls   []string
}

func (s *stubDiff) Commits(_ context.Context, addon, source, target string) ([]nativechange.Commit, error) {
	key := fmt.Sprintf("%s|%s|%s", addon, source, target)
	s.calls = append(s.calls, key)

	if err, ok := s.fail[key]; ok {
		return nil, err
	}

	return s.commits[key], nil
}

func fixCommit(hash string, lines int) nativechange.Commit {
	return nativechange.Commit{Hash: hash, Summary: "[FIX] x: y", LineCount: lines}
}

func chain(majors ...int) []nativechange.Version {
	versions := make([]nativechange.Version, 0, len(majors))
	for _, major := range majors {
		versions = append(versions, nativechange.Version{Major: major})
	}

	return versions
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestWalker_BuildHeatmap_FillsAdjacentTransitions(t *testing.T) {
	t.Parallel()

	diff := &stubDiff{commits: map[string][]nativechange.Commit{
		"sale|17.0|16.0": {fixCommit("a", 30), fixCommit("b", 12)},
		"sale|16.0|15.0": {fixCommit("c", 7)},
	}}

	walker := &nativechange.Walker{
		Analyzer: nativechange.NewAnalyzer(diff),
		Category: nativechange.CategoryFix,
		Log:      discardLogger(),
	}

	result, err := walker.BuildHeatmap(context.Background(), []string{"sale"}, chain(17, 16, 15))
	require.NoError(t, err)
	assert.Empty(t, result.Errors)

	assert.Equal(t, nativechange.HeatmapMatrix{
		"sale": {"17.0-16.0": 42, "16.0-15.0": 7},
	}, result.Matrix)
}

func TestWalker_BuildHeatmap_RemotePrefixesRefs(t *testing.T) {
	t.Parallel()

	diff := &stubDiff{commits: map[string][]nativechange.Commit{
		"sale|origin/17.0|origin/16.0": {fixCommit("a", 5)},
	}}

	walker := &nativechange.Walker{
		Analyzer: nativechange.NewAnalyzer(diff),
		Category: nativechange.CategoryFix,
		Remote:   "origin",
		Log:      discardLogger(),
	}

	result, err := walker.BuildHeatmap(context.Background(), []string{"sale"}, chain(17, 16))
	require.NoError(t, err)

	// Matrix keys stay bare labels even when refs carry the remote prefix.
	assert.Equal(t, nativechange.HeatmapMatrix{
		"sale": {"17.0-16.0": 5},
	}, result.Matrix)
	assert.Equal(t, []string{"sale|origin/17.0|origin/16.0"}, diff.calls)
}

func TestWalker_BuildHeatmap_CellFailureSkipsAndContinues(t *testing.T) {
	t.Parallel()

	diff := &stubDiff{
		commits: map[string][]nativechange.Commit{
			"sale|17.0|16.0": {fixCommit("a", 30)},
		},
		fail: map[string]error{
			"sale|16.0|15.0": errBranchGone,
		},
	}

	walker := &nativechange.Walker{
		Analyzer: nativechange.NewAnalyzer(diff),
		Category: nativechange.CategoryFix,
		Log:      discardLogger(),
	}

	result, err := walker.BuildHeatmap(context.Background(), []string{"sale"}, chain(17, 16, 15))
	require.NoError(t, err)

	assert.Equal(t, nativechange.HeatmapMatrix{
		"sale": {"17.0-16.0": 30},
	}, result.Matrix)

	require.Len(t, result.Errors, 1)
	assert.Equal(t, "sale", result.Errors[0].Addon)
	assert.Equal(t, "16.0-15.0", result.Errors[0].Transition)
	assert.ErrorIs(t, result.Errors[0], errBranchGone)
}

// A transition whose aggregation has no commit in the requested category is a
// data gap: the cell is absent, not zero.
func TestWalker_BuildHeatmap_MissingCategoryIsGapNotZero(t *testing.T) {
	t.Parallel()

	diff := &stubDiff{commits: map[string][]nativechange.Commit{
		"sale|17.0|16.0": {{Hash: "a", Summary: "[i18n] terms", LineCount: 9}},
	}}

	walker := &nativechange.Walker{
		Analyzer: nativechange.NewAnalyzer(diff),
		Category: nativechange.CategoryFix,
		Log:      discardLogger(),
	}

	result, err := walker.BuildHeatmap(context.Background(), []string{"sale"}, chain(17, 16))
	require.NoError(t, err)

	assert.NotContains(t, result.Matrix, "sale")
	require.Len(t, result.Errors, 1)
	assert.ErrorIs(t, result.Errors[0], nativechange.ErrCategoryMissing)
}

func TestWalker_BuildHeatmap_UnknownCategoryFailsBeforeWalk(t *testing.T) {
	t.Parallel()

	diff := &stubDiff{}

	walker := &nativechange.Walker{
		Analyzer: nativechange.NewAnalyzer(diff),
		Category: nativechange.Category("fixes"),
		Log:      discardLogger(),
	}

	_, err := walker.BuildHeatmap(context.Background(), []string{"sale"}, chain(17, 16))
	assert.ErrorIs(t, err, nativechange.ErrUnknownCategory)
	assert.Empty(t, diff.calls)
}

func TestWalker_BuildHeatmap_DegenerateChainYieldsEmptyMatrix(t *testing.T) {
	t.Parallel()

	diff := &stubDiff{}

	walker := &nativechange.Walker{
		Analyzer: nativechange.NewAnalyzer(diff),
		Category: nativechange.CategoryFix,
		Log:      discardLogger(),
	}

	result, err := walker.BuildHeatmap(context.Background(), []string{"sale"}, chain(16))
	require.NoError(t, err)
	assert.Empty(t, result.Matrix)
	assert.Empty(t, result.Errors)
	assert.Empty(t, diff.calls)
}

func TestWalker_BuildHeatmap_EachCellAttemptedOnce(t *testing.T) {
	t.Parallel()

	diff := &stubDiff{commits: map[string][]nativechange.Commit{}}

	walker := &nativechange.Walker{
		Analyzer: nativechange.NewAnalyzer(diff),
		Category: nativechange.CategoryFix,
		Log:      discardLogger(),
	}

	_, err := walker.BuildHeatmap(context.Background(),
		[]string{"sale", "stock"}, chain(17, 16, 15))
	require.NoError(t, err)

	assert.Equal(t, []string{
		"sale|17.0|16.0", "sale|16.0|15.0",
		"stock|17.0|16.0", "stock|16.0|15.0",
	}, diff.calls)
}

func TestHeatmapMatrix_WriteReadRoundTrip(t *testing.T) {
	t.Parallel()

	matrix := nativechange.HeatmapMatrix{
		"sale":  {"17.0-16.0": 42, "16.0-15.0": 7},
		"stock": {"17.0-16.0": 0},
	}

	var buf bytes.Buffer
	require.NoError(t, matrix.WriteJSON(&buf))

	decoded, err := nativechange.ReadHeatmap(&buf)
	require.NoError(t, err)
	assert.Equal(t, matrix, decoded)
}

func TestHeatmapMatrix_WriteJSON_DocumentShape(t *testing.T) {
	t.Parallel()

	matrix := nativechange.HeatmapMatrix{"sale": {"16.0-15.0": 7}}

	var buf bytes.Buffer
	require.NoError(t, matrix.WriteJSON(&buf))

	assert.JSONEq(t, `{"sale": {"16.0-15.0": 7}}`, buf.String())
}

func TestReadHeatmap_Malformed(t *testing.T) {
	t.Parallel()

	_, err := nativechange.ReadHeatmap(bytes.NewReader([]byte(`{"sale": "nope"}`)))
	assert.Error(t, err)
}
