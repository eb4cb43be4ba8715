package nativechange

import (
	"context"
	"fmt"
)

// DiffProvider supplies the commits unique to an addon between a source and
// a target ref. Implementations walk actual repository history (see
// pkg/histdiff); the analyzer itself never touches git storage.
type DiffProvider interface {
	// Commits returns the commits present on source but not on target that
	// touch the given addon, in history order. It fails when the addon
	// path cannot be resolved for the pair.
	Commits(ctx context.Context, addon, source, target string) ([]Commit, error)
}

// Analyzer runs a single-transition analysis: fetch the addon's commit diff
// for one (source, target) branch pair and fold it into a Result.
type Analyzer struct {
	Diff DiffProvider
}

// NewAnalyzer creates an Analyzer on top of the given diff provider.
func NewAnalyzer(diff DiffProvider) *Analyzer {
	return &Analyzer{Diff: diff}
}

// Analyze aggregates the commits unique to addon between source and target.
// Resolution failures from the diff provider propagate to the caller
// unchanged; there is no recoverable error branch at this layer.
func (a *Analyzer) Analyze(ctx context.Context, addon, source, target string, minLines int) (*Result, error) {
	commits, err := a.Diff.Commits(ctx, addon, source, target)
	if err != nil {
		return nil, fmt.Errorf("diff %s (%s -> %s): %w", addon, source, target, err)
	}

	return Aggregate(commits, minLines), nil
}
