// Package nativechange classifies and aggregates upstream commit activity
// for a single addon between two release branches, and chains per-transition
// results into a version heatmap matrix.
package nativechange

// Commit is the normalized view of one source-control commit as produced by
// the branch diff provider. It is read-only: created per (addon, source,
// target) query and discarded after aggregation.
type Commit struct {
	// Hash is the full commit identifier.
	Hash string `json:"hash"`
	// Summary is the first line of the commit message. May be empty.
	Summary string `json:"summary"`
	// LineCount is the total number of lines changed (insertions plus
	// deletions) attributed to this commit for the addon under analysis,
	// or 0 when unavailable.
	LineCount int `json:"line_count"`
}

// ShortHash returns the abbreviated commit identifier used in reports.
func (c Commit) ShortHash() string {
	const shortHashLen = 8
	if len(c.Hash) <= shortHashLen {
		return c.Hash
	}

	return c.Hash[:shortHashLen]
}
