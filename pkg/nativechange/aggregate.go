package nativechange

// CategoryStats accumulates the per-category share of an analysis.
type CategoryStats struct {
	// Commits is the member commits in encounter order. Kept for the
	// itemized text report, not serialized.
	Commits []Commit `json:"-" yaml:"-"`
	// CommitCount is len(Commits), kept explicit for serialization.
	CommitCount int `json:"commits" yaml:"commits"`
	// LineChanges is the sum of LineCount over member commits.
	LineChanges int `json:"line_changes" yaml:"line_changes"`
}

// Result is the outcome of aggregating one (addon, source, target)
// transition. Categories that received no qualifying commit are absent from
// the map. Invariants: TotalCommits equals the sum of CommitCount over all
// categories, and TotalLineChanges equals the sum of LineChanges.
type Result struct {
	TotalCommits     int                         `json:"total_commits" yaml:"total_commits"`
	TotalLineChanges int                         `json:"total_line_changes" yaml:"total_line_changes"`
	Categories       map[Category]*CategoryStats `json:"categories" yaml:"categories"`

	// order tracks first-encounter category order among surviving commits.
	// Go maps do not preserve insertion order, so reports and serializers
	// iterate through CategoryOrder instead of ranging over the map.
	order []Category
}

// CategoryOrder returns the categories present in the result, in the order
// their first qualifying commit was encountered.
func (r *Result) CategoryOrder() []Category {
	return r.order
}

// Aggregate folds a commit sequence into per-category counts and line-change
// totals. Commits with LineCount strictly below minLines are discarded before
// classification; minLines 0 admits everything, including zero-line commits.
// Aggregate is pure and total: it never fails, does not mutate its input and
// an empty sequence yields a valid all-zero Result.
func Aggregate(commits []Commit, minLines int) *Result {
	result := &Result{Categories: map[Category]*CategoryStats{}}

	for _, commit := range commits {
		if commit.LineCount < minLines {
			continue
		}

		category := Classify(commit.Summary)

		stats, seen := result.Categories[category]
		if !seen {
			stats = &CategoryStats{}
			result.Categories[category] = stats
			result.order = append(result.order, category)
		}

		stats.Commits = append(stats.Commits, commit)
		stats.CommitCount++
		stats.LineChanges += commit.LineCount

		result.TotalCommits++
		result.TotalLineChanges += commit.LineCount
	}

	return result
}
