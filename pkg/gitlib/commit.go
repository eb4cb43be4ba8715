package gitlib

import (
	"fmt"
	"strings"

	git2go "github.com/libgit2/git2go/v34"
)

// Commit wraps a libgit2 commit.
type Commit struct {
	commit *git2go.Commit
	repo   *Repository
}

// Hash returns the full hex commit identifier.
func (c *Commit) Hash() string {
	return c.commit.Id().String()
}

// Message returns the full commit message.
func (c *Commit) Message() string {
	return c.commit.Message()
}

// Summary returns the first line of the commit message.
func (c *Commit) Summary() string {
	message := c.commit.Message()
	if idx := strings.IndexByte(message, '\n'); idx >= 0 {
		message = message[:idx]
	}

	return strings.TrimSpace(message)
}

// NumParents returns the number of parent commits.
func (c *Commit) NumParents() int {
	return int(c.commit.ParentCount())
}

// Free releases the commit resources.
func (c *Commit) Free() {
	if c.commit != nil {
		c.commit.Free()
		c.commit = nil
	}
}

// PathStats holds line-change counters for a commit scoped to a pathspec.
type PathStats struct {
	Insertions int
	Deletions  int
	// FilesChanged is the number of touched files under the pathspec;
	// zero means the commit does not affect the path at all.
	FilesChanged int
}

// Lines returns the total changed-line count, insertions plus deletions.
func (s PathStats) Lines() int {
	return s.Insertions + s.Deletions
}

// StatsForPath diffs this commit against its first parent, limited to path,
// and returns the line-change stats. Root commits are diffed against the
// empty tree. Merge commits follow the first parent, matching what
// git log --first-parent attributes to them.
func (c *Commit) StatsForPath(path string) (PathStats, error) {
	newTree, err := c.commit.Tree()
	if err != nil {
		return PathStats{}, fmt.Errorf("get commit tree: %w", err)
	}
	defer newTree.Free()

	var oldTree *git2go.Tree

	if c.commit.ParentCount() > 0 {
		parent := c.commit.Parent(0)
		defer parent.Free()

		oldTree, err = parent.Tree()
		if err != nil {
			return PathStats{}, fmt.Errorf("get parent tree: %w", err)
		}
		defer oldTree.Free()
	}

	diff, err := c.repo.diffTrees(oldTree, newTree, []string{path})
	if err != nil {
		return PathStats{}, err
	}
	defer func() { _ = diff.Free() }()

	numDeltas, err := diff.NumDeltas()
	if err != nil {
		return PathStats{}, fmt.Errorf("get num deltas: %w", err)
	}

	if numDeltas == 0 {
		return PathStats{}, nil
	}

	stats, err := diff.Stats()
	if err != nil {
		return PathStats{}, fmt.Errorf("get diff stats: %w", err)
	}
	defer func() { _ = stats.Free() }()

	return PathStats{
		Insertions:   stats.Insertions(),
		Deletions:    stats.Deletions(),
		FilesChanged: numDeltas,
	}, nil
}
