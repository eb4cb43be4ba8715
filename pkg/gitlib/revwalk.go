package gitlib

import (
	"fmt"

	git2go "github.com/libgit2/git2go/v34"
)

// RevWalk wraps a libgit2 revision walker.
type RevWalk struct {
	walk *git2go.RevWalk
	repo *Repository
}

// Push adds the commit a revision string resolves to as a walk starting
// point.
func (w *RevWalk) Push(rev string) error {
	commit, err := w.repo.ResolveCommit(rev)
	if err != nil {
		return err
	}
	defer commit.Free()

	if err := w.walk.Push(commit.commit.Id()); err != nil {
		return fmt.Errorf("push %q to revwalk: %w", rev, err)
	}

	return nil
}

// Hide excludes the commit a revision string resolves to, and everything
// reachable from it, from the walk. Push(source) plus Hide(target) walks
// exactly the commits unique to source.
func (w *RevWalk) Hide(rev string) error {
	commit, err := w.repo.ResolveCommit(rev)
	if err != nil {
		return err
	}
	defer commit.Free()

	if err := w.walk.Hide(commit.commit.Id()); err != nil {
		return fmt.Errorf("hide %q from revwalk: %w", rev, err)
	}

	return nil
}

// SortTopoTime orders the walk topologically, then by commit time.
func (w *RevWalk) SortTopoTime() {
	w.walk.Sorting(git2go.SortTopological | git2go.SortTime)
}

// Iterate calls the callback for each commit in the walk. Returning false
// from the callback stops the iteration.
func (w *RevWalk) Iterate(cb func(*Commit) bool) error {
	err := w.walk.Iterate(func(commit *git2go.Commit) bool {
		return cb(&Commit{commit: commit, repo: w.repo})
	})
	if err != nil {
		return fmt.Errorf("revwalk iterate: %w", err)
	}

	return nil
}

// Free releases the walker resources.
func (w *RevWalk) Free() {
	if w.walk != nil {
		w.walk.Free()
		w.walk = nil
	}
}
