// Package gitlib is a thin wrapper around libgit2 covering the repository
// operations addonscope needs: ref resolution, revision walking with hidden
// tips, and pathspec-scoped diff stats.
package gitlib

import (
	"fmt"

	git2go "github.com/libgit2/git2go/v34"
)

// Repository wraps a libgit2 repository.
type Repository struct {
	repo *git2go.Repository
	path string
}

// OpenRepository opens a git repository at the given path.
func OpenRepository(path string) (*Repository, error) {
	repo, err := git2go.OpenRepository(path)
	if err != nil {
		return nil, fmt.Errorf("open repository: %w", err)
	}

	return &Repository{repo: repo, path: path}, nil
}

// Path returns the repository path.
func (r *Repository) Path() string {
	return r.path
}

// Free releases the repository resources.
func (r *Repository) Free() {
	if r.repo != nil {
		r.repo.Free()
		r.repo = nil
	}
}

// ResolveCommit resolves a revision string ("origin/17.0", a tag, a sha) to
// the commit it points at.
func (r *Repository) ResolveCommit(rev string) (*Commit, error) {
	obj, err := r.repo.RevparseSingle(rev)
	if err != nil {
		return nil, fmt.Errorf("resolve %q: %w", rev, err)
	}
	defer obj.Free()

	peeled, err := obj.Peel(git2go.ObjectCommit)
	if err != nil {
		return nil, fmt.Errorf("peel %q to commit: %w", rev, err)
	}

	commit, err := peeled.AsCommit()
	if err != nil {
		return nil, fmt.Errorf("object at %q is not a commit: %w", rev, err)
	}

	return &Commit{commit: commit, repo: r}, nil
}

// PathExistsAt reports whether path exists in the tree of the commit that
// rev resolves to.
func (r *Repository) PathExistsAt(rev, path string) (bool, error) {
	commit, err := r.ResolveCommit(rev)
	if err != nil {
		return false, err
	}
	defer commit.Free()

	tree, err := commit.commit.Tree()
	if err != nil {
		return false, fmt.Errorf("get tree at %q: %w", rev, err)
	}
	defer tree.Free()

	_, entryErr := tree.EntryByPath(path)
	if entryErr != nil {
		return false, nil
	}

	return true, nil
}

// Walk creates a revision walker over this repository.
func (r *Repository) Walk() (*RevWalk, error) {
	walk, err := r.repo.Walk()
	if err != nil {
		return nil, fmt.Errorf("create revwalk: %w", err)
	}

	return &RevWalk{walk: walk, repo: r}, nil
}

// diffTrees computes the diff between two trees limited to the given
// pathspec. oldTree may be nil for root commits.
func (r *Repository) diffTrees(oldTree, newTree *git2go.Tree, pathspec []string) (*git2go.Diff, error) {
	opts, err := git2go.DefaultDiffOptions()
	if err != nil {
		return nil, fmt.Errorf("default diff options: %w", err)
	}

	opts.Pathspec = pathspec

	diff, err := r.repo.DiffTreeToTree(oldTree, newTree, &opts)
	if err != nil {
		return nil, fmt.Errorf("diff trees: %w", err)
	}

	return diff, nil
}
