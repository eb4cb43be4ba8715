// Package histdiff lists the commits unique to an addon between two branch
// refs. It is the branch diff provider backing the single-transition
// analyzer: revision walking and line counting happen here, classification
// and aggregation stay in pkg/nativechange.
package histdiff

import (
	"context"
	"errors"
	"fmt"
	"path"

	"github.com/oca-tools/addonscope/pkg/gitlib"
	"github.com/oca-tools/addonscope/pkg/nativechange"
)

// ErrAddonNotFound is returned when the addon path cannot be located at the
// source ref. Fatal to the transition: there is nothing to analyze.
var ErrAddonNotFound = errors.New("addon path not found")

// Provider computes per-addon branch diffs from a local git repository.
type Provider struct {
	repo *gitlib.Repository

	// addonsDir is the tree path containing addons ("addons" for an odoo
	// checkout). Empty means addons live at the repository root.
	addonsDir string
}

// NewProvider creates a Provider over an open repository.
func NewProvider(repo *gitlib.Repository, addonsDir string) *Provider {
	return &Provider{repo: repo, addonsDir: addonsDir}
}

// AddonPath returns the tree path of an addon.
func (p *Provider) AddonPath(addon string) string {
	if p.addonsDir == "" {
		return addon
	}

	return path.Join(p.addonsDir, addon)
}

// Commits returns the commits reachable from source but not from target that
// touch the addon, newest first, each carrying the changed-line count scoped
// to the addon subtree. The addon must exist at the source ref.
func (p *Provider) Commits(ctx context.Context, addon, source, target string) ([]nativechange.Commit, error) {
	addonPath := p.AddonPath(addon)

	exists, err := p.repo.PathExistsAt(source, addonPath)
	if err != nil {
		return nil, err
	}

	if !exists {
		return nil, fmt.Errorf("%w: %s at %s", ErrAddonNotFound, addonPath, source)
	}

	walk, err := p.repo.Walk()
	if err != nil {
		return nil, err
	}
	defer walk.Free()

	if err := walk.Push(source); err != nil {
		return nil, err
	}

	if err := walk.Hide(target); err != nil {
		return nil, err
	}

	walk.SortTopoTime()

	var (
		commits []nativechange.Commit
		walkErr error
	)

	iterErr := walk.Iterate(func(commit *gitlib.Commit) bool {
		if ctxErr := ctx.Err(); ctxErr != nil {
			walkErr = ctxErr

			return false
		}

		stats, statsErr := commit.StatsForPath(addonPath)
		if statsErr != nil {
			walkErr = fmt.Errorf("stats for %s at %s: %w", addonPath, commit.Hash(), statsErr)

			return false
		}

		if stats.FilesChanged == 0 {
			return true
		}

		commits = append(commits, nativechange.Commit{
			Hash:      commit.Hash(),
			Summary:   commit.Summary(),
			LineCount: stats.Lines(),
		})

		return true
	})
	if iterErr != nil {
		return nil, iterErr
	}

	if walkErr != nil {
		return nil, walkErr
	}

	return commits, nil
}
