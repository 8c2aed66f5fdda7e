package repos

import (
	"context"
	"fmt"
	"slices"

	"github.com/go-git/go-git/v6"
	"github.com/samber/lo"
)

// StatusInspector computes working-tree status of the repositories known to a Locator.
type StatusInspector struct {
	locator *Locator
}

func NewStatusInspector(locator *Locator) *StatusInspector {
	return &StatusInspector{locator: locator}
}

// GetStatus returns the working-tree status of the named repository.
func (i *StatusInspector) GetStatus(ctx context.Context, name string) (snapshot StatusSnapshot, err error) {
	repoPath, err := i.locator.Resolve(name)
	if err != nil {
		return StatusSnapshot{}, err
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return StatusSnapshot{}, ctxErr
	}

	repo, release, err := openRepository(repoPath)
	if err != nil {
		return StatusSnapshot{}, err
	}
	defer func() {
		if relErr := release(); relErr != nil && err == nil {
			snapshot, err = StatusSnapshot{}, relErr
		}
	}()

	worktree, err := repo.Worktree()
	if err != nil {
		return StatusSnapshot{}, fmt.Errorf("%w: failed to get worktree of %q: %w", ErrVCS, name, err)
	}

	status, err := worktree.Status()
	if err != nil {
		return StatusSnapshot{}, fmt.Errorf("%w: failed to get status of %q: %w", ErrVCS, name, err)
	}

	// Status cannot be interrupted, drop a result that arrived after the deadline
	if ctxErr := ctx.Err(); ctxErr != nil {
		return StatusSnapshot{}, ctxErr
	}

	return newStatusSnapshot(status), nil
}

type pathSet map[string]struct{}

func (s pathSet) sorted() []string {
	paths := lo.Keys(map[string]struct{}(s))
	slices.Sort(paths)
	return paths
}

func newStatusSnapshot(status git.Status) StatusSnapshot {
	var (
		added     = pathSet{}
		changed   = pathSet{}
		missing   = pathSet{}
		modified  = pathSet{}
		removed   = pathSet{}
		untracked = pathSet{}
	)

	for path, fileStatus := range status {
		if fileStatus.Worktree == git.Untracked {
			untracked[path] = struct{}{}
		}
		if fileStatus.Staging == git.Untracked {
			continue
		}

		switch fileStatus.Staging {
		case git.Added, git.Copied, git.Renamed:
			added[path] = struct{}{}
		case git.Modified:
			changed[path] = struct{}{}
		case git.Deleted:
			removed[path] = struct{}{}
		case git.Unmodified, git.Untracked, git.UpdatedButUnmerged:
		}

		switch fileStatus.Worktree {
		case git.Modified:
			modified[path] = struct{}{}
		case git.Deleted:
			missing[path] = struct{}{}
		case git.Unmodified, git.Untracked, git.Added, git.Copied, git.Renamed, git.UpdatedButUnmerged:
		}
	}

	return StatusSnapshot{
		Added:     added.sorted(),
		Changed:   changed.sorted(),
		Missing:   missing.sorted(),
		Modified:  modified.sorted(),
		Removed:   removed.sorted(),
		Untracked: untracked.sorted(),
	}
}
