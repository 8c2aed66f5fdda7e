package repos

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/plumbing"
	"github.com/go-git/go-git/v6/plumbing/object"
)

// LogReader reads commit history of the repositories known to a Locator.
type LogReader struct {
	locator *Locator
}

func NewLogReader(locator *Locator) *LogReader {
	return &LogReader{locator: locator}
}

// GetLog returns the history of the named repository, newest first.
//
// A positive maxEntries caps the number of entries. Zero or a negative value
// returns the full history.
func (r *LogReader) GetLog(ctx context.Context, name string, maxEntries int) (entries []CommitEntry, err error) {
	repoPath, err := r.locator.Resolve(name)
	if err != nil {
		return nil, err
	}

	repo, release, err := openRepository(repoPath)
	if err != nil {
		return nil, err
	}
	defer func() {
		if relErr := release(); relErr != nil && err == nil {
			entries, err = nil, relErr
		}
	}()

	iter, err := repo.Log(&git.LogOptions{Order: git.LogOrderCommitterTime})
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		// unborn HEAD
		return []CommitEntry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read log of %q: %w", ErrVCS, name, err)
	}
	defer iter.Close()

	entries = []CommitEntry{}
	for maxEntries <= 0 || len(entries) < maxEntries {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}

		commit, nextErr := iter.Next()
		if errors.Is(nextErr, io.EOF) {
			break
		}
		if nextErr != nil {
			return nil, fmt.Errorf("%w: failed to iterate log of %q: %w", ErrVCS, name, nextErr)
		}

		entries = append(entries, newCommitEntry(commit))
	}

	return entries, nil
}

func newCommitEntry(commit *object.Commit) CommitEntry {
	return CommitEntry{
		Author:  commit.Author.Name,
		Date:    commit.Committer.When.UTC(),
		Message: subjectLine(commit.Message),
	}
}

func subjectLine(message string) string {
	subject, _, _ := strings.Cut(message, "\n")
	return strings.TrimSpace(subject)
}
