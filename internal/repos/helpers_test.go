package repos_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/plumbing/object"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2024, time.March, 1, 12, 0, 0, 0, time.FixedZone("CET", 3600))

type fixture struct {
	t        *testing.T
	path     string
	worktree *git.Worktree
	commits  int
	writes   int
}

// newFixture initializes a git repository named name under base.
func newFixture(t *testing.T, base, name string) *fixture {
	t.Helper()

	repoPath := filepath.Join(base, name)
	require.NoError(t, os.MkdirAll(repoPath, 0o755))

	repo, err := git.PlainInit(repoPath, false)
	require.NoError(t, err)

	worktree, err := repo.Worktree()
	require.NoError(t, err)

	return &fixture{t: t, path: repoPath, worktree: worktree}
}

// write stores content with a distinct mtime, so rewrites of equal size are never
// mistaken for unchanged files.
func (f *fixture) write(file, content string) {
	f.t.Helper()

	path := filepath.Join(f.path, file)
	require.NoError(f.t, os.WriteFile(path, []byte(content), 0o644))

	f.writes++
	mtime := time.Now().Add(-time.Hour).Add(time.Duration(f.writes) * time.Second)
	require.NoError(f.t, os.Chtimes(path, mtime, mtime))
}

func (f *fixture) delete(file string) {
	f.t.Helper()
	require.NoError(f.t, os.Remove(filepath.Join(f.path, file)))
}

func (f *fixture) add(file string) {
	f.t.Helper()
	_, err := f.worktree.Add(file)
	require.NoError(f.t, err)
}

func (f *fixture) remove(file string) {
	f.t.Helper()
	_, err := f.worktree.Remove(file)
	require.NoError(f.t, err)
}

// commit commits the index; each commit is one hour younger than the previous one.
func (f *fixture) commit(message, author string) {
	f.t.Helper()

	when := epoch.Add(time.Duration(f.commits) * time.Hour)
	f.commits++

	_, err := f.worktree.Commit(message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  author,
			Email: author + "@example.com",
			When:  when,
		},
	})
	require.NoError(f.t, err)
}

// mkdirRepo creates a bare-bones directory with a .git subdirectory, which is all discovery looks at.
func mkdirRepo(t *testing.T, segments ...string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(append(segments, ".git")...), 0o755))
}
