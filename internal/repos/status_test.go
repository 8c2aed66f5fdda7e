package repos_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/repospect/repospect/internal/repos"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStatusInspector(t *testing.T, base string) *repos.StatusInspector {
	t.Helper()

	locator, err := repos.NewLocator(base)
	require.NoError(t, err)

	return repos.NewStatusInspector(locator)
}

func TestStatusInspector_GetStatus_ReportsAllStatusTypes(t *testing.T) {
	base := t.TempDir()
	repo := newFixture(t, base, "repoStatus")

	// initial commit with four tracked files
	for _, file := range []string{"fileA.txt", "fileC.txt", "fileD.txt", "fileE.txt"} {
		repo.write(file, "v1")
		repo.add(file)
	}
	repo.commit("initial", "Alice")

	// modified: working tree only
	repo.write("fileA.txt", "v2")

	// added: staged new file
	repo.write("fileB.txt", "new")
	repo.add("fileB.txt")

	// removed: deleted and staged
	repo.remove("fileC.txt")

	// missing: deleted, not staged
	repo.delete("fileD.txt")

	// changed: modified and staged
	repo.write("fileE.txt", "v2")
	repo.add("fileE.txt")

	status, err := newStatusInspector(t, base).GetStatus(context.Background(), "repoStatus")

	require.NoError(t, err)
	assert.Equal(t, []string{"fileB.txt"}, status.Added)
	assert.Equal(t, []string{"fileE.txt"}, status.Changed)
	assert.Equal(t, []string{"fileD.txt"}, status.Missing)
	assert.Equal(t, []string{"fileA.txt"}, status.Modified)
	assert.Equal(t, []string{"fileC.txt"}, status.Removed)
	assert.Empty(t, status.Untracked)
	assert.False(t, status.IsClean())
}

func TestStatusInspector_GetStatus_StagedAndModified(t *testing.T) {
	base := t.TempDir()
	repo := newFixture(t, base, "repo")
	repo.write("file.txt", "v1")
	repo.add("file.txt")
	repo.commit("initial", "Alice")

	repo.write("file.txt", "v2")
	repo.add("file.txt")
	repo.write("file.txt", "v3")

	status, err := newStatusInspector(t, base).GetStatus(context.Background(), "repo")

	require.NoError(t, err)
	assert.Equal(t, []string{"file.txt"}, status.Changed)
	assert.Equal(t, []string{"file.txt"}, status.Modified)
}

func TestStatusInspector_GetStatus_UntrackedAndIgnored(t *testing.T) {
	base := t.TempDir()
	repo := newFixture(t, base, "repo")
	repo.write(".gitignore", "*.log\n")
	repo.add(".gitignore")
	repo.commit("ignore logs", "Alice")

	repo.write("notes.md", "draft")
	repo.write("debug.log", "noise")
	require.NoError(t, os.MkdirAll(filepath.Join(base, "repo", "docs"), 0o755))
	repo.write("docs/guide.md", "guide")

	status, err := newStatusInspector(t, base).GetStatus(context.Background(), "repo")

	require.NoError(t, err)
	assert.Equal(t, []string{"docs/guide.md", "notes.md"}, status.Untracked)
	assert.Empty(t, status.Added)
	assert.Empty(t, status.Modified)
}

func TestStatusInspector_GetStatus_Clean(t *testing.T) {
	base := t.TempDir()
	repo := newFixture(t, base, "repo")
	repo.write("file.txt", "v1")
	repo.add("file.txt")
	repo.commit("initial", "Alice")

	status, err := newStatusInspector(t, base).GetStatus(context.Background(), "repo")

	require.NoError(t, err)
	assert.True(t, status.IsClean())
	assert.NotNil(t, status.Untracked)
}

func TestStatusInspector_GetStatus_NotARepository(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(base, "notRepo"), 0o755))

	_, err := newStatusInspector(t, base).GetStatus(context.Background(), "notRepo")

	require.ErrorIs(t, err, repos.ErrNotARepository)
	assert.Contains(t, err.Error(), "notRepo")
}
