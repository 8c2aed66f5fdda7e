package repos_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v6"
	"github.com/repospect/repospect/internal/repos"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLogReader(t *testing.T, base string) *repos.LogReader {
	t.Helper()

	locator, err := repos.NewLocator(base)
	require.NoError(t, err)

	return repos.NewLogReader(locator)
}

func TestLogReader_GetLog_ReturnsOrderedEntries(t *testing.T) {
	base := t.TempDir()
	repo := newFixture(t, base, "repo1")
	repo.write("file.txt", "v1")
	repo.add("file.txt")
	repo.commit("first commit", "Alice")
	repo.write("file.txt", "v2")
	repo.add("file.txt")
	repo.commit("second commit", "Bob")

	entries, err := newLogReader(t, base).GetLog(context.Background(), "repo1", -1)

	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "Bob", entries[0].Author)
	assert.Equal(t, "second commit", entries[0].Message)
	assert.Equal(t, "Alice", entries[1].Author)
	assert.Equal(t, "first commit", entries[1].Message)

	assert.Equal(t, time.UTC, entries[0].Date.Location())
	assert.True(t, entries[0].Date.Equal(epoch.Add(time.Hour)))
	assert.False(t, entries[1].Date.After(entries[0].Date))
}

func TestLogReader_GetLog_Limits(t *testing.T) {
	base := t.TempDir()
	repo := newFixture(t, base, "repoLimit")
	for _, message := range []string{"c1", "c2", "c3"} {
		repo.write("file.txt", message)
		repo.add("file.txt")
		repo.commit(message, "A")
	}

	reader := newLogReader(t, base)

	tests := []struct {
		maxEntries int
		expected   []string
	}{
		{maxEntries: 1, expected: []string{"c3"}},
		{maxEntries: 2, expected: []string{"c3", "c2"}},
		{maxEntries: 10, expected: []string{"c3", "c2", "c1"}},
		{maxEntries: 0, expected: []string{"c3", "c2", "c1"}},
		{maxEntries: -5, expected: []string{"c3", "c2", "c1"}},
	}

	for _, tt := range tests {
		entries, err := reader.GetLog(context.Background(), "repoLimit", tt.maxEntries)
		require.NoError(t, err)

		messages := make([]string, len(entries))
		for i, entry := range entries {
			messages[i] = entry.Message
		}
		assert.Equal(t, tt.expected, messages, "maxEntries=%d", tt.maxEntries)
	}
}

func TestLogReader_GetLog_SubjectLineOnly(t *testing.T) {
	base := t.TempDir()
	repo := newFixture(t, base, "repo")
	repo.write("file.txt", "v1")
	repo.add("file.txt")
	repo.commit("subject line\n\nbody paragraph\nmore body", "Alice")

	entries, err := newLogReader(t, base).GetLog(context.Background(), "repo", 0)

	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "subject line", entries[0].Message)
}

func TestLogReader_GetLog_UnbornHead(t *testing.T) {
	base := t.TempDir()
	_, err := git.PlainInit(filepath.Join(base, "empty"), false)
	require.NoError(t, err)

	entries, err := newLogReader(t, base).GetLog(context.Background(), "empty", -1)

	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLogReader_GetLog_NotARepository(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(base, "notRepo"), 0o755))

	_, err := newLogReader(t, base).GetLog(context.Background(), "notRepo", 1)

	require.ErrorIs(t, err, repos.ErrNotARepository)
	assert.Contains(t, err.Error(), "not a git repository")
	assert.Contains(t, err.Error(), "notRepo")
}

func TestLogReader_GetLog_CorruptRepository(t *testing.T) {
	base := t.TempDir()
	mkdirRepo(t, base, "broken")

	_, err := newLogReader(t, base).GetLog(context.Background(), "broken", 1)

	require.ErrorIs(t, err, repos.ErrVCS)
}

func TestLogReader_GetLog_Cancelled(t *testing.T) {
	base := t.TempDir()
	repo := newFixture(t, base, "repo")
	repo.write("file.txt", "v1")
	repo.add("file.txt")
	repo.commit("c1", "A")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newLogReader(t, base).GetLog(ctx, "repo", -1)

	require.ErrorIs(t, err, context.Canceled)
}
