package repos_test

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/repospect/repospect/internal/repos"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

func newService(t *testing.T, base string) (*repos.Service, *prometheus.Registry) {
	t.Helper()

	registry := prometheus.NewRegistry()
	service, err := repos.NewService(
		repos.Config{BasePath: base},
		repos.NewMetrics(registry),
		zaptest.NewLogger(t),
	)
	require.NoError(t, err)

	return service, registry
}

func TestNewService_InvalidBasePath(t *testing.T) {
	_, err := repos.NewService(
		repos.Config{BasePath: filepath.Join(t.TempDir(), "missing")},
		repos.NewMetrics(prometheus.NewRegistry()),
		zaptest.NewLogger(t),
	)

	require.ErrorIs(t, err, repos.ErrConfiguration)
}

func TestService_Operations(t *testing.T) {
	base := t.TempDir()
	repo := newFixture(t, base, "repo1")
	repo.write("file.txt", "v1")
	repo.add("file.txt")
	repo.commit("first commit", "Alice")
	repo.write("file.txt", "v2")

	service, registry := newService(t, base)
	ctx := context.Background()

	names, err := service.ListRepositories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"repo1"}, names)

	entries, err := service.GetLog(ctx, "repo1", 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Alice", entries[0].Author)

	status, err := service.GetStatus(ctx, "repo1")
	require.NoError(t, err)
	assert.Equal(t, []string{"file.txt"}, status.Modified)

	_, err = service.GetStatus(ctx, "missing")
	require.ErrorIs(t, err, repos.ErrNotARepository)

	count, err := testutil.GatherAndCount(registry, "repospect_repos_operations_total")
	require.NoError(t, err)
	assert.Equal(t, 4, count)
}

func TestService_ConcurrentCalls(t *testing.T) {
	base := t.TempDir()
	repo := newFixture(t, base, "repo")
	for _, message := range []string{"c1", "c2", "c3"} {
		repo.write("file.txt", message)
		repo.add("file.txt")
		repo.commit(message, "A")
	}
	repo.write("file.txt", "dirty")

	service, _ := newService(t, base)

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := range 10 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			entries, err := service.GetLog(context.Background(), "repo", i%4)
			if err == nil && i%4 > 0 && len(entries) != min(i%4, 3) {
				t.Errorf("unexpected log size %d", len(entries))
			}
			errs <- err
		}()
		go func() {
			defer wg.Done()
			_, err := service.GetStatus(context.Background(), "repo")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
}

func TestService_UnknownRepositoryLoggedAsWarning(t *testing.T) {
	base := t.TempDir()
	mkdirRepo(t, base, "broken")

	core, logs := observer.New(zap.DebugLevel)
	service, err := repos.NewService(
		repos.Config{BasePath: base},
		repos.NewMetrics(prometheus.NewRegistry()),
		zap.New(core),
	)
	require.NoError(t, err)

	_, err = service.GetStatus(context.Background(), "missing")
	require.ErrorIs(t, err, repos.ErrNotARepository)
	_, err = service.GetLog(context.Background(), "missing", 0)
	require.ErrorIs(t, err, repos.ErrNotARepository)

	// an empty .git directory is a repository go-git cannot open
	_, err = service.GetLog(context.Background(), "broken", 0)
	require.ErrorIs(t, err, repos.ErrVCS)

	status := logs.FilterMessage("failed to get status").All()
	require.Len(t, status, 1)
	assert.Equal(t, zap.WarnLevel, status[0].Level)

	log := logs.FilterMessage("failed to get log").All()
	require.Len(t, log, 2)
	assert.Equal(t, zap.WarnLevel, log[0].Level)
	assert.Equal(t, zap.ErrorLevel, log[1].Level)
}
