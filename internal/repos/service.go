package repos

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

type Service struct {
	locator   *Locator
	logReader *LogReader
	inspector *StatusInspector

	metrics *Metrics
	logger  *zap.Logger
}

// NewService creates a Service over config.BasePath.
func NewService(config Config, metrics *Metrics, logger *zap.Logger) (*Service, error) {
	locator, err := NewLocator(config.BasePath)
	if err != nil {
		return nil, err
	}

	logger.Info("inspecting repositories", zap.String("base_path", locator.BasePath()))

	return &Service{
		locator:   locator,
		logReader: NewLogReader(locator),
		inspector: NewStatusInspector(locator),

		metrics: metrics,
		logger:  logger,
	}, nil
}

// BasePath returns the directory repositories are discovered in.
func (s *Service) BasePath() string {
	return s.locator.BasePath()
}

// ListRepositories returns the names of the git repositories directly under the base path.
func (s *Service) ListRepositories(ctx context.Context) ([]string, error) {
	s.logger.Debug("listing repositories")

	started := time.Now()
	names, err := s.locator.List(ctx)
	s.metrics.observe(operationList, started, err)
	if err != nil {
		s.logger.Error("failed to list repositories", zap.Error(err))
		return nil, fmt.Errorf("failed to list repositories: %w", err)
	}

	s.logger.Debug("repositories listed", zap.Int("count", len(names)))

	return names, nil
}

// GetLog returns the commit log of the named repository, latest commits first.
// Zero or a negative maxEntries returns the full log.
func (s *Service) GetLog(ctx context.Context, name string, maxEntries int) ([]CommitEntry, error) {
	s.logger.Debug("getting log",
		zap.String("repository", name),
		zap.Int("max_entries", maxEntries))

	started := time.Now()
	entries, err := s.logReader.GetLog(ctx, name, maxEntries)
	s.metrics.observe(operationLog, started, err)
	if err != nil {
		s.logFailure("failed to get log", name, err)
		return nil, fmt.Errorf("failed to get log: %w", err)
	}

	s.logger.Info("log retrieved",
		zap.String("repository", name),
		zap.Int("count", len(entries)))

	return entries, nil
}

// GetStatus returns the working-tree status of the named repository.
func (s *Service) GetStatus(ctx context.Context, name string) (StatusSnapshot, error) {
	s.logger.Debug("getting status", zap.String("repository", name))

	started := time.Now()
	snapshot, err := s.inspector.GetStatus(ctx, name)
	s.metrics.observe(operationStatus, started, err)
	if err != nil {
		s.logFailure("failed to get status", name, err)
		return StatusSnapshot{}, fmt.Errorf("failed to get status: %w", err)
	}

	s.logger.Info("status retrieved",
		zap.String("repository", name),
		zap.Bool("clean", snapshot.IsClean()))

	return snapshot, nil
}

// logFailure logs unknown repositories at warn level, they are caller mistakes.
func (s *Service) logFailure(msg, name string, err error) {
	level := zap.ErrorLevel
	if errors.Is(err, ErrNotARepository) {
		level = zap.WarnLevel
	}

	s.logger.Log(level, msg, zap.String("repository", name), zap.Error(err))
}
