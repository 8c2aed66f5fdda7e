package inspections

import (
	"context"

	"github.com/google/uuid"
	"github.com/repospect/repospect/internal/repos"
	"go.uber.org/zap"
)

// Service keeps a journal of status snapshots.
type Service struct {
	snapshots *Repository

	config Config
	logger *zap.Logger
}

func NewService(snapshots *Repository, config Config, logger *zap.Logger) *Service {
	return &Service{
		snapshots: snapshots,

		config: config,
		logger: logger,
	}
}

// Record stores status as the latest snapshot of repository.
func (s *Service) Record(ctx context.Context, repository string, status repos.StatusSnapshot) (*Snapshot, error) {
	model := newSnapshotModel(repository, status)

	if err := s.snapshots.Create(ctx, model, s.config.MaxPerRepository); err != nil {
		s.logger.Error("failed to record snapshot",
			zap.String("repository", repository),
			zap.Error(err))
		return nil, err
	}

	s.logger.Debug("snapshot recorded",
		zap.String("repository", repository),
		zap.String("id", model.ID.String()))

	return newSnapshot(model), nil
}

// Get retrieves a snapshot by ID.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Snapshot, error) {
	s.logger.Debug("getting snapshot", zap.String("id", id.String()))

	snapshot, err := s.snapshots.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to get snapshot", zap.String("id", id.String()), zap.Error(err))
		return nil, err
	}

	return snapshot, nil
}

// List returns the snapshots of repository, newest first. limit <= 0 returns all.
func (s *Service) List(ctx context.Context, repository string, limit int) ([]Snapshot, error) {
	s.logger.Debug("listing snapshots",
		zap.String("repository", repository),
		zap.Int("limit", limit))

	snapshots, err := s.snapshots.ListByRepository(ctx, repository, limit)
	if err != nil {
		s.logger.Error("failed to list snapshots", zap.String("repository", repository), zap.Error(err))
		return nil, err
	}

	return snapshots, nil
}
