package inspections

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/repospect/repospect/pkg/badgerfx"
)

type Repository struct {
	db       *badger.DB
	entities *badgerfx.Repository[*snapshotModel]
}

func NewRepository(db *badger.DB) *Repository {
	return &Repository{
		db:       db,
		entities: badgerfx.NewRepository(func() *snapshotModel { return new(snapshotModel) }),
	}
}

// Create stores a snapshot and drops the oldest snapshots of the same repository
// beyond keep, keep <= 0 keeps everything.
func (r *Repository) Create(_ context.Context, model *snapshotModel, keep int) error {
	err := r.db.Update(func(txn *badger.Txn) error {
		if err := r.entities.Write(txn, model); err != nil {
			return fmt.Errorf("failed to store snapshot: %w", err)
		}

		if keep <= 0 {
			return nil
		}

		options := badger.DefaultIteratorOptions
		options.Reverse = true
		keys, err := r.entities.Keys(txn, repositoryPrefix(model.Repository), options)
		if err != nil {
			return fmt.Errorf("failed to list snapshots: %w", err)
		}

		for _, key := range keys[min(keep, len(keys)):] {
			if delErr := r.entities.Delete(txn, key); delErr != nil {
				return fmt.Errorf("failed to prune snapshot: %w", delErr)
			}
		}

		return nil
	})

	if err != nil {
		return fmt.Errorf("failed to create snapshot: %w", err)
	}

	return nil
}

// GetByID retrieves a snapshot by its ID.
func (r *Repository) GetByID(_ context.Context, id uuid.UUID) (*Snapshot, error) {
	var snapshot *snapshotModel

	err := r.db.View(func(txn *badger.Txn) error {
		found, err := r.entities.ReadByIndex(txn, idKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("%w: %s", ErrNotFound, id.String())
		}
		if err != nil {
			return err
		}

		snapshot = found
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot by ID: %w", err)
	}

	return newSnapshot(snapshot), nil
}

// ListByRepository returns up to limit snapshots of repository, newest first.
func (r *Repository) ListByRepository(_ context.Context, repository string, limit int) ([]Snapshot, error) {
	var models []*snapshotModel

	err := r.db.View(func(txn *badger.Txn) error {
		options := badger.DefaultIteratorOptions
		options.Reverse = true

		found, err := r.entities.List(txn, repositoryPrefix(repository), options, limit)
		if err != nil {
			return err
		}

		models = found
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}

	snapshots := make([]Snapshot, len(models))
	for i, model := range models {
		snapshots[i] = *newSnapshot(model)
	}

	return snapshots, nil
}
