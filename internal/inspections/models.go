package inspections

import (
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/repospect/repospect/internal/repos"
)

const (
	prefix = "snapshot:"

	prefixByID   = prefix + "id:"
	prefixByRepo = prefix + "repo:"
)

type statusModel struct {
	Added     []string `json:"added"`
	Changed   []string `json:"changed"`
	Missing   []string `json:"missing"`
	Modified  []string `json:"modified"`
	Removed   []string `json:"removed"`
	Untracked []string `json:"untracked"`
}

// snapshotModel is keyed by repository and time, so a prefix scan yields one
// repository's journal in chronological order.
type snapshotModel struct {
	ID         uuid.UUID   `json:"id"`
	Repository string      `json:"repository"`
	TakenAt    time.Time   `json:"taken_at"`
	Status     statusModel `json:"status"`
}

func newSnapshotModel(repository string, status repos.StatusSnapshot) *snapshotModel {
	return &snapshotModel{
		ID:         uuid.New(),
		Repository: repository,
		TakenAt:    time.Now().UTC(),
		Status: statusModel{
			Added:     status.Added,
			Changed:   status.Changed,
			Missing:   status.Missing,
			Modified:  status.Modified,
			Removed:   status.Removed,
			Untracked: status.Untracked,
		},
	}
}

func newSnapshot(model *snapshotModel) *Snapshot {
	if model == nil {
		return nil
	}

	return &Snapshot{
		ID:         model.ID,
		Repository: model.Repository,
		TakenAt:    model.TakenAt,
		Status: repos.StatusSnapshot{
			Added:     model.Status.Added,
			Changed:   model.Status.Changed,
			Missing:   model.Status.Missing,
			Modified:  model.Status.Modified,
			Removed:   model.Status.Removed,
			Untracked: model.Status.Untracked,
		},
	}
}

func repositoryPrefix(repository string) string {
	return prefixByRepo + url.QueryEscape(repository) + ":"
}

func idKey(id uuid.UUID) string {
	return prefixByID + id.String()
}

// StorageKey implements badgerfx.Entity.
func (m *snapshotModel) StorageKey() string {
	// zero-padded nanoseconds sort lexicographically
	return fmt.Sprintf("%s%020d:%s", repositoryPrefix(m.Repository), m.TakenAt.UnixNano(), m.ID)
}

// StorageIndexes implements badgerfx.Entity.
func (m *snapshotModel) StorageIndexes() []string {
	return []string{idKey(m.ID)}
}

// MarshalStorage implements badgerfx.Entity.
func (m *snapshotModel) MarshalStorage() ([]byte, error) {
	return json.Marshal(m)
}

// UnmarshalStorage implements badgerfx.Entity.
func (m *snapshotModel) UnmarshalStorage(data []byte) error {
	return json.Unmarshal(data, m)
}
