package inspections

import (
	"time"

	"github.com/google/uuid"
	"github.com/repospect/repospect/internal/repos"
)

// Snapshot is a recorded status of a repository.
type Snapshot struct {
	ID         uuid.UUID
	Repository string
	TakenAt    time.Time
	Status     repos.StatusSnapshot
}
