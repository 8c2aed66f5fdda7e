package repositories

import (
	"time"

	"github.com/google/uuid"
	"github.com/repospect/repospect/internal/inspections"
	"github.com/repospect/repospect/internal/repos"
	"github.com/samber/lo"
)

// LogQuery represents the query parameters of the log endpoint.
type LogQuery struct {
	// Positive value limits the number of commits, zero or negative returns the full log
	MaxEntries int `query:"max_entries"`
}

// SnapshotsQuery represents the query parameters of the snapshots endpoint.
type SnapshotsQuery struct {
	Limit int `query:"limit" validate:"min=0,max=1000"`
}

// CommitEntryResponse represents a single git commit.
type CommitEntryResponse struct {
	Author  string `json:"author"  example:"Alice"`
	Date    string `json:"date"    example:"2024-03-01T11:00:00Z"` // ISO-8601, UTC
	Message string `json:"message" example:"first commit"`         // Subject line
}

// StatusResponse represents the working-tree status of a repository.
type StatusResponse struct {
	Added     []string `json:"added"`
	Changed   []string `json:"changed"`
	Missing   []string `json:"missing"`
	Modified  []string `json:"modified"`
	Removed   []string `json:"removed"`
	Untracked []string `json:"untracked"`
}

// SnapshotResponse represents a recorded status of a repository.
type SnapshotResponse struct {
	ID         uuid.UUID      `json:"id"`
	Repository string         `json:"repository"`
	TakenAt    time.Time      `json:"taken_at"`
	Status     StatusResponse `json:"status"`
}

func newCommitEntryResponse(entry repos.CommitEntry, _ int) CommitEntryResponse {
	return CommitEntryResponse{
		Author:  entry.Author,
		Date:    entry.Date.UTC().Format(time.RFC3339),
		Message: entry.Message,
	}
}

func NewStatusResponse(status repos.StatusSnapshot) StatusResponse {
	return StatusResponse{
		Added:     nonNil(status.Added),
		Changed:   nonNil(status.Changed),
		Missing:   nonNil(status.Missing),
		Modified:  nonNil(status.Modified),
		Removed:   nonNil(status.Removed),
		Untracked: nonNil(status.Untracked),
	}
}

func NewSnapshotResponse(snapshot inspections.Snapshot) SnapshotResponse {
	return SnapshotResponse{
		ID:         snapshot.ID,
		Repository: snapshot.Repository,
		TakenAt:    snapshot.TakenAt,
		Status:     NewStatusResponse(snapshot.Status),
	}
}

func newSnapshotResponse(snapshot inspections.Snapshot, _ int) SnapshotResponse {
	return NewSnapshotResponse(snapshot)
}

func nonNil(paths []string) []string {
	return lo.Ternary(paths == nil, []string{}, paths)
}
