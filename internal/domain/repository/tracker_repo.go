package repository

import (
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/quiz-api/internal/domain/entity"
)

// TrackerFilters defines exact-match filters for listing trackers.
type TrackerFilters struct {
	Identity    *uuid.UUID
	QuizID      *uuid.UUID
	Complete    *bool
	StartedAt   *time.Time
	CompletedAt *time.Time
}

// TrackerRepository defines storage operations for quiz attempts.
type TrackerRepository interface {
	Create(tracker *entity.Tracker) error
	GetByID(id uuid.UUID) (*entity.Tracker, error)
	UpdateFields(id uuid.UUID, updates map[string]interface{}) error
	List(filters TrackerFilters, limit, offset int) ([]entity.Tracker, int64, error)
	// CompletedQuizIDs returns the distinct quiz ids for which the identity
	// has at least one completed tracker.
	CompletedQuizIDs(identity uuid.UUID) ([]uuid.UUID, error)
	// CountCompletedSince counts trackers with complete=true and a
	// completed_at at or after the given instant. No upper bound is applied.
	CountCompletedSince(since time.Time) (int64, error)
}
