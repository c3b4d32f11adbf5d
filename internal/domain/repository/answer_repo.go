package repository

import (
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/quiz-api/internal/domain/entity"
)

// AnswerFilters defines exact-match filters for listing answers.
type AnswerFilters struct {
	QuestionID    *uuid.UUID
	TrackerID     *uuid.UUID
	AnswerCorrect *bool
}

// AnswerRepository defines storage operations for submitted answers.
type AnswerRepository interface {
	Create(answer *entity.Answer) error
	GetByID(id uuid.UUID) (*entity.Answer, error)
	List(filters AnswerFilters, limit, offset int) ([]entity.Answer, int64, error)
	// ListByTracker returns a tracker's answers in creation order.
	ListByTracker(trackerID uuid.UUID) ([]entity.Answer, error)
	// CountSince counts answers created at or after the given instant.
	// correct, when non-nil, restricts the count to that answer_correct value.
	CountSince(since time.Time, correct *bool) (int64, error)
}
