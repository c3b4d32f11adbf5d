package repository

import (
	"github.com/google/uuid"

	"github.com/yourusername/quiz-api/internal/domain/entity"
)

// QuestionFilters defines exact-match filters for listing questions.
// Nil fields are not applied.
type QuestionFilters struct {
	QuestionType *string
	Active       *bool
}

// QuestionRepository defines storage operations for questions.
type QuestionRepository interface {
	Create(question *entity.Question) error
	GetByID(id uuid.UUID) (*entity.Question, error)
	// UpdateFields applies a partial update; keys are column names.
	// Returns ErrNotFound when the id does not resolve.
	UpdateFields(id uuid.UUID, updates map[string]interface{}) error
	// List returns questions in creation order plus the total match count.
	// limit <= 0 disables pagination.
	List(filters QuestionFilters, limit, offset int) ([]entity.Question, int64, error)
}
