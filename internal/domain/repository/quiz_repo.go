package repository

import (
	"github.com/google/uuid"

	"github.com/yourusername/quiz-api/internal/domain/entity"
)

// QuizFilters defines exact-match filters for listing quizzes.
// Metadata entries match individual keys of the quiz metadata blob.
type QuizFilters struct {
	Active   *bool
	Archived *bool
	Metadata map[string]string
}

// QuizRepository defines storage operations for quizzes.
type QuizRepository interface {
	Create(quiz *entity.Quiz) error
	// GetByID returns the quiz with its questions preloaded.
	GetByID(id uuid.UUID) (*entity.Quiz, error)
	UpdateFields(id uuid.UUID, updates map[string]interface{}) error
	// ReplaceQuestions resets the quiz-question relation to exactly the given
	// question ids.
	ReplaceQuestions(id uuid.UUID, questionIDs []uuid.UUID) error
	List(filters QuizFilters, limit, offset int) ([]entity.Quiz, int64, error)
	// ListActive returns every active quiz in creation order.
	ListActive() ([]entity.Quiz, error)
}
