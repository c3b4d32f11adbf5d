package postgres

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	"github.com/yourusername/quiz-api/internal/domain/repository"
	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
)

// QuizRepo implements repository.QuizRepository
type QuizRepo struct {
	db *gorm.DB
}

// NewQuizRepo creates a new quiz repository
func NewQuizRepo(db *gorm.DB) *QuizRepo {
	return &QuizRepo{db: db}
}

// Create persists a new quiz. The question relation is written separately via
// ReplaceQuestions so that plain creates never touch the questions table.
func (r *QuizRepo) Create(quiz *entity.Quiz) error {
	return r.db.Omit("Questions").Create(quiz).Error
}

// GetByID returns the quiz with its questions preloaded
func (r *QuizRepo) GetByID(id uuid.UUID) (*entity.Quiz, error) {
	var quiz entity.Quiz
	err := r.db.Preload("Questions").First(&quiz, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &quiz, nil
}

// UpdateFields applies a partial update to the quiz
func (r *QuizRepo) UpdateFields(id uuid.UUID, updates map[string]interface{}) error {
	if err := ensureExists(r.db, &entity.Quiz{}, id); err != nil {
		return err
	}
	return r.db.Model(&entity.Quiz{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// ReplaceQuestions resets the quiz-question relation to the given ids
func (r *QuizRepo) ReplaceQuestions(id uuid.UUID, questionIDs []uuid.UUID) error {
	quiz := entity.Quiz{ID: id}
	questions := make([]entity.Question, len(questionIDs))
	for i, qid := range questionIDs {
		questions[i] = entity.Question{ID: qid}
	}
	return r.db.Model(&quiz).Association("Questions").Replace(questions)
}

// List returns quizzes matching the filters in creation order, with total count
func (r *QuizRepo) List(filters repository.QuizFilters, limit, offset int) ([]entity.Quiz, int64, error) {
	var quizzes []entity.Quiz
	var total int64

	query := r.db.Model(&entity.Quiz{})

	if filters.Active != nil {
		query = query.Where("active = ?", *filters.Active)
	}
	if filters.Archived != nil {
		query = query.Where("archived = ?", *filters.Archived)
	}
	for key, value := range filters.Metadata {
		query = query.Where("metadata ->> ? = ?", key, value)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	err := query.Preload("Questions").Order("created_at, id").Find(&quizzes).Error
	if err != nil {
		return nil, 0, err
	}

	return quizzes, total, nil
}

// ListActive returns every active quiz in creation order
func (r *QuizRepo) ListActive() ([]entity.Quiz, error) {
	var quizzes []entity.Quiz
	err := r.db.Preload("Questions").
		Where("active = ?", true).
		Order("created_at, id").
		Find(&quizzes).Error
	if err != nil {
		return nil, err
	}
	return quizzes, nil
}
