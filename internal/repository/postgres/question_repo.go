package postgres

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	"github.com/yourusername/quiz-api/internal/domain/repository"
	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
)

// QuestionRepo implements repository.QuestionRepository
type QuestionRepo struct {
	db *gorm.DB
}

// NewQuestionRepo creates a new question repository
func NewQuestionRepo(db *gorm.DB) *QuestionRepo {
	return &QuestionRepo{db: db}
}

// Create persists a new question
func (r *QuestionRepo) Create(question *entity.Question) error {
	return r.db.Create(question).Error
}

// GetByID returns the question with the given id
func (r *QuestionRepo) GetByID(id uuid.UUID) (*entity.Question, error) {
	var question entity.Question
	err := r.db.First(&question, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &question, nil
}

// UpdateFields applies a partial update to the question
func (r *QuestionRepo) UpdateFields(id uuid.UUID, updates map[string]interface{}) error {
	if err := ensureExists(r.db, &entity.Question{}, id); err != nil {
		return err
	}
	return r.db.Model(&entity.Question{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// List returns questions matching the filters in creation order, with total count
func (r *QuestionRepo) List(filters repository.QuestionFilters, limit, offset int) ([]entity.Question, int64, error) {
	var questions []entity.Question
	var total int64

	query := r.db.Model(&entity.Question{})

	if filters.QuestionType != nil {
		query = query.Where("question_type = ?", *filters.QuestionType)
	}
	if filters.Active != nil {
		query = query.Where("active = ?", *filters.Active)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	err := query.Order("created_at, id").Find(&questions).Error
	if err != nil {
		return nil, 0, err
	}

	return questions, total, nil
}
