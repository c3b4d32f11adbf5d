package postgres

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	"github.com/yourusername/quiz-api/internal/domain/repository"
	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
)

// AnswerRepo implements repository.AnswerRepository
type AnswerRepo struct {
	db *gorm.DB
}

// NewAnswerRepo creates a new answer repository
func NewAnswerRepo(db *gorm.DB) *AnswerRepo {
	return &AnswerRepo{db: db}
}

// Create persists a new answer
func (r *AnswerRepo) Create(answer *entity.Answer) error {
	return r.db.Create(answer).Error
}

// GetByID returns the answer with the given id
func (r *AnswerRepo) GetByID(id uuid.UUID) (*entity.Answer, error) {
	var answer entity.Answer
	err := r.db.First(&answer, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &answer, nil
}

// List returns answers matching the filters in creation order, with total count
func (r *AnswerRepo) List(filters repository.AnswerFilters, limit, offset int) ([]entity.Answer, int64, error) {
	var answers []entity.Answer
	var total int64

	query := r.db.Model(&entity.Answer{})

	if filters.QuestionID != nil {
		query = query.Where("question_id = ?", *filters.QuestionID)
	}
	if filters.TrackerID != nil {
		query = query.Where("tracker_id = ?", *filters.TrackerID)
	}
	if filters.AnswerCorrect != nil {
		query = query.Where("answer_correct = ?", *filters.AnswerCorrect)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	err := query.Order("created_at, id").Find(&answers).Error
	if err != nil {
		return nil, 0, err
	}

	return answers, total, nil
}

// ListByTracker returns a tracker's answers in creation order
func (r *AnswerRepo) ListByTracker(trackerID uuid.UUID) ([]entity.Answer, error) {
	var answers []entity.Answer
	err := r.db.Where("tracker_id = ?", trackerID).
		Order("created_at, id").
		Find(&answers).Error
	if err != nil {
		return nil, err
	}
	return answers, nil
}

// CountSince counts answers created at or after since, optionally restricted
// by answer_correct
func (r *AnswerRepo) CountSince(since time.Time, correct *bool) (int64, error) {
	var count int64
	query := r.db.Model(&entity.Answer{}).Where("created_at >= ?", since)
	if correct != nil {
		query = query.Where("answer_correct = ?", *correct)
	}
	err := query.Count(&count).Error
	return count, err
}
