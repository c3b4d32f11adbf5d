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

// TrackerRepo implements repository.TrackerRepository
type TrackerRepo struct {
	db *gorm.DB
}

// NewTrackerRepo creates a new tracker repository
func NewTrackerRepo(db *gorm.DB) *TrackerRepo {
	return &TrackerRepo{db: db}
}

// Create persists a new tracker
func (r *TrackerRepo) Create(tracker *entity.Tracker) error {
	return r.db.Create(tracker).Error
}

// GetByID returns the tracker with the given id
func (r *TrackerRepo) GetByID(id uuid.UUID) (*entity.Tracker, error) {
	var tracker entity.Tracker
	err := r.db.First(&tracker, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &tracker, nil
}

// UpdateFields applies a partial update to the tracker
func (r *TrackerRepo) UpdateFields(id uuid.UUID, updates map[string]interface{}) error {
	if err := ensureExists(r.db, &entity.Tracker{}, id); err != nil {
		return err
	}
	return r.db.Model(&entity.Tracker{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// List returns trackers matching the filters in creation order, with total count
func (r *TrackerRepo) List(filters repository.TrackerFilters, limit, offset int) ([]entity.Tracker, int64, error) {
	var trackers []entity.Tracker
	var total int64

	query := r.db.Model(&entity.Tracker{})

	if filters.Identity != nil {
		query = query.Where("identity = ?", *filters.Identity)
	}
	if filters.QuizID != nil {
		query = query.Where("quiz_id = ?", *filters.QuizID)
	}
	if filters.Complete != nil {
		query = query.Where("complete = ?", *filters.Complete)
	}
	if filters.StartedAt != nil {
		query = query.Where("started_at = ?", *filters.StartedAt)
	}
	if filters.CompletedAt != nil {
		query = query.Where("completed_at = ?", *filters.CompletedAt)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	err := query.Order("created_at, id").Find(&trackers).Error
	if err != nil {
		return nil, 0, err
	}

	return trackers, total, nil
}

// CompletedQuizIDs returns the distinct quiz ids the identity has completed
func (r *TrackerRepo) CompletedQuizIDs(identity uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.Model(&entity.Tracker{}).
		Distinct("quiz_id").
		Where("identity = ? AND complete = ?", identity, true).
		Pluck("quiz_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// CountCompletedSince counts completed trackers with completed_at >= since.
// Deliberately no upper bound: future-dated completions count.
func (r *TrackerRepo) CountCompletedSince(since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&entity.Tracker{}).
		Where("complete = ? AND completed_at >= ?", true, since).
		Count(&count).Error
	return count, err
}
