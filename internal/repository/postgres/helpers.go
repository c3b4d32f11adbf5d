package postgres

import (
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"

	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
)

// ensureExists maps a missing row to ErrNotFound before a partial update.
// GORM's Updates reports zero affected rows both for missing ids and for
// no-op updates, so existence is checked separately.
func ensureExists(db *gorm.DB, model interface{}, id uuid.UUID) error {
	var count int64
	if err := db.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// isUniqueViolation checks for a Postgres unique violation (23505) from both
// the pgx/v5 and lib/pq drivers.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return true
	}
	return false
}
