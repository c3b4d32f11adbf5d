package repository

import (
	"github.com/google/uuid"

	"github.com/yourusername/quiz-api/internal/domain/entity"
)

// UserRepository defines storage operations for API users.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id uuid.UUID) (*entity.User, error)
	GetByUsername(username string) (*entity.User, error)
}
