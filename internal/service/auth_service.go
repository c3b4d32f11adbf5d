package service

import (
	"errors"

	"github.com/yourusername/quiz-api/internal/domain/repository"
	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
	"github.com/yourusername/quiz-api/pkg/auth"
)

// AuthService exchanges credentials for bearer tokens.
type AuthService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

// ObtainToken verifies the credentials and returns a signed token. An unknown
// username and a wrong password are indistinguishable to the caller.
func (s *AuthService) ObtainToken(username, password string) (string, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", apperrors.ErrUnauthorized
		}
		return "", err
	}

	if !user.CheckPassword(password) {
		return "", apperrors.ErrUnauthorized
	}

	return s.jwtService.GenerateToken(user.ID, user.Username, user.IsAdmin)
}
