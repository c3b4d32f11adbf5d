package service

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	"github.com/yourusername/quiz-api/internal/domain/repository"
	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
)

// WebhookService manages event subscriptions.
type WebhookService struct {
	hookRepo repository.WebhookRepository
}

// NewWebhookService creates a new webhook service
func NewWebhookService(hookRepo repository.WebhookRepository) *WebhookService {
	return &WebhookService{hookRepo: hookRepo}
}

// CreateHook registers a target URL for an event name, owned by the creating
// user.
func (s *WebhookService) CreateHook(event, target string, userID uuid.UUID) (*entity.Webhook, error) {
	if !entity.ValidWebhookEvent(event) {
		return nil, apperrors.NewFieldError("event",
			fmt.Sprintf("%q is not a valid choice.", event))
	}

	hook := &entity.Webhook{
		Event:  event,
		Target: target,
		UserID: &userID,
	}
	if err := s.hookRepo.Create(hook); err != nil {
		return nil, err
	}
	return hook, nil
}

// ListHooks returns every registered subscription
func (s *WebhookService) ListHooks() ([]entity.Webhook, error) {
	return s.hookRepo.List()
}
