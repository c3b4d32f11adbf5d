package repository

import (
	"github.com/yourusername/quiz-api/internal/domain/entity"
)

// WebhookRepository defines storage operations for event subscriptions.
type WebhookRepository interface {
	Create(hook *entity.Webhook) error
	List() ([]entity.Webhook, error)
	// ListByEvent returns every subscription registered for the event name.
	ListByEvent(event string) ([]entity.Webhook, error)
}
