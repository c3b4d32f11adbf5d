package postgres

import (
	"gorm.io/gorm"

	"github.com/yourusername/quiz-api/internal/domain/entity"
)

// WebhookRepo implements repository.WebhookRepository
type WebhookRepo struct {
	db *gorm.DB
}

// NewWebhookRepo creates a new webhook repository
func NewWebhookRepo(db *gorm.DB) *WebhookRepo {
	return &WebhookRepo{db: db}
}

// Create persists a new subscription
func (r *WebhookRepo) Create(hook *entity.Webhook) error {
	return r.db.Create(hook).Error
}

// List returns every subscription in creation order
func (r *WebhookRepo) List() ([]entity.Webhook, error) {
	var hooks []entity.Webhook
	err := r.db.Order("created_at, id").Find(&hooks).Error
	if err != nil {
		return nil, err
	}
	return hooks, nil
}

// ListByEvent returns every subscription for the given event name
func (r *WebhookRepo) ListByEvent(event string) ([]entity.Webhook, error) {
	var hooks []entity.Webhook
	err := r.db.Where("event = ?", event).Order("created_at, id").Find(&hooks).Error
	if err != nil {
		return nil, err
	}
	return hooks, nil
}
