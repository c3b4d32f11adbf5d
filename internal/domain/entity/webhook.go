package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Event names fired on entity creation, one per entity kind.
const (
	EventQuizCreated     = "quiz.created"
	EventQuestionCreated = "question.created"
	EventTrackerCreated  = "tracker.created"
	EventAnswerCreated   = "answer.created"
)

// WebhookEvents lists every event a webhook may subscribe to.
var WebhookEvents = []string{
	EventQuizCreated,
	EventQuestionCreated,
	EventTrackerCreated,
	EventAnswerCreated,
}

// ValidWebhookEvent reports whether event is a known event name.
func ValidWebhookEvent(event string) bool {
	for _, known := range WebhookEvents {
		if event == known {
			return true
		}
	}
	return false
}

// Webhook is a subscription of one target URL to one event name. Matching
// events are POSTed to the target, fire-and-forget.
type Webhook struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Event     string     `gorm:"size:50;not null;index" json:"event"`
	Target    string     `gorm:"size:255;not null" json:"target"`
	UserID    *uuid.UUID `gorm:"type:uuid" json:"user"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// TableName sets the table name for GORM.
func (Webhook) TableName() string {
	return "webhooks"
}

// BeforeCreate assigns a random identifier when one was not supplied.
func (w *Webhook) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}
