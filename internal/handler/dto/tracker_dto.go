package dto

import (
	"github.com/google/uuid"

	"github.com/yourusername/quiz-api/internal/domain/entity"
)

// CreateTrackerRequest is the body for starting an attempt. Identity is the
// quiz-taker reference, opaque to the service.
type CreateTrackerRequest struct {
	Identity uuid.UUID      `json:"identity" binding:"required"`
	Quiz     uuid.UUID      `json:"quiz" binding:"required"`
	Metadata entity.JSONMap `json:"metadata"`
}

// CreateAnswerRequest is the body for recording an answer. Question text and
// the response are snapshots supplied by the caller at send time.
type CreateAnswerRequest struct {
	Tracker       uuid.UUID `json:"tracker" binding:"required"`
	Question      uuid.UUID `json:"question" binding:"required"`
	QuestionText  string    `json:"question_text" binding:"max=200"`
	ResponseSent  string    `json:"response_sent" binding:"max=200"`
	AnswerValue   string    `json:"answer_value" binding:"max=200"`
	AnswerText    string    `json:"answer_text" binding:"max=200"`
	AnswerCorrect bool      `json:"answer_correct"`
	Version       int       `json:"version"`
}

// CreateWebhookRequest is the body for registering an event subscription.
type CreateWebhookRequest struct {
	Event  string `json:"event" binding:"required"`
	Target string `json:"target" binding:"required,url,max=255"`
}

// TokenRequest is the body for the credential exchange endpoint.
type TokenRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}
