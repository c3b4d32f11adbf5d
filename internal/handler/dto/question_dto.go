package dto

import (
	"github.com/yourusername/quiz-api/internal/domain/entity"
)

// CreateQuestionRequest is the body for creating a question. QuestionType is
// validated against the declared choices by the service, not by binding, so
// the error body carries the DRF-style choice message.
type CreateQuestionRequest struct {
	Version           int                  `json:"version"`
	QuestionType      string               `json:"question_type" binding:"required"`
	Question          string               `json:"question" binding:"required,max=200"`
	Answers           entity.AnswerOptions `json:"answers"`
	ResponseCorrect   string               `json:"response_correct"`
	ResponseIncorrect string               `json:"response_incorrect"`
	Active            bool                 `json:"active"`
}

// ToEntity converts the request into a question entity
func (r *CreateQuestionRequest) ToEntity() *entity.Question {
	return &entity.Question{
		Version:           r.Version,
		QuestionType:      r.QuestionType,
		Question:          r.Question,
		Answers:           r.Answers,
		ResponseCorrect:   r.ResponseCorrect,
		ResponseIncorrect: r.ResponseIncorrect,
		Active:            r.Active,
	}
}
