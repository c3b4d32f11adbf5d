package dto

import (
	"github.com/google/uuid"

	"github.com/yourusername/quiz-api/internal/domain/entity"
)

// PaginatedResponse wraps a list endpoint body: total match count plus the
// current page of results.
type PaginatedResponse struct {
	Count   int64       `json:"count"`
	Results interface{} `json:"results"`
}

// NewPaginatedResponse creates a paginated list body
func NewPaginatedResponse(count int64, results interface{}) *PaginatedResponse {
	return &PaginatedResponse{Count: count, Results: results}
}

// CreateQuizRequest is the body for creating a quiz. Questions references
// existing question ids; the quiz never owns its questions.
type CreateQuizRequest struct {
	Description string         `json:"description" binding:"required,max=200"`
	Active      bool           `json:"active"`
	Archived    bool           `json:"archived"`
	Metadata    entity.JSONMap `json:"metadata"`
	Questions   []uuid.UUID    `json:"questions"`
}

// QuizResponse is a quiz with its question relation rendered as an id list.
type QuizResponse struct {
	*entity.Quiz
	Questions []uuid.UUID `json:"questions"`
}

// NewQuizResponse creates the response DTO for a quiz
func NewQuizResponse(quiz *entity.Quiz) *QuizResponse {
	return &QuizResponse{Quiz: quiz, Questions: quiz.QuestionIDs()}
}

// NewQuizListResponse creates response DTOs for a page of quizzes
func NewQuizListResponse(quizzes []entity.Quiz) []*QuizResponse {
	out := make([]*QuizResponse, len(quizzes))
	for i := range quizzes {
		out[i] = NewQuizResponse(&quizzes[i])
	}
	return out
}
