package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	"github.com/yourusername/quiz-api/internal/domain/repository"
	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
	"github.com/yourusername/quiz-api/internal/webhook"
)

// Writable question columns for partial updates.
var questionUpdatableFields = map[string]struct{}{
	"version":            {},
	"question_type":      {},
	"question":           {},
	"answers":            {},
	"response_correct":   {},
	"response_incorrect": {},
	"active":             {},
}

// QuestionService provides record operations for questions
type QuestionService struct {
	questionRepo repository.QuestionRepository
	hooks        webhook.Dispatcher
	now          func() time.Time
}

// NewQuestionService creates a new question service
func NewQuestionService(questionRepo repository.QuestionRepository, hooks webhook.Dispatcher) *QuestionService {
	return &QuestionService{
		questionRepo: questionRepo,
		hooks:        hooks,
		now:          time.Now,
	}
}

// SetClock overrides the time source. Used by tests.
func (s *QuestionService) SetClock(now func() time.Time) {
	s.now = now
}

// Create validates and persists a new question, stamped with the acting user,
// and fires question.created.
func (s *QuestionService) Create(question *entity.Question, actingUser uuid.UUID) (*entity.Question, error) {
	if !entity.ValidQuestionType(question.QuestionType) {
		return nil, apperrors.NewFieldError("question_type",
			fmt.Sprintf("%q is not a valid choice.", question.QuestionType))
	}

	now := s.now()
	question.CreatedAt = now
	question.UpdatedAt = now
	question.CreatedByID = &actingUser
	question.UpdatedByID = &actingUser

	if err := s.questionRepo.Create(question); err != nil {
		return nil, err
	}

	s.hooks.Dispatch(entity.EventQuestionCreated, question)
	return question, nil
}

// Get returns the question with the given id
func (s *QuestionService) Get(id uuid.UUID) (*entity.Question, error) {
	return s.questionRepo.GetByID(id)
}

// Update applies a partial update. Only supplied fields change; updated_at and
// updated_by are re-stamped from the acting user.
func (s *QuestionService) Update(id uuid.UUID, updates map[string]interface{}, actingUser uuid.UUID) (*entity.Question, error) {
	for field := range updates {
		if _, ok := questionUpdatableFields[field]; !ok {
			return nil, apperrors.NewFieldError(field, "This field may not be updated.")
		}
	}

	if raw, ok := updates["question_type"]; ok {
		questionType, isString := raw.(string)
		if !isString || !entity.ValidQuestionType(questionType) {
			return nil, apperrors.NewFieldError("question_type",
				fmt.Sprintf("%q is not a valid choice.", raw))
		}
	}

	updates["updated_at"] = s.now()
	updates["updated_by_id"] = actingUser

	if err := s.questionRepo.UpdateFields(id, updates); err != nil {
		return nil, err
	}
	return s.questionRepo.GetByID(id)
}

// List returns questions matching the filters, paginated, with total count
func (s *QuestionService) List(filters repository.QuestionFilters, page, pageSize int) ([]entity.Question, int64, error) {
	return s.questionRepo.List(filters, pageSize, (page-1)*pageSize)
}
