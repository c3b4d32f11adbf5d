package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	"github.com/yourusername/quiz-api/internal/domain/repository"
	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
	"github.com/yourusername/quiz-api/internal/webhook"
)

// Writable quiz columns for partial updates. The question relation is
// handled separately.
var quizUpdatableFields = map[string]struct{}{
	"description": {},
	"active":      {},
	"archived":    {},
	"metadata":    {},
}

// QuizService provides record operations for quizzes plus the untaken-quiz
// computation.
type QuizService struct {
	quizRepo     repository.QuizRepository
	questionRepo repository.QuestionRepository
	trackerRepo  repository.TrackerRepository
	hooks        webhook.Dispatcher
	now          func() time.Time
}

// NewQuizService creates a new quiz service
func NewQuizService(
	quizRepo repository.QuizRepository,
	questionRepo repository.QuestionRepository,
	trackerRepo repository.TrackerRepository,
	hooks webhook.Dispatcher,
) *QuizService {
	return &QuizService{
		quizRepo:     quizRepo,
		questionRepo: questionRepo,
		trackerRepo:  trackerRepo,
		hooks:        hooks,
		now:          time.Now,
	}
}

// SetClock overrides the time source. Used by tests.
func (s *QuizService) SetClock(now func() time.Time) {
	s.now = now
}

// checkQuestionIDs verifies every referenced question exists.
func (s *QuizService) checkQuestionIDs(questionIDs []uuid.UUID) error {
	for _, questionID := range questionIDs {
		if _, err := s.questionRepo.GetByID(questionID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.NewFieldError("questions",
					fmt.Sprintf("Invalid pk %q - object does not exist.", questionID))
			}
			return err
		}
	}
	return nil
}

// Create persists a new quiz with its question references, stamped with the
// acting user, and fires quiz.created.
func (s *QuizService) Create(quiz *entity.Quiz, questionIDs []uuid.UUID, actingUser uuid.UUID) (*entity.Quiz, error) {
	if err := s.checkQuestionIDs(questionIDs); err != nil {
		return nil, err
	}

	now := s.now()
	quiz.CreatedAt = now
	quiz.UpdatedAt = now
	quiz.CreatedByID = &actingUser
	quiz.UpdatedByID = &actingUser

	if err := s.quizRepo.Create(quiz); err != nil {
		return nil, err
	}
	if len(questionIDs) > 0 {
		if err := s.quizRepo.ReplaceQuestions(quiz.ID, questionIDs); err != nil {
			return nil, err
		}
	}

	created, err := s.quizRepo.GetByID(quiz.ID)
	if err != nil {
		return nil, err
	}

	s.hooks.Dispatch(entity.EventQuizCreated, created)
	return created, nil
}

// Get returns the quiz with the given id
func (s *QuizService) Get(id uuid.UUID) (*entity.Quiz, error) {
	return s.quizRepo.GetByID(id)
}

// Update applies a partial update. questionIDs, when non-nil, replaces the
// question relation with exactly those ids.
func (s *QuizService) Update(id uuid.UUID, updates map[string]interface{}, questionIDs *[]uuid.UUID, actingUser uuid.UUID) (*entity.Quiz, error) {
	for field := range updates {
		if _, ok := quizUpdatableFields[field]; !ok {
			return nil, apperrors.NewFieldError(field, "This field may not be updated.")
		}
	}
	if questionIDs != nil {
		if err := s.checkQuestionIDs(*questionIDs); err != nil {
			return nil, err
		}
	}

	updates["updated_at"] = s.now()
	updates["updated_by_id"] = actingUser

	if err := s.quizRepo.UpdateFields(id, updates); err != nil {
		return nil, err
	}
	if questionIDs != nil {
		if err := s.quizRepo.ReplaceQuestions(id, *questionIDs); err != nil {
			return nil, err
		}
	}
	return s.quizRepo.GetByID(id)
}

// List returns quizzes matching the filters, paginated, with total count
func (s *QuizService) List(filters repository.QuizFilters, page, pageSize int) ([]entity.Quiz, int64, error) {
	return s.quizRepo.List(filters, pageSize, (page-1)*pageSize)
}

// UntakenQuizzes returns the active quizzes the identity has not completed,
// in creation order. An attempt that was started but never completed does not
// exclude its quiz; multiple completed attempts collapse to one exclusion.
// Computed fresh on every call.
func (s *QuizService) UntakenQuizzes(identity uuid.UUID) ([]entity.Quiz, error) {
	takenIDs, err := s.trackerRepo.CompletedQuizIDs(identity)
	if err != nil {
		return nil, err
	}

	taken := make(map[uuid.UUID]struct{}, len(takenIDs))
	for _, id := range takenIDs {
		taken[id] = struct{}{}
	}

	active, err := s.quizRepo.ListActive()
	if err != nil {
		return nil, err
	}

	untaken := make([]entity.Quiz, 0, len(active))
	for _, quiz := range active {
		if _, done := taken[quiz.ID]; !done {
			untaken = append(untaken, quiz)
		}
	}
	return untaken, nil
}
