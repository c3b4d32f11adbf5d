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

// Writable tracker columns for partial updates. identity, quiz and started_at
// are immutable once the attempt exists.
var trackerUpdatableFields = map[string]struct{}{
	"complete":     {},
	"completed_at": {},
	"metadata":     {},
}

// RecordAnswerInput carries one answer submission. Question text and response
// are caller-supplied snapshots; they are stored as given, not re-read from
// the question record.
type RecordAnswerInput struct {
	TrackerID     uuid.UUID
	QuestionID    uuid.UUID
	QuestionText  string
	ResponseSent  string
	AnswerValue   string
	AnswerText    string
	AnswerCorrect bool
	Version       int
}

// TrackerService governs the attempt lifecycle: starting trackers, recording
// answers against them and marking them complete.
//
// Referential looseness is intentional and lives entirely behind this type:
// an answer's question is not checked against the tracker's quiz, and
// complete/completed_at are set independently. A stricter variant can be
// swapped in here without touching handlers.
type TrackerService struct {
	trackerRepo  repository.TrackerRepository
	answerRepo   repository.AnswerRepository
	quizRepo     repository.QuizRepository
	questionRepo repository.QuestionRepository
	hooks        webhook.Dispatcher
	now          func() time.Time
}

// NewTrackerService creates a new tracker service
func NewTrackerService(
	trackerRepo repository.TrackerRepository,
	answerRepo repository.AnswerRepository,
	quizRepo repository.QuizRepository,
	questionRepo repository.QuestionRepository,
	hooks webhook.Dispatcher,
) *TrackerService {
	return &TrackerService{
		trackerRepo:  trackerRepo,
		answerRepo:   answerRepo,
		quizRepo:     quizRepo,
		questionRepo: questionRepo,
		hooks:        hooks,
		now:          time.Now,
	}
}

// SetClock overrides the time source. Used by tests.
func (s *TrackerService) SetClock(now func() time.Time) {
	s.now = now
}

// StartTracker begins a new attempt. The quiz must exist but need not be
// active: only the untaken listing filters on active. Re-attempts for the
// same identity and quiz are always allowed.
func (s *TrackerService) StartTracker(identity, quizID uuid.UUID, metadata entity.JSONMap, actingUser uuid.UUID) (*entity.Tracker, error) {
	if _, err := s.quizRepo.GetByID(quizID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewFieldError("quiz",
				fmt.Sprintf("Invalid pk %q - object does not exist.", quizID))
		}
		return nil, err
	}

	now := s.now()
	tracker := &entity.Tracker{
		Identity:    identity,
		QuizID:      quizID,
		Metadata:    metadata,
		StartedAt:   now,
		CreatedAt:   now,
		UpdatedAt:   now,
		CreatedByID: &actingUser,
		UpdatedByID: &actingUser,
	}

	if err := s.trackerRepo.Create(tracker); err != nil {
		return nil, err
	}

	s.hooks.Dispatch(entity.EventTrackerCreated, tracker)
	return tracker, nil
}

// RecordAnswer stores one answer against a tracker. Tracker and question must
// resolve; the question is not required to belong to the tracker's quiz, and
// duplicate answers for the same question are permitted.
func (s *TrackerService) RecordAnswer(in RecordAnswerInput, actingUser uuid.UUID) (*entity.Answer, error) {
	if _, err := s.trackerRepo.GetByID(in.TrackerID); err != nil {
		return nil, err
	}
	if _, err := s.questionRepo.GetByID(in.QuestionID); err != nil {
		return nil, err
	}

	now := s.now()
	answer := &entity.Answer{
		Version:       in.Version,
		QuestionID:    in.QuestionID,
		QuestionText:  in.QuestionText,
		ResponseSent:  in.ResponseSent,
		AnswerValue:   in.AnswerValue,
		AnswerText:    in.AnswerText,
		AnswerCorrect: in.AnswerCorrect,
		TrackerID:     in.TrackerID,
		CreatedAt:     now,
		UpdatedAt:     now,
		CreatedByID:   &actingUser,
		UpdatedByID:   &actingUser,
	}

	if err := s.answerRepo.Create(answer); err != nil {
		return nil, err
	}

	s.hooks.Dispatch(entity.EventAnswerCreated, answer)
	return answer, nil
}

// CompleteTracker marks an attempt complete with the given completion time.
func (s *TrackerService) CompleteTracker(trackerID uuid.UUID, completedAt time.Time, actingUser uuid.UUID) (*entity.Tracker, error) {
	return s.UpdateTracker(trackerID, map[string]interface{}{
		"complete":     true,
		"completed_at": completedAt,
	}, actingUser)
}

// UpdateTracker applies a partial update. Only supplied fields change;
// identity, quiz and started_at are rejected.
func (s *TrackerService) UpdateTracker(id uuid.UUID, updates map[string]interface{}, actingUser uuid.UUID) (*entity.Tracker, error) {
	for field := range updates {
		if _, ok := trackerUpdatableFields[field]; !ok {
			return nil, apperrors.NewFieldError(field, "This field may not be updated.")
		}
	}

	updates["updated_at"] = s.now()
	updates["updated_by_id"] = actingUser

	if err := s.trackerRepo.UpdateFields(id, updates); err != nil {
		return nil, err
	}
	return s.trackerRepo.GetByID(id)
}

// GetTracker returns the tracker with the given id
func (s *TrackerService) GetTracker(id uuid.UUID) (*entity.Tracker, error) {
	return s.trackerRepo.GetByID(id)
}

// ListTrackers returns trackers matching the filters, paginated
func (s *TrackerService) ListTrackers(filters repository.TrackerFilters, page, pageSize int) ([]entity.Tracker, int64, error) {
	return s.trackerRepo.List(filters, pageSize, (page-1)*pageSize)
}

// GetAnswer returns the answer with the given id
func (s *TrackerService) GetAnswer(id uuid.UUID) (*entity.Answer, error) {
	return s.answerRepo.GetByID(id)
}

// ListAnswers returns answers matching the filters, paginated
func (s *TrackerService) ListAnswers(filters repository.AnswerFilters, page, pageSize int) ([]entity.Answer, int64, error) {
	return s.answerRepo.List(filters, pageSize, (page-1)*pageSize)
}
