package service

import (
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/quiz-api/internal/domain/repository"
)

// ExportRow is one line of the flat results export: one tracker/answer pair.
type ExportRow struct {
	TrackerID       uuid.UUID
	QuizID          uuid.UUID
	Identity        uuid.UUID
	StartedAt       time.Time
	Complete        bool
	CompletedAt     *time.Time
	QuestionID      uuid.UUID
	QuestionText    string
	AnswerText      string
	AnswerValue     string
	AnswerCorrect   bool
	AnswerCreatedAt time.Time
}

// Stats holds the rolling-window aggregate counts.
type Stats struct {
	TrackerComplete  int64 `json:"tracker_complete"`
	Answered         int64 `json:"answered"`
	AnswersCorrect   int64 `json:"answers_correct"`
	AnswersIncorrect int64 `json:"answers_incorrect"`
}

// ResultService joins trackers with their answers into flat exports and
// computes trailing-window statistics.
type ResultService struct {
	trackerRepo repository.TrackerRepository
	answerRepo  repository.AnswerRepository
}

// NewResultService creates a new result service
func NewResultService(trackerRepo repository.TrackerRepository, answerRepo repository.AnswerRepository) *ResultService {
	return &ResultService{
		trackerRepo: trackerRepo,
		answerRepo:  answerRepo,
	}
}

// ExportResults produces one row per tracker/answer pair over every tracker,
// trackers in creation order, answers in creation order within each tracker.
// A tracker with no answers contributes no rows at all.
func (s *ResultService) ExportResults() ([]ExportRow, error) {
	trackers, _, err := s.trackerRepo.List(repository.TrackerFilters{}, 0, 0)
	if err != nil {
		return nil, err
	}

	rows := make([]ExportRow, 0, len(trackers))
	for _, tracker := range trackers {
		answers, err := s.answerRepo.ListByTracker(tracker.ID)
		if err != nil {
			return nil, err
		}
		for _, answer := range answers {
			rows = append(rows, ExportRow{
				TrackerID:       tracker.ID,
				QuizID:          tracker.QuizID,
				Identity:        tracker.Identity,
				StartedAt:       tracker.StartedAt,
				Complete:        tracker.Complete,
				CompletedAt:     tracker.CompletedAt,
				QuestionID:      answer.QuestionID,
				QuestionText:    answer.QuestionText,
				AnswerText:      answer.AnswerText,
				AnswerValue:     answer.AnswerValue,
				AnswerCorrect:   answer.AnswerCorrect,
				AnswerCreatedAt: answer.CreatedAt,
			})
		}
	}
	return rows, nil
}

// ComputeStats counts completions and answers over the trailing window ending
// at now. The window has no upper bound: completions dated after now still
// count. Correct and incorrect answers partition the answered count.
func (s *ResultService) ComputeStats(windowDays int, now time.Time) (*Stats, error) {
	since := now.AddDate(0, 0, -windowDays)

	trackerComplete, err := s.trackerRepo.CountCompletedSince(since)
	if err != nil {
		return nil, err
	}

	answered, err := s.answerRepo.CountSince(since, nil)
	if err != nil {
		return nil, err
	}

	correct := true
	answersCorrect, err := s.answerRepo.CountSince(since, &correct)
	if err != nil {
		return nil, err
	}

	incorrect := false
	answersIncorrect, err := s.answerRepo.CountSince(since, &incorrect)
	if err != nil {
		return nil, err
	}

	return &Stats{
		TrackerComplete:  trackerComplete,
		Answered:         answered,
		AnswersCorrect:   answersCorrect,
		AnswersIncorrect: answersIncorrect,
	}, nil
}
