package handler

import (
	"encoding/csv"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	"github.com/yourusername/quiz-api/internal/domain/repository"
	"github.com/yourusername/quiz-api/internal/service"
)

func newResultRouter(trackerRepo *MockTrackerRepository, answerRepo *MockAnswerRepository) *gin.Engine {
	svc := service.NewResultService(trackerRepo, answerRepo)
	h := NewResultHandler(svc)

	r := gin.New()
	r.GET("/quiz-results", h.QuizResults)
	r.GET("/stats", h.Stats)
	return r
}

func TestResultHandler_QuizResults_CSVHeader(t *testing.T) {
	trackerRepo := new(MockTrackerRepository)
	answerRepo := new(MockAnswerRepository)
	r := newResultRouter(trackerRepo, answerRepo)

	trackerRepo.On("List", repository.TrackerFilters{}, 0, 0).
		Return([]entity.Tracker{}, int64(0), nil)

	w := doJSON(t, r, http.MethodGet, "/quiz-results", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")

	records, err := csv.NewReader(strings.NewReader(w.Body.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1, "empty store still sends the header")
	assert.Equal(t, []string{
		"tracker", "quiz", "identity", "quiz_started_at", "quiz_complete",
		"quiz_completed_at", "question_id", "question_text", "answer_text",
		"answer_value", "answer_correct", "answer_created_at",
	}, records[0])
}

func TestResultHandler_QuizResults_Rows(t *testing.T) {
	trackerRepo := new(MockTrackerRepository)
	answerRepo := new(MockAnswerRepository)
	r := newResultRouter(trackerRepo, answerRepo)

	completedAt := time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)
	tracker := entity.Tracker{
		ID:          uuid.New(),
		Identity:    uuid.New(),
		QuizID:      uuid.New(),
		Complete:    true,
		CompletedAt: &completedAt,
		StartedAt:   completedAt.Add(-5 * time.Minute),
	}
	trackerRepo.On("List", repository.TrackerFilters{}, 0, 0).
		Return([]entity.Tracker{tracker}, int64(1), nil)
	answerRepo.On("ListByTracker", tracker.ID).Return([]entity.Answer{
		{ID: uuid.New(), TrackerID: tracker.ID, QuestionID: uuid.New(),
			QuestionText: "Who?", AnswerText: "George", AnswerValue: "george", AnswerCorrect: true},
	}, nil)

	w := doJSON(t, r, http.MethodGet, "/quiz-results", nil)

	require.Equal(t, http.StatusOK, w.Code)
	records, err := csv.NewReader(strings.NewReader(w.Body.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	row := records[1]
	assert.Equal(t, tracker.ID.String(), row[0])
	assert.Equal(t, tracker.QuizID.String(), row[1])
	assert.Equal(t, tracker.Identity.String(), row[2])
	assert.Equal(t, "true", row[4])
	assert.Equal(t, "george", row[9])
	assert.Equal(t, "true", row[10])
}

func TestResultHandler_QuizResults_XLSX(t *testing.T) {
	trackerRepo := new(MockTrackerRepository)
	answerRepo := new(MockAnswerRepository)
	r := newResultRouter(trackerRepo, answerRepo)

	trackerRepo.On("List", repository.TrackerFilters{}, 0, 0).
		Return([]entity.Tracker{}, int64(0), nil)

	w := doJSON(t, r, http.MethodGet, "/quiz-results?format=xlsx", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "spreadsheetml")
	assert.NotZero(t, w.Body.Len())
}

func TestResultHandler_Stats_JSONShape(t *testing.T) {
	trackerRepo := new(MockTrackerRepository)
	answerRepo := new(MockAnswerRepository)
	r := newResultRouter(trackerRepo, answerRepo)

	trackerRepo.On("CountCompletedSince", mock.AnythingOfType("time.Time")).Return(int64(2), nil)
	answerRepo.On("CountSince", mock.AnythingOfType("time.Time"), (*bool)(nil)).Return(int64(5), nil)
	answerRepo.On("CountSince", mock.AnythingOfType("time.Time"), mock.MatchedBy(func(b *bool) bool {
		return b != nil && *b
	})).Return(int64(3), nil)
	answerRepo.On("CountSince", mock.AnythingOfType("time.Time"), mock.MatchedBy(func(b *bool) bool {
		return b != nil && !*b
	})).Return(int64(2), nil)

	w := doJSON(t, r, http.MethodGet, "/stats", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]int64
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, int64(2), body["tracker_complete"])
	assert.Equal(t, int64(5), body["answered"])
	assert.Equal(t, int64(3), body["answers_correct"])
	assert.Equal(t, int64(2), body["answers_incorrect"])
}
