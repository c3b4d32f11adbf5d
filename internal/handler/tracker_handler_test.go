package handler

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	"github.com/yourusername/quiz-api/internal/middleware"
	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
	"github.com/yourusername/quiz-api/internal/service"
	"github.com/yourusername/quiz-api/internal/webhook"
)

func newTrackerRouter(trackerRepo *MockTrackerRepository, answerRepo *MockAnswerRepository,
	quizRepo *MockQuizRepository, questionRepo *MockQuestionRepository) *gin.Engine {

	svc := service.NewTrackerService(trackerRepo, answerRepo, quizRepo, questionRepo, webhook.NoopDispatcher{})
	trackerHandler := NewTrackerHandler(svc)
	answerHandler := NewAnswerHandler(svc)

	r := gin.New()
	r.Use(fakeAuth(uuid.New()))
	r.POST("/tracker", trackerHandler.CreateTracker)
	r.GET("/tracker/:id", middleware.ExtractUUIDParam("id", "trackerID"), trackerHandler.GetTracker)
	r.PATCH("/tracker/:id", middleware.ExtractUUIDParam("id", "trackerID"), trackerHandler.UpdateTracker)
	r.GET("/tracker", trackerHandler.ListTrackers)
	r.POST("/answer", answerHandler.CreateAnswer)
	return r
}

func TestTrackerHandler_Create_UnknownQuiz(t *testing.T) {
	trackerRepo := new(MockTrackerRepository)
	quizRepo := new(MockQuizRepository)
	r := newTrackerRouter(trackerRepo, new(MockAnswerRepository), quizRepo, new(MockQuestionRepository))

	missing := uuid.New()
	quizRepo.On("GetByID", missing).Return(nil, apperrors.ErrNotFound)

	w := doJSON(t, r, http.MethodPost, "/tracker", map[string]string{
		"identity": uuid.NewString(),
		"quiz":     missing.String(),
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	var body map[string][]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body["quiz"], 1)
	assert.Contains(t, body["quiz"][0], "object does not exist")
	trackerRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestTrackerHandler_Create_Success(t *testing.T) {
	trackerRepo := new(MockTrackerRepository)
	quizRepo := new(MockQuizRepository)
	r := newTrackerRouter(trackerRepo, new(MockAnswerRepository), quizRepo, new(MockQuestionRepository))

	quizID := uuid.New()
	identity := uuid.New()
	quizRepo.On("GetByID", quizID).Return(&entity.Quiz{ID: quizID}, nil)
	trackerRepo.On("Create", mock.AnythingOfType("*entity.Tracker")).Return(nil)

	w := doJSON(t, r, http.MethodPost, "/tracker", map[string]interface{}{
		"identity": identity.String(),
		"quiz":     quizID.String(),
		"metadata": map[string]interface{}{"source": "email"},
	})

	require.Equal(t, http.StatusCreated, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, identity.String(), body["identity"])
	assert.Equal(t, quizID.String(), body["quiz"])
	assert.Equal(t, false, body["complete"])
	assert.NotEmpty(t, body["started_at"])
}

func TestTrackerHandler_Patch_Complete(t *testing.T) {
	trackerRepo := new(MockTrackerRepository)
	r := newTrackerRouter(trackerRepo, new(MockAnswerRepository), new(MockQuizRepository), new(MockQuestionRepository))

	trackerID := uuid.New()
	completedAt := time.Date(2024, 7, 2, 15, 4, 5, 0, time.UTC)

	trackerRepo.On("UpdateFields", trackerID, mock.MatchedBy(func(updates map[string]interface{}) bool {
		complete, _ := updates["complete"].(bool)
		parsed, isTime := updates["completed_at"].(time.Time)
		return complete && isTime && parsed.Equal(completedAt)
	})).Return(nil)
	trackerRepo.On("GetByID", trackerID).Return(&entity.Tracker{
		ID:          trackerID,
		Complete:    true,
		CompletedAt: &completedAt,
	}, nil)

	w := doJSON(t, r, http.MethodPatch, "/tracker/"+trackerID.String(), map[string]interface{}{
		"complete":     true,
		"completed_at": completedAt.Format(time.RFC3339),
	})

	require.Equal(t, http.StatusOK, w.Code)
	trackerRepo.AssertExpectations(t)
}

func TestTrackerHandler_Patch_RejectsImmutableField(t *testing.T) {
	trackerRepo := new(MockTrackerRepository)
	r := newTrackerRouter(trackerRepo, new(MockAnswerRepository), new(MockQuizRepository), new(MockQuestionRepository))

	w := doJSON(t, r, http.MethodPatch, "/tracker/"+uuid.NewString(), map[string]interface{}{
		"identity": uuid.NewString(),
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	trackerRepo.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything)
}

func TestAnswerHandler_Create_Success(t *testing.T) {
	trackerRepo := new(MockTrackerRepository)
	answerRepo := new(MockAnswerRepository)
	questionRepo := new(MockQuestionRepository)
	r := newTrackerRouter(trackerRepo, answerRepo, new(MockQuizRepository), questionRepo)

	trackerID := uuid.New()
	questionID := uuid.New()
	trackerRepo.On("GetByID", trackerID).Return(&entity.Tracker{ID: trackerID}, nil)
	questionRepo.On("GetByID", questionID).Return(&entity.Question{ID: questionID}, nil)
	answerRepo.On("Create", mock.AnythingOfType("*entity.Answer")).Return(nil)

	w := doJSON(t, r, http.MethodPost, "/answer", map[string]interface{}{
		"tracker":        trackerID.String(),
		"question":       questionID.String(),
		"answer_value":   "george",
		"answer_text":    "George",
		"answer_correct": true,
	})

	require.Equal(t, http.StatusCreated, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "george", body["answer_value"])
	assert.Equal(t, true, body["answer_correct"])
}
