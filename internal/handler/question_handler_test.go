package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	"github.com/yourusername/quiz-api/internal/middleware"
	"github.com/yourusername/quiz-api/internal/service"
	"github.com/yourusername/quiz-api/internal/webhook"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeAuth injects an authenticated user without a real token.
func fakeAuth(userID uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("username", "tester")
		c.Set("is_admin", true)
		c.Next()
	}
}

func newQuestionRouter(questionRepo *MockQuestionRepository) *gin.Engine {
	svc := service.NewQuestionService(questionRepo, webhook.NoopDispatcher{})
	h := NewQuestionHandler(svc)

	r := gin.New()
	r.Use(fakeAuth(uuid.New()))
	r.POST("/question", h.CreateQuestion)
	r.GET("/question/:id", middleware.ExtractUUIDParam("id", "questionID"), h.GetQuestion)
	r.PATCH("/question/:id", middleware.ExtractUUIDParam("id", "questionID"), h.UpdateQuestion)
	r.GET("/question", h.ListQuestions)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestQuestionHandler_Create_InvalidTypeBody(t *testing.T) {
	questionRepo := new(MockQuestionRepository)
	r := newQuestionRouter(questionRepo)

	w := doJSON(t, r, http.MethodPost, "/question", map[string]interface{}{
		"question_type": "yesno",
		"question":      "Is this fine?",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	var body map[string][]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, []string{`"yesno" is not a valid choice.`}, body["question_type"])
	questionRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestQuestionHandler_Create_Success(t *testing.T) {
	questionRepo := new(MockQuestionRepository)
	r := newQuestionRouter(questionRepo)

	questionRepo.On("Create", mock.AnythingOfType("*entity.Question")).Return(nil)

	w := doJSON(t, r, http.MethodPost, "/question", map[string]interface{}{
		"question_type": "multiplechoice",
		"question":      "Who's your favorite?",
		"answers": []map[string]interface{}{
			{"value": "mike", "text": "Mike"},
			{"value": "nicki", "text": "Nicki"},
			{"value": "george", "text": "George", "correct": true},
		},
	})

	require.Equal(t, http.StatusCreated, w.Code)
	var created entity.Question
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "multiplechoice", created.QuestionType)
	require.Len(t, created.Answers, 3)
	assert.Equal(t, "george", created.Answers[2].Value)
	assert.True(t, created.Answers[2].Correct)
}

func TestQuestionHandler_Get_MalformedID(t *testing.T) {
	questionRepo := new(MockQuestionRepository)
	r := newQuestionRouter(questionRepo)

	w := doJSON(t, r, http.MethodGet, "/question/not-a-uuid", nil)

	// A path that names no record answers 404, not 400.
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"detail": "Not found."}`, w.Body.String())
	questionRepo.AssertNotCalled(t, "GetByID", mock.Anything)
}

func TestQuestionHandler_Patch_Partial(t *testing.T) {
	questionRepo := new(MockQuestionRepository)
	r := newQuestionRouter(questionRepo)

	questionID := uuid.New()
	questionRepo.On("UpdateFields", questionID, mock.MatchedBy(func(updates map[string]interface{}) bool {
		_, hasActive := updates["active"]
		_, hasQuestion := updates["question"]
		return hasActive && !hasQuestion
	})).Return(nil)
	questionRepo.On("GetByID", questionID).Return(&entity.Question{ID: questionID, Active: true}, nil)

	w := doJSON(t, r, http.MethodPatch, "/question/"+questionID.String(),
		map[string]interface{}{"active": true})

	require.Equal(t, http.StatusOK, w.Code)
	questionRepo.AssertExpectations(t)
}

func TestQuestionHandler_List_Paginated(t *testing.T) {
	questionRepo := new(MockQuestionRepository)
	r := newQuestionRouter(questionRepo)

	questionRepo.On("List", mock.Anything, 100, 0).
		Return([]entity.Question{{ID: uuid.New(), QuestionType: "truefalse"}}, int64(1), nil)

	w := doJSON(t, r, http.MethodGet, "/question", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Count   int64             `json:"count"`
		Results []entity.Question `json:"results"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, int64(1), body.Count)
	require.Len(t, body.Results, 1)
}
