package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	"github.com/yourusername/quiz-api/internal/domain/repository"
	"github.com/yourusername/quiz-api/internal/handler/dto"
	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
	"github.com/yourusername/quiz-api/internal/service"
)

// QuestionHandler serves the question CRUD endpoints.
type QuestionHandler struct {
	questionService *service.QuestionService
}

// NewQuestionHandler creates a new question handler
func NewQuestionHandler(questionService *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionService: questionService}
}

// CreateQuestion handles POST /question
func (h *QuestionHandler) CreateQuestion(c *gin.Context) {
	var req dto.CreateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	question, err := h.questionService.Create(req.ToEntity(), actingUser(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, question)
}

// GetQuestion handles GET /question/:id
func (h *QuestionHandler) GetQuestion(c *gin.Context) {
	id := c.MustGet("questionID").(uuid.UUID)

	question, err := h.questionService.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, question)
}

// UpdateQuestion handles PATCH /question/:id. Only supplied fields change.
func (h *QuestionHandler) UpdateQuestion(c *gin.Context) {
	id := c.MustGet("questionID").(uuid.UUID)

	updates, ok := bindPatch(c)
	if !ok {
		return
	}
	if err := coerceAnswers(updates); err != nil {
		respondError(c, err)
		return
	}

	question, err := h.questionService.Update(id, updates, actingUser(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, question)
}

// ListQuestions handles GET /question with optional question_type and active
// filters.
func (h *QuestionHandler) ListQuestions(c *gin.Context) {
	var filters repository.QuestionFilters
	if questionType := c.Query("question_type"); questionType != "" {
		filters.QuestionType = &questionType
	}
	if raw := c.Query("active"); raw != "" {
		active := raw == "true"
		filters.Active = &active
	}

	page, pageSize := pagination(c)
	questions, total, err := h.questionService.List(filters, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPaginatedResponse(total, questions))
}

// coerceAnswers rebuilds a decoded "answers" value into the typed option
// list so it reaches the store as JSONB, not as a raw interface slice.
func coerceAnswers(updates map[string]interface{}) error {
	raw, ok := updates["answers"]
	if !ok {
		return nil
	}

	buf, err := json.Marshal(raw)
	if err != nil {
		return apperrors.NewFieldError("answers", "Invalid answer options.")
	}
	var answers entity.AnswerOptions
	if err := json.Unmarshal(buf, &answers); err != nil {
		return apperrors.NewFieldError("answers", "Invalid answer options.")
	}
	updates["answers"] = answers
	return nil
}
