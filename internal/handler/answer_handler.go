package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yourusername/quiz-api/internal/domain/repository"
	"github.com/yourusername/quiz-api/internal/handler/dto"
	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
	"github.com/yourusername/quiz-api/internal/service"
)

// AnswerHandler serves the answer endpoints. Answers are immutable once
// recorded; there is no update route.
type AnswerHandler struct {
	trackerService *service.TrackerService
}

// NewAnswerHandler creates a new answer handler
func NewAnswerHandler(trackerService *service.TrackerService) *AnswerHandler {
	return &AnswerHandler{trackerService: trackerService}
}

// CreateAnswer handles POST /answer: record one response against a tracker.
func (h *AnswerHandler) CreateAnswer(c *gin.Context) {
	var req dto.CreateAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	answer, err := h.trackerService.RecordAnswer(service.RecordAnswerInput{
		TrackerID:     req.Tracker,
		QuestionID:    req.Question,
		QuestionText:  req.QuestionText,
		ResponseSent:  req.ResponseSent,
		AnswerValue:   req.AnswerValue,
		AnswerText:    req.AnswerText,
		AnswerCorrect: req.AnswerCorrect,
		Version:       req.Version,
	}, actingUser(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, answer)
}

// GetAnswer handles GET /answer/:id
func (h *AnswerHandler) GetAnswer(c *gin.Context) {
	id := c.MustGet("answerID").(uuid.UUID)

	answer, err := h.trackerService.GetAnswer(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, answer)
}

// ListAnswers handles GET /answer with optional tracker, question and
// answer_correct filters.
func (h *AnswerHandler) ListAnswers(c *gin.Context) {
	var filters repository.AnswerFilters
	if raw := c.Query("tracker"); raw != "" {
		trackerID, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, apperrors.NewFieldError("tracker", "A valid UUID is required."))
			return
		}
		filters.TrackerID = &trackerID
	}
	if raw := c.Query("question"); raw != "" {
		questionID, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, apperrors.NewFieldError("question", "A valid UUID is required."))
			return
		}
		filters.QuestionID = &questionID
	}
	if raw := c.Query("answer_correct"); raw != "" {
		correct := raw == "true"
		filters.AnswerCorrect = &correct
	}

	page, pageSize := pagination(c)
	answers, total, err := h.trackerService.ListAnswers(filters, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPaginatedResponse(total, answers))
}
