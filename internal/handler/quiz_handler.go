package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	"github.com/yourusername/quiz-api/internal/domain/repository"
	"github.com/yourusername/quiz-api/internal/handler/dto"
	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
	"github.com/yourusername/quiz-api/internal/service"
)

// QuizHandler serves the quiz CRUD endpoints plus the untaken listing.
type QuizHandler struct {
	quizService *service.QuizService
}

// NewQuizHandler creates a new quiz handler
func NewQuizHandler(quizService *service.QuizService) *QuizHandler {
	return &QuizHandler{quizService: quizService}
}

// CreateQuiz handles POST /quiz
func (h *QuizHandler) CreateQuiz(c *gin.Context) {
	var req dto.CreateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	quiz := &entity.Quiz{
		Description: req.Description,
		Active:      req.Active,
		Archived:    req.Archived,
		Metadata:    req.Metadata,
	}
	created, err := h.quizService.Create(quiz, req.Questions, actingUser(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewQuizResponse(created))
}

// GetQuiz handles GET /quiz/:id
func (h *QuizHandler) GetQuiz(c *gin.Context) {
	id := c.MustGet("quizID").(uuid.UUID)

	quiz, err := h.quizService.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuizResponse(quiz))
}

// UpdateQuiz handles PATCH /quiz/:id. A "questions" key replaces the question
// relation with exactly the given ids; other supplied fields patch in place.
func (h *QuizHandler) UpdateQuiz(c *gin.Context) {
	id := c.MustGet("quizID").(uuid.UUID)

	updates, ok := bindPatch(c)
	if !ok {
		return
	}

	questionIDs, err := extractQuestionIDs(updates)
	if err != nil {
		respondError(c, err)
		return
	}
	coerceMetadata(updates)

	quiz, err := h.quizService.Update(id, updates, questionIDs, actingUser(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuizResponse(quiz))
}

// ListQuizzes handles GET /quiz with optional active, archived and
// metadata.<key> filters.
func (h *QuizHandler) ListQuizzes(c *gin.Context) {
	var filters repository.QuizFilters
	if raw := c.Query("active"); raw != "" {
		active := raw == "true"
		filters.Active = &active
	}
	if raw := c.Query("archived"); raw != "" {
		archived := raw == "true"
		filters.Archived = &archived
	}
	for name, values := range c.Request.URL.Query() {
		if key, ok := strings.CutPrefix(name, "metadata."); ok && len(values) > 0 {
			if filters.Metadata == nil {
				filters.Metadata = map[string]string{}
			}
			filters.Metadata[key] = values[0]
		}
	}

	page, pageSize := pagination(c)
	quizzes, total, err := h.quizService.List(filters, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPaginatedResponse(total, dto.NewQuizListResponse(quizzes)))
}

// UntakenQuizzes handles GET /quiz/untaken?identity=<uuid>: the active
// quizzes the identity has not yet completed.
func (h *QuizHandler) UntakenQuizzes(c *gin.Context) {
	identity, err := uuid.Parse(c.Query("identity"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apperrors.NewFieldError("identity", "A valid UUID is required."))
		return
	}

	quizzes, err := h.quizService.UntakenQuizzes(identity)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuizListResponse(quizzes))
}

// extractQuestionIDs pops a "questions" key from a patch body and parses it
// as an id list. nil result means the relation is untouched.
func extractQuestionIDs(updates map[string]interface{}) (*[]uuid.UUID, error) {
	raw, ok := updates["questions"]
	if !ok {
		return nil, nil
	}
	delete(updates, "questions")

	items, ok := raw.([]interface{})
	if !ok {
		return nil, apperrors.NewFieldError("questions", "Expected a list of question ids.")
	}

	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		str, ok := item.(string)
		if !ok {
			return nil, apperrors.NewFieldError("questions", "Expected a list of question ids.")
		}
		id, err := uuid.Parse(str)
		if err != nil {
			return nil, apperrors.NewFieldError("questions",
				"Invalid pk \""+str+"\" - object does not exist.")
		}
		ids = append(ids, id)
	}
	return &ids, nil
}

// coerceMetadata converts a decoded "metadata" object into JSONMap so gorm
// stores it through the entity's JSONB valuer.
func coerceMetadata(updates map[string]interface{}) {
	if raw, ok := updates["metadata"].(map[string]interface{}); ok {
		updates["metadata"] = entity.JSONMap(raw)
	}
}
