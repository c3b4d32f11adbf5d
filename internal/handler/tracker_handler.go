package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yourusername/quiz-api/internal/domain/repository"
	"github.com/yourusername/quiz-api/internal/handler/dto"
	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
	"github.com/yourusername/quiz-api/internal/service"
)

// TrackerHandler serves the attempt endpoints.
type TrackerHandler struct {
	trackerService *service.TrackerService
}

// NewTrackerHandler creates a new tracker handler
func NewTrackerHandler(trackerService *service.TrackerService) *TrackerHandler {
	return &TrackerHandler{trackerService: trackerService}
}

// CreateTracker handles POST /tracker: start a new attempt.
func (h *TrackerHandler) CreateTracker(c *gin.Context) {
	var req dto.CreateTrackerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	tracker, err := h.trackerService.StartTracker(req.Identity, req.Quiz, req.Metadata, actingUser(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, tracker)
}

// GetTracker handles GET /tracker/:id
func (h *TrackerHandler) GetTracker(c *gin.Context) {
	id := c.MustGet("trackerID").(uuid.UUID)

	tracker, err := h.trackerService.GetTracker(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, tracker)
}

// UpdateTracker handles PATCH /tracker/:id. Marking an attempt complete is a
// patch of complete and completed_at; the two fields move independently.
func (h *TrackerHandler) UpdateTracker(c *gin.Context) {
	id := c.MustGet("trackerID").(uuid.UUID)

	updates, ok := bindPatch(c)
	if !ok {
		return
	}
	if err := coerceCompletedAt(updates); err != nil {
		respondError(c, err)
		return
	}
	coerceMetadata(updates)

	tracker, err := h.trackerService.UpdateTracker(id, updates, actingUser(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, tracker)
}

// ListTrackers handles GET /tracker with optional identity, quiz and
// complete filters.
func (h *TrackerHandler) ListTrackers(c *gin.Context) {
	var filters repository.TrackerFilters
	if raw := c.Query("identity"); raw != "" {
		identity, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, apperrors.NewFieldError("identity", "A valid UUID is required."))
			return
		}
		filters.Identity = &identity
	}
	if raw := c.Query("quiz"); raw != "" {
		quizID, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, apperrors.NewFieldError("quiz", "A valid UUID is required."))
			return
		}
		filters.QuizID = &quizID
	}
	if raw := c.Query("complete"); raw != "" {
		complete := raw == "true"
		filters.Complete = &complete
	}
	if raw := c.Query("started_at"); raw != "" {
		startedAt, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, apperrors.NewFieldError("started_at", "Datetime has wrong format."))
			return
		}
		filters.StartedAt = &startedAt
	}
	if raw := c.Query("completed_at"); raw != "" {
		completedAt, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, apperrors.NewFieldError("completed_at", "Datetime has wrong format."))
			return
		}
		filters.CompletedAt = &completedAt
	}

	page, pageSize := pagination(c)
	trackers, total, err := h.trackerService.ListTrackers(filters, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPaginatedResponse(total, trackers))
}

// coerceCompletedAt parses a decoded "completed_at" string into a timestamp.
// An explicit null passes through and clears the column.
func coerceCompletedAt(updates map[string]interface{}) error {
	raw, ok := updates["completed_at"]
	if !ok || raw == nil {
		return nil
	}

	str, ok := raw.(string)
	if !ok {
		return apperrors.NewFieldError("completed_at", "Datetime has wrong format.")
	}
	parsed, err := time.Parse(time.RFC3339, str)
	if err != nil {
		return apperrors.NewFieldError("completed_at", "Datetime has wrong format.")
	}
	updates["completed_at"] = parsed
	return nil
}
