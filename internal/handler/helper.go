package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
)

// respondError maps service errors to HTTP responses. Validation failures
// render the field-error map as the body; everything unrecognized is a 500.
func respondError(c *gin.Context, err error) {
	var fieldErrs apperrors.FieldErrors
	switch {
	case errors.As(err, &fieldErrs):
		c.JSON(http.StatusBadRequest, fieldErrs)
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Invalid credentials."})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"detail": "You do not have permission to perform this action."})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"detail": "Conflict."})
	default:
		log.Printf("[API] Internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error."})
	}
}

// actingUser returns the authenticated user's id from the gin context.
// RequireAuth guarantees it is set on protected routes.
func actingUser(c *gin.Context) uuid.UUID {
	return c.MustGet("user_id").(uuid.UUID)
}

// pagination reads page/page_size query parameters with DRF-style defaults.
func pagination(c *gin.Context) (page, pageSize int) {
	page = queryInt(c, "page", 1)
	if page < 1 {
		page = 1
	}
	pageSize = queryInt(c, "page_size", 100)
	if pageSize < 1 {
		pageSize = 100
	}
	return page, pageSize
}

// bindPatch decodes a partial-update body into a field map. Answers false and
// writes the response itself when the body is not a JSON object.
func bindPatch(c *gin.Context) (map[string]interface{}, bool) {
	updates := map[string]interface{}{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Malformed request body."})
		return nil, false
	}
	return updates, true
}

func queryInt(c *gin.Context, name string, fallback int) int {
	n, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return fallback
	}
	return n
}
