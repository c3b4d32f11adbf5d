package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ExtractUUIDParam creates middleware that parses a UUID URL parameter.
// paramName is the parameter name in the route (e.g. "id"); contextKey is the
// key the parsed uuid.UUID is stored under in the gin context.
//
// A malformed id answers 404, not 400: the path simply names no record.
func ExtractUUIDParam(paramName, contextKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param(paramName))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
			c.Abort()
			return
		}
		c.Set(contextKey, id)
		c.Next()
	}
}
