package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/quiz-api/internal/websocket"
	"github.com/yourusername/quiz-api/pkg/auth"
)

// WSHandler serves the live event feed. Browsers cannot set an Authorization
// header on a websocket handshake, so the token rides in the query string.
type WSHandler struct {
	hub        *websocket.Hub
	jwtService *auth.JWTService
}

// NewWSHandler creates a new websocket handler
func NewWSHandler(hub *websocket.Hub, jwtService *auth.JWTService) *WSHandler {
	return &WSHandler{hub: hub, jwtService: jwtService}
}

// HandleConnection handles GET /ws/events?token=<jwt>
func (h *WSHandler) HandleConnection(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Authentication credentials were not provided."})
		return
	}
	if _, err := h.jwtService.ParseToken(token); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Invalid or expired token."})
		return
	}

	h.hub.Serve(c.Writer, c.Request)
}
