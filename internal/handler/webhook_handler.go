package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/quiz-api/internal/handler/dto"
	"github.com/yourusername/quiz-api/internal/service"
)

// WebhookHandler serves webhook subscription management. Admin only.
type WebhookHandler struct {
	webhookService *service.WebhookService
}

// NewWebhookHandler creates a new webhook handler
func NewWebhookHandler(webhookService *service.WebhookService) *WebhookHandler {
	return &WebhookHandler{webhookService: webhookService}
}

// CreateWebhook handles POST /webhook: subscribe a target URL to an event.
func (h *WebhookHandler) CreateWebhook(c *gin.Context) {
	var req dto.CreateWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	hook, err := h.webhookService.CreateHook(req.Event, req.Target, actingUser(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, hook)
}

// ListWebhooks handles GET /webhook
func (h *WebhookHandler) ListWebhooks(c *gin.Context) {
	hooks, err := h.webhookService.ListHooks()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, hooks)
}
