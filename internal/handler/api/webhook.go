package api

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"shopbot/internal/handler/httperr"

	"github.com/gin-gonic/gin"
)

// MessageRouter routes one inbound message for a conversation.
type MessageRouter interface {
	HandleMessage(ctx context.Context, conversationID, text string) error
}

// ContextStore deduplicates widget-context callbacks.
type ContextStore interface {
	MarkSeen(ctx context.Context, conversationID, widgetContext string) (bool, error)
}

// WebhookRequest mirrors the conversation platform's inbound event shape.
// Exactly one of Message or SuggestionResponse carries the user's input; a
// widget entry point additionally carries Context.
type WebhookRequest struct {
	ConversationID string `json:"conversationId" binding:"required"`
	Message        *struct {
		MessageID string `json:"messageId"`
		Text      string `json:"text"`
	} `json:"message"`
	SuggestionResponse *struct {
		Text         string `json:"text"`
		PostbackData string `json:"postbackData"`
	} `json:"suggestionResponse"`
	Context *struct {
		WidgetContext string `json:"widgetContext"`
	} `json:"context"`
}

type WebhookHandler struct {
	router   MessageRouter
	contexts ContextStore
	logger   *slog.Logger
}

func NewWebhookHandler(router MessageRouter, contexts ContextStore, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{router: router, contexts: contexts, logger: logger}
}

// @Summary Inbound conversation event
// @Description Receives one user message or suggestion tap and routes it to the bot
// @Tags webhook
// @Accept json
// @Produce json
// @Param request body WebhookRequest true "Conversation event"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /webhook [post]
func (h *WebhookHandler) Receive(c *gin.Context) {
	var req WebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	text := h.resolveText(c, req)
	if text == "" {
		// Delivery receipts and other non-message events carry no text.
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	// The platform retries deliveries; answering is fire-and-forget from
	// its point of view, so a routing failure is logged, never returned.
	if err := h.router.HandleMessage(c.Request.Context(), req.ConversationID, text); err != nil {
		h.logger.Error("failed to handle inbound message",
			"conversation_id", req.ConversationID, "error", err.Error())
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// resolveText picks the postback over free text, and folds a widget entry
// context into a shop command the first time that context is seen.
func (h *WebhookHandler) resolveText(c *gin.Context, req WebhookRequest) string {
	if req.SuggestionResponse != nil && req.SuggestionResponse.PostbackData != "" {
		return req.SuggestionResponse.PostbackData
	}

	var text string
	if req.Message != nil {
		text = strings.TrimSpace(req.Message.Text)
	}

	if req.Context != nil && req.Context.WidgetContext != "" {
		seen, err := h.contexts.MarkSeen(c.Request.Context(), req.ConversationID, req.Context.WidgetContext)
		if err != nil {
			h.logger.Warn("failed to record widget context",
				"conversation_id", req.ConversationID, "error", err.Error())
		} else if !seen && text == "" {
			// First contact from this widget: greet with the collection.
			return "shop"
		}
	}
	return text
}
