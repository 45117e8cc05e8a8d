// Package handlers holds the gin handlers for the bot's HTTP surface:
// the messaging webhook and the short-lived QR image endpoint.
package handlers

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cyphera/kaia-bot/internal/logger"
)

const signatureHeader = "X-Line-Signature"

// MessageHandler consumes one inbound text message. *bot.Router satisfies it.
type MessageHandler interface {
	HandleText(ctx context.Context, userID, text string)
}

// WebhookHandler receives messaging platform callbacks, validates their
// signature and hands text messages to the router.
type WebhookHandler struct {
	router        MessageHandler
	channelSecret string
}

// NewWebhookHandler creates a webhook handler bound to the given router
// and channel secret.
func NewWebhookHandler(router MessageHandler, channelSecret string) *WebhookHandler {
	return &WebhookHandler{
		router:        router,
		channelSecret: channelSecret,
	}
}

type webhookRequest struct {
	Events []webhookEvent `json:"events"`
}

type webhookEvent struct {
	Type    string `json:"type"`
	Source  struct {
		UserID string `json:"userId"`
	} `json:"source"`
	Message struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"message"`
}

// HandleWebhook validates the request signature and dispatches each text
// message event on its own goroutine. Flows like connect can run for
// minutes, so the webhook must acknowledge immediately; the platform
// retries deliveries that time out.
func (h *WebhookHandler) HandleWebhook(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		sendError(c, http.StatusBadRequest, "Failed to read request body", err)
		return
	}

	if !h.validSignature(body, c.GetHeader(signatureHeader)) {
		logger.Warn("webhook signature mismatch",
			zap.String("path", c.Request.URL.Path))
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Invalid signature"})
		return
	}

	var req webhookRequest
	if err := json.Unmarshal(body, &req); err != nil {
		sendError(c, http.StatusBadRequest, "Failed to parse webhook payload", err)
		return
	}

	for _, event := range req.Events {
		if event.Type != "message" || event.Message.Type != "text" || event.Source.UserID == "" {
			continue
		}
		go h.router.HandleText(context.Background(), event.Source.UserID, event.Message.Text)
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// validSignature checks the base64 HMAC-SHA256 digest the platform sends
// with every delivery.
func (h *WebhookHandler) validSignature(body []byte, signature string) bool {
	if signature == "" {
		return false
	}

	mac := hmac.New(sha256.New, []byte(h.channelSecret))
	mac.Write(body)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
