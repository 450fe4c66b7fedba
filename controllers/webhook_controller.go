package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/zaylux/zaylux-store-api/services"
	"github.com/zaylux/zaylux-store-api/utils"
)

// WebhookController receives inbound WhatsApp messages from Twilio
type WebhookController struct {
	Confirmations *services.ConfirmationService
}

// NewWebhookController creates a webhook controller
func NewWebhookController(confirmations *services.ConfirmationService) *WebhookController {
	return &WebhookController{Confirmations: confirmations}
}

// HandleWhatsAppWebhook handles POST /api/webhook/whatsapp - a form-encoded
// Twilio callback carrying the sender ("From", prefixed with "whatsapp:")
// and the message body ("Body").
//
// The upstream provider has no use for error codes and retries destructively
// on non-2xx, so every outcome answers 200: failures are logged and absorbed.
func (ctl *WebhookController) HandleWhatsAppWebhook(c *gin.Context) {
	from := c.PostForm("From")
	body := c.PostForm("Body")

	if from == "" || body == "" {
		utils.Logger().Warn("Webhook message missing sender or body")
		c.JSON(http.StatusOK, gin.H{"success": true})
		return
	}

	if err := ctl.Confirmations.HandleIncomingMessage(from, body); err != nil {
		utils.Logger().Error("Webhook processing failed",
			zap.String("from", from),
			zap.Error(err),
		)
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
