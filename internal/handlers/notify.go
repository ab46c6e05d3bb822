package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"nexus-portal-backend/internal/mailer"
	"nexus-portal-backend/internal/models"
)

// NotifyHandler is the outbound mail relay: one synchronous transactional
// send per request, no retry, no queue.
type NotifyHandler struct {
	sender   mailer.Sender
	resolver mailer.AdminResolver
	admin    string
	log      *logrus.Logger
}

func NewNotifyHandler(sender mailer.Sender, resolver mailer.AdminResolver, adminEmail string, log *logrus.Logger) *NotifyHandler {
	return &NotifyHandler{
		sender:   sender,
		resolver: resolver,
		admin:    adminEmail,
		log:      log,
	}
}

// Notify godoc
// @Summary     Send a transactional email
// @Description Sends one email. "to" is either the literal token "admin" (resolved to the operator address) or an email address. Fails closed when SMTP credentials are not configured.
// @Tags        notify
// @Accept      json
// @Produce     json
// @Param       request body models.NotifyRequest true "Message"
// @Success     200 {object} models.NotifyResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /notify [post]
func (h *NotifyHandler) Notify(c *gin.Context) {
	var req models.NotifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid request body",
			Message: err.Error(),
		})
		return
	}

	// Credentials are checked before any network or resolution work so a
	// misconfigured relay never half-dispatches.
	if !h.sender.Configured() {
		h.log.Error("mail relay called without SMTP credentials configured")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "mail server configuration missing",
			Details: "check SMTP_USER and SMTP_APP_PASSWORD env vars",
		})
		return
	}

	recipient, err := mailer.ResolveRecipient(req.To, h.resolver, h.admin)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid recipient",
			Details: "the field \"to\" must be \"admin\" or a valid email address",
		})
		return
	}

	messageID, err := h.sender.Send(recipient, req.Subject, req.Body)
	if err != nil {
		h.log.WithError(err).WithField("recipient", recipient).Error("smtp send failed")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "SMTP transmission error",
			Details: err.Error(),
		})
		return
	}

	h.log.WithFields(logrus.Fields{
		"recipient":  recipient,
		"message_id": messageID,
	}).Info("mail dispatched")

	c.JSON(http.StatusOK, models.NotifyResponse{
		Success:   true,
		Recipient: recipient,
		MessageID: messageID,
	})
}
