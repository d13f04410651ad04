package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/staffdesk/ops_portal_app/internal/mailer"
)

// EmailSendRequest is the generic envelope for the transactional email endpoint.
// Payload is decoded against the schema registered for Type.
type EmailSendRequest struct {
	Type    string          `json:"type" binding:"required"`
	To      []string        `json:"to" binding:"required,min=1,dive,email"`
	Payload json.RawMessage `json:"payload" binding:"required"`
}

// emailHandler accepts typed transactional email requests and hands them to the outbox.
type emailHandler struct {
	outbox   *mailer.Outbox
	validate *validator.Validate
}

func newEmailHandler(outbox *mailer.Outbox) *emailHandler {
	return &emailHandler{outbox: outbox, validate: validator.New()}
}

// registerEmailRoutes registers the transactional email endpoint.
func registerEmailRoutes(group *gin.RouterGroup, outbox *mailer.Outbox) {
	h := newEmailHandler(outbox)
	group.POST("/email/send-task-notification", h.sendEmail)
}

// sendEmail godoc
// @Summary Send a typed transactional email
// @Description Validates the payload against the schema for the given email type, renders the template and queues the message for delivery.
// @Tags email
// @Accept json
// @Produce json
// @Param email body EmailSendRequest true "Email request"
// @Success 202 {object} map[string]bool
// @Failure 400 {object} ErrorResponse "Unknown email type or invalid payload"
// @Router /email/send-task-notification [post]
func (h *emailHandler) sendEmail(c *gin.Context) {
	var req EmailSendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	payload, err := mailer.DecodePayload(mailer.EmailType(req.Type), req.Payload, h.validate)
	if err != nil {
		respondError(c, err, "failed to decode email payload")
		return
	}

	subject, htmlBody, err := mailer.Render(mailer.EmailType(req.Type), payload)
	if err != nil {
		respondError(c, err, "failed to render email")
		return
	}

	h.outbox.Enqueue(mailer.OutboxMessage{
		To:       req.To,
		Subject:  subject,
		HTMLBody: htmlBody,
	})
	c.JSON(http.StatusAccepted, gin.H{"success": true})
}
