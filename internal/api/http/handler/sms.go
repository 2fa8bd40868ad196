package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dtroode/referral-server/internal/logger"
)

// SMSService relays raw messages through the gateway.
type SMSService interface {
	Send(ctx context.Context, phoneNumber, message string) error
}

// SMS handles the raw send-sms utility endpoint.
type SMS struct {
	service SMSService
	logger  *logger.Logger
}

func NewSMS(service SMSService, logger *logger.Logger) *SMS {
	return &SMS{service: service, logger: logger}
}

type sendSMSRequest struct {
	PhoneNumber string `json:"phone_number" binding:"required"`
	Message     string `json:"message" binding:"required"`
}

// Send relays one message to one number.
func (h *SMS) Send(c *gin.Context) {
	var req sendSMSRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Phone number and message are required."})
		return
	}

	if err := h.service.Send(c.Request.Context(), req.PhoneNumber, req.Message); err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"detail": "SMS sent."})
}
