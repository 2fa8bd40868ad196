package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dtroode/referral-server/internal/model"
)

// handleError maps service errors to HTTP responses. Errors are reported
// as {"detail": "..."} so clients can disambiguate validation failures,
// lookup misses and policy violations by status and message.
func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrInvalidPhoneNumber):
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid phone number."})
	case errors.Is(err, model.ErrCodeMismatch):
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Incorrect verification code."})
	case errors.Is(err, model.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": "User not found."})
	case errors.Is(err, model.ErrInviteCodeMissing):
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invite code not provided."})
	case errors.Is(err, model.ErrInviteNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": "Invite code not found."})
	case errors.Is(err, model.ErrAlreadyActivated):
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invite code already activated."})
	case errors.Is(err, model.ErrSelfInvite):
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Cannot use your own invite code."})
	case errors.Is(err, model.ErrSMSDeliveryFailed):
		c.JSON(http.StatusBadGateway, gin.H{"detail": "Failed to send SMS."})
	case errors.Is(err, model.ErrTokenRevoked), errors.Is(err, model.ErrTokenExpired), errors.Is(err, model.ErrTokenMismatch):
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Refresh token invalid."})
	default:
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error."})
	}
}
