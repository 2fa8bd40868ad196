package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dtroode/referral-server/internal/api/http/middleware"
	"github.com/dtroode/referral-server/internal/logger"
	"github.com/dtroode/referral-server/internal/service"
)

// ProfileService covers the referral profile surface.
type ProfileService interface {
	Get(ctx context.Context, userID uuid.UUID) (service.Info, error)
	ActivateInvite(ctx context.Context, userID uuid.UUID, inviteCode string) error
}

// Profile handles the referral profile endpoints.
type Profile struct {
	service ProfileService
	logger  *logger.Logger
}

func NewProfile(service ProfileService, logger *logger.Logger) *Profile {
	return &Profile{service: service, logger: logger}
}

type profileResponse struct {
	PhoneNumber  string   `json:"phone_number"`
	InviteCode   string   `json:"invite_code"`
	InvitedBy    *string  `json:"invited_by"`
	InvitedUsers []string `json:"invited_users"`
}

// Get returns the caller's referral profile.
func (h *Profile) Get(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Authorization required."})
		return
	}

	info, err := h.service.Get(c.Request.Context(), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	invited := info.InvitedUsers
	if invited == nil {
		invited = []string{}
	}

	c.JSON(http.StatusOK, profileResponse{
		PhoneNumber:  info.PhoneNumber,
		InviteCode:   info.InviteCode,
		InvitedBy:    info.InvitedBy,
		InvitedUsers: invited,
	})
}

type activateInviteRequest struct {
	InviteCode string `json:"invite_code"`
}

// ActivateInvite records the invite code's owner as the caller's inviter.
func (h *Profile) ActivateInvite(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Authorization required."})
		return
	}

	var req activateInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invite code not provided."})
		return
	}

	if err := h.service.ActivateInvite(c.Request.Context(), userID, req.InviteCode); err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"detail": "Invite code activated."})
}
