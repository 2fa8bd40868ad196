package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dtroode/referral-server/internal/logger"
	"github.com/dtroode/referral-server/internal/model"
	"github.com/dtroode/referral-server/internal/service"
)

// AuthService covers the one-time-code login flow.
type AuthService interface {
	Login(ctx context.Context, phoneNumber, password string) (string, error)
	VerifyCode(ctx context.Context, phoneNumber, code string) (service.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (service.TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
}

// Auth handles login, verification and session token endpoints.
type Auth struct {
	service AuthService
	logger  *logger.Logger
}

func NewAuth(service AuthService, logger *logger.Logger) *Auth {
	return &Auth{service: service, logger: logger}
}

type loginRequest struct {
	PhoneNumber string `json:"phone_number" binding:"required"`
	Password    string `json:"password"`
}

type loginResponse struct {
	Success     bool   `json:"success"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Detail      string `json:"detail,omitempty"`
}

// Login issues a one-time code to the phone number. Validation and
// delivery failures are reported inline with status 200: the login form
// is re-rendered with the error, it is not a protocol-level failure.
func (h *Auth) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, loginResponse{Detail: "Phone number is required."})
		return
	}

	phoneNumber, err := h.service.Login(c.Request.Context(), req.PhoneNumber, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrInvalidPhoneNumber):
			c.JSON(http.StatusOK, loginResponse{Detail: "Invalid phone number."})
		case errors.Is(err, model.ErrInvalidPassword):
			c.JSON(http.StatusOK, loginResponse{Detail: "Incorrect phone number or password."})
		case errors.Is(err, model.ErrSMSDeliveryFailed):
			c.JSON(http.StatusOK, loginResponse{Detail: "Failed to send verification code."})
		default:
			c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error."})
		}
		return
	}

	c.JSON(http.StatusOK, loginResponse{Success: true, PhoneNumber: phoneNumber})
}

type verifyCodeRequest struct {
	PhoneNumber string `json:"phone_number" binding:"required"`
	Code        string `json:"code" binding:"required"`
}

type tokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// VerifyCode consumes the one-time code and returns a session token pair.
func (h *Auth) VerifyCode(c *gin.Context) {
	var req verifyCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Phone number and code are required."})
		return
	}

	pair, err := h.service.VerifyCode(c.Request.Context(), req.PhoneNumber, req.Code)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, tokenPairResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// Refresh rotates a refresh token into a new pair.
func (h *Auth) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Refresh token is required."})
		return
	}

	pair, err := h.service.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Refresh token invalid."})
		return
	}

	c.JSON(http.StatusOK, tokenPairResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// Logout revokes the presented refresh token.
func (h *Auth) Logout(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Refresh token is required."})
		return
	}

	if err := h.service.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Refresh token invalid."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"detail": "Logged out."})
}
