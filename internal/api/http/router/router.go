package router

import (
	"github.com/gin-gonic/gin"

	"github.com/dtroode/referral-server/internal/api/http/handler"
	"github.com/dtroode/referral-server/internal/api/http/middleware"
	"github.com/dtroode/referral-server/internal/logger"
)

// Router wires handlers and middleware into a gin engine.
type Router struct {
	authHandler    *handler.Auth
	profileHandler *handler.Profile
	smsHandler     *handler.SMS
	authenticate   *middleware.Authenticate
	logger         *logger.Logger
}

// New creates a new Router instance.
func New(
	authService handler.AuthService,
	profileService handler.ProfileService,
	smsService handler.SMSService,
	tokenService middleware.TokenService,
	logger *logger.Logger,
) *Router {
	return &Router{
		authHandler:    handler.NewAuth(authService, logger),
		profileHandler: handler.NewProfile(profileService, logger),
		smsHandler:     handler.NewSMS(smsService, logger),
		authenticate:   middleware.NewAuthenticate(tokenService, logger),
		logger:         logger,
	}
}

// Register builds the gin engine with all routes and middleware.
func (r *Router) Register() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	engine.Use(middleware.NewLogging(r.logger).Handle, gin.Recovery())

	api := engine.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/login", r.authHandler.Login)
	auth.POST("/verify-code", r.authHandler.VerifyCode)
	auth.POST("/refresh", r.authHandler.Refresh)

	authed := api.Group("")
	authed.Use(r.authenticate.Handle)
	authed.POST("/auth/logout", r.authHandler.Logout)
	authed.GET("/profile", r.profileHandler.Get)
	authed.POST("/profile/activate-invite", r.profileHandler.ActivateInvite)
	authed.POST("/sms/send", r.smsHandler.Send)

	return engine
}
