package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/workwise/backend/internal/middleware"
	"github.com/pageza/workwise/backend/internal/models"
	"github.com/pageza/workwise/backend/internal/service"
	"github.com/pageza/workwise/backend/internal/types"
)

type AuthHandler struct {
	authService    service.IAuthService
	profileService service.IProfileService
	log            *zap.Logger
}

func NewAuthHandler(authService service.IAuthService, profileService service.IProfileService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService:    authService,
		profileService: profileService,
		log:            log.Named("auth"),
	}
}

func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.POST("/oauth/:provider", h.OAuthSignIn)
		auth.POST("/login", h.Login)
		auth.GET("/me", middleware.RequireAuth(h.authService), h.Me)
	}
}

// OAuthSignIn exchanges a provider credential for a session token
func (h *AuthHandler) OAuthSignIn(c *gin.Context) {
	var req types.OAuthSignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "token is required"})
		return
	}

	provider := c.Param("provider")
	user, err := h.authService.SignInOAuth(c.Request.Context(), provider, req.Token)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrProviderDisabled):
		c.JSON(http.StatusNotFound, types.ErrorResponse{Error: "sign-in with " + provider + " is not available"})
		return
	case errors.Is(err, service.ErrProviderToken):
		c.JSON(http.StatusUnauthorized, types.ErrorResponse{Error: "sign-in failed, please try again"})
		return
	case errors.Is(err, service.ErrEmailInUse):
		c.JSON(http.StatusConflict, types.ErrorResponse{Error: "an account with this email already exists, sign in with your password"})
		return
	default:
		h.log.Error("oauth sign-in failed", zap.String("provider", provider), zap.Error(err))
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: "sign-in failed"})
		return
	}

	h.respondWithSession(c, user)
}

// Login signs in with email and password
func (h *AuthHandler) Login(c *gin.Context) {
	var req types.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "email and password are required"})
		return
	}

	user, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, types.ErrorResponse{Error: "invalid email or password"})
		return
	}

	h.respondWithSession(c, user)
}

// Me returns the identity behind the session
func (h *AuthHandler) Me(c *gin.Context) {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, types.ErrorResponse{Error: "unauthorized"})
		return
	}
	c.JSON(http.StatusOK, identity)
}

func (h *AuthHandler) respondWithSession(c *gin.Context, user *models.User) {
	token, err := h.authService.IssueToken(user)
	if err != nil {
		h.log.Error("failed to issue token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: "sign-in failed"})
		return
	}

	exists, err := h.profileService.ProfileExists(c.Request.Context(), user.ID)
	if err != nil {
		// The client falls back to the sign-up form, which refuses duplicates
		h.log.Warn("profile lookup failed", zap.Error(err))
	}

	c.JSON(http.StatusOK, types.AuthResponse{
		Token:         token,
		Identity:      user,
		ProfileExists: exists,
	})
}
