package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/workwise/backend/internal/middleware"
	"github.com/pageza/workwise/backend/internal/service"
	"github.com/pageza/workwise/backend/internal/types"
)

type ProfileHandler struct {
	profileService service.IProfileService
}

func NewProfileHandler(profileService service.IProfileService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
	}
}

func (h *ProfileHandler) RegisterRoutes(router *gin.RouterGroup, resolver middleware.IdentityResolver) {
	profile := router.Group("/profile")
	profile.Use(middleware.RequireAuth(resolver))
	{
		profile.GET("", h.GetProfile)
		profile.GET("/exists", h.ProfileExists)
	}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, types.ErrorResponse{Error: "unauthorized"})
		return
	}

	profile, err := h.profileService.GetProfile(c.Request.Context(), identity.ID)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, types.ErrorResponse{Error: "profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: "failed to get profile"})
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) ProfileExists(c *gin.Context) {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, types.ErrorResponse{Error: "unauthorized"})
		return
	}

	exists, err := h.profileService.ProfileExists(c.Request.Context(), identity.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: "failed to check profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"exists": exists})
}
