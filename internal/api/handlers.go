package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/workwise/backend/internal/middleware"
	"github.com/pageza/workwise/backend/internal/service"
)

// Pinger reports whether a backing store is reachable
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Deps are the services the HTTP API is built on
type Deps struct {
	Auth          service.IAuthService
	Profiles      service.IProfileService
	Signup        service.ISignupService
	SignupLimiter *middleware.RateLimiter
	DB            Pinger
	MaxPhotoBytes int64
	Logger        *zap.Logger
}

// HealthCheck reports that the process is up
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ReadyCheck reports whether the database answers
func ReadyCheck(db Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "database": "not configured"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "database": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	}
}

// RegisterRoutes mounts health checks and the /api/v1 routes
func RegisterRoutes(router *gin.Engine, deps Deps) {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}

	router.GET("/health", HealthCheck)
	router.GET("/ready", ReadyCheck(deps.DB))

	v1 := router.Group("/api/v1")
	{
		authHandler := NewAuthHandler(deps.Auth, deps.Profiles, log)
		signupHandler := NewSignupHandler(deps.Signup, deps.MaxPhotoBytes, log)
		profileHandler := NewProfileHandler(deps.Profiles)

		authHandler.RegisterRoutes(v1)
		signupHandler.RegisterRoutes(v1, deps.Auth, deps.SignupLimiter)
		profileHandler.RegisterRoutes(v1, deps.Auth)
	}
}
