package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/workwise/backend/internal/models"
	"github.com/pageza/workwise/backend/internal/types"
)

// Context keys set by the auth middleware
const (
	IdentityIDKey = "identity_id"
	IdentityKey   = "identity"
)

var errMalformedHeader = errors.New("invalid authorization header format")

// IdentityResolver validates session tokens and loads the identity behind them
type IdentityResolver interface {
	ValidateToken(token string) (*types.TokenClaims, error)
	CurrentIdentity(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// RequireAuth rejects requests without a valid session token
func RequireAuth(resolver IdentityResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, types.ErrorResponse{Error: "missing authorization header"})
			return
		}

		identity, err := resolve(c, resolver, authHeader)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, types.ErrorResponse{Error: err.Error()})
			return
		}

		setIdentity(c, identity)
		c.Next()
	}
}

// OptionalAuth attaches the session identity when a token is present.
// A missing header passes through; an invalid token is still rejected.
func OptionalAuth(resolver IdentityResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		identity, err := resolve(c, resolver, authHeader)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, types.ErrorResponse{Error: err.Error()})
			return
		}

		setIdentity(c, identity)
		c.Next()
	}
}

// IdentityFromContext returns the identity attached by RequireAuth or OptionalAuth
func IdentityFromContext(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(IdentityKey)
	if !ok {
		return nil, false
	}
	identity, ok := v.(*models.User)
	return identity, ok && identity != nil
}

func resolve(c *gin.Context, resolver IdentityResolver, authHeader string) (*models.User, error) {
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return nil, errMalformedHeader
	}

	claims, err := resolver.ValidateToken(parts[1])
	if err != nil {
		return nil, err
	}

	// The identity may have been deleted since the token was issued
	identity, err := resolver.CurrentIdentity(c.Request.Context(), claims.IdentityID)
	if err != nil {
		return nil, errors.New("session is no longer valid")
	}
	return identity, nil
}

func setIdentity(c *gin.Context, identity *models.User) {
	c.Set(IdentityIDKey, identity.ID)
	c.Set(IdentityKey, identity)
}
