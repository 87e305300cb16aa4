package types

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenClaims represents the claims in a session JWT
type TokenClaims struct {
	jwt.RegisteredClaims
	IdentityID uuid.UUID `json:"identity_id"`
	Email      string    `json:"email"`
	Provider   string    `json:"provider"`
}
