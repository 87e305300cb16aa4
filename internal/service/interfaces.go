package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/pageza/workwise/backend/internal/models"
	"github.com/pageza/workwise/backend/internal/types"
)

// IAuthService defines the interface for identity operations
type IAuthService interface {
	CreateAccount(ctx context.Context, email, password, displayName string) (*models.User, error)
	SignInOAuth(ctx context.Context, provider, token string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
	CurrentIdentity(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpdateDisplayProfile(ctx context.Context, id uuid.UUID, displayName, photoURL string) error
	DeleteIdentity(ctx context.Context, id uuid.UUID) error
	IssueToken(user *models.User) (string, error)
	GenerateToken(claims *types.TokenClaims) (string, error)
	ValidateToken(token string) (*types.TokenClaims, error)
}

// IProfileService defines the interface for profile record operations
type IProfileService interface {
	ProfileExists(ctx context.Context, identityID uuid.UUID) (bool, error)
	CreateProfile(ctx context.Context, identityID uuid.UUID, record *models.Profile) error
	GetProfile(ctx context.Context, identityID uuid.UUID) (*models.Profile, error)
}

// ISignupService runs a profile submission end to end
type ISignupService interface {
	Submit(ctx context.Context, session types.SessionContext, form types.SignupForm) (*SignupResult, error)
}

// ProviderVerifier checks a credential issued by a social sign-in provider
type ProviderVerifier interface {
	Verify(ctx context.Context, token string) (*ProviderProfile, error)
}
