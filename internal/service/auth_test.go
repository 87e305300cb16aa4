package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pageza/workwise/backend/internal/models"
	"github.com/pageza/workwise/backend/internal/service"
	"github.com/pageza/workwise/backend/internal/testhelpers"
	"github.com/pageza/workwise/backend/internal/types"
)

const testSecret = "test-secret-test-secret-test-secret"

func setupAuthTest(t *testing.T) *service.AuthService {
	t.Helper()
	db := testhelpers.SetupTestDatabase(t)
	return service.NewAuthService(db, testSecret, nil)
}

func TestCreateAccount(t *testing.T) {
	svc := setupAuthTest(t)
	ctx := context.Background()

	user, err := svc.CreateAccount(ctx, "  Jane@Example.com ", "secret123", "Jane")
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.Equal(t, "jane@example.com", user.Email)
	assert.Equal(t, models.ProviderPassword, user.Provider)
	assert.NotEqual(t, "secret123", user.PasswordHash)

	_, err = svc.CreateAccount(ctx, "jane@example.com", "another1", "Jane Again")
	assert.ErrorIs(t, err, service.ErrEmailInUse)

	_, err = svc.CreateAccount(ctx, "short@example.com", "12345", "Short")
	assert.ErrorIs(t, err, service.ErrWeakPassword)

	// Five characters, seven bytes
	_, err = svc.CreateAccount(ctx, "accents@example.com", "pässé", "Accents")
	assert.ErrorIs(t, err, service.ErrWeakPassword)

	_, err = svc.CreateAccount(ctx, "accents@example.com", "pässéd", "Accents")
	assert.NoError(t, err)
}

func TestLogin(t *testing.T) {
	svc := setupAuthTest(t)
	ctx := context.Background()

	created, err := svc.CreateAccount(ctx, "login@example.com", "secret123", "Login")
	require.NoError(t, err)

	user, err := svc.Login(ctx, "LOGIN@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)

	_, err = svc.Login(ctx, "login@example.com", "wrong-password")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody@example.com", "secret123")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestCurrentIdentityAndDelete(t *testing.T) {
	svc := setupAuthTest(t)
	ctx := context.Background()

	user, err := svc.CreateAccount(ctx, "gone@example.com", "secret123", "Gone")
	require.NoError(t, err)

	found, err := svc.CurrentIdentity(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, found.Email)

	require.NoError(t, svc.DeleteIdentity(ctx, user.ID))

	_, err = svc.CurrentIdentity(ctx, user.ID)
	assert.ErrorIs(t, err, service.ErrIdentityNotFound)
	assert.ErrorIs(t, svc.DeleteIdentity(ctx, user.ID), service.ErrIdentityNotFound)

	// The email is free again after a hard delete
	_, err = svc.CreateAccount(ctx, "gone@example.com", "secret123", "Back")
	assert.NoError(t, err)
}

func TestUpdateDisplayProfile(t *testing.T) {
	svc := setupAuthTest(t)
	ctx := context.Background()

	user, err := svc.CreateAccount(ctx, "display@example.com", "secret123", "Before")
	require.NoError(t, err)

	require.NoError(t, svc.UpdateDisplayProfile(ctx, user.ID, "After", "https://cdn.example.com/p.png"))

	found, err := svc.CurrentIdentity(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "After", found.DisplayName)
	assert.Equal(t, "https://cdn.example.com/p.png", found.PhotoURL)

	err = svc.UpdateDisplayProfile(ctx, uuid.New(), "Nobody", "")
	assert.ErrorIs(t, err, service.ErrIdentityNotFound)
}

func TestSignInOAuth(t *testing.T) {
	svc := setupAuthTest(t)
	ctx := context.Background()

	verifier := new(testhelpers.MockVerifier)
	verifier.On("Verify", mock.Anything, "good-token").Return(&service.ProviderProfile{
		Subject:  "google-123",
		Email:    "oauth@example.com",
		Name:     "OAuth User",
		PhotoURL: "https://lh3.googleusercontent.com/photo.jpg",
	}, nil)
	verifier.On("Verify", mock.Anything, "bad-token").Return(nil, errors.New("expired"))
	svc.RegisterProvider(models.ProviderGoogle, verifier)

	first, err := svc.SignInOAuth(ctx, models.ProviderGoogle, "good-token")
	require.NoError(t, err)
	assert.Equal(t, models.ProviderGoogle, first.Provider)
	assert.Equal(t, "https://lh3.googleusercontent.com/photo.jpg", first.PhotoURL)
	assert.True(t, first.IsOAuth())

	// Second sign-in resolves to the same identity
	second, err := svc.SignInOAuth(ctx, models.ProviderGoogle, "good-token")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	_, err = svc.SignInOAuth(ctx, models.ProviderGoogle, "bad-token")
	assert.ErrorIs(t, err, service.ErrProviderToken)

	_, err = svc.SignInOAuth(ctx, models.ProviderFacebook, "any")
	assert.ErrorIs(t, err, service.ErrProviderDisabled)

	verifier.AssertExpectations(t)
}

func TestSignInOAuthEmailTakenByPasswordAccount(t *testing.T) {
	svc := setupAuthTest(t)
	ctx := context.Background()

	_, err := svc.CreateAccount(ctx, "taken@example.com", "secret123", "Taken")
	require.NoError(t, err)

	verifier := new(testhelpers.MockVerifier)
	verifier.On("Verify", mock.Anything, "token").Return(&service.ProviderProfile{
		Subject: "fb-1",
		Email:   "taken@example.com",
	}, nil)
	svc.RegisterProvider(models.ProviderFacebook, verifier)

	_, err = svc.SignInOAuth(ctx, models.ProviderFacebook, "token")
	assert.ErrorIs(t, err, service.ErrEmailInUse)
}

func TestTokens(t *testing.T) {
	svc := setupAuthTest(t)
	user := &models.User{ID: uuid.New(), Email: "token@example.com", Provider: models.ProviderPassword}

	token, err := svc.IssueToken(user)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.IdentityID)
	assert.Equal(t, user.Email, claims.Email)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt.Time, time.Minute)

	_, err = svc.ValidateToken(token + "x")
	assert.ErrorIs(t, err, service.ErrInvalidToken)

	other := service.NewAuthService(nil, "another-secret", nil)
	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, service.ErrInvalidToken)

	expired := service.NewAuthService(nil, testSecret, nil).WithTokenTTL(time.Nanosecond)
	token, err = expired.GenerateToken(&types.TokenClaims{IdentityID: user.ID})
	require.NoError(t, err)
	time.Sleep(time.Second)
	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, service.ErrTokenExpired)
}
