package testhelpers

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/workwise/backend/internal/models"
	"github.com/pageza/workwise/backend/internal/service"
	"github.com/pageza/workwise/backend/internal/storage"
	"github.com/pageza/workwise/backend/internal/types"
)

// MockAuthService is a mock implementation of service.IAuthService
type MockAuthService struct {
	mock.Mock
}

var _ service.IAuthService = (*MockAuthService)(nil)

func (m *MockAuthService) CreateAccount(ctx context.Context, email, password, displayName string) (*models.User, error) {
	args := m.Called(ctx, email, password, displayName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) SignInOAuth(ctx context.Context, provider, token string) (*models.User, error) {
	args := m.Called(ctx, provider, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*models.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) CurrentIdentity(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) UpdateDisplayProfile(ctx context.Context, id uuid.UUID, displayName, photoURL string) error {
	args := m.Called(ctx, id, displayName, photoURL)
	return args.Error(0)
}

func (m *MockAuthService) DeleteIdentity(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAuthService) IssueToken(user *models.User) (string, error) {
	args := m.Called(user)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) GenerateToken(claims *types.TokenClaims) (string, error) {
	args := m.Called(claims)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) ValidateToken(token string) (*types.TokenClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.TokenClaims), args.Error(1)
}

// MockProfileService is a mock implementation of service.IProfileService
type MockProfileService struct {
	mock.Mock
}

var _ service.IProfileService = (*MockProfileService)(nil)

func (m *MockProfileService) ProfileExists(ctx context.Context, identityID uuid.UUID) (bool, error) {
	args := m.Called(ctx, identityID)
	return args.Bool(0), args.Error(1)
}

func (m *MockProfileService) CreateProfile(ctx context.Context, identityID uuid.UUID, record *models.Profile) error {
	args := m.Called(ctx, identityID, record)
	return args.Error(0)
}

func (m *MockProfileService) GetProfile(ctx context.Context, identityID uuid.UUID) (*models.Profile, error) {
	args := m.Called(ctx, identityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

// MockPhotoStore is a mock implementation of storage.PhotoStore
type MockPhotoStore struct {
	mock.Mock
}

var _ storage.PhotoStore = (*MockPhotoStore)(nil)

func (m *MockPhotoStore) UploadPhoto(ctx context.Context, identityID uuid.UUID, photo *types.PhotoFile) (string, error) {
	args := m.Called(ctx, identityID, photo)
	return args.String(0), args.Error(1)
}

func (m *MockPhotoStore) DeletePhoto(ctx context.Context, url string) error {
	args := m.Called(ctx, url)
	return args.Error(0)
}

// MockSignupService is a mock implementation of service.ISignupService
type MockSignupService struct {
	mock.Mock
}

var _ service.ISignupService = (*MockSignupService)(nil)

func (m *MockSignupService) Submit(ctx context.Context, session types.SessionContext, form types.SignupForm) (*service.SignupResult, error) {
	args := m.Called(ctx, session, form)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SignupResult), args.Error(1)
}

// MockVerifier is a mock implementation of service.ProviderVerifier
type MockVerifier struct {
	mock.Mock
}

func (m *MockVerifier) Verify(ctx context.Context, token string) (*service.ProviderProfile, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ProviderProfile), args.Error(1)
}
