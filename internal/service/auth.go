package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/pageza/workwise/backend/internal/models"
	"github.com/pageza/workwise/backend/internal/types"
)

const (
	minPasswordLength = 6
	defaultTokenTTL   = 24 * time.Hour
)

// AuthService owns identities: password accounts, social sign-in and session tokens
type AuthService struct {
	db        *gorm.DB
	jwtSecret string
	tokenTTL  time.Duration
	verifiers map[string]ProviderVerifier
	log       *zap.Logger
}

var _ IAuthService = (*AuthService)(nil)

func NewAuthService(db *gorm.DB, jwtSecret string, log *zap.Logger) *AuthService {
	if log == nil {
		log = zap.NewNop()
	}
	return &AuthService{
		db:        db,
		jwtSecret: jwtSecret,
		tokenTTL:  defaultTokenTTL,
		verifiers: map[string]ProviderVerifier{},
		log:       log,
	}
}

// WithTokenTTL overrides the session lifetime
func (s *AuthService) WithTokenTTL(ttl time.Duration) *AuthService {
	if ttl > 0 {
		s.tokenTTL = ttl
	}
	return s
}

// RegisterProvider enables social sign-in through provider.
// Providers without a registered verifier are rejected with ErrProviderDisabled.
func (s *AuthService) RegisterProvider(provider string, verifier ProviderVerifier) {
	s.verifiers[provider] = verifier
}

// CreateAccount registers an email/password identity
func (s *AuthService) CreateAccount(ctx context.Context, email, password, displayName string) (*models.User, error) {
	email = normalizeEmail(email)
	if utf8.RuneCountInString(password) < minPasswordLength {
		return nil, ErrWeakPassword
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if count > 0 {
		return nil, ErrEmailInUse
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		Email:        email,
		DisplayName:  strings.TrimSpace(displayName),
		Provider:     models.ProviderPassword,
		PasswordHash: string(hashedPassword),
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailInUse
		}
		return nil, fmt.Errorf("failed to create identity: %w", err)
	}

	s.log.Info("identity created", zap.String("identity_id", user.ID.String()), zap.String("provider", user.Provider))
	return &user, nil
}

// SignInOAuth verifies a provider credential and returns the matching identity,
// creating it on first sign-in
func (s *AuthService) SignInOAuth(ctx context.Context, provider, token string) (*models.User, error) {
	verifier, ok := s.verifiers[provider]
	if !ok {
		return nil, ErrProviderDisabled
	}

	profile, err := verifier.Verify(ctx, token)
	if err != nil {
		s.log.Warn("provider credential rejected", zap.String("provider", provider), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrProviderToken, err)
	}

	var user models.User
	err = s.db.WithContext(ctx).
		Where("provider = ? AND provider_user_id = ?", provider, profile.Subject).
		First(&user).Error
	switch {
	case err == nil:
		// Backfill the provider photo when the identity has none
		if profile.PhotoURL != "" && user.PhotoURL == "" {
			user.PhotoURL = profile.PhotoURL
			if err := s.db.WithContext(ctx).Model(&user).Update("photo_url", user.PhotoURL).Error; err != nil {
				s.log.Warn("failed to refresh provider photo", zap.Error(err))
			}
		}
		return &user, nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, fmt.Errorf("failed to look up identity: %w", err)
	}

	email := normalizeEmail(profile.Email)
	if email == "" {
		return nil, fmt.Errorf("%w: provider returned no email", ErrProviderToken)
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if count > 0 {
		return nil, ErrEmailInUse
	}

	subject := profile.Subject
	user = models.User{
		Email:          email,
		DisplayName:    profile.Name,
		PhotoURL:       profile.PhotoURL,
		Provider:       provider,
		ProviderUserID: &subject,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailInUse
		}
		return nil, fmt.Errorf("failed to create identity: %w", err)
	}

	s.log.Info("identity created", zap.String("identity_id", user.ID.String()), zap.String("provider", provider))
	return &user, nil
}

// Login checks an email/password pair
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).
		Where("email = ? AND provider = ?", normalizeEmail(email), models.ProviderPassword).
		First(&user).Error; err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return &user, nil
}

// CurrentIdentity loads an identity by id
func (s *AuthService) CurrentIdentity(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIdentityNotFound
		}
		return nil, err
	}
	return &user, nil
}

// UpdateDisplayProfile sets the display name and photo shown for the identity
func (s *AuthService) UpdateDisplayProfile(ctx context.Context, id uuid.UUID, displayName, photoURL string) error {
	result := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"display_name": displayName,
		"photo_url":    photoURL,
	})
	if result.Error != nil {
		return fmt.Errorf("failed to update display profile: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrIdentityNotFound
	}
	return nil
}

// DeleteIdentity removes the identity permanently
func (s *AuthService) DeleteIdentity(ctx context.Context, id uuid.UUID) error {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.User{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete identity: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrIdentityNotFound
	}
	return nil
}

// IssueToken signs a session token for user
func (s *AuthService) IssueToken(user *models.User) (string, error) {
	return s.GenerateToken(&types.TokenClaims{
		IdentityID: user.ID,
		Email:      user.Email,
		Provider:   user.Provider,
	})
}

// GenerateToken signs claims, filling in the standard fields
func (s *AuthService) GenerateToken(claims *types.TokenClaims) (string, error) {
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Subject:   claims.IdentityID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// ValidateToken parses a session token
func (s *AuthService) ValidateToken(tokenString string) (*types.TokenClaims, error) {
	claims := &types.TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}
	if !token.Valid || claims.IdentityID == uuid.Nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
