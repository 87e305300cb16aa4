package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/workwise/backend/config"
	"github.com/pageza/workwise/backend/internal/database"
	"github.com/pageza/workwise/backend/internal/logger"
	"github.com/pageza/workwise/backend/internal/models"
	"github.com/pageza/workwise/backend/internal/service"
)

const testPassword = "testpassword123"

type testUser struct {
	name         string
	email        string
	education    string
	phone        string
	verification string
}

// Test users with different verification statuses
var testUsers = []testUser{
	{"John Doe", "john.doe@example.com", "bachelor", "254712000001", models.VerificationVerified},
	{"Jane Smith", "jane.smith@example.com", "master", "254712000002", models.VerificationVerified},
	{"Bob Wilson", "bob.wilson@example.com", "diploma", "254712000003", models.VerificationPending},
	{"Alice Cooper", "alice.cooper@example.com", "high_school", "254712000004", models.VerificationNone},
	{"Test Unverified", "unverified@example.com", "other", "254712000005", models.VerificationNone},
}

func main() {
	log := logger.Must(config.GetEnvironment())
	defer func() { _ = log.Sync() }()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("failed to load configuration", zap.Error(err))
	}

	db, err := database.New(cfg, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	created, err := seed(context.Background(), db, log)
	if err != nil {
		log.Fatal("seeding failed", zap.Error(err))
	}

	log.Info("test users ready",
		zap.Int("created", created),
		zap.Int("total", len(testUsers)),
		zap.String("password", testPassword),
	)
}

// seed creates an account and a complete profile for every test user that
// does not exist yet. It returns how many were created.
func seed(ctx context.Context, db *gorm.DB, log *zap.Logger) (int, error) {
	auth := service.NewAuthService(db, "seed", log)
	profiles := service.NewProfileService(db)
	dob := time.Now().AddDate(-30, 0, 0).Truncate(24 * time.Hour)

	created := 0
	for _, u := range testUsers {
		identity, err := auth.CreateAccount(ctx, u.email, testPassword, u.name)
		if errors.Is(err, service.ErrEmailInUse) {
			log.Info("user already exists, skipping", zap.String("email", u.email))
			continue
		}
		if err != nil {
			return created, fmt.Errorf("failed to create user %s: %w", u.email, err)
		}

		profile := &models.Profile{
			Name:               u.name,
			Email:              identity.Email,
			DateOfBirth:        dob,
			EducationLevel:     u.education,
			Summary:            fmt.Sprintf("%s is a test worker profile for local development. Available for short jobs.", u.name),
			Phone:              u.phone,
			Provider:           identity.Provider,
			TermsAccepted:      true,
			VerificationStatus: u.verification,
		}
		if err := profiles.CreateProfile(ctx, identity.ID, profile); err != nil {
			return created, fmt.Errorf("failed to create profile for %s: %w", u.email, err)
		}

		log.Info("created test user",
			zap.String("email", u.email),
			zap.String("verification", u.verification),
		)
		created++
	}
	return created, nil
}
