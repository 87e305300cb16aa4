package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pageza/workwise/backend/internal/models"
	"github.com/pageza/workwise/backend/internal/testhelpers"
)

func TestSeed(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	ctx := context.Background()

	created, err := seed(ctx, db, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, len(testUsers), created)

	var profiles []models.Profile
	require.NoError(t, db.Find(&profiles).Error)
	assert.Len(t, profiles, len(testUsers))
	for _, p := range profiles {
		assert.True(t, models.ValidEducationLevel(p.EducationLevel), p.EducationLevel)
		assert.GreaterOrEqual(t, len(p.Summary), 50)
	}

	// Running again skips existing users
	created, err = seed(ctx, db, zap.NewNop())
	require.NoError(t, err)
	assert.Zero(t, created)
}
