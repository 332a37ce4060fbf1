package repo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/itinerary-api/internal/domain"
	"github.com/pkordes/itinerary-api/internal/repo"
	"github.com/pkordes/itinerary-api/testutil"
)

func TestTravellerRepo_Create(t *testing.T) {
	r := repo.NewTravellerRepo(testutil.NewTx(t))
	email := testutil.UniqueEmail()

	got, err := r.Create(context.Background(), email, "Alice")

	require.NoError(t, err)
	assert.NotZero(t, got.ID)
	assert.Equal(t, email, got.Email)
	assert.Equal(t, "Alice", got.Name)
}

func TestTravellerRepo_Create_DuplicateEmail(t *testing.T) {
	r := repo.NewTravellerRepo(testutil.NewTx(t))
	ctx := context.Background()
	email := testutil.UniqueEmail()

	_, err := r.Create(ctx, email, "Alice")
	require.NoError(t, err)

	_, err = r.Create(ctx, email, "Someone Else")

	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestTravellerRepo_GetByEmail(t *testing.T) {
	r := repo.NewTravellerRepo(testutil.NewTx(t))
	ctx := context.Background()

	created, err := r.Create(ctx, testutil.UniqueEmail(), "Bob")
	require.NoError(t, err)

	got, err := r.GetByEmail(ctx, created.Email)

	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestTravellerRepo_GetByEmail_NotFound(t *testing.T) {
	r := repo.NewTravellerRepo(testutil.NewTx(t))

	_, err := r.GetByEmail(context.Background(), testutil.UniqueEmail())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
