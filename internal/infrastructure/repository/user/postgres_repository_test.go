package user_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"promptkeep/services/message-api/internal/infrastructure/repository/testutil"
	repo "promptkeep/services/message-api/internal/infrastructure/repository/user"
)

func strPtr(s string) *string { return &s }

func TestEnsureExistsIsIdempotent(t *testing.T) {
	r := repo.NewPostgresRepository(testutil.OpenDB(t))
	ctx := context.Background()

	u, err := r.EnsureExists(ctx, "sub-123", strPtr("a@example.com"))
	require.NoError(t, err)
	require.Equal(t, "sub-123", u.ID)
	require.NotNil(t, u.Email)

	again, err := r.EnsureExists(ctx, "sub-123", strPtr("a@example.com"))
	require.NoError(t, err)
	require.Equal(t, u.ID, again.ID)
	require.True(t, again.CreatedAt.Equal(u.CreatedAt), "second call must not recreate the row")
}

func TestEnsureExistsBackfillsEmail(t *testing.T) {
	r := repo.NewPostgresRepository(testutil.OpenDB(t))
	ctx := context.Background()

	u, err := r.EnsureExists(ctx, "sub-456", nil)
	require.NoError(t, err)
	require.Nil(t, u.Email)

	u, err = r.EnsureExists(ctx, "sub-456", strPtr("late@example.com"))
	require.NoError(t, err)
	require.NotNil(t, u.Email)
	require.Equal(t, "late@example.com", *u.Email)
}
