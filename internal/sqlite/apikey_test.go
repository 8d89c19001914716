package sqlite

import (
	"context"
	"testing"

	"github.com/rpggio/clipdeck/internal/repository"
	"github.com/stretchr/testify/require"
)

func TestAPIKeyRepository_Resolve(t *testing.T) {
	db := NewTestDB(t)
	repo := NewAPIKeyRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Add(ctx, "secret", "user1", "dev key"))

	userID, err := repo.ResolveUser(ctx, "secret")
	require.NoError(t, err)
	require.Equal(t, "user1", userID)

	_, err = repo.ResolveUser(ctx, "wrong")
	require.ErrorIs(t, err, repository.ErrNotFound)

	var stored string
	require.NoError(t, db.QueryRow(`SELECT key_hash FROM api_keys`).Scan(&stored))
	require.NotEqual(t, "secret", stored)
	require.Equal(t, HashToken("secret"), stored)
}
