package db

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finchat/internal/db/migrations"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	migrations.QuietMode = true
	store, err := NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestUserLookupByUsernameOrEmail(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	created, err := store.CreateUser(ctx, CreateUserParams{
		ID:           "u1",
		Username:     "taro",
		Email:        "taro@example.com",
		PasswordHash: "hash",
	})
	require.NoError(t, err)
	assert.Equal(t, "taro", created.Username)
	assert.False(t, created.CreatedAt.IsZero())

	byName, err := store.GetUserByLogin(ctx, "taro")
	require.NoError(t, err)
	assert.Equal(t, "u1", byName.ID)

	byEmail, err := store.GetUserByLogin(ctx, "taro@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", byEmail.ID)

	_, err = store.GetUserByLogin(ctx, "nobody")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestDuplicateUsernameRejected(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	_, err := store.CreateUser(ctx, CreateUserParams{
		ID: "u1", Username: "taro", Email: "taro@example.com", PasswordHash: "hash",
	})
	require.NoError(t, err)

	_, err = store.CreateUser(ctx, CreateUserParams{
		ID: "u2", Username: "taro", Email: "other@example.com", PasswordHash: "hash",
	})
	assert.Error(t, err)
}

func TestPromptCRUD(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	created, err := store.CreatePrompt(ctx, CreatePromptParams{
		ID: "p1", Name: "advisor", Description: "base persona", Content: "You are an advisor.",
	})
	require.NoError(t, err)
	assert.Equal(t, "advisor", created.Name)

	// Empty fields keep their current value on update.
	updated, err := store.UpdatePrompt(ctx, UpdatePromptParams{ID: "p1", Content: "Updated."})
	require.NoError(t, err)
	assert.Equal(t, "advisor", updated.Name)
	assert.Equal(t, "base persona", updated.Description)
	assert.Equal(t, "Updated.", updated.Content)

	list, err := store.ListPrompts(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, store.DeletePrompt(ctx, "p1"))
	assert.ErrorIs(t, store.DeletePrompt(ctx, "p1"), sql.ErrNoRows)

	_, err = store.GetPrompt(ctx, "p1")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestSelectPromptReplacesPrevious(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	_, err := store.CreateUser(ctx, CreateUserParams{
		ID: "u1", Username: "taro", Email: "taro@example.com", PasswordHash: "hash",
	})
	require.NoError(t, err)
	for _, id := range []string{"p1", "p2"} {
		_, err := store.CreatePrompt(ctx, CreatePromptParams{ID: id, Name: id, Content: "text " + id})
		require.NoError(t, err)
	}

	_, err = store.GetSelectedPrompt(ctx, "u1")
	assert.ErrorIs(t, err, sql.ErrNoRows)

	require.NoError(t, store.SelectPrompt(ctx, "u1", "p1"))
	require.NoError(t, store.SelectPrompt(ctx, "u1", "p2"))

	selected, err := store.GetSelectedPrompt(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "p2", selected.ID)
}

func TestRefreshTokenLifecycle(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	_, err := store.CreateUser(ctx, CreateUserParams{
		ID: "u1", Username: "taro", Email: "taro@example.com", PasswordHash: "hash",
	})
	require.NoError(t, err)

	require.NoError(t, store.SaveRefreshToken(ctx, "live", "u1", time.Now().Add(time.Hour)))
	require.NoError(t, store.SaveRefreshToken(ctx, "stale", "u1", time.Now().Add(-time.Hour)))

	userID, err := store.GetRefreshToken(ctx, "live")
	require.NoError(t, err)
	assert.Equal(t, "u1", userID)

	// Expired tokens are invisible to lookup even before pruning.
	_, err = store.GetRefreshToken(ctx, "stale")
	assert.ErrorIs(t, err, sql.ErrNoRows)

	pruned, err := store.PruneExpiredTokens(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, pruned)

	require.NoError(t, store.DeleteRefreshToken(ctx, "live"))
	_, err = store.GetRefreshToken(ctx, "live")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}
