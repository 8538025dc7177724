package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/efisher/refkey/internal/domain/port/driven"
)

func TestSettingsRepo_GetMissing(t *testing.T) {
	repo := NewSettingsRepo(setupTestDB(t))

	_, err := repo.Get(context.Background(), "email_template")

	assert.ErrorIs(t, err, driven.ErrSettingNotFound)
}

func TestSettingsRepo_SetGet(t *testing.T) {
	repo := NewSettingsRepo(setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "email_template", "Key: {token}"))

	got, err := repo.Get(ctx, "email_template")
	require.NoError(t, err)
	assert.Equal(t, "Key: {token}", got)
}

func TestSettingsRepo_SetOverwrites(t *testing.T) {
	repo := NewSettingsRepo(setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "email_template", "first"))
	require.NoError(t, repo.Set(ctx, "email_template", "second"))

	got, err := repo.Get(ctx, "email_template")
	require.NoError(t, err)
	assert.Equal(t, "second", got)
}

func TestSettingsRepo_Delete(t *testing.T) {
	repo := NewSettingsRepo(setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "email_template", "custom"))
	require.NoError(t, repo.Delete(ctx, "email_template"))

	_, err := repo.Get(ctx, "email_template")
	assert.ErrorIs(t, err, driven.ErrSettingNotFound)

	// Deleting again is a no-op, not an error.
	assert.NoError(t, repo.Delete(ctx, "email_template"))
}
