package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkshelf/inkshelf-server/internal/domain"
	apperrors "github.com/inkshelf/inkshelf-server/internal/errors"
)

func TestUserRepositoryAdd(t *testing.T) {
	s := setupTestStore(t)
	repo := NewUserRepository(s)
	ctx := context.Background()

	user := &domain.User{Username: "alice", Email: "alice@example.com", PasswordHash: "h"}
	userID, err := repo.Add(ctx, user)
	require.NoError(t, err)
	assert.NotEmpty(t, userID)
	assert.Equal(t, userID, user.ID)
	assert.False(t, user.CreatedAt.IsZero())

	retrieved, err := repo.GetByID(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "alice", retrieved.Username)
}

func TestUserRepositoryAddDuplicateEmail(t *testing.T) {
	s := setupTestStore(t)
	repo := NewUserRepository(s)
	ctx := context.Background()

	seedUser(t, s, "alice", "alice@example.com")

	_, err := repo.Add(ctx, &domain.User{Username: "bob", Email: "alice@example.com", PasswordHash: "h"})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrConflict))
}

func TestUserRepositoryAddDuplicateUsername(t *testing.T) {
	s := setupTestStore(t)
	repo := NewUserRepository(s)
	ctx := context.Background()

	seedUser(t, s, "alice", "alice@example.com")

	_, err := repo.Add(ctx, &domain.User{Username: "alice", Email: "other@example.com", PasswordHash: "h"})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrConflict))
}

func TestUserRepositoryAddInvalid(t *testing.T) {
	s := setupTestStore(t)
	repo := NewUserRepository(s)

	_, err := repo.Add(context.Background(), &domain.User{Username: "al", Email: "not-an-email", PasswordHash: "h"})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrValidation))
}

func TestUserRepositoryUpdate(t *testing.T) {
	s := setupTestStore(t)
	repo := NewUserRepository(s)
	ctx := context.Background()

	user := seedUser(t, s, "alice", "alice@example.com")

	newEmail := "alice@books.example"
	updated, err := repo.Update(ctx, user.ID, domain.UserPatch{Email: &newEmail})
	require.NoError(t, err)
	assert.Equal(t, newEmail, updated.Email)
	assert.Equal(t, "alice", updated.Username)

	byEmail, err := repo.GetByEmail(ctx, newEmail)
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	_, err = repo.GetByEmail(ctx, "alice@example.com")
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}

func TestUserRepositoryUpdateEmailConflict(t *testing.T) {
	s := setupTestStore(t)
	repo := NewUserRepository(s)
	ctx := context.Background()

	seedUser(t, s, "alice", "alice@example.com")
	bob := seedUser(t, s, "bob", "bob@example.com")

	taken := "alice@example.com"
	_, err := repo.Update(ctx, bob.ID, domain.UserPatch{Email: &taken})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrConflict))
}

func TestUserRepositoryDelete(t *testing.T) {
	s := setupTestStore(t)
	repo := NewUserRepository(s)
	ctx := context.Background()

	user := seedUser(t, s, "alice", "alice@example.com")

	deletedID, err := repo.Delete(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, deletedID)

	_, err = repo.GetByID(ctx, user.ID)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))

	_, err = repo.Delete(ctx, user.ID)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}

func TestUserRepositoryGetByUsername(t *testing.T) {
	s := setupTestStore(t)
	repo := NewUserRepository(s)
	ctx := context.Background()

	user := seedUser(t, s, "alice", "alice@example.com")

	found, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	_, err = repo.GetByUsername(ctx, "nobody")
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}
