package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/inkshelf/inkshelf-server/internal/errors"
)

func TestCollectionRepositoryCreate(t *testing.T) {
	s := setupTestStore(t)
	repo := NewCollectionRepository(s)
	ctx := context.Background()

	user := seedUser(t, s, "alice", "alice@example.com")

	collection, err := repo.Create(ctx, user.ID, "to read")
	require.NoError(t, err)
	assert.NotEmpty(t, collection.ID)
	assert.Equal(t, "to read", collection.Name)
	assert.Empty(t, collection.Books)

	// Names need not be unique; the ID is the handle.
	other, err := repo.Create(ctx, user.ID, "to read")
	require.NoError(t, err)
	assert.NotEqual(t, collection.ID, other.ID)
}

func TestCollectionRepositoryCreateEmptyName(t *testing.T) {
	s := setupTestStore(t)
	repo := NewCollectionRepository(s)

	user := seedUser(t, s, "alice", "alice@example.com")

	_, err := repo.Create(context.Background(), user.ID, "")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrValidation))
}

func TestCollectionRepositoryAddBook(t *testing.T) {
	s := setupTestStore(t)
	repo := NewCollectionRepository(s)
	ctx := context.Background()

	user := seedUser(t, s, "alice", "alice@example.com")
	book := seedBook(t, s, user.ID, "isnb-1", "Dune")
	collection, err := repo.Create(ctx, user.ID, "sci-fi")
	require.NoError(t, err)

	require.NoError(t, repo.AddBook(ctx, user.ID, collection.ID, book.ID))

	stored, err := NewUserRepository(s).GetByID(ctx, user.ID)
	require.NoError(t, err)
	got, ok := stored.CollectionByID(collection.ID)
	require.True(t, ok)
	assert.Equal(t, []string{book.ID}, got.Books)
}

func TestCollectionRepositoryAddBookTwice(t *testing.T) {
	s := setupTestStore(t)
	repo := NewCollectionRepository(s)
	ctx := context.Background()

	user := seedUser(t, s, "alice", "alice@example.com")
	book := seedBook(t, s, user.ID, "isnb-1", "Dune")
	collection, err := repo.Create(ctx, user.ID, "sci-fi")
	require.NoError(t, err)

	require.NoError(t, repo.AddBook(ctx, user.ID, collection.ID, book.ID))

	err = repo.AddBook(ctx, user.ID, collection.ID, book.ID)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrConflict))
}

func TestCollectionRepositoryAddBookNotInLibrary(t *testing.T) {
	s := setupTestStore(t)
	repo := NewCollectionRepository(s)
	ctx := context.Background()

	user := seedUser(t, s, "alice", "alice@example.com")
	collection, err := repo.Create(ctx, user.ID, "sci-fi")
	require.NoError(t, err)

	err = repo.AddBook(ctx, user.ID, collection.ID, "bk-missing")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}

func TestCollectionRepositoryRemoveBook(t *testing.T) {
	s := setupTestStore(t)
	repo := NewCollectionRepository(s)
	ctx := context.Background()

	user := seedUser(t, s, "alice", "alice@example.com")
	book := seedBook(t, s, user.ID, "isnb-1", "Dune")
	collection, err := repo.Create(ctx, user.ID, "sci-fi")
	require.NoError(t, err)
	require.NoError(t, repo.AddBook(ctx, user.ID, collection.ID, book.ID))

	require.NoError(t, repo.RemoveBook(ctx, user.ID, collection.ID, book.ID))

	// Removing membership does not delete the book itself.
	_, err = NewBookRepository(s).GetByID(ctx, user.ID, book.ID)
	require.NoError(t, err)
}

func TestCollectionRepositoryRemoveBookNotMember(t *testing.T) {
	s := setupTestStore(t)
	repo := NewCollectionRepository(s)
	ctx := context.Background()

	user := seedUser(t, s, "alice", "alice@example.com")
	book := seedBook(t, s, user.ID, "isnb-1", "Dune")
	collection, err := repo.Create(ctx, user.ID, "sci-fi")
	require.NoError(t, err)

	err = repo.RemoveBook(ctx, user.ID, collection.ID, book.ID)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}

func TestCollectionRepositoryRename(t *testing.T) {
	s := setupTestStore(t)
	repo := NewCollectionRepository(s)
	ctx := context.Background()

	user := seedUser(t, s, "alice", "alice@example.com")
	collection, err := repo.Create(ctx, user.ID, "sci-fi")
	require.NoError(t, err)

	renamed, err := repo.Rename(ctx, user.ID, collection.ID, "speculative fiction")
	require.NoError(t, err)
	assert.Equal(t, collection.ID, renamed.ID)
	assert.Equal(t, "speculative fiction", renamed.Name)
}

func TestCollectionRepositoryDelete(t *testing.T) {
	s := setupTestStore(t)
	repo := NewCollectionRepository(s)
	ctx := context.Background()

	user := seedUser(t, s, "alice", "alice@example.com")
	book := seedBook(t, s, user.ID, "isnb-1", "Dune")
	collection, err := repo.Create(ctx, user.ID, "sci-fi")
	require.NoError(t, err)
	require.NoError(t, repo.AddBook(ctx, user.ID, collection.ID, book.ID))

	require.NoError(t, repo.Delete(ctx, user.ID, collection.ID))

	err = repo.Delete(ctx, user.ID, collection.ID)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))

	// Books referenced by the deleted collection survive.
	_, err = NewBookRepository(s).GetByID(ctx, user.ID, book.ID)
	require.NoError(t, err)
}
