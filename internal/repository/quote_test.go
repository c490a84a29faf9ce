package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/inkshelf/inkshelf-server/internal/errors"
)

func TestQuoteRepositoryAddToBook(t *testing.T) {
	s := setupTestStore(t)
	repo := NewQuoteRepository(s)
	ctx := context.Background()

	user := seedUser(t, s, "alice", "alice@example.com")
	book := seedBook(t, s, user.ID, "isnb-1", "Dune")

	quote, err := repo.AddToBook(ctx, user.ID, book.ID, "Fear is the mind-killer.")
	require.NoError(t, err)
	assert.NotEmpty(t, quote.ID)
	assert.Equal(t, book.ID, quote.BookID)
	assert.False(t, quote.CreatedAt.IsZero())
}

func TestQuoteRepositoryAddToMissingBook(t *testing.T) {
	s := setupTestStore(t)
	repo := NewQuoteRepository(s)

	user := seedUser(t, s, "alice", "alice@example.com")

	_, err := repo.AddToBook(context.Background(), user.ID, "bk-missing", "text")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}

func TestQuoteRepositoryAddEmptyText(t *testing.T) {
	s := setupTestStore(t)
	repo := NewQuoteRepository(s)

	user := seedUser(t, s, "alice", "alice@example.com")
	book := seedBook(t, s, user.ID, "isnb-1", "Dune")

	_, err := repo.AddToBook(context.Background(), user.ID, book.ID, "")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrValidation))
}

func TestQuoteRepositoryListForBook(t *testing.T) {
	s := setupTestStore(t)
	repo := NewQuoteRepository(s)
	ctx := context.Background()

	user := seedUser(t, s, "alice", "alice@example.com")
	bookA := seedBook(t, s, user.ID, "isnb-1", "Dune")
	bookB := seedBook(t, s, user.ID, "isnb-2", "Hyperion")

	for _, text := range []string{"first", "second", "third"} {
		_, err := repo.AddToBook(ctx, user.ID, bookA.ID, text)
		require.NoError(t, err)
	}
	_, err := repo.AddToBook(ctx, user.ID, bookB.ID, "other")
	require.NoError(t, err)

	quotes, err := repo.ListForBook(ctx, user.ID, bookA.ID)
	require.NoError(t, err)
	require.Len(t, quotes, 3)
	assert.Equal(t, "first", quotes[0].Text)
	assert.Equal(t, "second", quotes[1].Text)
	assert.Equal(t, "third", quotes[2].Text)

	quotes, err = repo.ListForBook(ctx, user.ID, bookB.ID)
	require.NoError(t, err)
	require.Len(t, quotes, 1)
	assert.Equal(t, "other", quotes[0].Text)
}

func TestQuoteRepositoryListForBookEmpty(t *testing.T) {
	s := setupTestStore(t)
	repo := NewQuoteRepository(s)
	ctx := context.Background()

	user := seedUser(t, s, "alice", "alice@example.com")
	book := seedBook(t, s, user.ID, "isnb-1", "Dune")

	quotes, err := repo.ListForBook(ctx, user.ID, book.ID)
	require.NoError(t, err)
	assert.NotNil(t, quotes)
	assert.Empty(t, quotes)
}

func TestQuoteRepositoryUpdate(t *testing.T) {
	s := setupTestStore(t)
	repo := NewQuoteRepository(s)
	ctx := context.Background()

	user := seedUser(t, s, "alice", "alice@example.com")
	book := seedBook(t, s, user.ID, "isnb-1", "Dune")

	quote, err := repo.AddToBook(ctx, user.ID, book.ID, "draft")
	require.NoError(t, err)

	updated, err := repo.Update(ctx, user.ID, quote.ID, "Fear is the mind-killer.")
	require.NoError(t, err)
	assert.Equal(t, quote.ID, updated.ID)
	assert.Equal(t, "Fear is the mind-killer.", updated.Text)
	assert.Equal(t, quote.CreatedAt.Unix(), updated.CreatedAt.Unix())
}

func TestQuoteRepositoryRemove(t *testing.T) {
	s := setupTestStore(t)
	repo := NewQuoteRepository(s)
	ctx := context.Background()

	user := seedUser(t, s, "alice", "alice@example.com")
	book := seedBook(t, s, user.ID, "isnb-1", "Dune")

	quote, err := repo.AddToBook(ctx, user.ID, book.ID, "gone soon")
	require.NoError(t, err)

	require.NoError(t, repo.Remove(ctx, user.ID, quote.ID))

	err = repo.Remove(ctx, user.ID, quote.ID)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}
