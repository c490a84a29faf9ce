package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/inkshelf/inkshelf-server/internal/domain"
	"github.com/inkshelf/inkshelf-server/internal/store"
)

func setupTestStore(t *testing.T) *store.Store {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "inkshelf-repo-test-*")
	require.NoError(t, err)

	s, err := store.New(filepath.Join(tmpDir, "test.db"), nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = s.Close()
		_ = os.RemoveAll(tmpDir)
	})

	return s
}

func seedUser(t *testing.T, s *store.Store, username, email string) *domain.User {
	t.Helper()

	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: "$argon2id$test",
	}
	userID, err := NewUserRepository(s).Add(context.Background(), user)
	require.NoError(t, err)
	require.NotEmpty(t, userID)

	return user
}

func seedBook(t *testing.T, s *store.Store, userID, isnb, title string) *domain.Book {
	t.Helper()

	book, err := NewBookRepository(s).Add(context.Background(), userID, domain.Book{
		ISNB:          isnb,
		StartReadDate: time.Now(),
		Description:   domain.Description{Title: title},
		Rating:        50,
	})
	require.NoError(t, err)

	return book
}
