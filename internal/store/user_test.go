package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkshelf/inkshelf-server/internal/domain"
)

func setupTestStore(t *testing.T) (*Store, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "inkshelf-test-*")
	require.NoError(t, err)

	dbPath := filepath.Join(tmpDir, "test.db")
	s, err := New(dbPath, nil)
	require.NoError(t, err)

	cleanup := func() {
		_ = s.Close()
		_ = os.RemoveAll(tmpDir)
	}

	return s, cleanup
}

func testUser(id, username, email string) *domain.User {
	return &domain.User{
		ID:           id,
		Username:     username,
		Email:        email,
		PasswordHash: "$argon2id$test",
		CreatedAt:    time.Now(),
	}
}

func TestCreateUser(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	user := testUser("usr-001", "alice", "alice@example.com")
	require.NoError(t, s.CreateUser(ctx, user))
	assert.Equal(t, uint64(1), user.Version)

	retrieved, err := s.GetUser(ctx, "usr-001")
	require.NoError(t, err)
	assert.Equal(t, "alice", retrieved.Username)
	assert.Equal(t, "alice@example.com", retrieved.Email)
	assert.Equal(t, uint64(1), retrieved.Version)
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	require.NoError(t, s.CreateUser(ctx, testUser("usr-001", "alice", "alice@example.com")))

	err := s.CreateUser(ctx, testUser("usr-002", "bob", "Alice@Example.com"))
	assert.ErrorIs(t, err, ErrEmailExists)

	// Exactly one user stored.
	_, err = s.GetUser(ctx, "usr-002")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestCreateUser_DuplicateUsername(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	require.NoError(t, s.CreateUser(ctx, testUser("usr-001", "alice", "alice@example.com")))

	err := s.CreateUser(ctx, testUser("usr-002", "Alice", "other@example.com"))
	assert.ErrorIs(t, err, ErrUsernameExists)
}

func TestGetUser_NotFound(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	_, err := s.GetUser(context.Background(), "usr-missing")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestGetUserByEmail(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	require.NoError(t, s.CreateUser(ctx, testUser("usr-001", "alice", "alice@example.com")))

	// Lookups are case-insensitive.
	user, err := s.GetUserByEmail(ctx, "ALICE@example.com")
	require.NoError(t, err)
	assert.Equal(t, "usr-001", user.ID)

	_, err = s.GetUserByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestGetUserByUsername(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	require.NoError(t, s.CreateUser(ctx, testUser("usr-001", "alice", "alice@example.com")))

	user, err := s.GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "usr-001", user.ID)

	_, err = s.GetUserByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestSaveUser(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	user := testUser("usr-001", "alice", "alice@example.com")
	require.NoError(t, s.CreateUser(ctx, user))

	user.Books = append(user.Books, domain.Book{ID: "bk-1", ISNB: "123"})
	require.NoError(t, s.SaveUser(ctx, user))
	assert.Equal(t, uint64(2), user.Version)

	retrieved, err := s.GetUser(ctx, "usr-001")
	require.NoError(t, err)
	require.Len(t, retrieved.Books, 1)
	assert.Equal(t, "123", retrieved.Books[0].ISNB)
	assert.Equal(t, uint64(2), retrieved.Version)
}

func TestSaveUser_VersionConflict(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	user := testUser("usr-001", "alice", "alice@example.com")
	require.NoError(t, s.CreateUser(ctx, user))

	// Two copies loaded at the same version.
	copy1, err := s.GetUser(ctx, "usr-001")
	require.NoError(t, err)
	copy2, err := s.GetUser(ctx, "usr-001")
	require.NoError(t, err)

	copy1.Books = append(copy1.Books, domain.Book{ID: "bk-1", ISNB: "111"})
	require.NoError(t, s.SaveUser(ctx, copy1))

	// The second save is against a stale version and must not clobber the first.
	copy2.Books = append(copy2.Books, domain.Book{ID: "bk-2", ISNB: "222"})
	err = s.SaveUser(ctx, copy2)
	assert.ErrorIs(t, err, ErrVersionConflict)

	retrieved, err := s.GetUser(ctx, "usr-001")
	require.NoError(t, err)
	require.Len(t, retrieved.Books, 1)
	assert.Equal(t, "111", retrieved.Books[0].ISNB)
}

func TestSaveUser_NotFound(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	user := testUser("usr-missing", "ghost", "ghost@example.com")
	err := s.SaveUser(context.Background(), user)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestSaveUser_EmailChangeUpdatesIndex(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	user := testUser("usr-001", "alice", "alice@example.com")
	require.NoError(t, s.CreateUser(ctx, user))

	user.Email = "new@example.com"
	require.NoError(t, s.SaveUser(ctx, user))

	found, err := s.GetUserByEmail(ctx, "new@example.com")
	require.NoError(t, err)
	assert.Equal(t, "usr-001", found.ID)

	_, err = s.GetUserByEmail(ctx, "alice@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestSaveUser_EmailChangeConflict(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	require.NoError(t, s.CreateUser(ctx, testUser("usr-001", "alice", "alice@example.com")))
	bob := testUser("usr-002", "bob", "bob@example.com")
	require.NoError(t, s.CreateUser(ctx, bob))

	bob.Email = "alice@example.com"
	err := s.SaveUser(ctx, bob)
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestDeleteUser(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	require.NoError(t, s.CreateUser(ctx, testUser("usr-001", "alice", "alice@example.com")))
	require.NoError(t, s.DeleteUser(ctx, "usr-001"))

	_, err := s.GetUser(ctx, "usr-001")
	assert.ErrorIs(t, err, ErrUserNotFound)

	// Index keys are cleaned up: the email and username are free again.
	require.NoError(t, s.CreateUser(ctx, testUser("usr-002", "alice", "alice@example.com")))
}

func TestDeleteUser_NotFound(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	err := s.DeleteUser(context.Background(), "usr-missing")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestStore_CancelledContext(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.GetUser(ctx, "usr-001")
	assert.ErrorIs(t, err, context.Canceled)

	err = s.CreateUser(ctx, testUser("usr-001", "alice", "alice@example.com"))
	assert.ErrorIs(t, err, context.Canceled)
}
