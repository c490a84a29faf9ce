package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v4"

	"github.com/inkshelf/inkshelf-server/internal/domain"
	apperrors "github.com/inkshelf/inkshelf-server/internal/errors"
)

const (
	userPrefix           = "user:"
	userByEmailPrefix    = "idx:users:email:"    // For login and uniqueness checks
	userByUsernamePrefix = "idx:users:username:" // For token subject resolution
)

var (
	// ErrUserNotFound is returned when a user cannot be found by ID, email, or username.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserExists is returned when attempting to create a user with an existing ID.
	ErrUserExists = errors.New("user already exists")
	// ErrEmailExists is returned when attempting to take an email that's already in use.
	ErrEmailExists = errors.New("email already in use")
	// ErrUsernameExists is returned when attempting to take a username that's already in use.
	ErrUsernameExists = errors.New("username already in use")
	// ErrVersionConflict is returned when a save loses the race against a
	// concurrent save of the same aggregate. The caller's copy is stale;
	// nothing was written.
	ErrVersionConflict = errors.New("aggregate version conflict")
)

// CreateUser inserts a new user aggregate.
// Fails if the ID, email, or username is already taken. On success the
// aggregate's version is stamped to 1.
func (s *Store) CreateUser(ctx context.Context, user *domain.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key := []byte(userPrefix + user.ID)
	emailKey := []byte(userByEmailPrefix + normalizeEmail(user.Email))
	usernameKey := []byte(userByUsernamePrefix + normalizeUsername(user.Username))

	user.Version = 1

	err := s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(key); err == nil {
			return ErrUserExists
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("check user exists: %w", err)
		}

		if _, err := txn.Get(emailKey); err == nil {
			return ErrEmailExists
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("check email exists: %w", err)
		}

		if _, err := txn.Get(usernameKey); err == nil {
			return ErrUsernameExists
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("check username exists: %w", err)
		}

		data, err := json.Marshal(user)
		if err != nil {
			return fmt.Errorf("marshal user: %w", err)
		}

		if err := txn.Set(key, data); err != nil {
			return err
		}
		if err := txn.Set(emailKey, []byte(user.ID)); err != nil {
			return err
		}
		return txn.Set(usernameKey, []byte(user.ID))
	})

	return wrapStoreErr(err, "create user")
}

// GetUser retrieves a user aggregate by ID.
func (s *Store) GetUser(ctx context.Context, id string) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var user domain.User
	if err := s.get([]byte(userPrefix+id), &user); err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, wrapStoreErr(err, "get user")
	}

	return &user, nil
}

// GetUserByEmail retrieves a user by email address.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.getByIndex(ctx, userByEmailPrefix+normalizeEmail(email))
}

// GetUserByUsername retrieves a user by username.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.getByIndex(ctx, userByUsernamePrefix+normalizeUsername(username))
}

// getByIndex resolves an index key to a user ID, then loads the aggregate.
func (s *Store) getByIndex(ctx context.Context, indexKey string) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var userID string
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(indexKey))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			userID = string(val)
			return nil
		})
	})

	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, wrapStoreErr(err, "lookup user by index")
	}

	return s.GetUser(ctx, userID)
}

// SaveUser replaces the stored aggregate with the given one, compare-and-swap
// on the version. The read-check-write runs in a single transaction: if the
// stored version no longer matches the version the caller loaded, nothing is
// written and ErrVersionConflict is returned. On success the caller's copy is
// bumped to the new version.
func (s *Store) SaveUser(ctx context.Context, user *domain.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key := []byte(userPrefix + user.ID)
	loadedVersion := user.Version

	err := s.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrUserNotFound
		}
		if err != nil {
			return fmt.Errorf("get existing user: %w", err)
		}

		var stored domain.User
		err = item.Value(func(val []byte) error {
			return json.Unmarshal(val, &stored)
		})
		if err != nil {
			return fmt.Errorf("unmarshal existing user: %w", err)
		}

		if stored.Version != loadedVersion {
			return ErrVersionConflict
		}

		user.Version = loadedVersion + 1
		data, err := json.Marshal(user)
		if err != nil {
			return fmt.Errorf("marshal user: %w", err)
		}

		if err := txn.Set(key, data); err != nil {
			return err
		}

		// Maintain the index keys if email or username changed. Uniqueness of
		// the new values is the caller's concern; the indexes just track them.
		if normalizeEmail(stored.Email) != normalizeEmail(user.Email) {
			if err := txn.Delete([]byte(userByEmailPrefix + normalizeEmail(stored.Email))); err != nil {
				return err
			}
			if _, err := txn.Get([]byte(userByEmailPrefix + normalizeEmail(user.Email))); err == nil {
				return ErrEmailExists
			} else if !errors.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("check new email: %w", err)
			}
			if err := txn.Set([]byte(userByEmailPrefix+normalizeEmail(user.Email)), []byte(user.ID)); err != nil {
				return err
			}
		}
		if normalizeUsername(stored.Username) != normalizeUsername(user.Username) {
			if err := txn.Delete([]byte(userByUsernamePrefix + normalizeUsername(stored.Username))); err != nil {
				return err
			}
			if _, err := txn.Get([]byte(userByUsernamePrefix + normalizeUsername(user.Username))); err == nil {
				return ErrUsernameExists
			} else if !errors.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("check new username: %w", err)
			}
			if err := txn.Set([]byte(userByUsernamePrefix+normalizeUsername(user.Username)), []byte(user.ID)); err != nil {
				return err
			}
		}

		return nil
	})

	if err != nil {
		// Badger's own SSI can detect the same race before our version check does.
		if errors.Is(err, badger.ErrConflict) {
			err = ErrVersionConflict
		}
		// Roll back the in-memory bump on failure.
		user.Version = loadedVersion
		return wrapStoreErr(err, "save user")
	}

	return nil
}

// DeleteUser removes the whole aggregate and its index keys.
func (s *Store) DeleteUser(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key := []byte(userPrefix + id)

	err := s.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrUserNotFound
		}
		if err != nil {
			return fmt.Errorf("get user: %w", err)
		}

		var user domain.User
		err = item.Value(func(val []byte) error {
			return json.Unmarshal(val, &user)
		})
		if err != nil {
			return fmt.Errorf("unmarshal user: %w", err)
		}

		if err := txn.Delete([]byte(userByEmailPrefix + normalizeEmail(user.Email))); err != nil {
			return err
		}
		if err := txn.Delete([]byte(userByUsernamePrefix + normalizeUsername(user.Username))); err != nil {
			return err
		}
		return txn.Delete(key)
	})

	return wrapStoreErr(err, "delete user")
}

// normalizeEmail normalizes an email address for consistent lookups.
// Lowercases and trims whitespace.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// normalizeUsername normalizes a username for consistent lookups.
func normalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// wrapStoreErr passes through the store's own sentinels and tags anything
// else as a store-availability failure. The core never retries those; whether
// the write landed cannot be known from here.
func wrapStoreErr(err error, op string) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrUserExists),
		errors.Is(err, ErrEmailExists),
		errors.Is(err, ErrUsernameExists),
		errors.Is(err, ErrVersionConflict),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return err
	default:
		return apperrors.Wrap(err, apperrors.CodeStoreUnavailable, op)
	}
}
