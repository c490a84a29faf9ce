package repository

import (
	"context"
	"errors"
	"time"

	"github.com/inkshelf/inkshelf-server/internal/domain"
	apperrors "github.com/inkshelf/inkshelf-server/internal/errors"
	"github.com/inkshelf/inkshelf-server/internal/id"
	"github.com/inkshelf/inkshelf-server/internal/store"
)

type userRepository struct {
	store UserStore
}

// NewUserRepository creates the user repository.
func NewUserRepository(s UserStore) UserRepository {
	return &userRepository{store: s}
}

// Add validates and persists a new user, assigning an ID and creation time
// if not already set. Fails with a conflict if the email or username is taken.
func (r *userRepository) Add(ctx context.Context, user *domain.User) (string, error) {
	if user.ID == "" {
		userID, err := id.Generate(id.PrefixUser)
		if err != nil {
			return "", err
		}
		user.ID = userID
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}

	if err := user.Validate(); err != nil {
		return "", err
	}

	if err := r.store.CreateUser(ctx, user); err != nil {
		switch {
		case errors.Is(err, store.ErrEmailExists):
			return "", apperrors.Conflictf("user with email %s already exists", user.Email)
		case errors.Is(err, store.ErrUsernameExists):
			return "", apperrors.Conflictf("username %s is already taken", user.Username)
		case errors.Is(err, store.ErrUserExists):
			return "", apperrors.Conflictf("user %s already exists", user.ID)
		default:
			return "", err
		}
	}

	return user.ID, nil
}

// Delete removes the whole aggregate and returns the deleted ID.
func (r *userRepository) Delete(ctx context.Context, userID string) (string, error) {
	if err := r.store.DeleteUser(ctx, userID); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return "", apperrors.NotFoundf("user %s not found", userID)
		}
		return "", err
	}
	return userID, nil
}

// Update applies a partial update: only the fields present in the patch are
// replaced, everything else is left as stored.
func (r *userRepository) Update(ctx context.Context, userID string, patch domain.UserPatch) (*domain.User, error) {
	user, err := loadUser(ctx, r.store, userID)
	if err != nil {
		return nil, err
	}

	if err := patch.Apply(user); err != nil {
		return nil, err
	}

	if err := r.saveUpdated(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// saveUpdated persists a patched user, translating index conflicts from an
// email or username change.
func (r *userRepository) saveUpdated(ctx context.Context, user *domain.User) error {
	err := saveUser(ctx, r.store, user)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrEmailExists):
		return apperrors.Conflictf("user with email %s already exists", user.Email)
	case errors.Is(err, store.ErrUsernameExists):
		return apperrors.Conflictf("username %s is already taken", user.Username)
	default:
		return err
	}
}

// GetByID returns the user or a not-found error; a direct store pass-through.
func (r *userRepository) GetByID(ctx context.Context, userID string) (*domain.User, error) {
	return loadUser(ctx, r.store, userID)
}

// GetByEmail returns the user with the given email, or a not-found error.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := r.store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, apperrors.NotFoundf("user with email %s not found", email)
		}
		return nil, err
	}
	return user, nil
}

// GetByUsername returns the user with the given username, or a not-found error.
func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, err := r.store.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, apperrors.NotFoundf("user %s not found", username)
		}
		return nil, err
	}
	return user, nil
}
