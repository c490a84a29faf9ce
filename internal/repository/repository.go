// Package repository implements the mutation layer over user aggregates.
//
// Every operation is a read-modify-write cycle: load the whole user document,
// mutate the embedded sub-collections in memory, and save the document back.
// Saves are compare-and-swap on the aggregate version (see store.SaveUser),
// so two concurrent mutations of the same user cannot silently lose updates
// or slip past a uniqueness check against a stale copy; the loser fails with
// a conflict and may retry. The repositories themselves never retry.
package repository

import (
	"context"
	"errors"

	"github.com/inkshelf/inkshelf-server/internal/domain"
	apperrors "github.com/inkshelf/inkshelf-server/internal/errors"
	"github.com/inkshelf/inkshelf-server/internal/store"
)

// UserStore is the document-store surface the repositories consume:
// whole-document get/insert/save/delete plus single-field lookups.
type UserStore interface {
	CreateUser(ctx context.Context, user *domain.User) error
	GetUser(ctx context.Context, id string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	SaveUser(ctx context.Context, user *domain.User) error
	DeleteUser(ctx context.Context, id string) error
}

// UserRepository manages account lifecycle.
type UserRepository interface {
	Add(ctx context.Context, user *domain.User) (string, error)
	Delete(ctx context.Context, userID string) (string, error)
	Update(ctx context.Context, userID string, patch domain.UserPatch) (*domain.User, error)
	GetByID(ctx context.Context, userID string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

// BookRepository manages the books embedded in a user.
type BookRepository interface {
	Add(ctx context.Context, userID string, book domain.Book) (*domain.Book, error)
	Delete(ctx context.Context, userID, bookID string) (string, error)
	GetAll(ctx context.Context, userID string) ([]domain.Book, error)
	GetByID(ctx context.Context, userID, bookID string) (*domain.Book, error)
	Update(ctx context.Context, userID, bookID string, patch domain.BookPatch) (*domain.Book, error)
	UpdateDescription(ctx context.Context, userID, bookID, text string) error
}

// FavouriteRepository toggles book IDs in and out of a user's favourites set.
type FavouriteRepository interface {
	Add(ctx context.Context, userID, bookID string) error
	Remove(ctx context.Context, userID, bookID string) error
}

// CollectionRepository manages named groupings of book IDs.
type CollectionRepository interface {
	Create(ctx context.Context, userID, name string) (*domain.Collection, error)
	Delete(ctx context.Context, userID, collectionID string) error
	AddBook(ctx context.Context, userID, collectionID, bookID string) error
	RemoveBook(ctx context.Context, userID, collectionID, bookID string) error
	Rename(ctx context.Context, userID, collectionID, name string) (*domain.Collection, error)
}

// QuoteRepository manages quotes tied to a user's books.
type QuoteRepository interface {
	AddToBook(ctx context.Context, userID, bookID, text string) (*domain.Quote, error)
	Update(ctx context.Context, userID, quoteID, text string) (*domain.Quote, error)
	Remove(ctx context.Context, userID, quoteID string) error
	ListForBook(ctx context.Context, userID, bookID string) ([]domain.Quote, error)
}

// loadUser fetches the aggregate, translating the store's sentinel.
func loadUser(ctx context.Context, s UserStore, userID string) (*domain.User, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, apperrors.NotFoundf("user %s not found", userID)
		}
		return nil, err
	}
	return user, nil
}

// saveUser persists the aggregate, translating a lost CAS race to a conflict
// the caller can surface (and retry if it wants to).
func saveUser(ctx context.Context, s UserStore, user *domain.User) error {
	if err := s.SaveUser(ctx, user); err != nil {
		switch {
		case errors.Is(err, store.ErrUserNotFound):
			return apperrors.NotFoundf("user %s not found", user.ID)
		case errors.Is(err, store.ErrVersionConflict):
			return apperrors.Conflict("user was modified concurrently")
		default:
			return err
		}
	}
	return nil
}
