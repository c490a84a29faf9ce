package repository

import (
	"context"

	"github.com/inkshelf/inkshelf-server/internal/domain"
	apperrors "github.com/inkshelf/inkshelf-server/internal/errors"
)

type favouriteRepository struct {
	store UserStore
}

// NewFavouriteRepository creates the favourite repository.
func NewFavouriteRepository(s UserStore) FavouriteRepository {
	return &favouriteRepository{store: s}
}

// validateUserAndBook loads the user and confirms the book ID is present in
// their book list. Both favourite operations run this precondition first.
func (r *favouriteRepository) validateUserAndBook(ctx context.Context, userID, bookID string) (*domain.User, error) {
	user, err := loadUser(ctx, r.store, userID)
	if err != nil {
		return nil, err
	}
	if !user.HasBook(bookID) {
		return nil, apperrors.NotFoundf("book %s not found in user's book list", bookID)
	}
	return user, nil
}

// Add inserts the book ID into the favourites set. Favourites is logically a
// set: a duplicate insertion is rejected, not silently deduplicated.
func (r *favouriteRepository) Add(ctx context.Context, userID, bookID string) error {
	user, err := r.validateUserAndBook(ctx, userID, bookID)
	if err != nil {
		return err
	}

	if user.HasFavourite(bookID) {
		return apperrors.Conflictf("book %s is already in favourites", bookID)
	}

	user.Favourites = append(user.Favourites, bookID)
	return saveUser(ctx, r.store, user)
}

// Remove takes the book ID out of the favourites set.
func (r *favouriteRepository) Remove(ctx context.Context, userID, bookID string) error {
	user, err := r.validateUserAndBook(ctx, userID, bookID)
	if err != nil {
		return err
	}

	if !user.HasFavourite(bookID) {
		return apperrors.NotFoundf("book %s is not in favourites", bookID)
	}

	favs := user.Favourites[:0]
	for _, fav := range user.Favourites {
		if fav != bookID {
			favs = append(favs, fav)
		}
	}
	user.Favourites = favs

	return saveUser(ctx, r.store, user)
}
