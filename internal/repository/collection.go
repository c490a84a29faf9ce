package repository

import (
	"context"

	"github.com/inkshelf/inkshelf-server/internal/domain"
	apperrors "github.com/inkshelf/inkshelf-server/internal/errors"
	"github.com/inkshelf/inkshelf-server/internal/id"
)

type collectionRepository struct {
	store UserStore
}

// NewCollectionRepository creates the collection repository.
func NewCollectionRepository(s UserStore) CollectionRepository {
	return &collectionRepository{store: s}
}

// Create appends a new, empty collection to the user. Names don't have to be
// unique; the assigned ID is the stable handle for every later operation.
func (r *collectionRepository) Create(ctx context.Context, userID, name string) (*domain.Collection, error) {
	collection := domain.Collection{Name: name, Books: []string{}}
	if err := collection.Validate(); err != nil {
		return nil, err
	}

	user, err := loadUser(ctx, r.store, userID)
	if err != nil {
		return nil, err
	}

	collectionID, err := id.Generate(id.PrefixCollection)
	if err != nil {
		return nil, err
	}
	collection.ID = collectionID

	user.Collections = append(user.Collections, collection)
	if err := saveUser(ctx, r.store, user); err != nil {
		return nil, err
	}

	return &collection, nil
}

// Delete removes a collection. The books it referenced are untouched.
func (r *collectionRepository) Delete(ctx context.Context, userID, collectionID string) error {
	user, err := loadUser(ctx, r.store, userID)
	if err != nil {
		return err
	}

	if _, ok := user.CollectionByID(collectionID); !ok {
		return apperrors.NotFoundf("collection %s not found", collectionID)
	}

	collections := user.Collections[:0]
	for _, c := range user.Collections {
		if c.ID != collectionID {
			collections = append(collections, c)
		}
	}
	user.Collections = collections

	return saveUser(ctx, r.store, user)
}

// AddBook appends a book ID to the collection's membership. The book must
// exist in the user's library, and a book can only be a member once.
func (r *collectionRepository) AddBook(ctx context.Context, userID, collectionID, bookID string) error {
	user, err := loadUser(ctx, r.store, userID)
	if err != nil {
		return err
	}

	collection, ok := user.CollectionByID(collectionID)
	if !ok {
		return apperrors.NotFoundf("collection %s not found", collectionID)
	}
	if !user.HasBook(bookID) {
		return apperrors.NotFoundf("book %s not found in user's book list", bookID)
	}
	if collection.Contains(bookID) {
		return apperrors.Conflictf("book %s is already in the collection", bookID)
	}

	collection.Books = append(collection.Books, bookID)
	return saveUser(ctx, r.store, user)
}

// RemoveBook takes a book ID out of the collection's membership.
func (r *collectionRepository) RemoveBook(ctx context.Context, userID, collectionID, bookID string) error {
	user, err := loadUser(ctx, r.store, userID)
	if err != nil {
		return err
	}

	collection, ok := user.CollectionByID(collectionID)
	if !ok {
		return apperrors.NotFoundf("collection %s not found", collectionID)
	}
	if !collection.Contains(bookID) {
		return apperrors.NotFoundf("book %s is not in the collection", bookID)
	}

	members := collection.Books[:0]
	for _, member := range collection.Books {
		if member != bookID {
			members = append(members, member)
		}
	}
	collection.Books = members

	return saveUser(ctx, r.store, user)
}

// Rename gives the collection a new name.
func (r *collectionRepository) Rename(ctx context.Context, userID, collectionID, name string) (*domain.Collection, error) {
	renamed := domain.Collection{Name: name}
	if err := renamed.Validate(); err != nil {
		return nil, err
	}

	user, err := loadUser(ctx, r.store, userID)
	if err != nil {
		return nil, err
	}

	collection, ok := user.CollectionByID(collectionID)
	if !ok {
		return nil, apperrors.NotFoundf("collection %s not found", collectionID)
	}

	collection.Name = name
	if err := saveUser(ctx, r.store, user); err != nil {
		return nil, err
	}

	updated := *collection
	return &updated, nil
}
