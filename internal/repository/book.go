package repository

import (
	"context"

	"github.com/inkshelf/inkshelf-server/internal/domain"
	apperrors "github.com/inkshelf/inkshelf-server/internal/errors"
	"github.com/inkshelf/inkshelf-server/internal/id"
)

type bookRepository struct {
	store UserStore
}

// NewBookRepository creates the book repository.
func NewBookRepository(s UserStore) BookRepository {
	return &bookRepository{store: s}
}

// Add appends a book to the user's library. The book gets its ID here;
// within one user, the isnb must be unique.
func (r *bookRepository) Add(ctx context.Context, userID string, book domain.Book) (*domain.Book, error) {
	if err := book.Validate(); err != nil {
		return nil, err
	}

	user, err := loadUser(ctx, r.store, userID)
	if err != nil {
		return nil, err
	}

	if user.HasBookISNB(book.ISNB) {
		return nil, apperrors.Conflictf("book with isnb %s is already added", book.ISNB)
	}

	bookID, err := id.Generate(id.PrefixBook)
	if err != nil {
		return nil, err
	}
	book.ID = bookID

	user.Books = append(user.Books, book)
	if err := saveUser(ctx, r.store, user); err != nil {
		return nil, err
	}

	return &book, nil
}

// Delete removes a book and cascades the removal through everything that
// references it: the favourites set, every collection's membership list, and
// any quotes taken from it. The aggregate is saved once, so the cascade is
// atomic with the delete.
func (r *bookRepository) Delete(ctx context.Context, userID, bookID string) (string, error) {
	user, err := loadUser(ctx, r.store, userID)
	if err != nil {
		return "", err
	}

	if !user.HasBook(bookID) {
		return "", apperrors.NotFoundf("book %s not found for user %s", bookID, userID)
	}

	books := user.Books[:0]
	for _, b := range user.Books {
		if b.ID != bookID {
			books = append(books, b)
		}
	}
	user.Books = books

	favs := user.Favourites[:0]
	for _, fav := range user.Favourites {
		if fav != bookID {
			favs = append(favs, fav)
		}
	}
	user.Favourites = favs

	for i := range user.Collections {
		members := user.Collections[i].Books[:0]
		for _, member := range user.Collections[i].Books {
			if member != bookID {
				members = append(members, member)
			}
		}
		user.Collections[i].Books = members
	}

	quotes := user.Quotes[:0]
	for _, q := range user.Quotes {
		if q.BookID != bookID {
			quotes = append(quotes, q)
		}
	}
	user.Quotes = quotes

	if err := saveUser(ctx, r.store, user); err != nil {
		return "", err
	}

	return bookID, nil
}

// GetAll returns the user's book list in insertion order.
// An empty list is a valid result, not an error.
func (r *bookRepository) GetAll(ctx context.Context, userID string) ([]domain.Book, error) {
	user, err := loadUser(ctx, r.store, userID)
	if err != nil {
		return nil, err
	}
	if user.Books == nil {
		return []domain.Book{}, nil
	}
	return user.Books, nil
}

// GetByID returns a single book from the user's list.
func (r *bookRepository) GetByID(ctx context.Context, userID, bookID string) (*domain.Book, error) {
	user, err := loadUser(ctx, r.store, userID)
	if err != nil {
		return nil, err
	}

	book, ok := user.BookByID(bookID)
	if !ok {
		return nil, apperrors.NotFoundf("book %s not found for user %s", bookID, userID)
	}
	return book, nil
}

// Update merges only the supplied fields onto the matched book.
// Changing the isnb to one another book already carries is a conflict.
func (r *bookRepository) Update(ctx context.Context, userID, bookID string, patch domain.BookPatch) (*domain.Book, error) {
	user, err := loadUser(ctx, r.store, userID)
	if err != nil {
		return nil, err
	}

	book, ok := user.BookByID(bookID)
	if !ok {
		return nil, apperrors.NotFoundf("book %s not found for user %s", bookID, userID)
	}

	if patch.ISNB != nil && *patch.ISNB != book.ISNB && user.HasBookISNB(*patch.ISNB) {
		return nil, apperrors.Conflictf("book with isnb %s is already added", *patch.ISNB)
	}

	if err := patch.Apply(book); err != nil {
		return nil, err
	}

	if err := saveUser(ctx, r.store, user); err != nil {
		return nil, err
	}

	updated := *book
	return &updated, nil
}

// UpdateDescription replaces only the free-text field of the book's
// description, leaving title, author, and the rest untouched.
func (r *bookRepository) UpdateDescription(ctx context.Context, userID, bookID, text string) error {
	user, err := loadUser(ctx, r.store, userID)
	if err != nil {
		return err
	}

	book, ok := user.BookByID(bookID)
	if !ok {
		return apperrors.NotFoundf("book %s not found for user %s", bookID, userID)
	}

	book.Description.Description = text
	return saveUser(ctx, r.store, user)
}
