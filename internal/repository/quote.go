package repository

import (
	"context"
	"time"

	"github.com/inkshelf/inkshelf-server/internal/domain"
	apperrors "github.com/inkshelf/inkshelf-server/internal/errors"
	"github.com/inkshelf/inkshelf-server/internal/id"
)

type quoteRepository struct {
	store UserStore
}

// NewQuoteRepository creates the quote repository.
func NewQuoteRepository(s UserStore) QuoteRepository {
	return &quoteRepository{store: s}
}

// AddToBook records a quote against one of the user's books. The book has to
// exist in the user's library at the time the quote is added.
func (r *quoteRepository) AddToBook(ctx context.Context, userID, bookID, text string) (*domain.Quote, error) {
	quote := domain.Quote{BookID: bookID, Text: text}
	if err := quote.Validate(); err != nil {
		return nil, err
	}

	user, err := loadUser(ctx, r.store, userID)
	if err != nil {
		return nil, err
	}

	if !user.HasBook(bookID) {
		return nil, apperrors.NotFoundf("book %s not found in user's book list", bookID)
	}

	quoteID, err := id.Generate(id.PrefixQuote)
	if err != nil {
		return nil, err
	}
	quote.ID = quoteID
	quote.CreatedAt = time.Now().UTC()

	user.Quotes = append(user.Quotes, quote)
	if err := saveUser(ctx, r.store, user); err != nil {
		return nil, err
	}

	return &quote, nil
}

// Update replaces the text of an existing quote.
func (r *quoteRepository) Update(ctx context.Context, userID, quoteID, text string) (*domain.Quote, error) {
	user, err := loadUser(ctx, r.store, userID)
	if err != nil {
		return nil, err
	}

	quote, ok := user.QuoteByID(quoteID)
	if !ok {
		return nil, apperrors.NotFoundf("quote %s not found", quoteID)
	}

	updated := *quote
	updated.Text = text
	if err := updated.Validate(); err != nil {
		return nil, err
	}

	*quote = updated
	if err := saveUser(ctx, r.store, user); err != nil {
		return nil, err
	}

	result := updated
	return &result, nil
}

// Remove deletes a quote.
func (r *quoteRepository) Remove(ctx context.Context, userID, quoteID string) error {
	user, err := loadUser(ctx, r.store, userID)
	if err != nil {
		return err
	}

	if _, ok := user.QuoteByID(quoteID); !ok {
		return apperrors.NotFoundf("quote %s not found", quoteID)
	}

	quotes := user.Quotes[:0]
	for _, q := range user.Quotes {
		if q.ID != quoteID {
			quotes = append(quotes, q)
		}
	}
	user.Quotes = quotes

	return saveUser(ctx, r.store, user)
}

// ListForBook returns the quotes attached to one book, in the order they were
// added. An empty result is not an error; the book itself must exist.
func (r *quoteRepository) ListForBook(ctx context.Context, userID, bookID string) ([]domain.Quote, error) {
	user, err := loadUser(ctx, r.store, userID)
	if err != nil {
		return nil, err
	}

	if !user.HasBook(bookID) {
		return nil, apperrors.NotFoundf("book %s not found in user's book list", bookID)
	}

	quotes := []domain.Quote{}
	for _, q := range user.Quotes {
		if q.BookID == bookID {
			quotes = append(quotes, q)
		}
	}
	return quotes, nil
}
