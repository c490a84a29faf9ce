package domain

import (
	"time"

	"github.com/inkshelf/inkshelf-server/internal/errors"
)

// Quote is a passage a user saved from one of their books. BookID is a weak
// reference: it must point at an existing book when the quote is created.
type Quote struct {
	ID        string    `json:"id"`
	BookID    string    `json:"book_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// Validate checks the quote's field constraints.
func (q *Quote) Validate() error {
	if q.Text == "" {
		return errors.Validation("quote text is required")
	}
	return nil
}
