package domain

import (
	"net/mail"
	"time"

	"github.com/inkshelf/inkshelf-server/internal/errors"
)

const (
	// MinUsernameLength is the shortest username we accept.
	MinUsernameLength = 3
	// MinPasswordLength applies to the plaintext password, before hashing.
	MinPasswordLength = 6
)

// User is the aggregate root: the sole unit of persistence. Books,
// collections, quotes, and favourites are embedded and have no storage
// identity of their own. Every mutation loads the whole aggregate, changes it
// in memory, and writes it back.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash,omitempty"` // Stored hashed, filter from API responses
	CreatedAt    time.Time `json:"created_at"`

	// Version stamps the aggregate for compare-and-swap saves. It is
	// incremented by the store on every successful save; a save against a
	// stale version fails with a conflict instead of silently losing the
	// concurrent write.
	Version uint64 `json:"version"`

	Books       []Book       `json:"books"`
	Collections []Collection `json:"collections"`
	Quotes      []Quote      `json:"quotes"`
	Favourites  []string     `json:"favourites"` // Book IDs; a set stored as a list
}

// Validate checks the user's own field constraints. Embedded entities
// validate themselves when they are added or patched.
func (u *User) Validate() error {
	if len(u.Username) < MinUsernameLength {
		return errors.Validationf("username must be at least %d characters", MinUsernameLength)
	}
	if _, err := mail.ParseAddress(u.Email); err != nil {
		return errors.Validation("email is not a valid address")
	}
	return nil
}

// BookByID returns a pointer to the book with the given ID, or false.
// The pointer aliases the slice entry so callers can mutate in place.
func (u *User) BookByID(bookID string) (*Book, bool) {
	for i := range u.Books {
		if u.Books[i].ID == bookID {
			return &u.Books[i], true
		}
	}
	return nil, false
}

// HasBook reports whether a book with the given ID is in the user's list.
func (u *User) HasBook(bookID string) bool {
	_, ok := u.BookByID(bookID)
	return ok
}

// HasBookISNB reports whether any of the user's books carries the given isnb.
func (u *User) HasBookISNB(isnb string) bool {
	for i := range u.Books {
		if u.Books[i].ISNB == isnb {
			return true
		}
	}
	return false
}

// HasFavourite reports whether the book ID is in the favourites set.
func (u *User) HasFavourite(bookID string) bool {
	for _, fav := range u.Favourites {
		if fav == bookID {
			return true
		}
	}
	return false
}

// CollectionByID returns a pointer to the collection with the given ID, or false.
func (u *User) CollectionByID(collectionID string) (*Collection, bool) {
	for i := range u.Collections {
		if u.Collections[i].ID == collectionID {
			return &u.Collections[i], true
		}
	}
	return nil, false
}

// QuoteByID returns a pointer to the quote with the given ID, or false.
func (u *User) QuoteByID(quoteID string) (*Quote, bool) {
	for i := range u.Quotes {
		if u.Quotes[i].ID == quoteID {
			return &u.Quotes[i], true
		}
	}
	return nil, false
}

// UserPatch carries the optional fields of a partial user update.
// Nil fields are left unchanged. PasswordHash must already be hashed;
// plaintext validation happens before hashing, at the edge.
type UserPatch struct {
	Username     *string `json:"username,omitempty"`
	Email        *string `json:"email,omitempty"`
	PasswordHash *string `json:"-"`
}

// Apply merges the patch onto the user and re-validates the result.
// On validation failure the user is left unchanged.
func (p UserPatch) Apply(u *User) error {
	patched := *u
	if p.Username != nil {
		patched.Username = *p.Username
	}
	if p.Email != nil {
		patched.Email = *p.Email
	}
	if p.PasswordHash != nil {
		patched.PasswordHash = *p.PasswordHash
	}
	if err := patched.Validate(); err != nil {
		return err
	}
	*u = patched
	return nil
}
