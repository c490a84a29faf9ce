package domain

import "github.com/inkshelf/inkshelf-server/internal/errors"

// Collection is a named grouping of book IDs within one user's library.
// It stores references, not copies: the IDs point at entries in the owning
// user's book list. Names don't have to be unique; IDs do the addressing.
type Collection struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Books []string `json:"books"` // Book IDs, insertion order, no duplicates
}

// Validate checks the collection's field constraints.
func (c *Collection) Validate() error {
	if c.Name == "" {
		return errors.Validation("collection name is required")
	}
	return nil
}

// Contains reports whether the book ID is a member of the collection.
func (c *Collection) Contains(bookID string) bool {
	for _, b := range c.Books {
		if b == bookID {
			return true
		}
	}
	return false
}
