// Package dto provides data transfer objects for API responses.
//
// The stored user aggregate carries the password hash; the client-facing
// representation never does. Everything else passes through as stored.
package dto

import (
	"time"

	"github.com/inkshelf/inkshelf-server/internal/domain"
)

// User is the client-facing representation of a user aggregate.
type User struct {
	ID          string              `json:"id"`
	Username    string              `json:"username"`
	Email       string              `json:"email"`
	CreatedAt   time.Time           `json:"created_at"`
	Books       []domain.Book       `json:"books"`
	Collections []domain.Collection `json:"collections"`
	Quotes      []domain.Quote      `json:"quotes"`
	Favourites  []string            `json:"favourites"`
}

// FromUser converts a stored user to its client-facing form.
// Nil sub-collections come out as empty lists so clients never see null.
func FromUser(u *domain.User) *User {
	out := &User{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		CreatedAt:   u.CreatedAt,
		Books:       u.Books,
		Collections: u.Collections,
		Quotes:      u.Quotes,
		Favourites:  u.Favourites,
	}
	if out.Books == nil {
		out.Books = []domain.Book{}
	}
	if out.Collections == nil {
		out.Collections = []domain.Collection{}
	}
	if out.Quotes == nil {
		out.Quotes = []domain.Quote{}
	}
	if out.Favourites == nil {
		out.Favourites = []string{}
	}
	return out
}
