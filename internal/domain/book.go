package domain

import (
	"time"

	"github.com/inkshelf/inkshelf-server/internal/errors"
)

// Rating bounds. Ratings are whole percentages rather than star counts so
// clients can render whatever scale they like.
const (
	MinRating = 0
	MaxRating = 100
)

// Book is a single entry in a user's library. It only exists embedded in a
// User aggregate; the ID is assigned when the book is added.
type Book struct {
	ID            string      `json:"id"`
	ISNB          string      `json:"isnb"` // External book identifier; unique within one user's books
	StartReadDate time.Time   `json:"start_read_date"`
	EndReadDate   *time.Time  `json:"end_read_date,omitempty"` // nil while the book is still being read
	Description   Description `json:"description"`
	Rating        int         `json:"rating"`
}

// Validate checks the book's field constraints.
func (b *Book) Validate() error {
	if b.ISNB == "" {
		return errors.Validation("isnb is required")
	}
	if b.Rating < MinRating || b.Rating > MaxRating {
		return errors.Validationf("rating must be between %d and %d", MinRating, MaxRating)
	}
	return b.Description.Validate()
}

// InProgress reports whether the book has no end read date yet.
func (b *Book) InProgress() bool {
	return b.EndReadDate == nil
}

// Description holds the bibliographic details of a book. It has no identity
// of its own; its lifecycle is bound to the owning book.
type Description struct {
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	AuthorName     string    `json:"author_name"`
	PublisherName  string    `json:"publisher_name"`
	PublishingDate time.Time `json:"publishing_date"`
	CoverURL       string    `json:"cover_url"`
}

// Validate checks the description's field constraints.
func (d *Description) Validate() error {
	if d.Title == "" {
		return errors.Validation("title is required")
	}
	return nil
}

// BookPatch carries the optional fields of a partial book update.
// Only non-nil fields are applied; everything else is left as it was.
type BookPatch struct {
	ISNB          *string           `json:"isnb,omitempty"`
	StartReadDate *time.Time        `json:"start_read_date,omitempty"`
	EndReadDate   *time.Time        `json:"end_read_date,omitempty"`
	Description   *DescriptionPatch `json:"description,omitempty"`
	Rating        *int              `json:"rating,omitempty"`
}

// Apply merges the patch onto the book and re-validates the result.
// On validation failure the book is left unchanged.
func (p BookPatch) Apply(b *Book) error {
	patched := *b
	if p.ISNB != nil {
		patched.ISNB = *p.ISNB
	}
	if p.StartReadDate != nil {
		patched.StartReadDate = *p.StartReadDate
	}
	if p.EndReadDate != nil {
		patched.EndReadDate = p.EndReadDate
	}
	if p.Rating != nil {
		patched.Rating = *p.Rating
	}
	if p.Description != nil {
		p.Description.apply(&patched.Description)
	}
	if err := patched.Validate(); err != nil {
		return err
	}
	*b = patched
	return nil
}

// DescriptionPatch carries the optional fields of a partial description update.
type DescriptionPatch struct {
	Title          *string    `json:"title,omitempty"`
	Description    *string    `json:"description,omitempty"`
	AuthorName     *string    `json:"author_name,omitempty"`
	PublisherName  *string    `json:"publisher_name,omitempty"`
	PublishingDate *time.Time `json:"publishing_date,omitempty"`
	CoverURL       *string    `json:"cover_url,omitempty"`
}

func (p *DescriptionPatch) apply(d *Description) {
	if p.Title != nil {
		d.Title = *p.Title
	}
	if p.Description != nil {
		d.Description = *p.Description
	}
	if p.AuthorName != nil {
		d.AuthorName = *p.AuthorName
	}
	if p.PublisherName != nil {
		d.PublisherName = *p.PublisherName
	}
	if p.PublishingDate != nil {
		d.PublishingDate = *p.PublishingDate
	}
	if p.CoverURL != nil {
		d.CoverURL = *p.CoverURL
	}
}
