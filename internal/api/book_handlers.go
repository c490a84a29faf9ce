package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/inkshelf/inkshelf-server/internal/domain"
	"github.com/inkshelf/inkshelf-server/internal/http/response"
)

// AddBookRequest represents the request body for adding a book.
type AddBookRequest struct {
	ISNB          string             `json:"isnb"`
	StartReadDate time.Time          `json:"start_read_date"`
	EndReadDate   *time.Time         `json:"end_read_date,omitempty"`
	Description   domain.Description `json:"description"`
	Rating        int                `json:"rating"`
}

// UpdateBookRequest represents a partial book update.
type UpdateBookRequest struct {
	ISNB          *string                   `json:"isnb,omitempty"`
	StartReadDate *time.Time                `json:"start_read_date,omitempty"`
	EndReadDate   *time.Time                `json:"end_read_date,omitempty"`
	Description   *domain.DescriptionPatch  `json:"description,omitempty"`
	Rating        *int                      `json:"rating,omitempty"`
}

// UpdateDescriptionRequest carries a replacement for the free-text description.
type UpdateDescriptionRequest struct {
	Description string `json:"description"`
}

// handleListBooks returns the user's book list.
func (s *Server) handleListBooks(w http.ResponseWriter, r *http.Request) {
	books, err := s.books.GetAll(r.Context(), getUserID(r.Context()))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, books, s.logger)
}

// handleAddBook adds a book to the user's library.
func (s *Server) handleAddBook(w http.ResponseWriter, r *http.Request) {
	var req AddBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	start := req.StartReadDate
	if start.IsZero() {
		start = time.Now()
	}

	book, err := s.books.Add(r.Context(), getUserID(r.Context()), domain.Book{
		ISNB:          req.ISNB,
		StartReadDate: start,
		EndReadDate:   req.EndReadDate,
		Description:   req.Description,
		Rating:        req.Rating,
	})
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, book, s.logger)
}

// handleGetBook returns a single book.
func (s *Server) handleGetBook(w http.ResponseWriter, r *http.Request) {
	book, err := s.books.GetByID(r.Context(), getUserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, book, s.logger)
}

// handleUpdateBook applies a partial update to a book.
func (s *Server) handleUpdateBook(w http.ResponseWriter, r *http.Request) {
	var req UpdateBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	book, err := s.books.Update(r.Context(), getUserID(r.Context()), chi.URLParam(r, "id"), domain.BookPatch{
		ISNB:          req.ISNB,
		StartReadDate: req.StartReadDate,
		EndReadDate:   req.EndReadDate,
		Description:   req.Description,
		Rating:        req.Rating,
	})
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, book, s.logger)
}

// handleUpdateBookDescription replaces the free-text description of a book.
func (s *Server) handleUpdateBookDescription(w http.ResponseWriter, r *http.Request) {
	var req UpdateDescriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	if err := s.books.UpdateDescription(r.Context(), getUserID(r.Context()), chi.URLParam(r, "id"), req.Description); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.NoContent(w)
}

// handleDeleteBook deletes a book and everything referencing it.
func (s *Server) handleDeleteBook(w http.ResponseWriter, r *http.Request) {
	if _, err := s.books.Delete(r.Context(), getUserID(r.Context()), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.NoContent(w)
}
