package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/inkshelf/inkshelf-server/internal/http/response"
)

// CreateCollectionRequest represents the request body for creating a collection.
type CreateCollectionRequest struct {
	Name string `json:"name"`
}

// RenameCollectionRequest represents the request body for renaming a collection.
type RenameCollectionRequest struct {
	Name string `json:"name"`
}

// CollectionAddBookRequest represents the request body for adding a book to a
// collection.
type CollectionAddBookRequest struct {
	BookID string `json:"book_id"`
}

// handleCreateCollection creates a new, empty collection.
func (s *Server) handleCreateCollection(w http.ResponseWriter, r *http.Request) {
	var req CreateCollectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	collection, err := s.collections.Create(r.Context(), getUserID(r.Context()), req.Name)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, collection, s.logger)
}

// handleRenameCollection renames a collection.
func (s *Server) handleRenameCollection(w http.ResponseWriter, r *http.Request) {
	var req RenameCollectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	collection, err := s.collections.Rename(r.Context(), getUserID(r.Context()), chi.URLParam(r, "id"), req.Name)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, collection, s.logger)
}

// handleDeleteCollection removes a collection, leaving its books in place.
func (s *Server) handleDeleteCollection(w http.ResponseWriter, r *http.Request) {
	if err := s.collections.Delete(r.Context(), getUserID(r.Context()), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.NoContent(w)
}

// handleAddBookToCollection adds one of the user's books to a collection.
func (s *Server) handleAddBookToCollection(w http.ResponseWriter, r *http.Request) {
	var req CollectionAddBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	if req.BookID == "" {
		response.BadRequest(w, "Book ID is required", s.logger)
		return
	}

	if err := s.collections.AddBook(r.Context(), getUserID(r.Context()), chi.URLParam(r, "id"), req.BookID); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.NoContent(w)
}

// handleRemoveBookFromCollection takes a book out of a collection.
func (s *Server) handleRemoveBookFromCollection(w http.ResponseWriter, r *http.Request) {
	err := s.collections.RemoveBook(r.Context(), getUserID(r.Context()), chi.URLParam(r, "id"), chi.URLParam(r, "bookID"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.NoContent(w)
}
