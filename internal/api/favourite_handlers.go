package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/inkshelf/inkshelf-server/internal/http/response"
)

// handleAddFavourite marks a book as a favourite.
func (s *Server) handleAddFavourite(w http.ResponseWriter, r *http.Request) {
	if err := s.favourites.Add(r.Context(), getUserID(r.Context()), chi.URLParam(r, "bookID")); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.NoContent(w)
}

// handleRemoveFavourite unmarks a favourite book.
func (s *Server) handleRemoveFavourite(w http.ResponseWriter, r *http.Request) {
	if err := s.favourites.Remove(r.Context(), getUserID(r.Context()), chi.URLParam(r, "bookID")); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.NoContent(w)
}
