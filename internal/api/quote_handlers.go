package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/inkshelf/inkshelf-server/internal/http/response"
)

// QuoteRequest carries quote text, for both creation and update.
type QuoteRequest struct {
	Text string `json:"text"`
}

// handleListBookQuotes returns all quotes for one book, oldest first.
func (s *Server) handleListBookQuotes(w http.ResponseWriter, r *http.Request) {
	quotes, err := s.quotes.ListForBook(r.Context(), getUserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, quotes, s.logger)
}

// handleAddQuote records a new quote against a book.
func (s *Server) handleAddQuote(w http.ResponseWriter, r *http.Request) {
	var req QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	quote, err := s.quotes.AddToBook(r.Context(), getUserID(r.Context()), chi.URLParam(r, "id"), req.Text)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, quote, s.logger)
}

// handleUpdateQuote replaces a quote's text.
func (s *Server) handleUpdateQuote(w http.ResponseWriter, r *http.Request) {
	var req QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	quote, err := s.quotes.Update(r.Context(), getUserID(r.Context()), chi.URLParam(r, "id"), req.Text)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, quote, s.logger)
}

// handleDeleteQuote removes a quote.
func (s *Server) handleDeleteQuote(w http.ResponseWriter, r *http.Request) {
	if err := s.quotes.Remove(r.Context(), getUserID(r.Context()), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.NoContent(w)
}
