package api

import (
	"encoding/json"
	"net/http"

	"github.com/inkshelf/inkshelf-server/internal/auth"
	"github.com/inkshelf/inkshelf-server/internal/domain"
	"github.com/inkshelf/inkshelf-server/internal/dto"
	"github.com/inkshelf/inkshelf-server/internal/http/response"
)

// UpdateUserRequest represents a partial account update.
// Absent fields are left unchanged.
type UpdateUserRequest struct {
	Username *string `json:"username,omitempty"`
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
}

// handleGetCurrentUser returns the authenticated user's full aggregate.
func (s *Server) handleGetCurrentUser(w http.ResponseWriter, r *http.Request) {
	user, err := s.users.GetByID(r.Context(), getUserID(r.Context()))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, dto.FromUser(user), s.logger)
}

// handleUpdateCurrentUser applies a partial update to the account.
func (s *Server) handleUpdateCurrentUser(w http.ResponseWriter, r *http.Request) {
	var req UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	patch := domain.UserPatch{
		Username: req.Username,
		Email:    req.Email,
	}
	if req.Password != nil {
		if len(*req.Password) < domain.MinPasswordLength {
			response.BadRequest(w, "password is too short", s.logger)
			return
		}
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			response.HandleError(w, err, s.logger)
			return
		}
		patch.PasswordHash = &hash
	}

	user, err := s.users.Update(r.Context(), getUserID(r.Context()), patch)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, dto.FromUser(user), s.logger)
}

// handleDeleteCurrentUser deletes the account and everything in it.
func (s *Server) handleDeleteCurrentUser(w http.ResponseWriter, r *http.Request) {
	if _, err := s.users.Delete(r.Context(), getUserID(r.Context())); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.NoContent(w)
}
