package api

import (
	"encoding/json"
	"net/http"

	"github.com/inkshelf/inkshelf-server/internal/dto"
	"github.com/inkshelf/inkshelf-server/internal/http/response"
	"github.com/inkshelf/inkshelf-server/internal/service"
)

// authResponseBody is the wire form of a successful signup or login.
type authResponseBody struct {
	User        *dto.User `json:"user"`
	AccessToken string    `json:"access_token"`
	ExpiresIn   int64     `json:"expires_in"`
}

// handleSignup creates a new account and returns the signed-in user.
func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req service.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	resp, err := s.authService.Signup(r.Context(), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, authResponseBody{
		User:        dto.FromUser(resp.User),
		AccessToken: resp.AccessToken,
		ExpiresIn:   resp.ExpiresIn,
	}, s.logger)
}

// handleLogin authenticates a user by email and password.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	resp, err := s.authService.Login(r.Context(), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, authResponseBody{
		User:        dto.FromUser(resp.User),
		AccessToken: resp.AccessToken,
		ExpiresIn:   resp.ExpiresIn,
	}, s.logger)
}
