// Package service provides orchestration over the repositories.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/inkshelf/inkshelf-server/internal/auth"
	"github.com/inkshelf/inkshelf-server/internal/domain"
	domainerrors "github.com/inkshelf/inkshelf-server/internal/errors"
	"github.com/inkshelf/inkshelf-server/internal/repository"
	"github.com/inkshelf/inkshelf-server/internal/validation"
)

// AuthService handles signup, login, and token verification.
type AuthService struct {
	users        repository.UserRepository
	tokenService *auth.TokenService
	validate     *validation.Validator
	logger       *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	users repository.UserRepository,
	tokenService *auth.TokenService,
	validate *validation.Validator,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:        users,
		tokenService: tokenService,
		validate:     validate,
		logger:       logger,
	}
}

// SignupRequest contains new account data.
type SignupRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=1024"`
}

// LoginRequest contains user credentials.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse contains the authenticated user and their access token.
type AuthResponse struct {
	User        *domain.User `json:"user"`
	AccessToken string       `json:"access_token"`
	ExpiresIn   int64        `json:"expires_in"` // seconds
}

// Signup creates a new account and signs the user in.
// Email and username conflicts surface as conflicts, not validation errors.
func (s *AuthService) Signup(ctx context.Context, req SignupRequest) (*AuthResponse, error) {
	if err := s.validate.Validate(req); err != nil {
		return nil, err
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: passwordHash,
		Books:        []domain.Book{},
		Collections:  []domain.Collection{},
		Quotes:       []domain.Quote{},
		Favourites:   []string{},
	}

	if _, err := s.users.Add(ctx, user); err != nil {
		return nil, err
	}

	if s.logger != nil {
		s.logger.Info("User signed up",
			"user_id", user.ID,
			"username", user.Username,
		)
	}

	return s.issueToken(user)
}

// Login authenticates a user by email and password.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	if err := s.validate.Validate(req); err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if domainerrors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.InvalidCredentials("invalid email or password")
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	valid, err := auth.VerifyPassword(user.PasswordHash, req.Password)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !valid {
		return nil, domainerrors.InvalidCredentials("invalid email or password")
	}

	if s.logger != nil {
		s.logger.Info("User logged in",
			"user_id", user.ID,
			"username", user.Username,
		)
	}

	return s.issueToken(user)
}

// VerifyAccessToken validates a token and resolves its subject to a user.
// Used by the authentication middleware.
func (s *AuthService) VerifyAccessToken(ctx context.Context, tokenString string) (*domain.User, *auth.AccessClaims, error) {
	claims, err := s.tokenService.VerifyAccessToken(tokenString)
	if err != nil {
		return nil, nil, domainerrors.Unauthorized("invalid token").WithCause(err)
	}

	user, err := s.users.GetByUsername(ctx, claims.Subject)
	if err != nil {
		if domainerrors.Is(err, domainerrors.ErrNotFound) {
			return nil, nil, domainerrors.Unauthorized("unknown token subject")
		}
		return nil, nil, fmt.Errorf("resolve token subject: %w", err)
	}

	return user, claims, nil
}

func (s *AuthService) issueToken(user *domain.User) (*AuthResponse, error) {
	token, err := s.tokenService.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	return &AuthResponse{
		User:        user,
		AccessToken: token,
		ExpiresIn:   int64(s.tokenService.AccessTokenDuration().Seconds()),
	}, nil
}
