package api

import (
	"context"

	"github.com/erp/console/domain/identity"
	"github.com/erp/console/transport"
)

// AuthService wraps the auth endpoints
type AuthService struct {
	t *transport.Client
}

// LoginResult is the login response payload
type LoginResult struct {
	AccessToken string            `json:"access_token"`
	TokenType   string            `json:"token_type"`
	User        *identity.User    `json:"user"`
	Company     *identity.Company `json:"company"`
}

// Login authenticates with username/password. The platform takes login as
// multipart form data, and a 401 here must not trigger the forced-logout
// hook, so the call is marked auth-exempt.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	var out LoginResult
	_, err := s.t.PostMultipart(ctx, "/auth/login",
		map[string]string{"username": username, "password": password},
		&out,
		transport.WithAuthExempt(),
	)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Me fetches the current user's profile
func (s *AuthService) Me(ctx context.Context) (*identity.User, error) {
	var out identity.User
	if _, err := s.t.Get(ctx, "/auth/me", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout invalidates the token server-side; local state is cleared by the
// session regardless of the outcome, so failures are suppressed
func (s *AuthService) Logout(ctx context.Context) error {
	_, err := s.t.Post(ctx, "/auth/logout", nil, nil, transport.WithSuppressError())
	return err
}

// ChangePasswordRequest is the change-password payload
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

// ChangePassword updates the current user's password
func (s *AuthService) ChangePassword(ctx context.Context, req ChangePasswordRequest) error {
	if err := checkPayload(req); err != nil {
		return err
	}
	_, err := s.t.Post(ctx, "/auth/change-password", req, nil)
	return err
}
