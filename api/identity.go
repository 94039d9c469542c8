package api

import (
	"context"

	"github.com/google/uuid"

	"github.com/erp/console/domain/identity"
	"github.com/erp/console/domain/shared"
	"github.com/erp/console/transport"
)

// IdentityService wraps the user and role endpoints
type IdentityService struct {
	t *transport.Client
}

// ListUsers returns the company's users
func (s *IdentityService) ListUsers(ctx context.Context, opts shared.ListOptions) ([]identity.User, *shared.Meta, error) {
	var out []identity.User
	meta, err := s.t.Get(ctx, "/users", &out, transport.WithQuery(opts.Query()))
	if err != nil {
		return nil, nil, err
	}
	return out, meta, nil
}

// GetUser returns one user
func (s *IdentityService) GetUser(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	var out identity.User
	if _, err := s.t.Get(ctx, "/users/"+id.String(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateUserRequest is the create-user payload
type CreateUserRequest struct {
	Email    string     `json:"email" validate:"required,email"`
	FullName string     `json:"full_name" validate:"required"`
	Password string     `json:"password" validate:"required,min=8"`
	RoleID   uuid.UUID  `json:"role_id" validate:"required"`
	BranchID *uuid.UUID `json:"branch_id,omitempty"`
}

// CreateUser creates a user under the current company
func (s *IdentityService) CreateUser(ctx context.Context, req CreateUserRequest) (*identity.User, error) {
	if err := checkPayload(req); err != nil {
		return nil, err
	}
	var out identity.User
	if _, err := s.t.Post(ctx, "/users", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateUserRequest is the update-user payload
type UpdateUserRequest struct {
	FullName string     `json:"full_name,omitempty"`
	RoleID   *uuid.UUID `json:"role_id,omitempty"`
	BranchID *uuid.UUID `json:"branch_id,omitempty"`
	IsActive *bool      `json:"is_active,omitempty"`
}

// UpdateUser updates a user
func (s *IdentityService) UpdateUser(ctx context.Context, id uuid.UUID, req UpdateUserRequest) (*identity.User, error) {
	var out identity.User
	if _, err := s.t.Put(ctx, "/users/"+id.String(), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteUser removes a user
func (s *IdentityService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return s.t.Delete(ctx, "/users/"+id.String())
}

// ListRoles returns the company's roles
func (s *IdentityService) ListRoles(ctx context.Context, opts shared.ListOptions) ([]identity.Role, *shared.Meta, error) {
	var out []identity.Role
	meta, err := s.t.Get(ctx, "/roles", &out, transport.WithQuery(opts.Query()))
	if err != nil {
		return nil, nil, err
	}
	return out, meta, nil
}

// RoleRequest is the create/update role payload
type RoleRequest struct {
	Name        string                 `json:"name" validate:"required"`
	Description string                 `json:"description"`
	Permissions identity.PermissionMap `json:"permissions" validate:"required"`
}

// CreateRole creates a role
func (s *IdentityService) CreateRole(ctx context.Context, req RoleRequest) (*identity.Role, error) {
	if err := checkPayload(req); err != nil {
		return nil, err
	}
	var out identity.Role
	if _, err := s.t.Post(ctx, "/roles", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateRole updates a role
func (s *IdentityService) UpdateRole(ctx context.Context, id uuid.UUID, req RoleRequest) (*identity.Role, error) {
	if err := checkPayload(req); err != nil {
		return nil, err
	}
	var out identity.Role
	if _, err := s.t.Put(ctx, "/roles/"+id.String(), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteRole removes a role
func (s *IdentityService) DeleteRole(ctx context.Context, id uuid.UUID) error {
	return s.t.Delete(ctx, "/roles/"+id.String())
}
