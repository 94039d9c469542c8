package api

import (
	"context"

	"github.com/google/uuid"

	"github.com/erp/console/domain/identity"
	"github.com/erp/console/transport"
)

// CompanyService wraps the company and branch endpoints
type CompanyService struct {
	t *transport.Client
}

// Current returns the current user's company
func (s *CompanyService) Current(ctx context.Context) (*identity.Company, error) {
	var out identity.Company
	if _, err := s.t.Get(ctx, "/companies/current", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateCompanyRequest is the company settings payload
type UpdateCompanyRequest struct {
	Name           string `json:"name" validate:"required"`
	Currency       string `json:"currency" validate:"required,len=3"`
	CurrencySymbol string `json:"currency_symbol" validate:"required"`
}

// Update updates the current company's settings
func (s *CompanyService) Update(ctx context.Context, req UpdateCompanyRequest) (*identity.Company, error) {
	if err := checkPayload(req); err != nil {
		return nil, err
	}
	var out identity.Company
	if _, err := s.t.Put(ctx, "/companies/current", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListBranches returns the company's branches
func (s *CompanyService) ListBranches(ctx context.Context) ([]identity.Branch, error) {
	var out []identity.Branch
	if _, err := s.t.Get(ctx, "/branches", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// BranchRequest is the create/update branch payload
type BranchRequest struct {
	Name    string `json:"name" validate:"required"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// CreateBranch creates a branch
func (s *CompanyService) CreateBranch(ctx context.Context, req BranchRequest) (*identity.Branch, error) {
	if err := checkPayload(req); err != nil {
		return nil, err
	}
	var out identity.Branch
	if _, err := s.t.Post(ctx, "/branches", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateBranch updates a branch
func (s *CompanyService) UpdateBranch(ctx context.Context, id uuid.UUID, req BranchRequest) (*identity.Branch, error) {
	if err := checkPayload(req); err != nil {
		return nil, err
	}
	var out identity.Branch
	if _, err := s.t.Put(ctx, "/branches/"+id.String(), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteBranch removes a branch
func (s *CompanyService) DeleteBranch(ctx context.Context, id uuid.UUID) error {
	return s.t.Delete(ctx, "/branches/"+id.String())
}
