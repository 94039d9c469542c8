package api

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/erp/console/domain/pos"
	"github.com/erp/console/transport"
)

// POSService wraps the cash-register session and checkout endpoints
type POSService struct {
	t *transport.Client
}

// CurrentSession returns the open session for the branch, if any.
// A 404 means no session is open; it is suppressed from the notifier
// because it is an expected answer, not a failure.
func (s *POSService) CurrentSession(ctx context.Context, branchID uuid.UUID) (*pos.Session, error) {
	var out pos.Session
	_, err := s.t.Get(ctx, "/pos/sessions/current?branch_id="+branchID.String(), &out,
		transport.WithSuppressError())
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// OpenSession opens a cash-register session with an opening float
func (s *POSService) OpenSession(ctx context.Context, branchID uuid.UUID, openingAmount decimal.Decimal) (*pos.Session, error) {
	body := map[string]any{
		"branch_id":      branchID.String(),
		"opening_amount": openingAmount,
	}
	var out pos.Session
	if _, err := s.t.Post(ctx, "/pos/sessions", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CloseSession closes a session with the counted drawer amount
func (s *POSService) CloseSession(ctx context.Context, sessionID uuid.UUID, countedAmount decimal.Decimal) (*pos.Session, error) {
	body := map[string]any{"counted_amount": countedAmount}
	var out pos.Session
	if _, err := s.t.Post(ctx, "/pos/sessions/"+sessionID.String()+"/close", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CheckoutResult is the server's answer to a checkout POST
type CheckoutResult struct {
	SaleID     uuid.UUID `json:"sale_id"`
	SaleNumber string    `json:"sale_number"`
}

// Checkout submits the cart as a single non-idempotent POST. There is no
// client-side retry or dedup beyond the cart's submitting gate; the
// request payload comes from pos.Cart.BeginCheckout.
func (s *POSService) Checkout(ctx context.Context, req *pos.CheckoutRequest) (*CheckoutResult, error) {
	var out CheckoutResult
	if _, err := s.t.Post(ctx, "/pos/checkout", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
