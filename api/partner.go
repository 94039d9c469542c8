package api

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/erp/console/domain/shared"
	"github.com/erp/console/transport"
)

// PartnerService manages customers, their payments and activity history
type PartnerService struct {
	t *transport.Client
}

// PartnerClient is a customer account the company sells to
type PartnerClient struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	Phone     string          `json:"phone"`
	TaxID     string          `json:"tax_id"`
	Address   string          `json:"address"`
	Balance   decimal.Decimal `json:"balance"`
	IsActive  bool            `json:"is_active"`
	CreatedAt string          `json:"created_at"`
}

// ClientPayment settles part of a client's outstanding credit balance
type ClientPayment struct {
	ID        uuid.UUID       `json:"id"`
	ClientID  uuid.UUID       `json:"client_id"`
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method"`
	Reference string          `json:"reference"`
	CreatedAt string          `json:"created_at"`
}

// Activity is a timeline entry attached to a client
type Activity struct {
	ID        uuid.UUID `json:"id"`
	ClientID  uuid.UUID `json:"client_id"`
	Kind      string    `json:"kind"`
	Note      string    `json:"note"`
	CreatedAt string    `json:"created_at"`
}

type ClientRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=200"`
	Email   string `json:"email" validate:"omitempty,email"`
	Phone   string `json:"phone" validate:"max=30"`
	TaxID   string `json:"tax_id" validate:"max=30"`
	Address string `json:"address" validate:"max=300"`
}

type ClientPaymentRequest struct {
	Amount    decimal.Decimal `json:"amount" validate:"required"`
	Method    string          `json:"method" validate:"required,oneof=CASH CARD TRANSFER"`
	Reference string          `json:"reference" validate:"max=100"`
}

type ActivityRequest struct {
	Kind string `json:"kind" validate:"required,oneof=CALL VISIT EMAIL NOTE"`
	Note string `json:"note" validate:"required,max=1000"`
}

func (s *PartnerService) ListClients(ctx context.Context, opts shared.ListOptions) ([]PartnerClient, *shared.Meta, error) {
	var clients []PartnerClient
	meta, err := s.t.Get(ctx, "/clients", &clients, transport.WithQuery(opts.Query()))
	if err != nil {
		return nil, nil, err
	}
	return clients, meta, nil
}

func (s *PartnerService) GetClient(ctx context.Context, id uuid.UUID) (*PartnerClient, error) {
	var client PartnerClient
	if _, err := s.t.Get(ctx, "/clients/"+id.String(), &client); err != nil {
		return nil, err
	}
	return &client, nil
}

func (s *PartnerService) CreateClient(ctx context.Context, req ClientRequest) (*PartnerClient, error) {
	if err := checkPayload(req); err != nil {
		return nil, err
	}
	var client PartnerClient
	if _, err := s.t.Post(ctx, "/clients", req, &client); err != nil {
		return nil, err
	}
	return &client, nil
}

func (s *PartnerService) UpdateClient(ctx context.Context, id uuid.UUID, req ClientRequest) (*PartnerClient, error) {
	if err := checkPayload(req); err != nil {
		return nil, err
	}
	var client PartnerClient
	if _, err := s.t.Put(ctx, "/clients/"+id.String(), req, &client); err != nil {
		return nil, err
	}
	return &client, nil
}

func (s *PartnerService) DeleteClient(ctx context.Context, id uuid.UUID) error {
	return s.t.Delete(ctx, "/clients/"+id.String())
}

func (s *PartnerService) ListPayments(ctx context.Context, clientID uuid.UUID, opts shared.ListOptions) ([]ClientPayment, *shared.Meta, error) {
	var payments []ClientPayment
	meta, err := s.t.Get(ctx, "/clients/"+clientID.String()+"/payments", &payments, transport.WithQuery(opts.Query()))
	if err != nil {
		return nil, nil, err
	}
	return payments, meta, nil
}

// RecordPayment applies a payment against the client's credit balance
func (s *PartnerService) RecordPayment(ctx context.Context, clientID uuid.UUID, req ClientPaymentRequest) (*ClientPayment, error) {
	if err := checkPayload(req); err != nil {
		return nil, err
	}
	var payment ClientPayment
	if _, err := s.t.Post(ctx, "/clients/"+clientID.String()+"/payments", req, &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}

func (s *PartnerService) ListActivities(ctx context.Context, clientID uuid.UUID, opts shared.ListOptions) ([]Activity, *shared.Meta, error) {
	var activities []Activity
	meta, err := s.t.Get(ctx, "/clients/"+clientID.String()+"/activities", &activities, transport.WithQuery(opts.Query()))
	if err != nil {
		return nil, nil, err
	}
	return activities, meta, nil
}

func (s *PartnerService) AddActivity(ctx context.Context, clientID uuid.UUID, req ActivityRequest) (*Activity, error) {
	if err := checkPayload(req); err != nil {
		return nil, err
	}
	var activity Activity
	if _, err := s.t.Post(ctx, "/clients/"+clientID.String()+"/activities", req, &activity); err != nil {
		return nil, err
	}
	return &activity, nil
}
