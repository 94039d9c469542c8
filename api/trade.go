package api

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/erp/console/domain/shared"
	"github.com/erp/console/domain/trade"
	"github.com/erp/console/transport"
)

// TradeService wraps the sale, purchase and return endpoints
type TradeService struct {
	t *transport.Client
}

// ListSales returns sales, filterable by status
func (s *TradeService) ListSales(ctx context.Context, opts shared.ListOptions) ([]trade.Sale, *shared.Meta, error) {
	var out []trade.Sale
	meta, err := s.t.Get(ctx, "/sales", &out, transport.WithQuery(opts.Query()))
	if err != nil {
		return nil, nil, err
	}
	return out, meta, nil
}

// GetSale returns one sale with items and payments
func (s *TradeService) GetSale(ctx context.Context, id uuid.UUID) (*trade.Sale, error) {
	var out trade.Sale
	if _, err := s.t.Get(ctx, "/sales/"+id.String(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateSaleStatus asks the server to move a sale along its lifecycle.
// The server enforces the transition rules; the console only mirrors them
// for optimistic UI checks via trade.SaleStatus.CanTransitionTo.
func (s *TradeService) UpdateSaleStatus(ctx context.Context, id uuid.UUID, status trade.SaleStatus) (*trade.Sale, error) {
	body := map[string]string{"status": status.String()}
	var out trade.Sale
	if _, err := s.t.Patch(ctx, "/sales/"+id.String()+"/status", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CancelSale cancels a sale
func (s *TradeService) CancelSale(ctx context.Context, id uuid.UUID, reason string) error {
	body := map[string]string{"reason": reason}
	_, err := s.t.Post(ctx, "/sales/"+id.String()+"/cancel", body, nil)
	return err
}

// ListPurchases returns purchase orders
func (s *TradeService) ListPurchases(ctx context.Context, opts shared.ListOptions) ([]trade.PurchaseOrder, *shared.Meta, error) {
	var out []trade.PurchaseOrder
	meta, err := s.t.Get(ctx, "/purchases", &out, transport.WithQuery(opts.Query()))
	if err != nil {
		return nil, nil, err
	}
	return out, meta, nil
}

// PurchaseItemRequest is one line of a purchase order payload
type PurchaseItemRequest struct {
	ProductID uuid.UUID       `json:"product_id" validate:"required"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
}

// PurchaseRequest is the create purchase order payload
type PurchaseRequest struct {
	SupplierID uuid.UUID             `json:"supplier_id" validate:"required"`
	BranchID   uuid.UUID             `json:"branch_id" validate:"required"`
	Items      []PurchaseItemRequest `json:"items" validate:"required,min=1,dive"`
}

// CreatePurchase creates a draft purchase order
func (s *TradeService) CreatePurchase(ctx context.Context, req PurchaseRequest) (*trade.PurchaseOrder, error) {
	if err := checkPayload(req); err != nil {
		return nil, err
	}
	var out trade.PurchaseOrder
	if _, err := s.t.Post(ctx, "/purchases", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdatePurchaseStatus moves a purchase order along its lifecycle
func (s *TradeService) UpdatePurchaseStatus(ctx context.Context, id uuid.UUID, status trade.PurchaseStatus) (*trade.PurchaseOrder, error) {
	body := map[string]string{"status": status.String()}
	var out trade.PurchaseOrder
	if _, err := s.t.Patch(ctx, "/purchases/"+id.String()+"/status", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListReturns returns return orders
func (s *TradeService) ListReturns(ctx context.Context, opts shared.ListOptions) ([]trade.ReturnOrder, *shared.Meta, error) {
	var out []trade.ReturnOrder
	meta, err := s.t.Get(ctx, "/returns", &out, transport.WithQuery(opts.Query()))
	if err != nil {
		return nil, nil, err
	}
	return out, meta, nil
}

// ReturnItemRequest is one returned line
type ReturnItemRequest struct {
	SaleItemID uuid.UUID       `json:"sale_item_id" validate:"required"`
	Quantity   decimal.Decimal `json:"quantity"`
}

// ReturnRequest is the create return payload
type ReturnRequest struct {
	SaleID uuid.UUID           `json:"sale_id" validate:"required"`
	Reason string              `json:"reason" validate:"required"`
	Items  []ReturnItemRequest `json:"items" validate:"required,min=1,dive"`
}

// CreateReturn files a return against a sale
func (s *TradeService) CreateReturn(ctx context.Context, req ReturnRequest) (*trade.ReturnOrder, error) {
	if err := checkPayload(req); err != nil {
		return nil, err
	}
	var out trade.ReturnOrder
	if _, err := s.t.Post(ctx, "/returns", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ApproveReturn approves a pending return
func (s *TradeService) ApproveReturn(ctx context.Context, id uuid.UUID) error {
	_, err := s.t.Post(ctx, "/returns/"+id.String()+"/approve", nil, nil)
	return err
}

// RejectReturn rejects a pending return
func (s *TradeService) RejectReturn(ctx context.Context, id uuid.UUID, reason string) error {
	body := map[string]string{"reason": reason}
	_, err := s.t.Post(ctx, "/returns/"+id.String()+"/reject", body, nil)
	return err
}
