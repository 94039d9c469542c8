package api

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/erp/console/domain/inventory"
	"github.com/erp/console/domain/shared"
	"github.com/erp/console/transport"
)

// InventoryService wraps the stock, movement and stock-take endpoints
type InventoryService struct {
	t *transport.Client
}

// ListItems returns stock levels for a branch
func (s *InventoryService) ListItems(ctx context.Context, opts shared.ListOptions) ([]inventory.Item, *shared.Meta, error) {
	var out []inventory.Item
	meta, err := s.t.Get(ctx, "/inventory", &out, transport.WithQuery(opts.Query()))
	if err != nil {
		return nil, nil, err
	}
	return out, meta, nil
}

// ListMovements returns the movement history
func (s *InventoryService) ListMovements(ctx context.Context, opts shared.ListOptions) ([]inventory.Movement, *shared.Meta, error) {
	var out []inventory.Movement
	meta, err := s.t.Get(ctx, "/inventory/movements", &out, transport.WithQuery(opts.Query()))
	if err != nil {
		return nil, nil, err
	}
	return out, meta, nil
}

// MovementRequest is the create-movement payload. The server rejects OUT
// movements that would drive stock negative; the console does not pre-check.
type MovementRequest struct {
	BranchID  uuid.UUID              `json:"branch_id" validate:"required"`
	ProductID uuid.UUID              `json:"product_id" validate:"required"`
	Type      inventory.MovementType `json:"type" validate:"required,oneof=IN OUT ADJ TRF"`
	Quantity  decimal.Decimal        `json:"quantity"`
	Note      string                 `json:"note"`
}

// CreateMovement records a stock movement
func (s *InventoryService) CreateMovement(ctx context.Context, req MovementRequest) (*inventory.Movement, error) {
	if err := checkPayload(req); err != nil {
		return nil, err
	}
	var out inventory.Movement
	if _, err := s.t.Post(ctx, "/inventory/movements", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListStockTakes returns the branch's stock takes
func (s *InventoryService) ListStockTakes(ctx context.Context, opts shared.ListOptions) ([]inventory.StockTake, *shared.Meta, error) {
	var out []inventory.StockTake
	meta, err := s.t.Get(ctx, "/inventory/stock-takes", &out, transport.WithQuery(opts.Query()))
	if err != nil {
		return nil, nil, err
	}
	return out, meta, nil
}

// StartStockTake opens a new count for a branch
func (s *InventoryService) StartStockTake(ctx context.Context, branchID uuid.UUID) (*inventory.StockTake, error) {
	body := map[string]string{"branch_id": branchID.String()}
	var out inventory.StockTake
	if _, err := s.t.Post(ctx, "/inventory/stock-takes", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CountRequest records one counted quantity inside a stock take
type CountRequest struct {
	ProductID uuid.UUID       `json:"product_id" validate:"required"`
	Counted   decimal.Decimal `json:"counted"`
}

// RecordCount submits one counted line
func (s *InventoryService) RecordCount(ctx context.Context, stockTakeID uuid.UUID, req CountRequest) error {
	if err := checkPayload(req); err != nil {
		return err
	}
	_, err := s.t.Post(ctx, "/inventory/stock-takes/"+stockTakeID.String()+"/items", req, nil)
	return err
}

// CompleteStockTake finalizes the count; the server applies adjustments
func (s *InventoryService) CompleteStockTake(ctx context.Context, id uuid.UUID) (*inventory.StockTake, error) {
	var out inventory.StockTake
	if _, err := s.t.Post(ctx, "/inventory/stock-takes/"+id.String()+"/complete", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CancelStockTake abandons the count without applying anything
func (s *InventoryService) CancelStockTake(ctx context.Context, id uuid.UUID) error {
	_, err := s.t.Post(ctx, "/inventory/stock-takes/"+id.String()+"/cancel", nil, nil)
	return err
}
