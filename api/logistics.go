package api

import (
	"context"
	"net/url"

	"github.com/google/uuid"

	"github.com/erp/console/domain/logistics"
	"github.com/erp/console/transport"
)

// LogisticsService wraps the picking/packing board endpoints
type LogisticsService struct {
	t *transport.Client
}

// GetBoard fetches the board snapshot from the source of truth
func (s *LogisticsService) GetBoard(ctx context.Context, branchID uuid.UUID) (*logistics.Board, error) {
	q := url.Values{}
	if branchID != uuid.Nil {
		q.Set("branch_id", branchID.String())
	}
	var cards []logistics.Card
	_, err := s.t.Get(ctx, "/logistics/board", &cards, transport.WithQuery(q))
	if err != nil {
		return nil, err
	}
	return logistics.NewBoard(cards), nil
}

// MoveCard asks the server to advance an order to the target stage.
// Callers must re-fetch the board after a successful move and leave the
// rendered board untouched after a failed one; the Board value itself is
// never mutated, so a failed request cannot leak an optimistic move.
func (s *LogisticsService) MoveCard(ctx context.Context, saleID uuid.UUID, target logistics.Stage) error {
	body := map[string]string{"stage": string(target)}
	_, err := s.t.Post(ctx, "/logistics/board/"+saleID.String()+"/move", body, nil)
	return err
}

// PackageRequest records parcel details for a dispatched order
type PackageRequest struct {
	SaleID      uuid.UUID `json:"sale_id" validate:"required"`
	Carrier     string    `json:"carrier" validate:"required"`
	TrackingRef string    `json:"tracking_ref"`
	Weight      string    `json:"weight"`
}

// CreatePackage registers a parcel for a dispatched sale
func (s *LogisticsService) CreatePackage(ctx context.Context, req PackageRequest) error {
	if err := checkPayload(req); err != nil {
		return err
	}
	_, err := s.t.Post(ctx, "/logistics/packages", req, nil)
	return err
}
