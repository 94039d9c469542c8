// Package inventory holds the client-side view of stock levels, movements
// and stock-take reconciliations.
package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MovementType classifies an inventory movement
type MovementType string

const (
	MovementIn       MovementType = "IN"
	MovementOut      MovementType = "OUT"
	MovementAdjust   MovementType = "ADJ"
	MovementTransfer MovementType = "TRF"
)

// IsValid checks if the value is a known MovementType
func (t MovementType) IsValid() bool {
	switch t {
	case MovementIn, MovementOut, MovementAdjust, MovementTransfer:
		return true
	}
	return false
}

// Item is the quantity of one product held at one branch
type Item struct {
	ID        uuid.UUID       `json:"id"`
	CompanyID uuid.UUID       `json:"company_id"`
	BranchID  uuid.UUID       `json:"branch_id"`
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	MinLevel  decimal.Decimal `json:"min_level"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// BelowMinimum reports whether the quantity has dropped under the alert level
func (i *Item) BelowMinimum() bool {
	return i.Quantity.LessThan(i.MinLevel)
}

// Movement records one stock change; the server enforces that OUT movements
// never drive quantity negative
type Movement struct {
	ID        uuid.UUID       `json:"id"`
	CompanyID uuid.UUID       `json:"company_id"`
	BranchID  uuid.UUID       `json:"branch_id"`
	ProductID uuid.UUID       `json:"product_id"`
	Type      MovementType    `json:"type"`
	Quantity  decimal.Decimal `json:"quantity"`
	Reference string          `json:"reference"`
	Note      string          `json:"note"`
	CreatedBy uuid.UUID       `json:"created_by"`
	CreatedAt time.Time       `json:"created_at"`
}

// StockTakeStatus is the lifecycle of a stock take
type StockTakeStatus string

const (
	StockTakeInProgress StockTakeStatus = "IN_PROGRESS"
	StockTakeCompleted  StockTakeStatus = "COMPLETED"
	StockTakeCancelled  StockTakeStatus = "CANCELLED"
)

// IsTerminal reports whether the stock take can no longer change
func (s StockTakeStatus) IsTerminal() bool {
	return s == StockTakeCompleted || s == StockTakeCancelled
}

// StockTake is an inventory count reconciliation session
type StockTake struct {
	ID          uuid.UUID       `json:"id"`
	CompanyID   uuid.UUID       `json:"company_id"`
	BranchID    uuid.UUID       `json:"branch_id"`
	Status      StockTakeStatus `json:"status"`
	Items       []StockTakeItem `json:"items,omitempty"`
	StartedBy   uuid.UUID       `json:"started_by"`
	StartedAt   time.Time       `json:"started_at"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
}

// StockTakeItem compares the expected quantity against the counted one
type StockTakeItem struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"product_id"`
	Expected  decimal.Decimal `json:"expected"`
	Counted   decimal.Decimal `json:"counted"`
}

// Variance returns counted minus expected
func (i StockTakeItem) Variance() decimal.Decimal {
	return i.Counted.Sub(i.Expected)
}
