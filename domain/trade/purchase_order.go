package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PurchaseStatus represents the status of a purchase order
type PurchaseStatus string

const (
	PurchaseStatusDraft      PurchaseStatus = "DRAFT"
	PurchaseStatusValidation PurchaseStatus = "VALIDATION"
	PurchaseStatusConfirmed  PurchaseStatus = "CONFIRMED"
	PurchaseStatusReceived   PurchaseStatus = "RECEIVED"
	PurchaseStatusCancelled  PurchaseStatus = "CANCELLED"
)

// IsValid checks if the status is a known PurchaseStatus
func (s PurchaseStatus) IsValid() bool {
	switch s {
	case PurchaseStatusDraft, PurchaseStatusValidation, PurchaseStatusConfirmed,
		PurchaseStatusReceived, PurchaseStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of PurchaseStatus
func (s PurchaseStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s PurchaseStatus) CanTransitionTo(target PurchaseStatus) bool {
	switch s {
	case PurchaseStatusDraft:
		return target == PurchaseStatusValidation || target == PurchaseStatusCancelled
	case PurchaseStatusValidation:
		return target == PurchaseStatusConfirmed || target == PurchaseStatusCancelled
	case PurchaseStatusConfirmed:
		return target == PurchaseStatusReceived || target == PurchaseStatusCancelled
	case PurchaseStatusReceived, PurchaseStatusCancelled:
		return false // Terminal states
	}
	return false
}

// PurchaseOrder is a supplier order aggregate
type PurchaseOrder struct {
	ID         uuid.UUID           `json:"id"`
	CompanyID  uuid.UUID           `json:"company_id"`
	BranchID   uuid.UUID           `json:"branch_id"`
	SupplierID uuid.UUID           `json:"supplier_id"`
	Number     string              `json:"number"`
	Status     PurchaseStatus      `json:"status"`
	Items      []PurchaseOrderItem `json:"items,omitempty"`
	Total      decimal.Decimal     `json:"total"`
	ExpectedAt *time.Time          `json:"expected_at,omitempty"`
	CreatedBy  uuid.UUID           `json:"created_by"`
	CreatedAt  time.Time           `json:"created_at"`
}

// PurchaseOrderItem is a line item in a purchase order
type PurchaseOrderItem struct {
	ID          uuid.UUID       `json:"id"`
	OrderID     uuid.UUID       `json:"order_id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	Received    decimal.Decimal `json:"received"`
}
