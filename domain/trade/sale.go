// Package trade holds the client-side view of sales, purchases and returns,
// including the status machines the console reflects in its screens.
package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleStatus represents the status of a sale
type SaleStatus string

const (
	SaleStatusQuote      SaleStatus = "QUOTE"
	SaleStatusDraft      SaleStatus = "DRAFT"
	SaleStatusConfirmed  SaleStatus = "CONFIRMED"
	SaleStatusPicking    SaleStatus = "PICKING"
	SaleStatusPacking    SaleStatus = "PACKING"
	SaleStatusDispatched SaleStatus = "DISPATCHED"
	SaleStatusDelivered  SaleStatus = "DELIVERED"
	SaleStatusCompleted  SaleStatus = "COMPLETED"
	SaleStatusCancelled  SaleStatus = "CANCELLED"
)

// saleSequence is the monotonic fulfilment path
var saleSequence = []SaleStatus{
	SaleStatusQuote,
	SaleStatusDraft,
	SaleStatusConfirmed,
	SaleStatusPicking,
	SaleStatusPacking,
	SaleStatusDispatched,
	SaleStatusDelivered,
	SaleStatusCompleted,
}

// IsValid checks if the status is a known SaleStatus
func (s SaleStatus) IsValid() bool {
	if s == SaleStatusCancelled {
		return true
	}
	return s.sequenceIndex() >= 0
}

// String returns the string representation of SaleStatus
func (s SaleStatus) String() string {
	return string(s)
}

// IsTerminal reports whether no further transition is possible
func (s SaleStatus) IsTerminal() bool {
	return s == SaleStatusCompleted || s == SaleStatusCancelled
}

func (s SaleStatus) sequenceIndex() int {
	for i, st := range saleSequence {
		if st == s {
			return i
		}
	}
	return -1
}

// CanTransitionTo checks if the status can transition to the target status.
// Transitions are monotonic along the fulfilment sequence; CANCELLED is
// reachable from every non-terminal state.
func (s SaleStatus) CanTransitionTo(target SaleStatus) bool {
	if s.IsTerminal() {
		return false
	}
	if target == SaleStatusCancelled {
		return true
	}
	from, to := s.sequenceIndex(), target.sequenceIndex()
	if from < 0 || to < 0 {
		return false
	}
	return to == from+1
}

// Sale is an order aggregate as rendered by the console
type Sale struct {
	ID            uuid.UUID       `json:"id"`
	CompanyID     uuid.UUID       `json:"company_id"`
	BranchID      uuid.UUID       `json:"branch_id"`
	ClientID      *uuid.UUID      `json:"client_id,omitempty"`
	Number        string          `json:"number"`
	Status        SaleStatus      `json:"status"`
	Items         []SaleItem      `json:"items,omitempty"`
	Payments      []Payment       `json:"payments,omitempty"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	DiscountTotal decimal.Decimal `json:"discount_total"`
	Total         decimal.Decimal `json:"total"`
	Note          string          `json:"note"`
	CreatedBy     uuid.UUID       `json:"created_by"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// SaleItem is a line item in a sale
type SaleItem struct {
	ID          uuid.UUID       `json:"id"`
	SaleID      uuid.UUID       `json:"sale_id"`
	ProductID   uuid.UUID       `json:"product_id"`
	VariantID   *uuid.UUID      `json:"variant_id,omitempty"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Discount    decimal.Decimal `json:"discount"`
	Amount      decimal.Decimal `json:"amount"`
}

// PaymentMethod is how a sale was settled
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "CASH"
	PaymentCard     PaymentMethod = "CARD"
	PaymentTransfer PaymentMethod = "TRANSFER"
	PaymentCredit   PaymentMethod = "CREDIT"
)

// IsValid checks if the value is a known PaymentMethod
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentTransfer, PaymentCredit:
		return true
	}
	return false
}

// Payment records one settlement against a sale
type Payment struct {
	ID        uuid.UUID       `json:"id"`
	SaleID    uuid.UUID       `json:"sale_id"`
	Method    PaymentMethod   `json:"method"`
	Amount    decimal.Decimal `json:"amount"`
	Reference string          `json:"reference"`
	CreatedAt time.Time       `json:"created_at"`
}
