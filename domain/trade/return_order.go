package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReturnStatus represents the status of a return order
type ReturnStatus string

const (
	ReturnStatusPending  ReturnStatus = "PENDING"
	ReturnStatusApproved ReturnStatus = "APPROVED"
	ReturnStatusRejected ReturnStatus = "REJECTED"
)

// IsValid checks if the status is a known ReturnStatus
func (s ReturnStatus) IsValid() bool {
	switch s {
	case ReturnStatusPending, ReturnStatusApproved, ReturnStatusRejected:
		return true
	}
	return false
}

// CanTransitionTo checks if the status can transition to the target status
func (s ReturnStatus) CanTransitionTo(target ReturnStatus) bool {
	if s != ReturnStatusPending {
		return false
	}
	return target == ReturnStatusApproved || target == ReturnStatusRejected
}

// ReturnOrder is a refund request tied to a sale
type ReturnOrder struct {
	ID        uuid.UUID       `json:"id"`
	CompanyID uuid.UUID       `json:"company_id"`
	SaleID    uuid.UUID       `json:"sale_id"`
	Status    ReturnStatus    `json:"status"`
	Items     []ReturnItem    `json:"items,omitempty"`
	Total     decimal.Decimal `json:"total"`
	Reason    string          `json:"reason"`
	CreatedBy uuid.UUID       `json:"created_by"`
	CreatedAt time.Time       `json:"created_at"`
}

// ReturnItem is one returned line of the original sale
type ReturnItem struct {
	ID         uuid.UUID       `json:"id"`
	ReturnID   uuid.UUID       `json:"return_id"`
	SaleItemID uuid.UUID       `json:"sale_item_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	Amount     decimal.Decimal `json:"amount"`
}
