// Package pos holds the point-of-sale cart state machine and the
// cash-register session the console drives.
package pos

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SessionStatus is the lifecycle of a cash-register session
type SessionStatus string

const (
	SessionOpen   SessionStatus = "OPEN"
	SessionClosed SessionStatus = "CLOSED"
)

// Session is a cash-register session with opening/counted/expected amounts
type Session struct {
	ID             uuid.UUID       `json:"id"`
	CompanyID      uuid.UUID       `json:"company_id"`
	BranchID       uuid.UUID       `json:"branch_id"`
	Status         SessionStatus   `json:"status"`
	OpeningAmount  decimal.Decimal `json:"opening_amount"`
	CountedAmount  decimal.Decimal `json:"counted_amount"`
	ExpectedAmount decimal.Decimal `json:"expected_amount"`
	OpenedBy       uuid.UUID       `json:"opened_by"`
	OpenedAt       time.Time       `json:"opened_at"`
	ClosedAt       *time.Time      `json:"closed_at,omitempty"`
}

// Difference returns counted minus expected for a closed session
func (s *Session) Difference() decimal.Decimal {
	return s.CountedAmount.Sub(s.ExpectedAmount)
}

// IsOpen reports whether sales can still be registered against the session
func (s *Session) IsOpen() bool {
	return s.Status == SessionOpen
}
