// Package identity holds the client-side view of users, companies, roles
// and the permission predicate the console evaluates locally.
package identity

import (
	"time"

	"github.com/google/uuid"
)

// User is the authenticated account as returned by GET /auth/me.
// The server owns this record; the console only holds a transient copy.
type User struct {
	ID          uuid.UUID  `json:"id"`
	Email       string     `json:"email"`
	FullName    string     `json:"full_name"`
	CompanyID   uuid.UUID  `json:"company_id"`
	BranchID    *uuid.UUID `json:"branch_id,omitempty"`
	IsSuperuser bool       `json:"is_superuser"`
	IsActive    bool       `json:"is_active"`
	Role        *Role      `json:"role,omitempty"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// DisplayName returns the full name, falling back to the email address
func (u *User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Email
}

// Company is the tenant the current user belongs to
type Company struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Currency       string    `json:"currency"`
	CurrencySymbol string    `json:"currency_symbol"`
	Plan           string    `json:"plan"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
}

// Branch is a physical location (warehouse/store) under a company
type Branch struct {
	ID        uuid.UUID `json:"id"`
	CompanyID uuid.UUID `json:"company_id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	IsMain    bool      `json:"is_main"`
}
