package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotAuthenticated  = NewDomainError("NOT_AUTHENTICATED", "No authenticated user")
	ErrInvalidInput      = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrInvalidState      = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrInsufficientStock = NewDomainError("INSUFFICIENT_STOCK", "Insufficient stock available")
	ErrEmptyCart         = NewDomainError("EMPTY_CART", "Cart has no lines")
	ErrInsufficientPaid  = NewDomainError("INSUFFICIENT_PAID", "Paid amount is less than the total")
	ErrSubmitInFlight    = NewDomainError("SUBMIT_IN_FLIGHT", "A submission is already in progress")
)
