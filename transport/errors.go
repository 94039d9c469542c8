package transport

import (
	"fmt"
	"net/http"
)

// Kind buckets an API failure the way the console reacts to it
type Kind string

const (
	KindValidation Kind = "validation" // 422, field-level messages attached
	KindAuth       Kind = "auth"       // 401, forces logout
	KindForbidden  Kind = "forbidden"  // 403
	KindNotFound   Kind = "not_found"  // 404
	KindPlanLimit  Kind = "plan_limit" // 402, surfaced as a warning
	KindServer     Kind = "server"     // 5xx
	KindNetwork    Kind = "network"    // transport failure, no status
	KindUnknown    Kind = "unknown"    // everything else
)

// APIError is a non-2xx response converted to an error. It keeps the
// server's error code/message plus the HTTP status so local handlers can
// still distinguish cases after the global notifier ran.
type APIError struct {
	Kind       Kind
	StatusCode int
	Code       string            // server error code, e.g. "INSUFFICIENT_STOCK"
	Message    string            // server-provided detail
	Fields     map[string]string // field-level validation messages (422 only)
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Kind == KindNetwork {
		return fmt.Sprintf("network error: %s", e.Message)
	}
	if e.Code != "" {
		return fmt.Sprintf("api error %d (%s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// IsAuth reports whether the error is a 401
func (e *APIError) IsAuth() bool { return e.Kind == KindAuth }

// kindForStatus maps an HTTP status to the console's error taxonomy
func kindForStatus(status int) Kind {
	switch {
	case status == http.StatusUnprocessableEntity:
		return KindValidation
	case status == http.StatusUnauthorized:
		return KindAuth
	case status == http.StatusForbidden:
		return KindForbidden
	case status == http.StatusNotFound:
		return KindNotFound
	case status == http.StatusPaymentRequired:
		return KindPlanLimit
	case status >= 500:
		return KindServer
	case status == 0:
		return KindNetwork
	default:
		return KindUnknown
	}
}

// newNetworkError wraps a transport-level failure (status 0 bucket)
func newNetworkError(err error) *APIError {
	return &APIError{
		Kind:    KindNetwork,
		Message: err.Error(),
	}
}
