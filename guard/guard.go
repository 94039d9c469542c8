// Package guard gates navigation on auth and superuser state, the way the
// browser client's route guards did.
package guard

import (
	"github.com/erp/console/session"
)

// Well-known routes guards redirect to
const (
	RouteLogin     = "/login"
	RouteDashboard = "/dashboard/default"
)

// Decision is the outcome of a guard check
type Decision struct {
	Allowed    bool
	RedirectTo string // set when Allowed is false
}

func allow() Decision                 { return Decision{Allowed: true} }
func redirect(route string) Decision { return Decision{RedirectTo: route} }

// Auth protects admin-layout routes: without a current user the guard
// redirects to the login screen.
func Auth(s *session.Session) Decision {
	if !s.IsAuthenticated() {
		return redirect(RouteLogin)
	}
	return allow()
}

// Login protects the login screen itself: an already-authenticated user
// is sent to the dashboard instead.
func Login(s *session.Session) Decision {
	if s.IsAuthenticated() {
		return redirect(RouteDashboard)
	}
	return allow()
}

// Superuser protects platform-admin routes: company users are sent back
// to the dashboard.
func Superuser(s *session.Session) Decision {
	user := s.CurrentUser()
	if user == nil {
		return redirect(RouteLogin)
	}
	if !user.IsSuperuser {
		return redirect(RouteDashboard)
	}
	return allow()
}
