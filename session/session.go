// Package session holds the console's auth state: the bearer token and
// the current user/company, mirrored to the persistent store and
// broadcast to subscribers on every change. It replaces what the browser
// client kept in ambient singletons with one explicitly-owned object:
// only the auth flow and the admin impersonation flow write to it.
package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/erp/console/domain/identity"
	"github.com/erp/console/domain/shared"
	"github.com/erp/console/store"
)

// Snapshot is the state handed to subscribers
type Snapshot struct {
	User          *identity.User
	Company       *identity.Company
	Authenticated bool
	Impersonating bool
}

// Session is the process-wide auth state holder
type Session struct {
	mu            sync.RWMutex
	token         string
	user          *identity.User
	company       *identity.Company
	impersonating bool
	saved         *savedIdentity // operator identity during impersonation

	store  *store.Store
	logger *zap.Logger

	subMu       sync.Mutex
	subscribers map[int]func(Snapshot)
	nextSubID   int
}

type savedIdentity struct {
	token   string
	user    *identity.User
	company *identity.Company
}

// New creates an empty session backed by the given store
func New(st *store.Store, log *zap.Logger) *Session {
	return &Session{
		store:       st,
		logger:      log.Named("session"),
		subscribers: make(map[int]func(Snapshot)),
	}
}

// Restore loads the persisted identity, if any, from the store. A missing
// or partially-missing state leaves the session logged out.
func (s *Session) Restore() error {
	token, ok, err := s.store.Get(store.KeyAccessToken)
	if err != nil {
		return fmt.Errorf("restoring session: %w", err)
	}
	if !ok || token == "" {
		return nil
	}

	var user identity.User
	haveUser, err := s.store.GetJSON(store.KeyCurrentUser, &user)
	if err != nil {
		return fmt.Errorf("restoring session user: %w", err)
	}
	if !haveUser {
		return nil
	}

	var company identity.Company
	haveCompany, err := s.store.GetJSON(store.KeyCurrentCompany, &company)
	if err != nil {
		return fmt.Errorf("restoring session company: %w", err)
	}

	s.mu.Lock()
	s.token = token
	s.user = &user
	if haveCompany {
		s.company = &company
	}
	s.mu.Unlock()

	s.logger.Debug("session restored", zap.String("user", user.Email))
	s.notify()
	return nil
}

// SetAuth installs a fresh login result and persists it
func (s *Session) SetAuth(token string, user *identity.User, company *identity.Company) error {
	s.mu.Lock()
	s.token = token
	s.user = user
	s.company = company
	s.impersonating = false
	s.saved = nil
	s.mu.Unlock()

	if err := s.persist(token, user, company); err != nil {
		return err
	}
	s.notify()
	return nil
}

func (s *Session) persist(token string, user *identity.User, company *identity.Company) error {
	if err := s.store.Set(store.KeyAccessToken, token); err != nil {
		return err
	}
	if err := s.store.SetJSON(store.KeyCurrentUser, user); err != nil {
		return err
	}
	if company != nil {
		if err := s.store.SetJSON(store.KeyCurrentCompany, company); err != nil {
			return err
		}
	}
	return nil
}

// Token returns the current bearer token, empty when logged out
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// CurrentUser returns the current user, nil when logged out
func (s *Session) CurrentUser() *identity.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// CurrentCompany returns the current company, nil when logged out
func (s *Session) CurrentCompany() *identity.Company {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.company
}

// IsAuthenticated reports whether a user is present
func (s *Session) IsAuthenticated() bool {
	return s.CurrentUser() != nil
}

// IsImpersonating reports whether an admin is acting as another user
func (s *Session) IsImpersonating() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.impersonating
}

// RefreshUser replaces the user snapshot after a profile reload
func (s *Session) RefreshUser(user *identity.User) error {
	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
	if err := s.store.SetJSON(store.KeyCurrentUser, user); err != nil {
		return err
	}
	s.notify()
	return nil
}

// RefreshCompany replaces the company snapshot
func (s *Session) RefreshCompany(company *identity.Company) error {
	s.mu.Lock()
	s.company = company
	s.mu.Unlock()
	if err := s.store.SetJSON(store.KeyCurrentCompany, company); err != nil {
		return err
	}
	s.notify()
	return nil
}

// Impersonate swaps the session to the target identity, keeping the
// operator's own identity for EndImpersonation
func (s *Session) Impersonate(token string, user *identity.User, company *identity.Company) error {
	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		return shared.ErrNotAuthenticated
	}
	if !s.impersonating {
		s.saved = &savedIdentity{token: s.token, user: s.user, company: s.company}
	}
	s.token = token
	s.user = user
	s.company = company
	s.impersonating = true
	s.mu.Unlock()

	if err := s.persist(token, user, company); err != nil {
		return err
	}
	s.logger.Info("impersonation started", zap.String("as", user.Email))
	s.notify()
	return nil
}

// EndImpersonation restores the operator identity saved by Impersonate
func (s *Session) EndImpersonation() error {
	s.mu.Lock()
	if !s.impersonating || s.saved == nil {
		s.mu.Unlock()
		return fmt.Errorf("no impersonation in progress")
	}
	saved := s.saved
	s.token = saved.token
	s.user = saved.user
	s.company = saved.company
	s.impersonating = false
	s.saved = nil
	s.mu.Unlock()

	if err := s.persist(saved.token, saved.user, saved.company); err != nil {
		return err
	}
	s.logger.Info("impersonation ended")
	s.notify()
	return nil
}

// Clear logs the session out and wipes the persisted identity
func (s *Session) Clear() error {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.company = nil
	s.impersonating = false
	s.saved = nil
	s.mu.Unlock()

	for _, key := range []string{store.KeyAccessToken, store.KeyCurrentUser, store.KeyCurrentCompany} {
		if err := s.store.Delete(key); err != nil {
			return err
		}
	}
	s.notify()
	return nil
}

// TokenExpired inspects the stored JWT's exp claim without verifying the
// signature; the server remains the authority and will 401 regardless.
// A missing or unparseable token counts as expired.
func (s *Session) TokenExpired() bool {
	token := s.Token()
	if token == "" {
		return true
	}

	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return true
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return true
	}
	return exp.Before(time.Now())
}

// OnChange registers a subscriber called after every state change. The
// returned function unsubscribes; calling it more than once is harmless.
func (s *Session) OnChange(fn func(Snapshot)) (unsubscribe func()) {
	s.subMu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subscribers, id)
		s.subMu.Unlock()
	}
}

// Snapshot returns the current state
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		User:          s.user,
		Company:       s.company,
		Authenticated: s.user != nil,
		Impersonating: s.impersonating,
	}
}

func (s *Session) notify() {
	snap := s.Snapshot()

	s.subMu.Lock()
	subs := make([]func(Snapshot), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subs = append(subs, fn)
	}
	s.subMu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}
