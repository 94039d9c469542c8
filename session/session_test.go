package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/erp/console/domain/identity"
	"github.com/erp/console/domain/shared"
	"github.com/erp/console/store"
)

func createTestSession(t *testing.T) (*Session, *store.Store) {
	t.Helper()
	st, err := store.Open(":memory:", zap.NewNop())
	require.NoError(t, err)
	return New(st, zap.NewNop()), st
}

func createTestIdentity() (*identity.User, *identity.Company) {
	companyID := uuid.New()
	user := &identity.User{
		ID:        uuid.New(),
		Email:     "owner@acme.test",
		FullName:  "Acme Owner",
		CompanyID: companyID,
	}
	company := &identity.Company{ID: companyID, Name: "Acme", Currency: "USD", CurrencySymbol: "$"}
	return user, company
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user",
		"exp": exp.Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestSessionSetAuthAndClear(t *testing.T) {
	s, st := createTestSession(t)
	user, company := createTestIdentity()

	assert.False(t, s.IsAuthenticated())

	require.NoError(t, s.SetAuth("tok", user, company))
	assert.True(t, s.IsAuthenticated())
	assert.Equal(t, "tok", s.Token())
	assert.Equal(t, user.Email, s.CurrentUser().Email)
	assert.Equal(t, company.Name, s.CurrentCompany().Name)

	// Persisted under the fixed keys
	v, ok, err := st.Get(store.KeyAccessToken)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "tok", v)

	require.NoError(t, s.Clear())
	assert.False(t, s.IsAuthenticated())
	assert.Empty(t, s.Token())
	_, ok, _ = st.Get(store.KeyAccessToken)
	assert.False(t, ok)
}

func TestSessionRestore(t *testing.T) {
	s, st := createTestSession(t)
	user, company := createTestIdentity()
	require.NoError(t, s.SetAuth("tok", user, company))

	// A second session over the same store picks the identity back up
	fresh := New(st, zap.NewNop())
	require.NoError(t, fresh.Restore())
	assert.True(t, fresh.IsAuthenticated())
	assert.Equal(t, user.Email, fresh.CurrentUser().Email)
	assert.Equal(t, company.ID, fresh.CurrentCompany().ID)
}

func TestSessionRestoreEmptyStore(t *testing.T) {
	s, _ := createTestSession(t)
	require.NoError(t, s.Restore())
	assert.False(t, s.IsAuthenticated())
}

func TestSessionSubscribers(t *testing.T) {
	s, _ := createTestSession(t)
	user, company := createTestIdentity()

	var got []Snapshot
	unsubscribe := s.OnChange(func(snap Snapshot) { got = append(got, snap) })

	require.NoError(t, s.SetAuth("tok", user, company))
	require.Len(t, got, 1)
	assert.True(t, got[0].Authenticated)

	require.NoError(t, s.Clear())
	require.Len(t, got, 2)
	assert.False(t, got[1].Authenticated)

	unsubscribe()
	require.NoError(t, s.SetAuth("tok2", user, company))
	assert.Len(t, got, 2, "unsubscribed observer must not fire")
}

func TestSessionImpersonation(t *testing.T) {
	s, _ := createTestSession(t)
	operator, operatorCo := createTestIdentity()
	operator.IsSuperuser = true
	require.NoError(t, s.SetAuth("op-tok", operator, operatorCo))

	target, targetCo := createTestIdentity()
	target.Email = "user@tenant.test"

	require.NoError(t, s.Impersonate("tgt-tok", target, targetCo))
	assert.True(t, s.IsImpersonating())
	assert.Equal(t, "tgt-tok", s.Token())
	assert.Equal(t, "user@tenant.test", s.CurrentUser().Email)

	require.NoError(t, s.EndImpersonation())
	assert.False(t, s.IsImpersonating())
	assert.Equal(t, "op-tok", s.Token())
	assert.Equal(t, operator.Email, s.CurrentUser().Email)

	assert.Error(t, s.EndImpersonation(), "no impersonation to end")
}

func TestSessionImpersonationRequiresAuth(t *testing.T) {
	s, _ := createTestSession(t)
	target, targetCo := createTestIdentity()
	assert.ErrorIs(t, s.Impersonate("tok", target, targetCo), shared.ErrNotAuthenticated)
}

func TestSessionTokenExpired(t *testing.T) {
	s, _ := createTestSession(t)
	user, company := createTestIdentity()

	assert.True(t, s.TokenExpired(), "logged-out session counts as expired")

	require.NoError(t, s.SetAuth(signedToken(t, time.Now().Add(time.Hour)), user, company))
	assert.False(t, s.TokenExpired())

	require.NoError(t, s.SetAuth(signedToken(t, time.Now().Add(-time.Hour)), user, company))
	assert.True(t, s.TokenExpired())

	require.NoError(t, s.SetAuth("not-a-jwt", user, company))
	assert.True(t, s.TokenExpired())
}
