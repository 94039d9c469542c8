package console

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/erp/console/config"
	"github.com/erp/console/domain/apps"
	"github.com/erp/console/domain/identity"
	"github.com/erp/console/guard"
	"github.com/erp/console/nav"
)

func testConfig(t *testing.T, baseURL string) *config.Config {
	t.Helper()
	return &config.Config{
		API: config.APIConfig{
			BaseURL:        baseURL,
			Prefix:         "/api/v1",
			RequestTimeout: 2 * time.Second,
			UserAgent:      "console-test",
		},
		State: config.StateConfig{Path: ":memory:"},
		Poll: config.PollConfig{
			UnreadInterval:    time.Hour,
			UnreadMaxRetries:  1,
			BroadcastInterval: time.Hour,
		},
		Log: config.LogConfig{Level: "error", Format: "console", Output: "stderr"},
	}
}

func newFakePlatform(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()

	userID := uuid.New()
	companyID := uuid.New()
	r.POST("/api/v1/auth/login", func(c *gin.Context) {
		if c.PostForm("password") != "secret" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"code": "UNAUTHORIZED", "message": "bad credentials"},
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{
			"access_token": "tok-123",
			"token_type":   "bearer",
			"user": gin.H{
				"id":        userID,
				"email":     "cashier@example.com",
				"full_name": "Test Cashier",
				"is_active": true,
				"role": gin.H{
					"id":          uuid.New(),
					"name":        "cashier",
					"permissions": gin.H{"pos_access": true, "view_products": true},
				},
			},
			"company": gin.H{
				"id":              companyID,
				"name":            "Test Co",
				"currency":        "USD",
				"currency_symbol": "$",
				"is_active":       true,
			},
		}})
	})
	r.POST("/api/v1/auth/logout", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func TestLoginPersistsSession(t *testing.T) {
	srv := newFakePlatform(t)
	c, err := New(testConfig(t, srv.URL), WithLogger(zap.NewNop()))
	require.NoError(t, err)
	defer c.Close()

	require.False(t, c.Session().IsAuthenticated())

	user, err := c.Login(context.Background(), "cashier@example.com", "secret")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "cashier@example.com", user.Email)

	assert.True(t, c.Session().IsAuthenticated())
	assert.Equal(t, "tok-123", c.Session().Token())
	require.NotNil(t, c.Session().CurrentCompany())
	assert.Equal(t, "Test Co", c.Session().CurrentCompany().Name)
}

func TestLoginFailureLeavesSessionEmpty(t *testing.T) {
	srv := newFakePlatform(t)

	var forced int
	c, err := New(testConfig(t, srv.URL),
		WithLogger(zap.NewNop()),
		WithForcedLogoutHook(func() { forced++ }))
	require.NoError(t, err)
	defer c.Close()

	_, err = c.Login(context.Background(), "cashier@example.com", "wrong")
	require.Error(t, err)
	assert.False(t, c.Session().IsAuthenticated())
	assert.Zero(t, forced, "a rejected login must not fire the forced-logout hook")
}

func TestLogoutClearsSessionEvenWhenServerFails(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/v1/auth/logout", func(c *gin.Context) {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   gin.H{"code": "INTERNAL", "message": "boom"},
		})
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	c, err := New(testConfig(t, srv.URL), WithLogger(zap.NewNop()))
	require.NoError(t, err)
	defer c.Close()

	user := &identity.User{ID: uuid.New(), Email: "x@example.com", IsActive: true}
	require.NoError(t, c.Session().SetAuth("tok", user, nil))

	require.NoError(t, c.Logout(context.Background()))
	assert.False(t, c.Session().IsAuthenticated())
}

func TestGuardsFollowSessionState(t *testing.T) {
	srv := newFakePlatform(t)
	c, err := New(testConfig(t, srv.URL), WithLogger(zap.NewNop()))
	require.NoError(t, err)
	defer c.Close()

	d := c.GuardRoute()
	assert.False(t, d.Allowed)
	assert.Equal(t, guard.RouteLogin, d.RedirectTo)
	assert.True(t, c.GuardLogin().Allowed)

	_, err = c.Login(context.Background(), "cashier@example.com", "secret")
	require.NoError(t, err)

	assert.True(t, c.GuardRoute().Allowed)
	d = c.GuardLogin()
	assert.False(t, d.Allowed)
	assert.Equal(t, guard.RouteDashboard, d.RedirectTo)
	assert.False(t, c.GuardAdmin().Allowed, "regular user must not pass the operator guard")
}

func TestMenuFiltersByPermissions(t *testing.T) {
	srv := newFakePlatform(t)
	c, err := New(testConfig(t, srv.URL), WithLogger(zap.NewNop()))
	require.NoError(t, err)
	defer c.Close()

	_, err = c.Login(context.Background(), "cashier@example.com", "secret")
	require.NoError(t, err)

	tree := c.Menu(nil)
	require.NotEmpty(t, tree)
	for _, n := range tree {
		assert.NotEqual(t, nav.GroupAdmin, n.ID, "tenant users never see the admin group")
	}

	withApps := c.Menu([]apps.InstalledApp{{Slug: "loyalty", Name: "Loyalty", Enabled: true}})
	assert.NotNil(t, withApps)
}
