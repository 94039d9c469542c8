// Package integration drives the whole console against an in-memory
// fake of the platform API: real transport, real session persistence,
// real domain state machines, fake HTTP backend.
package integration

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	console "github.com/erp/console"
	"github.com/erp/console/config"
	"github.com/erp/console/domain/logistics"
)

const (
	operatorToken = "operator-token"
	cashierToken  = "cashier-token"
	grantToken    = "impersonation-token"
)

// product is the fake platform's stock record
type product struct {
	ID    uuid.UUID
	Name  string
	Price decimal.Decimal
	Stock decimal.Decimal
}

// Platform is the in-memory backend. All handlers answer in the
// platform envelope the transport layer expects.
type Platform struct {
	mu sync.Mutex

	Server *httptest.Server

	CashierID  uuid.UUID
	OperatorID uuid.UUID
	CompanyID  uuid.UUID
	SessionID  uuid.UUID

	Products map[uuid.UUID]*product
	Sales    int
	Board    map[uuid.UUID]logistics.Stage
	Unread   int

	// RejectMoves makes every board move fail with a conflict
	RejectMoves bool
}

func respond(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

func fail(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error":   gin.H{"code": code, "message": message},
	})
}

// NewPlatform starts the fake backend with one cashier, one operator,
// a small product catalog and an empty logistics board.
func NewPlatform(t *testing.T) *Platform {
	t.Helper()
	gin.SetMode(gin.TestMode)

	p := &Platform{
		CashierID:  uuid.New(),
		OperatorID: uuid.New(),
		CompanyID:  uuid.New(),
		SessionID:  uuid.New(),
		Products:   make(map[uuid.UUID]*product),
		Board:      make(map[uuid.UUID]logistics.Stage),
		Unread:     2,
	}
	p.AddProduct("Espresso Beans 1kg", "25.00", "10")
	p.AddProduct("Moka Pot", "48.50", "3")

	r := gin.New()
	v1 := r.Group("/api/v1")
	v1.POST("/auth/login", p.handleLogin)
	v1.POST("/auth/logout", func(c *gin.Context) { respond(c, nil) })

	authed := v1.Group("", p.requireToken)
	authed.GET("/auth/me", p.handleMe)
	authed.GET("/products", p.handleListProducts)
	authed.POST("/pos/checkout", p.handleCheckout)
	authed.GET("/logistics/board", p.handleBoard)
	authed.POST("/logistics/board/:id/move", p.handleMove)
	authed.GET("/notifications/unread-count", p.handleUnread)
	authed.GET("/reports/export/sales", p.handleExport)
	authed.POST("/admin/impersonate/:id", p.handleImpersonate)

	p.Server = httptest.NewServer(r)
	t.Cleanup(p.Server.Close)
	return p
}

// AddProduct seeds a product and returns its id
func (p *Platform) AddProduct(name, price, stock string) uuid.UUID {
	p.mu.Lock()
	defer p.mu.Unlock()
	id := uuid.New()
	p.Products[id] = &product{
		ID:    id,
		Name:  name,
		Price: decimal.RequireFromString(price),
		Stock: decimal.RequireFromString(stock),
	}
	return id
}

// StockOf reads a product's current stock level
func (p *Platform) StockOf(id uuid.UUID) decimal.Decimal {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.Products[id].Stock
}

// PlaceOrder puts a confirmed sale on the logistics board
func (p *Platform) PlaceOrder(stage logistics.Stage) uuid.UUID {
	p.mu.Lock()
	defer p.mu.Unlock()
	id := uuid.New()
	p.Board[id] = stage
	return id
}

func (p *Platform) requireToken(c *gin.Context) {
	header := c.GetHeader("Authorization")
	token := strings.TrimPrefix(header, "Bearer ")
	switch token {
	case operatorToken, cashierToken, grantToken:
		c.Set("token", token)
	default:
		fail(c, http.StatusUnauthorized, "UNAUTHORIZED", "invalid token")
		c.Abort()
	}
}

func (p *Platform) cashierJSON() gin.H {
	return gin.H{
		"id":        p.CashierID,
		"email":     "cashier@example.com",
		"full_name": "Cass Hier",
		"is_active": true,
		"role": gin.H{
			"id":          uuid.New(),
			"name":        "cashier",
			"permissions": gin.H{"pos_access": true, "view_products": true, "view_sales": true},
		},
	}
}

func (p *Platform) operatorJSON() gin.H {
	return gin.H{
		"id":           p.OperatorID,
		"email":        "ops@platform.example",
		"full_name":    "Platform Operator",
		"is_active":    true,
		"is_superuser": true,
	}
}

func (p *Platform) companyJSON() gin.H {
	return gin.H{
		"id":              p.CompanyID,
		"name":            "Roastery Ltd",
		"currency":        "USD",
		"currency_symbol": "$",
		"is_active":       true,
	}
}

func (p *Platform) handleLogin(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")
	if password != "secret" {
		fail(c, http.StatusUnauthorized, "UNAUTHORIZED", "bad credentials")
		return
	}
	switch username {
	case "cashier@example.com":
		respond(c, gin.H{
			"access_token": cashierToken,
			"token_type":   "bearer",
			"user":         p.cashierJSON(),
			"company":      p.companyJSON(),
		})
	case "ops@platform.example":
		respond(c, gin.H{
			"access_token": operatorToken,
			"token_type":   "bearer",
			"user":         p.operatorJSON(),
		})
	default:
		fail(c, http.StatusUnauthorized, "UNAUTHORIZED", "bad credentials")
	}
}

func (p *Platform) handleMe(c *gin.Context) {
	if c.GetString("token") == operatorToken {
		respond(c, p.operatorJSON())
		return
	}
	respond(c, p.cashierJSON())
}

func (p *Platform) handleListProducts(c *gin.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]gin.H, 0, len(p.Products))
	for _, prod := range p.Products {
		out = append(out, gin.H{
			"id":       prod.ID,
			"name":     prod.Name,
			"price":    prod.Price,
			"stock":    prod.Stock,
			"in_stock": prod.Stock.IsPositive(),
		})
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    out,
		"meta": gin.H{
			"total": len(out), "page": 1, "page_size": 20, "total_pages": 1,
		},
	})
}

func (p *Platform) handleCheckout(c *gin.Context) {
	var req struct {
		SessionID uuid.UUID `json:"session_id"`
		Items     []struct {
			ProductID uuid.UUID       `json:"product_id"`
			Quantity  decimal.Decimal `json:"quantity"`
		} `json:"items"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", err.Error())
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	for _, item := range req.Items {
		prod, ok := p.Products[item.ProductID]
		if !ok {
			fail(c, http.StatusNotFound, "NOT_FOUND", "unknown product")
			return
		}
		if prod.Stock.LessThan(item.Quantity) {
			fail(c, http.StatusUnprocessableEntity, "INSUFFICIENT_STOCK",
				fmt.Sprintf("only %s of %s left", prod.Stock, prod.Name))
			return
		}
	}
	for _, item := range req.Items {
		prod := p.Products[item.ProductID]
		prod.Stock = prod.Stock.Sub(item.Quantity)
	}

	p.Sales++
	saleID := uuid.New()
	p.Board[saleID] = logistics.StageConfirmed
	respond(c, gin.H{
		"sale_id":     saleID,
		"sale_number": fmt.Sprintf("S-%06d", p.Sales),
	})
}

func (p *Platform) handleBoard(c *gin.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	cards := make([]gin.H, 0, len(p.Board))
	for saleID, stage := range p.Board {
		cards = append(cards, gin.H{
			"sale_id":     saleID,
			"sale_number": "S-000001",
			"stage":       stage,
			"client_name": "Walk-in",
		})
	}
	respond(c, cards)
}

func (p *Platform) handleMove(c *gin.Context) {
	saleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		fail(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "bad sale id")
		return
	}
	var req struct {
		Stage logistics.Stage `json:"stage"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", err.Error())
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.RejectMoves {
		fail(c, http.StatusUnprocessableEntity, "INVALID_TRANSITION", "order is locked")
		return
	}
	current, ok := p.Board[saleID]
	if !ok {
		fail(c, http.StatusNotFound, "NOT_FOUND", "unknown order")
		return
	}
	if !current.CanAdvanceTo(req.Stage) {
		fail(c, http.StatusUnprocessableEntity, "INVALID_TRANSITION",
			fmt.Sprintf("cannot move from %s to %s", current, req.Stage))
		return
	}
	p.Board[saleID] = req.Stage
	respond(c, nil)
}

func (p *Platform) handleUnread(c *gin.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	respond(c, gin.H{"count": p.Unread})
}

func (p *Platform) handleExport(c *gin.Context) {
	c.Header("Content-Disposition", `attachment; filename="sales-2026-08.csv"`)
	c.Data(http.StatusOK, "text/csv", []byte("sale_number,total\nS-000001,50.00\n"))
}

func (p *Platform) handleImpersonate(c *gin.Context) {
	if c.GetString("token") != operatorToken {
		fail(c, http.StatusForbidden, "FORBIDDEN", "superuser only")
		return
	}
	respond(c, gin.H{
		"access_token": grantToken,
		"user":         p.cashierJSON(),
		"company":      p.companyJSON(),
	})
}

// NewConsole builds a Console wired to the fake platform with an
// ephemeral state store.
func NewConsole(t *testing.T, p *Platform, opts ...console.Option) *console.Console {
	t.Helper()
	cfg := &config.Config{
		API: config.APIConfig{
			BaseURL:        p.Server.URL,
			Prefix:         "/api/v1",
			RequestTimeout: 5 * time.Second,
			UserAgent:      "console-integration",
		},
		State: config.StateConfig{Path: ":memory:"},
		Poll: config.PollConfig{
			UnreadInterval:    time.Hour,
			UnreadMaxRetries:  1,
			BroadcastInterval: time.Hour,
		},
		Log: config.LogConfig{Level: "error", Format: "console", Output: "stderr"},
	}
	opts = append([]console.Option{console.WithLogger(zap.NewNop())}, opts...)
	c, err := console.New(cfg, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}
