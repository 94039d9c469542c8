package api

import (
	"context"
	"io"
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/erp/console/transport"
)

// ReportService exposes dashboard aggregates and file exports
type ReportService struct {
	t *transport.Client
}

// DashboardStats is the aggregate block rendered on the landing dashboard
type DashboardStats struct {
	SalesToday     decimal.Decimal `json:"sales_today"`
	SalesMonth     decimal.Decimal `json:"sales_month"`
	OrdersToday    int             `json:"orders_today"`
	OrdersMonth    int             `json:"orders_month"`
	AverageTicket  decimal.Decimal `json:"average_ticket"`
	LowStockItems  int             `json:"low_stock_items"`
	PendingReturns int             `json:"pending_returns"`
	ActiveClients  int             `json:"active_clients"`
}

// SalesPoint is one bucket of the sales-over-time chart
type SalesPoint struct {
	Period string          `json:"period"`
	Total  decimal.Decimal `json:"total"`
	Orders int             `json:"orders"`
}

// TopProduct ranks a product by revenue over the requested window
type TopProduct struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
	Revenue   decimal.Decimal `json:"revenue"`
}

func (s *ReportService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	var stats DashboardStats
	if _, err := s.t.Get(ctx, "/reports/dashboard", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// SalesSeries returns totals bucketed by the given granularity (day, week, month)
func (s *ReportService) SalesSeries(ctx context.Context, granularity, from, to string) ([]SalesPoint, error) {
	q := url.Values{}
	q.Set("granularity", granularity)
	if from != "" {
		q.Set("from", from)
	}
	if to != "" {
		q.Set("to", to)
	}
	var points []SalesPoint
	if _, err := s.t.Get(ctx, "/reports/sales", &points, transport.WithQuery(q)); err != nil {
		return nil, err
	}
	return points, nil
}

func (s *ReportService) TopProducts(ctx context.Context, limit int, from, to string) ([]TopProduct, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if from != "" {
		q.Set("from", from)
	}
	if to != "" {
		q.Set("to", to)
	}
	var products []TopProduct
	if _, err := s.t.Get(ctx, "/reports/top-products", &products, transport.WithQuery(q)); err != nil {
		return nil, err
	}
	return products, nil
}

// Export streams a report file through the authenticated channel and
// returns the server-provided filename. The kind maps to the export
// endpoint slug, e.g. "sales" or "inventory".
func (s *ReportService) Export(ctx context.Context, kind, format string, w io.Writer) (string, error) {
	q := url.Values{}
	if format != "" {
		q.Set("format", format)
	}
	path := "/reports/export/" + kind
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	return s.t.Download(ctx, path, w)
}
