package shared

import (
	"fmt"
	"net/url"
	"strconv"
)

// ListOptions represents common list/pagination request parameters
type ListOptions struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string // asc or desc
	Search   string
	Filters  map[string]string
}

// DefaultListOptions returns sensible defaults for list calls
func DefaultListOptions() ListOptions {
	return ListOptions{Page: 1, PageSize: 20}
}

// Query encodes the options as URL query parameters
func (o ListOptions) Query() url.Values {
	q := url.Values{}
	if o.Page > 0 {
		q.Set("page", strconv.Itoa(o.Page))
	}
	if o.PageSize > 0 {
		q.Set("page_size", strconv.Itoa(o.PageSize))
	}
	if o.OrderBy != "" {
		q.Set("order_by", o.OrderBy)
		dir := o.OrderDir
		if dir == "" {
			dir = "asc"
		}
		q.Set("order_dir", dir)
	}
	if o.Search != "" {
		q.Set("search", o.Search)
	}
	for k, v := range o.Filters {
		q.Set(k, v)
	}
	return q
}

// Meta represents pagination metadata returned by list endpoints
type Meta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

// String returns a short human-readable summary, useful in logs
func (m Meta) String() string {
	return fmt.Sprintf("page %d/%d (%d total)", m.Page, m.TotalPages, m.Total)
}
