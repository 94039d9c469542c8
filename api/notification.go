package api

import (
	"context"

	"github.com/google/uuid"

	"github.com/erp/console/domain/shared"
	"github.com/erp/console/transport"
)

// NotificationService reads the per-user notification feed
type NotificationService struct {
	t *transport.Client
}

// Notification is one entry in the user's feed
type Notification struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Kind      string    `json:"kind"`
	Link      string    `json:"link"`
	IsRead    bool      `json:"is_read"`
	CreatedAt string    `json:"created_at"`
}

// UnreadCount holds the badge counter shown in the header
type UnreadCount struct {
	Count int `json:"count"`
}

func (s *NotificationService) List(ctx context.Context, opts shared.ListOptions) ([]Notification, *shared.Meta, error) {
	var items []Notification
	meta, err := s.t.Get(ctx, "/notifications", &items, transport.WithQuery(opts.Query()))
	if err != nil {
		return nil, nil, err
	}
	return items, meta, nil
}

// Unread returns the current unread badge counter. Errors are never
// surfaced to the user here; pollers retry on their own schedule.
func (s *NotificationService) Unread(ctx context.Context) (int, error) {
	var count UnreadCount
	if _, err := s.t.Get(ctx, "/notifications/unread-count", &count, transport.WithSuppressError()); err != nil {
		return 0, err
	}
	return count.Count, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, id uuid.UUID) error {
	_, err := s.t.Post(ctx, "/notifications/"+id.String()+"/read", nil, nil)
	return err
}

func (s *NotificationService) MarkAllRead(ctx context.Context) error {
	_, err := s.t.Post(ctx, "/notifications/read-all", nil, nil)
	return err
}
