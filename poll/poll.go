// Package poll runs the background refresh loops behind the header
// badges: the unread-notification counter and the platform broadcast
// banner. Both tick on a fixed interval and publish to subscribers;
// neither ever surfaces an error to the user.
package poll

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/erp/console/api"
)

// UnreadPoller keeps the unread-notification badge current. Each tick
// retries a handful of times with exponential backoff, then gives up
// until the next tick; the last known value stays on screen.
type UnreadPoller struct {
	svc        *api.NotificationService
	log        *zap.Logger
	interval   time.Duration
	maxRetries uint64

	group  singleflight.Group
	mu     sync.RWMutex
	count  int
	subs   map[int]func(int)
	nextID int

	started  atomic.Bool
	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

func NewUnreadPoller(svc *api.NotificationService, log *zap.Logger, interval time.Duration, maxRetries uint64) *UnreadPoller {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &UnreadPoller{
		svc:        svc,
		log:        log.Named("unread-poller"),
		interval:   interval,
		maxRetries: maxRetries,
		subs:       make(map[int]func(int)),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
}

// Count returns the last successfully fetched unread count
func (p *UnreadPoller) Count() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.count
}

// Subscribe registers a callback invoked whenever the count changes.
// The returned function removes the subscription.
func (p *UnreadPoller) Subscribe(fn func(int)) func() {
	p.mu.Lock()
	defer p.mu.Unlock()
	id := p.nextID
	p.nextID++
	p.subs[id] = fn
	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		delete(p.subs, id)
	}
}

// Run ticks until the context is cancelled or Stop is called. It fetches
// once immediately so the badge is populated right after login.
func (p *UnreadPoller) Run(ctx context.Context) {
	p.started.Store(true)
	defer close(p.done)
	p.tick(ctx)
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-p.stop:
			return
		case <-ticker.C:
			p.tick(ctx)
		}
	}
}

// Stop halts the loop and waits for it to exit. Stopping a poller that
// was never started returns immediately.
func (p *UnreadPoller) Stop() {
	p.stopOnce.Do(func() { close(p.stop) })
	if !p.started.Load() {
		return
	}
	<-p.done
}

// Refresh forces an immediate fetch outside the tick schedule, e.g.
// right after the user marks notifications as read. Concurrent calls
// collapse into a single request.
func (p *UnreadPoller) Refresh(ctx context.Context) {
	p.tick(ctx)
}

func (p *UnreadPoller) tick(ctx context.Context) {
	_, _, _ = p.group.Do("unread", func() (any, error) {
		count, err := p.fetch(ctx)
		if err != nil {
			p.log.Debug("unread count fetch failed", zap.Error(err))
			return nil, err
		}
		p.publish(count)
		return count, nil
	})
}

func (p *UnreadPoller) fetch(ctx context.Context) (int, error) {
	var count int
	op := func() error {
		c, err := p.svc.Unread(ctx)
		if err != nil {
			return err
		}
		count = c
		return nil
	}
	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), p.maxRetries), ctx)
	if err := backoff.Retry(op, policy); err != nil {
		return 0, err
	}
	return count, nil
}

func (p *UnreadPoller) publish(count int) {
	p.mu.Lock()
	changed := count != p.count
	p.count = count
	var fns []func(int)
	if changed {
		fns = make([]func(int), 0, len(p.subs))
		for _, fn := range p.subs {
			fns = append(fns, fn)
		}
	}
	p.mu.Unlock()
	for _, fn := range fns {
		fn(count)
	}
}
