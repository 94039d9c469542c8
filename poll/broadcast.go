package poll

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/erp/console/api"
)

// BroadcastPoller refreshes the platform announcement banner. A failed
// fetch keeps the previous banner; there is no retry inside a tick.
type BroadcastPoller struct {
	svc      *api.AdminService
	log      *zap.Logger
	interval time.Duration

	mu      sync.RWMutex
	current *api.Broadcast
	subs    map[int]func(*api.Broadcast)
	nextID  int

	started  atomic.Bool
	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

func NewBroadcastPoller(svc *api.AdminService, log *zap.Logger, interval time.Duration) *BroadcastPoller {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &BroadcastPoller{
		svc:      svc,
		log:      log.Named("broadcast-poller"),
		interval: interval,
		subs:     make(map[int]func(*api.Broadcast)),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Current returns the last fetched broadcast, nil when none is active
func (p *BroadcastPoller) Current() *api.Broadcast {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.current == nil || !p.current.Active {
		return nil
	}
	return p.current
}

func (p *BroadcastPoller) Subscribe(fn func(*api.Broadcast)) func() {
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

func (p *BroadcastPoller) Run(ctx context.Context) {
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

func (p *BroadcastPoller) Stop() {
	p.stopOnce.Do(func() { close(p.stop) })
	if !p.started.Load() {
		return
	}
	<-p.done
}

func (p *BroadcastPoller) tick(ctx context.Context) {
	b, err := p.svc.GetBroadcast(ctx)
	if err != nil {
		p.log.Debug("broadcast fetch failed", zap.Error(err))
		return
	}
	p.mu.Lock()
	changed := p.current == nil || *p.current != *b
	p.current = b
	var fns []func(*api.Broadcast)
	if changed {
		fns = make([]func(*api.Broadcast), 0, len(p.subs))
		for _, fn := range p.subs {
			fns = append(fns, fn)
		}
	}
	p.mu.Unlock()
	for _, fn := range fns {
		fn(b)
	}
}
