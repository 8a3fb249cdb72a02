package ecommerce

import (
	"context"
	"sync"
	"time"
)

// defaultCallsPerSecond matches the platform's sustained GraphQL budget.
const defaultCallsPerSecond = 2.0

// CallPacer spaces outbound platform calls so no more than N calls per
// second leave this instance. It is a token bucket of size one: each Wait
// reserves the next slot and sleeps until it opens. A pacer is scoped to
// one adapter instance, which in turn is scoped to one tenant's
// credentials; it is not shared across concurrent requests.
type CallPacer struct {
	mu       sync.Mutex
	interval time.Duration
	next     time.Time
}

// NewCallPacer creates a pacer allowing callsPerSecond outbound calls.
// Non-positive values fall back to the platform default.
func NewCallPacer(callsPerSecond float64) *CallPacer {
	if callsPerSecond <= 0 {
		callsPerSecond = defaultCallsPerSecond
	}
	return &CallPacer{
		interval: time.Duration(float64(time.Second) / callsPerSecond),
	}
}

// Wait blocks until the next call slot opens. Pagination calls and single
// mutations go through the same gate. Returns early only when the context
// is cancelled.
func (p *CallPacer) Wait(ctx context.Context) error {
	p.mu.Lock()
	now := time.Now()
	var delay time.Duration
	if p.next.After(now) {
		delay = p.next.Sub(now)
		p.next = p.next.Add(p.interval)
	} else {
		p.next = now.Add(p.interval)
	}
	p.mu.Unlock()

	if delay <= 0 {
		return nil
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
