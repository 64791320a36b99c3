package util

import (
	"context"
	"log"
	"net/url"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// HostLimiter rate-limits per hostname (www.baseball-reference.com etc).
type HostLimiter struct {
	mu sync.Mutex
	m  map[string]*rate.Limiter
	r  rate.Limit
	b  int
}

func NewHostLimiter(reqPerSec float64, burst int) *HostLimiter {
	return &HostLimiter{
		m: make(map[string]*rate.Limiter),
		r: rate.Limit(reqPerSec),
		b: burst,
	}
}

func (hl *HostLimiter) limiterFor(host string) *rate.Limiter {
	hl.mu.Lock()
	defer hl.mu.Unlock()

	if lim, ok := hl.m[host]; ok {
		return lim
	}
	lim := rate.NewLimiter(hl.r, hl.b)
	hl.m[host] = lim
	return lim
}

func (hl *HostLimiter) WaitURL(ctx context.Context, raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return hl.limiterFor("_").Wait(ctx)
	}
	return hl.limiterFor(u.Host).Wait(ctx)
}

// Pacer inserts a fixed blocking delay after every n-th item.
type Pacer struct {
	Every int
	Delay time.Duration

	count int
	sleep func(ctx context.Context, d time.Duration) error
}

func NewPacer(every int, delay time.Duration) *Pacer {
	if every < 1 {
		every = 1
	}
	return &Pacer{Every: every, Delay: delay, sleep: Sleep}
}

// Done marks one item finished and sleeps when the interval is reached.
// It reports whether it slept. The last item of a run need not call Done.
func (p *Pacer) Done(ctx context.Context) (bool, error) {
	p.count++
	if p.Delay <= 0 || p.count%p.Every != 0 {
		return false, nil
	}
	if p.Every > 1 {
		log.Printf("[pace] reached %d requests, pausing for %s", p.count, p.Delay)
	}
	return true, p.sleep(ctx, p.Delay)
}

// Sleep blocks for d or until ctx is done.
func Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
