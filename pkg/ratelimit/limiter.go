// Package ratelimit implements a process-local fixed-window request counter.
// It exists for abuse mitigation only: counters are not durable, not shared
// across instances, and reset on restart.
package ratelimit

import (
	"sync"
	"time"
)

type entry struct {
	count   int
	resetAt time.Time
}

// Result reports whether a request is allowed and when the window resets.
type Result struct {
	Allowed   bool
	Remaining int
	ResetAt   time.Time
}

// Limiter counts requests per key within a fixed window. Expired entries are
// swept on an interval until Stop is called.
type Limiter struct {
	mu      sync.Mutex
	entries map[string]*entry
	max     int
	window  time.Duration

	done chan struct{}
	once sync.Once

	// now is swapped out in tests
	now func() time.Time
}

func New(max int, window time.Duration) *Limiter {
	l := &Limiter{
		entries: make(map[string]*entry),
		max:     max,
		window:  window,
		done:    make(chan struct{}),
		now:     time.Now,
	}

	go l.sweep(5 * time.Minute)

	return l
}

// Allow records one request for the key and reports whether it fit in the
// current window.
func (l *Limiter) Allow(key string) Result {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[key]
	if !ok || now.After(e.resetAt) {
		e = &entry{count: 1, resetAt: now.Add(l.window)}
		l.entries[key] = e
		return Result{Allowed: true, Remaining: l.max - 1, ResetAt: e.resetAt}
	}

	if e.count >= l.max {
		return Result{Allowed: false, Remaining: 0, ResetAt: e.resetAt}
	}

	e.count++
	return Result{Allowed: true, Remaining: l.max - e.count, ResetAt: e.resetAt}
}

// Stop terminates the sweep goroutine.
func (l *Limiter) Stop() {
	l.once.Do(func() {
		close(l.done)
	})
}

func (l *Limiter) sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-l.done:
			return
		case <-ticker.C:
			now := l.now()
			l.mu.Lock()
			for key, e := range l.entries {
				if now.After(e.resetAt) {
					delete(l.entries, key)
				}
			}
			l.mu.Unlock()
		}
	}
}
