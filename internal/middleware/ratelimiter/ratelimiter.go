// Package ratelimiter implements per-client token buckets.
package ratelimiter

import (
	"sync"
	"time"
)

// bucket implements a token bucket rate limiter
type bucket struct {
	tokens     float64
	lastRefill time.Time
	lastSeen   time.Time
}

// ClientRateLimiter keeps one bucket per client key. Buckets idle for longer
// than expiration are dropped on the next sweep.
type ClientRateLimiter struct {
	rate       float64
	capacity   float64
	expiration time.Duration
	now        func() time.Time

	mu        sync.Mutex
	buckets   map[string]*bucket
	lastSweep time.Time
}

// New returns a limiter refilling rate tokens per second up to capacity.
func New(rate float64, capacity int, expiration time.Duration) *ClientRateLimiter {
	return &ClientRateLimiter{
		rate:       rate,
		capacity:   float64(capacity),
		expiration: expiration,
		now:        time.Now,
		buckets:    make(map[string]*bucket),
	}
}

// Allow takes one token from key's bucket, false when it is empty.
func (l *ClientRateLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweepLocked(now)

	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{tokens: l.capacity, lastRefill: now}
		l.buckets[key] = b
	}
	b.lastSeen = now

	// Refill tokens based on elapsed time
	b.tokens += now.Sub(b.lastRefill).Seconds() * l.rate
	if b.tokens > l.capacity {
		b.tokens = l.capacity
	}
	b.lastRefill = now

	if b.tokens >= 1 {
		b.tokens--
		return true
	}
	return false
}

func (l *ClientRateLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

func (l *ClientRateLimiter) sweepLocked(now time.Time) {
	if l.expiration <= 0 || now.Sub(l.lastSweep) < l.expiration {
		return
	}
	for key, b := range l.buckets {
		if now.Sub(b.lastSeen) > l.expiration {
			delete(l.buckets, key)
		}
	}
	l.lastSweep = now
}
