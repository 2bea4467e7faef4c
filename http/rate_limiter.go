package http

import (
	"sync"
	"time"
)

const minCleanupInterval = time.Minute

type clientBucket struct {
	tokens   float64
	lastSeen time.Time
}

// RateLimiter is a per-client token bucket. Each bucket holds up to
// capacity tokens and refills continuously at capacity per window.
type RateLimiter struct {
	mu       sync.Mutex
	capacity float64
	window   time.Duration
	clients  map[string]*clientBucket
	now      func() time.Time

	stop     chan struct{}
	stopOnce sync.Once
}

func NewRateLimiter(capacity int, window time.Duration) *RateLimiter {
	if capacity <= 0 {
		capacity = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	rl := &RateLimiter{
		capacity: float64(capacity),
		window:   window,
		clients:  make(map[string]*clientBucket),
		now:      time.Now,
		stop:     make(chan struct{}),
	}
	go rl.cleanupLoop()
	return rl
}

func (r *RateLimiter) cleanupLoop() {
	interval := r.window
	if interval < minCleanupInterval {
		interval = minCleanupInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.cleanup()
		case <-r.stop:
			return
		}
	}
}

// cleanup forgets clients idle for a full window. Their buckets would be
// full again, so dropping them changes nothing.
func (r *RateLimiter) cleanup() {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	for client, bucket := range r.clients {
		if now.Sub(bucket.lastSeen) >= r.window {
			delete(r.clients, client)
		}
	}
}

// Stop ends the cleanup goroutine. Safe to call more than once.
func (r *RateLimiter) Stop() {
	r.stopOnce.Do(func() { close(r.stop) })
}

func (r *RateLimiter) Allow(client string) bool {
	ok, _ := r.take(client)
	return ok
}

// take spends one token of client's bucket. When the bucket is empty it
// reports how long until the next token is available.
func (r *RateLimiter) take(client string) (bool, time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	bucket, exists := r.clients[client]
	if !exists {
		bucket = &clientBucket{tokens: r.capacity, lastSeen: now}
		r.clients[client] = bucket
	}

	if elapsed := now.Sub(bucket.lastSeen); elapsed > 0 {
		bucket.tokens += float64(elapsed) / float64(r.window) * r.capacity
		if bucket.tokens > r.capacity {
			bucket.tokens = r.capacity
		}
	}
	bucket.lastSeen = now

	if bucket.tokens < 1 {
		deficit := 1 - bucket.tokens
		return false, time.Duration(deficit * float64(r.window) / r.capacity)
	}

	bucket.tokens--
	return true, 0
}
