package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRateLimiter_AllowAndRefill(t *testing.T) {

	limiter := NewRateLimiter(2, time.Minute)
	defer limiter.Stop()

	now := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	if !limiter.Allow("a") || !limiter.Allow("a") {
		t.Fatalf("expected the first two requests to pass")
	}
	if limiter.Allow("a") {
		t.Errorf("expected the third request to be limited")
	}
	if !limiter.Allow("b") {
		t.Errorf("expected another client to have its own bucket")
	}

	now = now.Add(time.Minute)
	if !limiter.Allow("a") {
		t.Errorf("expected the bucket to refill after the window")
	}
}

func TestRateLimiter_ContinuousRefill(t *testing.T) {

	limiter := NewRateLimiter(2, time.Minute)
	defer limiter.Stop()

	now := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	limiter.Allow("a")
	limiter.Allow("a")

	now = now.Add(30 * time.Second)
	if !limiter.Allow("a") {
		t.Fatalf("expected half a window to refill one token")
	}

	ok, wait := limiter.take("a")
	if ok {
		t.Fatalf("expected the bucket to be empty again")
	}
	if wait != 30*time.Second {
		t.Errorf("expected 30s until the next token, got %s", wait)
	}
}

func TestRateLimiter_Cleanup(t *testing.T) {

	limiter := NewRateLimiter(1, time.Minute)
	defer limiter.Stop()

	now := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	limiter.Allow("idle")
	now = now.Add(2 * time.Hour)
	limiter.Allow("active")
	limiter.cleanup()

	limiter.mu.Lock()
	_, idle := limiter.clients["idle"]
	_, active := limiter.clients["active"]
	limiter.mu.Unlock()

	if idle || !active {
		t.Errorf("expected only the idle client to be forgotten (idle=%v active=%v)", idle, active)
	}

	limiter.Stop()
}

func TestRateLimitMiddleware(t *testing.T) {

	limiter := NewRateLimiter(1, time.Hour)
	defer limiter.Stop()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	handler := RateLimitMiddleware(limiter, nil, next)

	codes := make([]int, 0, 2)
	var retryAfter string
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/stocks", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		codes = append(codes, w.Code)
		retryAfter = w.Header().Get("Retry-After")
	}

	if codes[0] != http.StatusNoContent || codes[1] != http.StatusTooManyRequests {
		t.Errorf("expected [204 429], got %v", codes)
	}
	if retryAfter != "3600" {
		t.Errorf("expected Retry-After 3600, got %q", retryAfter)
	}
}

func TestClientIP(t *testing.T) {

	req := httptest.NewRequest(http.MethodGet, "/", nil)

	req.RemoteAddr = "192.168.1.7:40000"
	if got := clientIP(req); got != "192.168.1.7" {
		t.Errorf("expected 192.168.1.7, got %s", got)
	}

	req.RemoteAddr = "not-a-host-port"
	if got := clientIP(req); got != "not-a-host-port" {
		t.Errorf("expected the raw address, got %s", got)
	}
}
