package http

import (
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"b3-dashboard/logger"
	"b3-dashboard/metrics"
)

// RateLimitMiddleware rejects clients that exhausted their bucket with 429
// and a Retry-After in whole seconds.
func RateLimitMiddleware(
	limiter *RateLimiter,
	m *metrics.Metrics,
	next http.Handler,
) http.Handler {

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ok, wait := limiter.take(clientIP(r)); !ok {
			m.IncRateLimited()
			w.Header().Set("Retry-After", strconv.FormatInt(int64((wait+time.Second-1)/time.Second), 10))
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// Instrument tags the request with a trace id, then logs and records the
// outcome under route.
func Instrument(route string, m *metrics.Metrics, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ctx := logger.WithTraceID(r.Context(), logger.GenerateTraceID("req", start))
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r.WithContext(ctx))

		elapsed := time.Since(start)
		m.ObserveRequest(route, rec.status, elapsed)

		attrs := append([]any{
			"method", r.Method,
			"route", route,
			"status", rec.status,
			"duration_ms", elapsed.Milliseconds(),
		}, logger.LogWithTrace(ctx)...)
		slog.Info("http request", attrs...)
	})
}
