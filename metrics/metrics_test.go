package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNilMetricsIsNoop(t *testing.T) {

	var m *Metrics

	m.ObserveRequest("/stocks", 200, time.Millisecond)
	m.IncRateLimited()
	m.IncProjections()
	m.IncMarketDataFetch("hit")
	m.IncFXFallback()
	m.ObserveIndicatorCompute(time.Millisecond)
}

func TestCounters(t *testing.T) {

	m := New()

	m.IncProjections()
	m.IncProjections()
	m.IncMarketDataFetch("hit")
	m.IncFXFallback()
	m.ObserveRequest("/fx/usd-brl", 200, 5*time.Millisecond)

	if got := testutil.ToFloat64(m.Projections); got != 2 {
		t.Errorf("expected 2 projections, got %v", got)
	}
	if got := testutil.ToFloat64(m.MarketDataFetch.WithLabelValues("hit")); got != 1 {
		t.Errorf("expected 1 cache hit, got %v", got)
	}
	if got := testutil.ToFloat64(m.FXFallbacks); got != 1 {
		t.Errorf("expected 1 fallback, got %v", got)
	}
	if got := testutil.ToFloat64(m.HTTPRequests.WithLabelValues("/fx/usd-brl", "200")); got != 1 {
		t.Errorf("expected 1 request, got %v", got)
	}
}

func TestHandler(t *testing.T) {

	m := New()
	m.IncRateLimited()

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "b3dash_rate_limited_total 1") {
		t.Errorf("expected rate limited counter in output")
	}
}
