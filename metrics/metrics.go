package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors of the dashboard. A nil *Metrics
// is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequests     *prometheus.CounterVec   // labels: route, code
	HTTPDuration     *prometheus.HistogramVec // labels: route
	RateLimited      prometheus.Counter
	Projections      prometheus.Counter
	MarketDataFetch  *prometheus.CounterVec // labels: outcome=hit|fetched|empty|error
	FXFallbacks      prometheus.Counter
	IndicatorCompute prometheus.Histogram
}

// New creates the collectors on a dedicated registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "b3dash_http_requests_total",
			Help: "HTTP requests by route and status code",
		}, []string{"route", "code"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "b3dash_http_request_duration_seconds",
			Help:    "HTTP request latency by route",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		RateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "b3dash_rate_limited_total",
			Help: "Requests rejected by the rate limiter",
		}),
		Projections: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "b3dash_investment_projections_total",
			Help: "Investment projections calculated",
		}),
		MarketDataFetch: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "b3dash_market_data_fetch_total",
			Help: "Market data lookups per ticker by outcome",
		}, []string{"outcome"}),
		FXFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "b3dash_fx_fallback_total",
			Help: "FX lookups answered with the fallback rate",
		}),
		IndicatorCompute: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "b3dash_indicator_compute_duration_seconds",
			Help:    "Indicator annotation latency per request",
			Buckets: []float64{0.00001, 0.0001, 0.001, 0.01, 0.1},
		}),
	}

	m.registry.MustRegister(
		m.HTTPRequests,
		m.HTTPDuration,
		m.RateLimited,
		m.Projections,
		m.MarketDataFetch,
		m.FXFallbacks,
		m.IndicatorCompute,
	)
	return m
}

// Handler exposes the registry for scraping.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveRequest(route string, code int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(route, strconv.Itoa(code)).Inc()
	m.HTTPDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

func (m *Metrics) IncRateLimited() {
	if m == nil {
		return
	}
	m.RateLimited.Inc()
}

func (m *Metrics) IncProjections() {
	if m == nil {
		return
	}
	m.Projections.Inc()
}

func (m *Metrics) IncMarketDataFetch(outcome string) {
	if m == nil {
		return
	}
	m.MarketDataFetch.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncFXFallback() {
	if m == nil {
		return
	}
	m.FXFallbacks.Inc()
}

func (m *Metrics) ObserveIndicatorCompute(elapsed time.Duration) {
	if m == nil {
		return
	}
	m.IndicatorCompute.Observe(elapsed.Seconds())
}
