package http

import (
	"net/http"

	"b3-dashboard/metrics"
)

type Handlers struct {
	Investment *InvestmentHandler
	Stock      *StockHandler
	FX         *FXHandler
	UI         *UIHandler
}

// NewRouter wires the API routes behind the rate limiter and the
// instrumentation middleware. Health, metrics and the dashboard page are
// not rate limited.
func NewRouter(h Handlers, limiter *RateLimiter, m *metrics.Metrics) *http.ServeMux {
	mux := http.NewServeMux()

	api := func(route string, fn http.HandlerFunc) {
		mux.Handle(route, Instrument(route, m, RateLimitMiddleware(limiter, m, fn)))
	}

	api("/investment/calculate", h.Investment.Calculate)
	api("/investment/recent", h.Investment.Recent)
	api("/stocks", h.Stock.GetStocks)
	api("/fx/usd-brl", h.FX.USDToBRL)

	mux.Handle("/", Instrument("/", m, http.HandlerFunc(h.UI.Index)))

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})
	if m != nil {
		mux.Handle("/metrics", m.Handler())
	}

	return mux
}
