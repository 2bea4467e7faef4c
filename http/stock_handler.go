package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"b3-dashboard/domain"
	"b3-dashboard/metrics"
	"b3-dashboard/service"
)

type StockHandler struct {
	service *service.StockService
	metrics *metrics.Metrics
}

func NewStockHandler(service *service.StockService, m *metrics.Metrics) *StockHandler {
	return &StockHandler{service: service, metrics: m}
}

type stockResponse struct {
	Tickers  []string              `json:"tickers"`
	Period   string                `json:"period"`
	Interval string                `json:"interval"`
	Bars     []domain.Bar          `json:"bars,omitempty"`
	Rows     []domain.AnnotatedBar `json:"rows,omitempty"`
	Count    int                   `json:"count"`
}

// GetStocks serves GET /stocks?tickers=PETR4,VALE3&period=1y&interval=1d&indicators=true.
func (h *StockHandler) GetStocks(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	query, err := h.parseStockQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	bars, err := h.service.GetStockData(r.Context(), query.Tickers, query.Period, query.Interval)
	if err != nil {
		if service.IsValidationError(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		slog.Error("failed to get stock data", "error", err)
		http.Error(w, "failed to get stock data", http.StatusBadGateway)
		return
	}

	resp := stockResponse{
		Tickers:  normalizedTickers(query.Tickers),
		Period:   query.Period,
		Interval: query.Interval,
		Count:    len(bars),
	}
	if query.Indicators {
		start := time.Now()
		resp.Rows = service.AnnotateIndicators(bars)
		h.metrics.ObserveIndicatorCompute(time.Since(start))
	} else {
		resp.Bars = bars
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *StockHandler) parseStockQuery(r *http.Request) (domain.StockQuery, error) {
	q := r.URL.Query()
	period, interval := h.service.Defaults()
	query := domain.StockQuery{
		Tickers:  service.ParseTickers(q.Get("tickers")),
		Period:   q.Get("period"),
		Interval: q.Get("interval"),
	}
	if query.Period == "" {
		query.Period = period
	}
	if query.Interval == "" {
		query.Interval = interval
	}
	if raw := q.Get("indicators"); raw != "" {
		on, err := strconv.ParseBool(raw)
		if err != nil {
			return domain.StockQuery{}, err
		}
		query.Indicators = on
	}
	return query, nil
}

func normalizedTickers(tickers []string) []string {
	out := make([]string, len(tickers))
	for i, t := range tickers {
		out[i] = service.NormalizeTicker(t)
	}
	return out
}
