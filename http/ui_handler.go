package http

import (
	"bytes"
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"b3-dashboard/domain"
	"b3-dashboard/service"
)

//go:embed templates/index.html
var templateFS embed.FS

var pageTemplate = template.Must(
	template.New("index.html").
		Funcs(template.FuncMap{"brl": formatBRL}).
		ParseFS(templateFS, "templates/index.html"),
)

// formatBRL renders 1234567.8 as "R$ 1,234,567.80".
func formatBRL(v float64) string {
	s := decimal.NewFromFloat(v).StringFixed(2)
	neg := len(s) > 0 && s[0] == '-'
	if neg {
		s = s[1:]
	}
	intPart, frac := s[:len(s)-3], s[len(s)-3:]

	var b bytes.Buffer
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	out := "R$ " + b.String() + frac
	if neg {
		out = "-" + out
	}
	return out
}

type pageData struct {
	TickersInput     string
	Period           string
	TickersRequested bool
	Stocks           []domain.Bar
	StockError       string

	Form          domain.InvestmentRequest
	Result        *domain.InvestmentResult
	FinalValueUSD float64
	CalcError     string
}

// UIHandler renders the HTML dashboard: stock table and investment
// calculator, both driven by query parameters.
type UIHandler struct {
	stocks      *service.StockService
	investments *service.InvestmentService
	fx          *service.FXService
}

func NewUIHandler(
	stocks *service.StockService,
	investments *service.InvestmentService,
	fx *service.FXService,
) *UIHandler {
	return &UIHandler{stocks: stocks, investments: investments, fx: fx}
}

func (h *UIHandler) Index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	q := r.URL.Query()
	defaultPeriod, _ := h.stocks.Defaults()
	data := pageData{
		TickersInput: q.Get("tickers"),
		Period:       q.Get("period"),
		Form: domain.InvestmentRequest{
			Principal:           10000,
			MonthlyContribution: 500,
			AnnualRatePercent:   7,
			Years:               10,
		},
	}
	if data.Period == "" {
		data.Period = defaultPeriod
	}

	// The bare page shows the default tickers without fetching them.
	if !q.Has("tickers") {
		data.TickersInput = "PETR4.SA,VALE3.SA"
	} else if tickers := service.ParseTickers(data.TickersInput); len(tickers) > 0 {
		data.TickersRequested = true
		bars, err := h.stocks.GetStockData(r.Context(), tickers, data.Period, "")
		if err != nil {
			data.StockError = err.Error()
		}
		data.Stocks = bars
	}

	if q.Get("calculate") != "" {
		form, err := parseInvestmentForm(q, data.Form)
		data.Form = form
		if err != nil {
			data.CalcError = err.Error()
		} else if result, err := h.investments.Calculate(form); err != nil {
			data.CalcError = err.Error()
		} else {
			data.Result = &result
			data.FinalValueUSD, _ = h.fx.ToUSD(r.Context(), result.FinalValue)
		}
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		slog.Error("failed to render dashboard", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := buf.WriteTo(w); err != nil {
		slog.Warn("failed to write dashboard", "error", err)
	}
}

type queryGetter interface {
	Get(key string) string
}

func parseInvestmentForm(q queryGetter, defaults domain.InvestmentRequest) (domain.InvestmentRequest, error) {
	form := defaults
	floats := []struct {
		key string
		dst *float64
	}{
		{"principal", &form.Principal},
		{"contribution", &form.MonthlyContribution},
		{"rate", &form.AnnualRatePercent},
	}
	for _, f := range floats {
		if raw := q.Get(f.key); raw != "" {
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return form, &formError{field: f.key}
			}
			*f.dst = v
		}
	}
	if raw := q.Get("years"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return form, &formError{field: "years"}
		}
		form.Years = v
	}
	return form, nil
}

type formError struct {
	field string
}

func (e *formError) Error() string {
	return "invalid value for " + e.field
}
