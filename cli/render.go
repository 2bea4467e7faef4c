package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"b3-dashboard/domain"
)

var (
	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#10B981"))

	labelStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#6B7280"))

	valueStyle = lipgloss.NewStyle().
		Bold(true)

	warnStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#F59E0B"))

	headerStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#3B82F6")).
		Padding(0, 1)

	cellStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Align(lipgloss.Right)
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("#374151"))).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

func metric(label string, v float64) string {
	return labelStyle.Render(label+": ") + valueStyle.Render(fmt.Sprintf("R$ %.2f", v))
}

func renderProjection(w io.Writer, req domain.InvestmentRequest, result domain.InvestmentResult) error {
	t := newTable("Year", "Balance", "Total Contributions", "Interest Earned")
	for _, row := range result.Schedule {
		t.Row(
			strconv.Itoa(row.Year),
			fmt.Sprintf("%.2f", row.Balance),
			fmt.Sprintf("%.2f", row.TotalContributions),
			fmt.Sprintf("%.2f", row.InterestEarned),
		)
	}

	_, err := fmt.Fprintf(w, "%s\n%s\n%s\n%s\n%s\n",
		titleStyle.Render(fmt.Sprintf("Investment projection: %.2f%% a.a. over %d years", req.AnnualRatePercent, req.Years)),
		metric("Final Value", result.FinalValue),
		metric("Total Contributions", result.TotalContributions),
		metric("Interest Earned", result.InterestEarned),
		t.Render(),
	)
	return err
}

func renderBars(w io.Writer, bars []domain.Bar) error {
	if len(bars) == 0 {
		_, err := fmt.Fprintln(w, warnStyle.Render("No data found for the given tickers."))
		return err
	}

	t := newTable("Ticker", "Date", "Open", "High", "Low", "Close", "Volume")
	for _, b := range bars {
		t.Row(b.Ticker, b.Date.Format("2006-01-02"),
			b.Open.StringFixed(2), b.High.StringFixed(2), b.Low.StringFixed(2), b.Close.StringFixed(2),
			strconv.FormatInt(b.Volume, 10))
	}
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

func renderAnnotated(w io.Writer, rows []domain.AnnotatedBar) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, warnStyle.Render("No data found for the given tickers."))
		return err
	}

	t := newTable("Ticker", "Date", "Close", "RSI", "MACD", "Signal", "SMA20", "SMA50")
	for _, r := range rows {
		t.Row(r.Ticker, r.Date.Format("2006-01-02"), r.Close.StringFixed(2),
			optional(r.RSI), optional(r.MACD), optional(r.MACDSignal), optional(r.SMAShort), optional(r.SMALong))
	}
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

func renderFX(w io.Writer, rate domain.FXRate) error {
	line := fmt.Sprintf("1 %s = %s %s", rate.Base, rate.Rate.StringFixed(4), rate.Quote)
	if rate.Fallback {
		line += " " + warnStyle.Render("(fallback rate, source unavailable)")
	}
	_, err := fmt.Fprintln(w, titleStyle.Render(line))
	return err
}

func optional(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.2f", *v)
}
