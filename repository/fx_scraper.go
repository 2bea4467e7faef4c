package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
)

const (
	DefaultFXSourceURL = "https://www.x-rates.com/calculator/?from=USD&to=BRL&amount=1"
	fxRateSelector     = "span.ccOutputRslt"
)

var ErrFXRateNotFound = errors.New("exchange rate not found in page")

// FXRateRepository returns the current USD to BRL rate.
type FXRateRepository interface {
	USDToBRL(ctx context.Context) (decimal.Decimal, error)
	Source() string
}

// XRatesScraper reads the USD/BRL rate from the x-rates.com calculator page.
type XRatesScraper struct {
	client *resty.Client
	url    string
}

func NewXRatesScraper(url string, timeout time.Duration) *XRatesScraper {
	if url == "" {
		url = DefaultFXSourceURL
	}
	client := resty.New()
	client.SetTimeout(timeout)
	client.SetHeader("User-Agent", "Mozilla/5.0 (compatible; b3dash/1.0)")

	return &XRatesScraper{client: client, url: url}
}

func (s *XRatesScraper) Source() string {
	return s.url
}

func (s *XRatesScraper) USDToBRL(ctx context.Context) (decimal.Decimal, error) {
	resp, err := s.client.R().SetContext(ctx).Get(s.url)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to fetch FX rate page: %w", err)
	}
	if resp.StatusCode() != 200 {
		return decimal.Zero, fmt.Errorf("failed to fetch FX rate page: status %d", resp.StatusCode())
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(resp.String()))
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse FX rate page: %w", err)
	}

	return parseRate(doc)
}

func parseRate(doc *goquery.Document) (decimal.Decimal, error) {
	sel := doc.Find(fxRateSelector).First()
	if sel.Length() == 0 {
		return decimal.Zero, ErrFXRateNotFound
	}

	// "5.412345 BRL" -> "5.412345"
	fields := strings.Fields(sel.Text())
	if len(fields) == 0 {
		return decimal.Zero, ErrFXRateNotFound
	}
	rate, err := decimal.NewFromString(strings.ReplaceAll(fields[0], ",", ""))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid rate %q: %w", fields[0], err)
	}
	return rate, nil
}
