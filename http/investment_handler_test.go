package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"b3-dashboard/domain"
	"b3-dashboard/repository"
	"b3-dashboard/service"
)

func TestCalculateInvestmentHandler_OK(t *testing.T) {

	repo := repository.NewInvestmentRepositoryMemory(10)
	service := service.NewInvestmentService(repo, nil)
	handler := NewInvestmentHandler(service)

	body := []byte(`{
		"principal": 10000,
		"monthly_contribution": 500,
		"annual_rate_percent": 7,
		"years": 10
	}`)

	req := httptest.NewRequest(
		http.MethodPost,
		"/investment/calculate",
		bytes.NewBuffer(body),
	)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()

	handler.Calculate(w, req)

	resp := w.Result()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var result domain.InvestmentResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if result.FinalValue != 106639.02 {
		t.Errorf("expected final value 106639.02, got %.2f", result.FinalValue)
	}
	if len(result.Schedule) != 10 {
		t.Errorf("expected 10 schedule rows, got %d", len(result.Schedule))
	}

	saved, _ := repo.Recent(0)
	if len(saved) != 1 {
		t.Errorf("expected the calculation to be recorded, got %d records", len(saved))
	}
}

func TestCalculateInvestmentHandler_MethodNotAllowed(t *testing.T) {

	repo := repository.NewInvestmentRepositoryMemory(10)
	service := service.NewInvestmentService(repo, nil)
	handler := NewInvestmentHandler(service)

	req := httptest.NewRequest(http.MethodGet, "/investment/calculate", nil)
	w := httptest.NewRecorder()

	handler.Calculate(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", w.Code)
	}
}

func TestCalculateInvestmentHandler_BadRequest(t *testing.T) {

	repo := repository.NewInvestmentRepositoryMemory(10)
	service := service.NewInvestmentService(repo, nil)
	handler := NewInvestmentHandler(service)

	bodies := map[string]string{
		"malformed json": `{invalid-json}`,
		"negative years": `{"principal": 1000, "years": -1}`,
		"rate too high":  `{"principal": 1000, "annual_rate_percent": 250, "years": 5}`,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(
				http.MethodPost,
				"/investment/calculate",
				bytes.NewBuffer([]byte(body)),
			)
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			handler.Calculate(w, req)

			if w.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", w.Code)
			}
		})
	}
}

func TestCalculateInvestmentHandler_UnsupportedMediaType(t *testing.T) {

	repo := repository.NewInvestmentRepositoryMemory(10)
	service := service.NewInvestmentService(repo, nil)
	handler := NewInvestmentHandler(service)

	req := httptest.NewRequest(
		http.MethodPost,
		"/investment/calculate",
		bytes.NewBuffer([]byte(`principal=1000`)),
	)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	w := httptest.NewRecorder()
	handler.Calculate(w, req)

	if w.Code != http.StatusUnsupportedMediaType {
		t.Errorf("expected 415, got %d", w.Code)
	}
}

func TestRecentInvestmentsHandler(t *testing.T) {

	repo := repository.NewInvestmentRepositoryMemory(10)
	service := service.NewInvestmentService(repo, nil)
	handler := NewInvestmentHandler(service)

	for _, years := range []int{1, 2, 3} {
		if _, err := service.Calculate(domain.InvestmentRequest{Principal: 100, Years: years}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/investment/recent?limit=2", nil)
	w := httptest.NewRecorder()
	handler.Recent(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var records []domain.InvestmentRecord
	if err := json.NewDecoder(w.Body).Decode(&records); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Request.Years != 3 {
		t.Errorf("expected newest record first, got years=%d", records[0].Request.Years)
	}

	bad := httptest.NewRequest(http.MethodGet, "/investment/recent?limit=abc", nil)
	w = httptest.NewRecorder()
	handler.Recent(w, bad)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for a bad limit, got %d", w.Code)
	}
}
