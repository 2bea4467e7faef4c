package service

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"b3-dashboard/domain"
	"b3-dashboard/metrics"
	"b3-dashboard/repository"
)

type InvestmentService struct {
	repo    repository.InvestmentRepository
	metrics *metrics.Metrics
	now     func() time.Time
}

// NewInvestmentService creates a new InvestmentService with the given repository.
func NewInvestmentService(repo repository.InvestmentRepository, m *metrics.Metrics) *InvestmentService {
	return &InvestmentService{repo: repo, metrics: m, now: time.Now}
}

// Calculate validates the request, runs the projection engine and returns
// the summary together with the yearly schedule.
func (s *InvestmentService) Calculate(
	req domain.InvestmentRequest,
) (domain.InvestmentResult, error) {

	input, err := ToProjectionInput(req)
	if err != nil {
		return domain.InvestmentResult{}, err
	}

	finalValue := CalculateInvestmentValue(input)
	schedule := InvestmentGrowthSchedule(input)

	totalContributions := input.Principal + input.PeriodicContribution*12*float64(input.Years)

	result := domain.InvestmentResult{
		FinalValue:         roundTo2Decimals(finalValue),
		TotalContributions: roundTo2Decimals(totalContributions),
		InterestEarned:     roundTo2Decimals(finalValue - totalContributions),
		Schedule:           schedule,
	}
	s.metrics.IncProjections()

	// Not critical if it fails
	record := domain.InvestmentRecord{
		Request:      req,
		FinalValue:   result.FinalValue,
		CalculatedAt: s.now(),
	}
	if err := s.repo.Save(record); err != nil {
		slog.Warn("failed to save investment calculation", "error", err)
	}

	return result, nil
}

// Recent lists the latest calculations, newest first.
func (s *InvestmentService) Recent(limit int) ([]domain.InvestmentRecord, error) {
	if limit <= 0 || limit > MaxRecentInvestments {
		limit = MaxRecentInvestments
	}
	return s.repo.Recent(limit)
}

// ToProjectionInput checks the calculator form and converts it into engine
// input, turning the percentage rate into a fraction.
func ToProjectionInput(req domain.InvestmentRequest) (domain.ProjectionInput, error) {
	if !finite(req.Principal) {
		return domain.ProjectionInput{}, fmt.Errorf("%w: must be a finite number", ErrInvalidPrincipal)
	}
	if !finite(req.MonthlyContribution) {
		return domain.ProjectionInput{}, fmt.Errorf("%w: must be a finite number", ErrInvalidContribution)
	}
	if !finite(req.AnnualRatePercent) {
		return domain.ProjectionInput{}, fmt.Errorf("%w: must be a finite number", ErrInvalidRate)
	}
	if req.Principal < 0 {
		return domain.ProjectionInput{}, fmt.Errorf("%w: must not be negative", ErrInvalidPrincipal)
	}
	if req.Principal > MaxPrincipal {
		return domain.ProjectionInput{}, fmt.Errorf("%w: exceeds the maximum of R$ %.2f", ErrInvalidPrincipal, MaxPrincipal)
	}
	if req.MonthlyContribution < 0 {
		return domain.ProjectionInput{}, fmt.Errorf("%w: must not be negative", ErrInvalidContribution)
	}
	if req.MonthlyContribution > MaxMonthlyContribution {
		return domain.ProjectionInput{}, fmt.Errorf("%w: exceeds the maximum of R$ %.2f", ErrInvalidContribution, MaxMonthlyContribution)
	}
	if req.AnnualRatePercent < 0 || req.AnnualRatePercent > MaxAnnualRatePercent {
		return domain.ProjectionInput{}, fmt.Errorf("%w: must be between 0 and %.0f%%", ErrInvalidRate, MaxAnnualRatePercent)
	}
	if req.Years < MinYears || req.Years > MaxYears {
		return domain.ProjectionInput{}, fmt.Errorf("%w: must be between %d and %d years", ErrInvalidYears, MinYears, MaxYears)
	}
	if !validFrequency(req.CompoundingFrequency) {
		return domain.ProjectionInput{}, fmt.Errorf("%w: %d must divide or be a multiple of 12, up to %d",
			ErrInvalidFrequency, req.CompoundingFrequency, MaxCompoundingFrequency)
	}

	return domain.ProjectionInput{
		Principal:            req.Principal,
		PeriodicContribution: req.MonthlyContribution,
		AnnualRate:           req.AnnualRatePercent / 100,
		Years:                req.Years,
		CompoundingFrequency: req.CompoundingFrequency,
	}, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// validFrequency accepts 0 (default monthly) and positive divisors or
// multiples of 12.
func validFrequency(freq int) bool {
	if freq == 0 {
		return true
	}
	if freq < 0 || freq > MaxCompoundingFrequency {
		return false
	}
	return 12%freq == 0 || freq%12 == 0
}
