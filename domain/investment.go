package domain

import "time"

// DefaultCompoundingFrequency is used when ProjectionInput leaves the
// frequency unset.
const DefaultCompoundingFrequency = 12

// ProjectionInput holds the parameters of a growth projection. AnnualRate
// is a fraction (0.07 for 7%).
type ProjectionInput struct {
	Principal            float64
	PeriodicContribution float64
	AnnualRate           float64
	Years                int
	CompoundingFrequency int
}

// Frequency returns the compounding frequency, applying the default of 12.
func (in ProjectionInput) Frequency() int {
	if in.CompoundingFrequency == 0 {
		return DefaultCompoundingFrequency
	}
	return in.CompoundingFrequency
}

type ScheduleRow struct {
	Year               int     `json:"year"`
	Balance            float64 `json:"balance"`
	TotalContributions float64 `json:"total_contributions"`
	InterestEarned     float64 `json:"interest_earned"`
}

// InvestmentRequest is the calculator form as the UI collects it: the rate
// is a percentage.
type InvestmentRequest struct {
	Principal            float64 `json:"principal"`
	MonthlyContribution  float64 `json:"monthly_contribution"`
	AnnualRatePercent    float64 `json:"annual_rate_percent"`
	Years                int     `json:"years"`
	CompoundingFrequency int     `json:"compounding_frequency,omitempty"`
}

type InvestmentResult struct {
	FinalValue         float64       `json:"final_value"`
	TotalContributions float64       `json:"total_contributions"`
	InterestEarned     float64       `json:"interest_earned"`
	Schedule           []ScheduleRow `json:"schedule"`
}

// InvestmentRecord is one calculation kept by the recent-calculations list.
type InvestmentRecord struct {
	Request      InvestmentRequest `json:"request"`
	FinalValue   float64           `json:"final_value"`
	CalculatedAt time.Time         `json:"calculated_at"`
}
