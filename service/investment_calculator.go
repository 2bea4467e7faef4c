package service

import (
	"math"

	"b3-dashboard/domain"
)

// roundTo2Decimals rounds a float64 to cent precision. Exact halves round
// away from zero (0.125 -> 0.13), not to even; the gap is below a cent.
func roundTo2Decimals(value float64) float64 {
	return math.Round(value*100) / 100
}

// CalculateInvestmentValue returns the closed-form future value of the
// principal plus an ordinary annuity of contributions.
//
// Inputs are expected to be validated by the caller: non-negative amounts
// and rate, positive years and frequency.
func CalculateInvestmentValue(in domain.ProjectionInput) float64 {
	if in.AnnualRate == 0 {
		// Contributions are monthly in wall-clock terms, whatever the compounding.
		return in.Principal + in.PeriodicContribution*12*float64(in.Years)
	}

	freq := in.Frequency()
	periodicRate := in.AnnualRate / float64(freq)
	totalPeriods := float64(in.Years * freq)

	growth := math.Pow(1+periodicRate, totalPeriods)
	fvPrincipal := in.Principal * growth

	var fvContributions float64
	if periodicRate != 0 {
		fvContributions = in.PeriodicContribution * ((growth - 1) / periodicRate)
	} else {
		fvContributions = in.PeriodicContribution * totalPeriods
	}

	return fvPrincipal + fvContributions
}

// InvestmentGrowthSchedule simulates the investment period by period and
// returns one row per year. Balances keep full precision between periods;
// only the recorded rows are rounded.
func InvestmentGrowthSchedule(in domain.ProjectionInput) []domain.ScheduleRow {
	freq := in.Frequency()
	periodicRate := in.AnnualRate / float64(freq)

	balance := in.Principal
	totalContributions := in.Principal

	schedule := make([]domain.ScheduleRow, 0, in.Years)
	for year := 1; year <= in.Years; year++ {
		for period := 0; period < freq; period++ {
			// Interest accrues on the balance before this period's contribution.
			balance += balance * periodicRate

			if contributesInPeriod(period, freq) {
				balance += in.PeriodicContribution
				totalContributions += in.PeriodicContribution
			}
		}

		schedule = append(schedule, domain.ScheduleRow{
			Year:               year,
			Balance:            roundTo2Decimals(balance),
			TotalContributions: roundTo2Decimals(totalContributions),
			InterestEarned:     roundTo2Decimals(balance - totalContributions),
		})
	}

	return schedule
}

// contributesInPeriod reports whether period receives the monthly
// contribution. With frequency >= 12 only periods on a month boundary do;
// below 12 every period does.
func contributesInPeriod(period, freq int) bool {
	step := freq / 12
	if step == 0 {
		return true
	}
	return period%step == 0
}
