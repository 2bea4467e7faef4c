package service

import "errors"

var (
	ErrInvalidPrincipal    = errors.New("invalid principal")
	ErrInvalidContribution = errors.New("invalid monthly contribution")
	ErrInvalidRate         = errors.New("invalid annual rate")
	ErrInvalidYears        = errors.New("invalid investment period")
	ErrInvalidFrequency    = errors.New("invalid compounding frequency")
	ErrNoTickers           = errors.New("ticker list must not be empty")
	ErrTooManyTickers      = errors.New("too many tickers")
	ErrInvalidPeriod       = errors.New("invalid period")
	ErrInvalidInterval     = errors.New("invalid interval")
)

// IsValidationError reports whether err was caused by bad caller input.
func IsValidationError(err error) bool {
	for _, target := range []error{
		ErrInvalidPrincipal, ErrInvalidContribution, ErrInvalidRate,
		ErrInvalidYears, ErrInvalidFrequency, ErrNoTickers,
		ErrTooManyTickers, ErrInvalidPeriod, ErrInvalidInterval,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
