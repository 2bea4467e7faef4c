package repository

import "b3-dashboard/domain"

type InvestmentRepository interface {
	Save(record domain.InvestmentRecord) error
	Recent(limit int) ([]domain.InvestmentRecord, error)
}
