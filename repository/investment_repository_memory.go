package repository

import (
	"sync"

	"b3-dashboard/domain"
)

// InvestmentRepositoryMemory keeps the most recent calculations in memory.
// Older records are dropped once capacity is reached.
type InvestmentRepositoryMemory struct {
	mu       sync.Mutex
	capacity int
	data     []domain.InvestmentRecord
}

// NewInvestmentRepositoryMemory creates a repository holding at most
// capacity records.
func NewInvestmentRepositoryMemory(capacity int) *InvestmentRepositoryMemory {
	if capacity <= 0 {
		capacity = 1
	}
	return &InvestmentRepositoryMemory{
		capacity: capacity,
		data:     make([]domain.InvestmentRecord, 0, capacity),
	}
}

// Save stores the record, evicting the oldest one when full.
func (r *InvestmentRepositoryMemory) Save(record domain.InvestmentRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.data) == r.capacity {
		copy(r.data, r.data[1:])
		r.data = r.data[:len(r.data)-1]
	}
	r.data = append(r.data, record)
	return nil
}

// Recent returns up to limit records, newest first.
func (r *InvestmentRepositoryMemory) Recent(limit int) ([]domain.InvestmentRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if limit <= 0 || limit > len(r.data) {
		limit = len(r.data)
	}
	out := make([]domain.InvestmentRecord, 0, limit)
	for i := len(r.data) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.data[i])
	}
	return out, nil
}
