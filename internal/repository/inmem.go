package repository

import (
	"sync"

	"signals-backend/internal/domain"
)

// InMemoryResultRepository holds the latest completed scan for the delivery
// layer. The whole result is replaced per run.
type InMemoryResultRepository struct {
	result domain.ScanResult
	mu     sync.RWMutex
}

func NewInMemoryResultRepository() *InMemoryResultRepository {
	return &InMemoryResultRepository{}
}

func (r *InMemoryResultRepository) SaveResult(result domain.ScanResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.result = result
}

func (r *InMemoryResultRepository) LatestResult() domain.ScanResult {
	r.mu.RLock()
	defer r.mu.RUnlock()
	// Slices are shared; callers serialize to JSON and never mutate.
	return r.result
}
