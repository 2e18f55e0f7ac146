package repository

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/spec-kit/diagnosis-service/internal/domain"
)

// memoryReportRepository keeps per-user report lists in process memory.
// Used when no POSTGRES_DSN is configured, and in tests. Each user's
// collection has its own mutex so unrelated users never serialize; the
// outer mutex only guards the lock table itself.
type memoryReportRepository struct {
	mu      sync.Mutex
	locks   map[string]*sync.Mutex
	reports map[string][]domain.Report
}

// NewMemoryReportRepository returns an in-memory implementation.
func NewMemoryReportRepository() ReportRepository {
	return &memoryReportRepository{
		locks:   make(map[string]*sync.Mutex),
		reports: make(map[string][]domain.Report),
	}
}

func (r *memoryReportRepository) userLock(userID string) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	lock, ok := r.locks[userID]
	if !ok {
		lock = &sync.Mutex{}
		r.locks[userID] = lock
	}
	return lock
}

func (r *memoryReportRepository) Create(_ context.Context, userID string, payload map[string]any) (*domain.Report, error) {
	lock := r.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	report := domain.Report{
		ID:        strconv.Itoa(len(r.reports[userID]) + 1),
		UserID:    userID,
		Payload:   payload,
		CreatedAt: time.Now(),
	}
	r.reports[userID] = append(r.reports[userID], report)
	return &report, nil
}

func (r *memoryReportRepository) ListByUser(_ context.Context, userID string) ([]domain.Report, error) {
	lock := r.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	stored := r.reports[userID]
	out := make([]domain.Report, len(stored))
	copy(out, stored)
	return out, nil
}
