package inmemory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/SscSPs/budget_ledger/internal/jobs"
)

// Store is an in-memory JobStore. State is lost on restart.
type Store struct {
	mu   sync.RWMutex
	jobs map[string]*jobs.RefreshBudgetPeriodJob
}

// NewStore creates a new in-memory job store.
func NewStore() *Store {
	return &Store{
		jobs: make(map[string]*jobs.RefreshBudgetPeriodJob),
	}
}

// SaveJob stores a copy of job.
func (s *Store) SaveJob(ctx context.Context, job *jobs.RefreshBudgetPeriodJob) error {
	if job.JobID == "" {
		return fmt.Errorf("job ID is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	jobCopy := *job
	s.jobs[job.JobID] = &jobCopy
	return nil
}

// GetJob returns a copy of the stored job.
func (s *Store) GetJob(ctx context.Context, jobID string) (*jobs.RefreshBudgetPeriodJob, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	job, exists := s.jobs[jobID]
	if !exists {
		return nil, fmt.Errorf("job not found: %s", jobID)
	}
	jobCopy := *job
	return &jobCopy, nil
}

// ListJobs returns copies of matching jobs, oldest first.
func (s *Store) ListJobs(ctx context.Context, filter jobs.JobFilter) ([]*jobs.RefreshBudgetPeriodJob, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*jobs.RefreshBudgetPeriodJob, 0, len(s.jobs))
	for _, job := range s.jobs {
		if filter.BudgetPeriodID != "" && job.BudgetPeriodID != filter.BudgetPeriodID {
			continue
		}
		if filter.Status != "" && job.Status != filter.Status {
			continue
		}
		jobCopy := *job
		result = append(result, &jobCopy)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})

	if filter.Limit > 0 && filter.Limit < len(result) {
		result = result[:filter.Limit]
	}
	return result, nil
}

var _ jobs.JobStore = (*Store)(nil)
