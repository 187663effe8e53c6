package tailoring

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory Repo used when no database is configured.
type MemoryRepo struct {
	mu       sync.RWMutex
	outcomes map[string]TailoredCV
}

// NewMemoryRepo constructs an empty MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{outcomes: make(map[string]TailoredCV)}
}

func (r *MemoryRepo) Create(_ context.Context, tc TailoredCV) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.outcomes {
		if existing.UserID == tc.UserID && existing.CVID == tc.CVID && existing.JobID == tc.JobID {
			return ErrDuplicate
		}
	}
	r.outcomes[tc.ID] = tc
	return nil
}

func (r *MemoryRepo) Update(_ context.Context, tc TailoredCV) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.outcomes[tc.ID]
	if !ok || existing.UserID != tc.UserID {
		return ErrNotFound
	}
	tc.CreatedAt = existing.CreatedAt
	r.outcomes[tc.ID] = tc
	return nil
}

func (r *MemoryRepo) GetByTriple(_ context.Context, userId, cvId, jobId string) (TailoredCV, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, tc := range r.outcomes {
		if tc.UserID == userId && tc.CVID == cvId && tc.JobID == jobId {
			return tc, nil
		}
	}
	return TailoredCV{}, ErrNotFound
}

func (r *MemoryRepo) GetByID(_ context.Context, userId, id string) (TailoredCV, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tc, ok := r.outcomes[id]
	if !ok || tc.UserID != userId {
		return TailoredCV{}, ErrNotFound
	}
	return tc, nil
}

func (r *MemoryRepo) ListByUser(_ context.Context, userId string, limit, offset int) ([]TailoredCV, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	var all []TailoredCV
	for _, tc := range r.outcomes {
		if tc.UserID == userId {
			all = append(all, tc)
		}
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	if offset >= len(all) {
		return []TailoredCV{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

var _ Repo = (*MemoryRepo)(nil)
