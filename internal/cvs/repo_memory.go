package cvs

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory Repo used when no database is configured.
type MemoryRepo struct {
	mu  sync.RWMutex
	cvs map[string]CV
}

// NewMemoryRepo constructs an empty MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{cvs: make(map[string]CV)}
}

func (r *MemoryRepo) Create(_ context.Context, cv CV) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cvs[cv.ID] = cv
	return nil
}

func (r *MemoryRepo) GetByID(_ context.Context, userId, id string) (CV, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cv, ok := r.cvs[id]
	if !ok || cv.UserID != userId {
		return CV{}, ErrNotFound
	}
	return cv, nil
}

func (r *MemoryRepo) ListByUser(_ context.Context, userId string, limit, offset int) ([]CV, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	var all []CV
	for _, cv := range r.cvs {
		if cv.UserID == userId {
			all = append(all, cv)
		}
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	if offset >= len(all) {
		return []CV{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (r *MemoryRepo) Delete(_ context.Context, userId, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cv, ok := r.cvs[id]
	if !ok || cv.UserID != userId {
		return ErrNotFound
	}
	delete(r.cvs, id)
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
