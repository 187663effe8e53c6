package applications

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is an in-memory Repo used when no database is configured.
type MemoryRepo struct {
	mu   sync.RWMutex
	apps map[string]Application
}

// NewMemoryRepo constructs an empty MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{apps: make(map[string]Application)}
}

func (r *MemoryRepo) Create(_ context.Context, app Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.apps {
		if existing.CandidateID == app.CandidateID && existing.JobID == app.JobID {
			return ErrDuplicate
		}
	}
	r.apps[app.ID] = app
	return nil
}

func (r *MemoryRepo) GetByID(_ context.Context, id string) (Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	app, ok := r.apps[id]
	if !ok {
		return Application{}, ErrNotFound
	}
	return app, nil
}

func (r *MemoryRepo) ListByUser(_ context.Context, userId string, limit, offset int) ([]Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	var all []Application
	for _, app := range r.apps {
		if app.UserID == userId {
			all = append(all, app)
		}
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].AppliedAt.After(all[j].AppliedAt)
	})

	if offset >= len(all) {
		return []Application{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (r *MemoryRepo) UpdateStatus(_ context.Context, id, status string) (Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	app, ok := r.apps[id]
	if !ok {
		return Application{}, ErrNotFound
	}
	now := time.Now().UTC()
	app.Status = status
	app.UpdatedAt = &now
	r.apps[id] = app
	return app, nil
}

var _ Repo = (*MemoryRepo)(nil)
