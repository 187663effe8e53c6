package candidates

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// MemoryRepo is an in-memory Repo used when no database is configured.
type MemoryRepo struct {
	mu         sync.RWMutex
	candidates map[string]Candidate
}

// NewMemoryRepo constructs an empty MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{candidates: make(map[string]Candidate)}
}

func (r *MemoryRepo) Create(_ context.Context, candidate Candidate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.candidates {
		if strings.EqualFold(existing.Email, candidate.Email) {
			return ErrEmailTaken
		}
	}
	r.candidates[candidate.ID] = candidate
	return nil
}

func (r *MemoryRepo) GetByID(_ context.Context, id string) (Candidate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	candidate, ok := r.candidates[id]
	if !ok {
		return Candidate{}, ErrNotFound
	}
	return candidate, nil
}

func (r *MemoryRepo) List(_ context.Context, limit, offset int) ([]Candidate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	all := make([]Candidate, 0, len(r.candidates))
	for _, candidate := range r.candidates {
		all = append(all, candidate)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	if offset >= len(all) {
		return []Candidate{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (r *MemoryRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.candidates[id]; !ok {
		return ErrNotFound
	}
	delete(r.candidates, id)
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
