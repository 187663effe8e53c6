package candidates

import (
	"context"
	"errors"
)

var (
	// ErrNotFound indicates no candidate matches the lookup.
	ErrNotFound = errors.New("candidate not found")

	// ErrEmailTaken indicates the candidate email is already registered.
	ErrEmailTaken = errors.New("candidate email already registered")
)

// Repo persists candidates.
type Repo interface {
	Create(ctx context.Context, candidate Candidate) error
	GetByID(ctx context.Context, id string) (Candidate, error)
	List(ctx context.Context, limit, offset int) ([]Candidate, error)
	Delete(ctx context.Context, id string) error
}
