package jobs

import (
	"context"
	"errors"
)

// ErrNotFound indicates no job matches the lookup.
var ErrNotFound = errors.New("job not found")

// ListFilter narrows job listings.
type ListFilter struct {
	Type     string
	Location string
	Limit    int
	Offset   int
}

// Repo persists job postings.
type Repo interface {
	Create(ctx context.Context, job Job) error
	GetByID(ctx context.Context, id string) (Job, error)
	List(ctx context.Context, filter ListFilter) ([]Job, error)
	UpdateStatus(ctx context.Context, id, status string) (Job, error)
	Delete(ctx context.Context, id string) error
}
