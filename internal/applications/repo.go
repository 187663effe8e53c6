package applications

import (
	"context"
	"errors"
)

var (
	// ErrNotFound indicates no application matches the lookup.
	ErrNotFound = errors.New("application not found")

	// ErrDuplicate indicates the candidate already applied to the job.
	ErrDuplicate = errors.New("application already exists")
)

// Repo persists applications.
type Repo interface {
	Create(ctx context.Context, app Application) error
	GetByID(ctx context.Context, id string) (Application, error)
	ListByUser(ctx context.Context, userId string, limit, offset int) ([]Application, error)
	UpdateStatus(ctx context.Context, id, status string) (Application, error)
}
