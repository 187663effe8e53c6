package cvs

import (
	"context"
	"errors"
)

// ErrNotFound indicates no CV matches the lookup for the user.
var ErrNotFound = errors.New("cv not found")

// Repo persists uploaded CVs. All lookups are scoped by owner.
type Repo interface {
	Create(ctx context.Context, cv CV) error
	GetByID(ctx context.Context, userId, id string) (CV, error)
	ListByUser(ctx context.Context, userId string, limit, offset int) ([]CV, error)
	Delete(ctx context.Context, userId, id string) error
}
