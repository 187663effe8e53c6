package tailoring

import "context"

// Repo persists tailoring outcomes. All lookups are scoped by owner.
type Repo interface {
	Create(ctx context.Context, tc TailoredCV) error
	Update(ctx context.Context, tc TailoredCV) error
	GetByTriple(ctx context.Context, userId, cvId, jobId string) (TailoredCV, error)
	GetByID(ctx context.Context, userId, id string) (TailoredCV, error)
	ListByUser(ctx context.Context, userId string, limit, offset int) ([]TailoredCV, error)
}
