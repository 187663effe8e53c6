package applications

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new application.
func (r *PGRepo) Create(ctx context.Context, app Application) error {
	const query = `
INSERT INTO applications (id, user_id, candidate_id, job_id, tailored_cv_id, status, applied_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.DB.ExecContext(
		ctx,
		query,
		app.ID,
		app.UserID,
		app.CandidateID,
		app.JobID,
		app.TailoredCVID,
		app.Status,
		app.AppliedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// GetByID fetches an application by ID.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Application, error) {
	const query = `
SELECT id, user_id, candidate_id, job_id, tailored_cv_id, status, applied_at, updated_at
FROM applications
WHERE id = $1
LIMIT 1`

	return scanApplication(r.DB.QueryRowContext(ctx, query, id))
}

// ListByUser returns the user's applications newest-first.
func (r *PGRepo) ListByUser(ctx context.Context, userId string, limit, offset int) ([]Application, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	const query = `
SELECT id, user_id, candidate_id, job_id, tailored_cv_id, status, applied_at, updated_at
FROM applications
WHERE user_id = $1
ORDER BY applied_at DESC
LIMIT $2 OFFSET $3`

	rows, err := r.DB.QueryContext(ctx, query, userId, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Application
	for rows.Next() {
		app, err := scanRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, app)
	}
	return out, rows.Err()
}

// UpdateStatus sets the review state and returns the updated row.
func (r *PGRepo) UpdateStatus(ctx context.Context, id, status string) (Application, error) {
	const query = `
UPDATE applications
SET status = $1, updated_at = $2
WHERE id = $3
RETURNING id, user_id, candidate_id, job_id, tailored_cv_id, status, applied_at, updated_at`

	return scanApplication(r.DB.QueryRowContext(ctx, query, status, time.Now().UTC(), id))
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanApplication(row rowScanner) (Application, error) {
	app, err := scanRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Application{}, ErrNotFound
		}
		return Application{}, err
	}
	return app, nil
}

func scanRow(row rowScanner) (Application, error) {
	var app Application
	var updatedAt sql.NullTime
	err := row.Scan(
		&app.ID,
		&app.UserID,
		&app.CandidateID,
		&app.JobID,
		&app.TailoredCVID,
		&app.Status,
		&app.AppliedAt,
		&updatedAt,
	)
	if err != nil {
		return Application{}, err
	}
	if updatedAt.Valid {
		app.UpdatedAt = &updatedAt.Time
	}
	return app, nil
}

var _ Repo = (*PGRepo)(nil)
