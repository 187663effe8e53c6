package jobs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new job.
func (r *PGRepo) Create(ctx context.Context, job Job) error {
	const query = `
INSERT INTO jobs (id, title, company, description, location, type, requirements, status, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.DB.ExecContext(
		ctx,
		query,
		job.ID,
		job.Title,
		nullable(job.Company),
		nullable(job.Description),
		nullable(job.Location),
		nullable(job.Type),
		nullable(job.Requirements),
		job.Status,
		job.CreatedAt,
	)
	return err
}

// GetByID fetches a job by ID.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Job, error) {
	const query = `
SELECT id, title, company, description, location, type, requirements, status, created_at, updated_at
FROM jobs
WHERE id = $1
LIMIT 1`

	job, err := scanJob(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Job{}, ErrNotFound
		}
		return Job{}, err
	}
	return job, nil
}

// List returns jobs newest-first, optionally filtered by type and location.
func (r *PGRepo) List(ctx context.Context, filter ListFilter) ([]Job, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := `
SELECT id, title, company, description, location, type, requirements, status, created_at, updated_at
FROM jobs
WHERE 1=1`
	args := []any{}
	argN := 1

	// Untyped/unlocated jobs match every filter value.
	if filter.Type != "" {
		query += fmt.Sprintf(" AND (type = $%d OR type IS NULL)", argN)
		args = append(args, filter.Type)
		argN++
	}
	if filter.Location != "" {
		query += fmt.Sprintf(" AND (location = $%d OR location IS NULL)", argN)
		args = append(args, filter.Location)
		argN++
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argN, argN+1)
	args = append(args, limit, offset)

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, job)
	}
	return out, rows.Err()
}

// UpdateStatus sets a job's status and returns the updated row.
func (r *PGRepo) UpdateStatus(ctx context.Context, id, status string) (Job, error) {
	const query = `
UPDATE jobs
SET status = $1, updated_at = $2
WHERE id = $3
RETURNING id, title, company, description, location, type, requirements, status, created_at, updated_at`

	job, err := scanJob(r.DB.QueryRowContext(ctx, query, status, time.Now().UTC(), id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Job{}, ErrNotFound
		}
		return Job{}, err
	}
	return job, nil
}

// Delete removes a job.
func (r *PGRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (Job, error) {
	var job Job
	var company, description, location, jobType, requirements sql.NullString
	var updatedAt sql.NullTime
	err := row.Scan(
		&job.ID,
		&job.Title,
		&company,
		&description,
		&location,
		&jobType,
		&requirements,
		&job.Status,
		&job.CreatedAt,
		&updatedAt,
	)
	if err != nil {
		return Job{}, err
	}
	job.Company = company.String
	job.Description = description.String
	job.Location = location.String
	job.Type = jobType.String
	job.Requirements = requirements.String
	if updatedAt.Valid {
		job.UpdatedAt = &updatedAt.Time
	}
	return job, nil
}

func nullable(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

var _ Repo = (*PGRepo)(nil)
