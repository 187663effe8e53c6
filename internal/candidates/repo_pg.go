package candidates

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new candidate.
func (r *PGRepo) Create(ctx context.Context, candidate Candidate) error {
	const query = `
INSERT INTO candidates (id, first_name, last_name, email, created_at)
VALUES ($1, $2, $3, $4, $5)`

	_, err := r.DB.ExecContext(ctx, query, candidate.ID, candidate.FirstName, candidate.LastName, candidate.Email, candidate.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrEmailTaken
		}
		return err
	}
	return nil
}

// GetByID fetches a candidate by ID.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Candidate, error) {
	const query = `
SELECT id, first_name, last_name, email, created_at
FROM candidates
WHERE id = $1
LIMIT 1`

	var candidate Candidate
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&candidate.ID,
		&candidate.FirstName,
		&candidate.LastName,
		&candidate.Email,
		&candidate.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Candidate{}, ErrNotFound
		}
		return Candidate{}, err
	}
	return candidate, nil
}

// List returns candidates newest-first.
func (r *PGRepo) List(ctx context.Context, limit, offset int) ([]Candidate, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	const query = `
SELECT id, first_name, last_name, email, created_at
FROM candidates
ORDER BY created_at DESC
LIMIT $1 OFFSET $2`

	rows, err := r.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Candidate
	for rows.Next() {
		var candidate Candidate
		if err := rows.Scan(
			&candidate.ID,
			&candidate.FirstName,
			&candidate.LastName,
			&candidate.Email,
			&candidate.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, candidate)
	}
	return out, rows.Err()
}

// Delete removes a candidate.
func (r *PGRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM candidates WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

var _ Repo = (*PGRepo)(nil)
