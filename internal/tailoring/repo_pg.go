package tailoring

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

// Create inserts a new tailoring outcome.
func (r *PGRepo) Create(ctx context.Context, tc TailoredCV) error {
	const query = `
INSERT INTO tailored_cvs (id, user_id, cv_id, job_id, job_title, file_name, storage_key, ai_summary, ai_generated, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.DB.ExecContext(
		ctx,
		query,
		tc.ID,
		tc.UserID,
		tc.CVID,
		tc.JobID,
		tc.JobTitle,
		tc.FileName,
		tc.StorageKey,
		tc.Summary,
		tc.AIGenerated,
		tc.CreatedAt,
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicate
	}
	return err
}

// Update overwrites an outcome in place, preserving its identity.
func (r *PGRepo) Update(ctx context.Context, tc TailoredCV) error {
	const query = `
UPDATE tailored_cvs
SET job_title = $1, file_name = $2, storage_key = $3, ai_summary = $4, ai_generated = $5, regenerated_at = $6
WHERE user_id = $7 AND id = $8`

	res, err := r.DB.ExecContext(
		ctx,
		query,
		tc.JobTitle,
		tc.FileName,
		tc.StorageKey,
		tc.Summary,
		tc.AIGenerated,
		tc.RegeneratedAt,
		tc.UserID,
		tc.ID,
	)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetByTriple fetches the outcome for an exact (user, cv, job) triple.
func (r *PGRepo) GetByTriple(ctx context.Context, userId, cvId, jobId string) (TailoredCV, error) {
	const query = `
SELECT id, user_id, cv_id, job_id, job_title, file_name, storage_key, ai_summary, ai_generated, created_at, regenerated_at
FROM tailored_cvs
WHERE user_id = $1 AND cv_id = $2 AND job_id = $3
LIMIT 1`

	return scanTailoredCV(r.DB.QueryRowContext(ctx, query, userId, cvId, jobId))
}

// GetByID fetches an outcome by ID scoped to its owner.
func (r *PGRepo) GetByID(ctx context.Context, userId, id string) (TailoredCV, error) {
	const query = `
SELECT id, user_id, cv_id, job_id, job_title, file_name, storage_key, ai_summary, ai_generated, created_at, regenerated_at
FROM tailored_cvs
WHERE user_id = $1 AND id = $2
LIMIT 1`

	return scanTailoredCV(r.DB.QueryRowContext(ctx, query, userId, id))
}

// ListByUser returns the user's outcomes newest-first.
func (r *PGRepo) ListByUser(ctx context.Context, userId string, limit, offset int) ([]TailoredCV, error) {
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
SELECT id, user_id, cv_id, job_id, job_title, file_name, storage_key, ai_summary, ai_generated, created_at, regenerated_at
FROM tailored_cvs
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`

	rows, err := r.DB.QueryContext(ctx, query, userId, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TailoredCV
	for rows.Next() {
		tc, err := scanRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, tc)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTailoredCV(row rowScanner) (TailoredCV, error) {
	tc, err := scanRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return TailoredCV{}, ErrNotFound
		}
		return TailoredCV{}, err
	}
	return tc, nil
}

func scanRow(row rowScanner) (TailoredCV, error) {
	var tc TailoredCV
	var summary sql.NullString
	var regeneratedAt sql.NullTime
	err := row.Scan(
		&tc.ID,
		&tc.UserID,
		&tc.CVID,
		&tc.JobID,
		&tc.JobTitle,
		&tc.FileName,
		&tc.StorageKey,
		&summary,
		&tc.AIGenerated,
		&tc.CreatedAt,
		&regeneratedAt,
	)
	if err != nil {
		return TailoredCV{}, err
	}
	tc.Summary = summary.String
	if regeneratedAt.Valid {
		tc.RegeneratedAt = &regeneratedAt.Time
	}
	return tc, nil
}

var _ Repo = (*PGRepo)(nil)
