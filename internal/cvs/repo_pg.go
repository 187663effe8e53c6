package cvs

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new CV row.
func (r *PGRepo) Create(ctx context.Context, cv CV) error {
	const query = `
INSERT INTO cvs (id, user_id, file_name, mime_type, size_bytes, storage_key, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.DB.ExecContext(ctx, query, cv.ID, cv.UserID, cv.FileName, cv.MimeType, cv.SizeBytes, cv.StorageKey, cv.CreatedAt)
	return err
}

// GetByID fetches a CV by ID scoped to its owner.
func (r *PGRepo) GetByID(ctx context.Context, userId, id string) (CV, error) {
	const query = `
SELECT id, user_id, file_name, mime_type, size_bytes, storage_key, created_at
FROM cvs
WHERE user_id = $1 AND id = $2
LIMIT 1`

	var cv CV
	err := r.DB.QueryRowContext(ctx, query, userId, id).Scan(
		&cv.ID,
		&cv.UserID,
		&cv.FileName,
		&cv.MimeType,
		&cv.SizeBytes,
		&cv.StorageKey,
		&cv.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return CV{}, ErrNotFound
		}
		return CV{}, err
	}
	return cv, nil
}

// ListByUser returns the user's CVs newest-first.
func (r *PGRepo) ListByUser(ctx context.Context, userId string, limit, offset int) ([]CV, error) {
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
SELECT id, user_id, file_name, mime_type, size_bytes, storage_key, created_at
FROM cvs
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`

	rows, err := r.DB.QueryContext(ctx, query, userId, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CV
	for rows.Next() {
		var cv CV
		if err := rows.Scan(
			&cv.ID,
			&cv.UserID,
			&cv.FileName,
			&cv.MimeType,
			&cv.SizeBytes,
			&cv.StorageKey,
			&cv.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, cv)
	}
	return out, rows.Err()
}

// Delete removes a CV scoped to its owner.
func (r *PGRepo) Delete(ctx context.Context, userId, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM cvs WHERE user_id = $1 AND id = $2`, userId, id)
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
