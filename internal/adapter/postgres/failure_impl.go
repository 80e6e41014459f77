package postgres

import (
	"context"

	"github.com/user/rera-scraper/internal/entity"
)

// FailureRepoImpl provides a concrete implementation for the FailureRepository interface using PostgreSQL.
type FailureRepoImpl struct {
	db DB
}

// NewFailureRepo creates a new instance of FailureRepoImpl.
func NewFailureRepo(db DB) *FailureRepoImpl {
	return &FailureRepoImpl{db: db}
}

// Save appends a failure record. Failures are never retried, so each attempt is its own row.
func (r *FailureRepoImpl) Save(ctx context.Context, f *entity.FetchFailure) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO fetch_failures (url, kind, reason, http_status_code, attempted_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		f.URL, f.Kind, f.Reason, f.HTTPStatusCode, f.AttemptedAt,
	).Scan(&f.ID)
}

// Recent retrieves the latest failures, newest first.
func (r *FailureRepoImpl) Recent(ctx context.Context, limit int) ([]*entity.FetchFailure, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, url, kind, reason, http_status_code, attempted_at
		FROM fetch_failures
		ORDER BY attempted_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var failures []*entity.FetchFailure
	for rows.Next() {
		var f entity.FetchFailure
		if err := rows.Scan(&f.ID, &f.URL, &f.Kind, &f.Reason, &f.HTTPStatusCode, &f.AttemptedAt); err != nil {
			return nil, err
		}
		failures = append(failures, &f)
	}
	return failures, rows.Err()
}
