package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/user/rera-scraper/internal/entity"
	"github.com/user/rera-scraper/internal/repository"
)

// ProjectRepoImpl provides a concrete implementation for the ProjectRepository interface using PostgreSQL.
type ProjectRepoImpl struct {
	db DB
}

// NewProjectRepo creates a new instance of ProjectRepoImpl.
func NewProjectRepo(db DB) *ProjectRepoImpl {
	return &ProjectRepoImpl{db: db}
}

const upsertProject = `
	INSERT INTO rera_projects (registration_number, project_name, promoter_name, promoter_address, gst_number, scraped_at)
	VALUES ($1, $2, $3, $4, $5, NOW())
	ON CONFLICT (registration_number) DO UPDATE SET
		project_name = EXCLUDED.project_name,
		promoter_name = EXCLUDED.promoter_name,
		promoter_address = EXCLUDED.promoter_address,
		gst_number = EXCLUDED.gst_number,
		scraped_at = EXCLUDED.scraped_at`

// SaveAll upserts every record within a single transaction. A later run
// overwrites the stored fields of a registration number.
func (r *ProjectRepoImpl) SaveAll(ctx context.Context, records []entity.ProjectRecord) (err error) {
	if len(records) == 0 {
		return nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	for _, rec := range records {
		if _, err = tx.Exec(ctx, upsertProject,
			rec.RegistrationNumber, rec.ProjectName, rec.PromoterName, rec.PromoterAddress, rec.GSTNumber,
		); err != nil {
			return fmt.Errorf("upsert %s: %w", rec.RegistrationNumber, err)
		}
	}

	return tx.Commit(ctx)
}

// List returns stored records ordered by registration number.
func (r *ProjectRepoImpl) List(ctx context.Context, limit int) ([]entity.ProjectRecord, error) {
	rows, err := r.db.Query(ctx, `
		SELECT registration_number, project_name, promoter_name, promoter_address, gst_number
		FROM rera_projects
		ORDER BY registration_number
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entity.ProjectRecord
	for rows.Next() {
		var rec entity.ProjectRecord
		if err := rows.Scan(&rec.RegistrationNumber, &rec.ProjectName, &rec.PromoterName, &rec.PromoterAddress, &rec.GSTNumber); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// FindByRegistration retrieves a single record by its RERA registration number.
func (r *ProjectRepoImpl) FindByRegistration(ctx context.Context, regNo string) (*entity.ProjectRecord, error) {
	var rec entity.ProjectRecord
	err := r.db.QueryRow(ctx, `
		SELECT registration_number, project_name, promoter_name, promoter_address, gst_number
		FROM rera_projects
		WHERE registration_number = $1`, regNo,
	).Scan(&rec.RegistrationNumber, &rec.ProjectName, &rec.PromoterName, &rec.PromoterAddress, &rec.GSTNumber)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrProjectNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
