package repository

import (
	"context"
	"errors"

	"github.com/user/rera-scraper/internal/entity"
)

var ErrProjectNotFound = errors.New("project not found")

// ProjectRepository defines the interface for storing scraped project records.
type ProjectRepository interface {
	// SaveAll upserts records keyed by registration number.
	SaveAll(ctx context.Context, records []entity.ProjectRecord) error
	// List returns stored records ordered by registration number.
	List(ctx context.Context, limit int) ([]entity.ProjectRecord, error)
	// FindByRegistration retrieves one record or ErrProjectNotFound.
	FindByRegistration(ctx context.Context, regNo string) (*entity.ProjectRecord, error)
}
