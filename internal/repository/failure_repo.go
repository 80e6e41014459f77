package repository

import (
	"context"

	"github.com/user/rera-scraper/internal/entity"
)

// FailureRepository defines the interface for recording pages that could not be fetched.
type FailureRepository interface {
	Save(ctx context.Context, f *entity.FetchFailure) error
	// Recent returns the latest failures, newest first.
	Recent(ctx context.Context, limit int) ([]*entity.FetchFailure, error)
}
