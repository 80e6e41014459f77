package repository

import (
	"context"
	"time"

	"github.com/user/rera-scraper/internal/entity"
)

// DetailCache defines the interface for caching extracted detail pages.
type DetailCache interface {
	// Get returns the cached details and true on a hit.
	Get(ctx context.Context, detailURL string) (*entity.PromoterDetails, bool, error)
	Put(ctx context.Context, detailURL string, d *entity.PromoterDetails, ttl time.Duration) error
}
