package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/user/rera-scraper/internal/entity"
	"github.com/user/rera-scraper/pkg/utils"
)

const detailKeyPrefix = "rera:detail:"

// DetailCacheImpl provides a concrete implementation for the DetailCache interface using Redis.
type DetailCacheImpl struct {
	client *redis.Client
}

// NewDetailCache creates a new instance of DetailCacheImpl.
func NewDetailCache(client *redis.Client) *DetailCacheImpl {
	return &DetailCacheImpl{client: client}
}

// generateKey creates a consistent Redis key for a given URL by hashing it.
func (r *DetailCacheImpl) generateKey(url string) string {
	return fmt.Sprintf("%s%s", detailKeyPrefix, utils.HashURL(url))
}

// Get returns the cached details for a detail page URL.
func (r *DetailCacheImpl) Get(ctx context.Context, url string) (*entity.PromoterDetails, bool, error) {
	raw, err := r.client.Get(ctx, r.generateKey(url)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var d entity.PromoterDetails
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, false, err
	}
	return &d, true, nil
}

// Put stores the details with an expiry; SET with EX is atomic.
func (r *DetailCacheImpl) Put(ctx context.Context, url string, d *entity.PromoterDetails, ttl time.Duration) error {
	raw, err := json.Marshal(d)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.generateKey(url), raw, ttl).Err()
}
