package repository

import (
	"context"
	"time"
)

// CacheRepository stores serialized calculator results.
// A miss and a backend failure both report ok == false; only Set surfaces errors.
type CacheRepository interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}
