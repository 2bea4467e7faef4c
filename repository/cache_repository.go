package repository

import (
	"context"
	"time"
)

// CacheRepository stores serialized values under a key for a limited time.
// A ttl of zero means the entry never expires.
type CacheRepository interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}
