package cache

import (
	"time"
)

// CacheService represents a generic cache service
type CacheService interface {
	// Get retrieves a value from the cache
	Get(key string) ([]byte, error)

	// Set stores a value in the cache with an expiration time
	Set(key string, value []byte, expiration time.Duration) error

	// Delete removes a value from the cache
	Delete(key string) error
}

// Keys shared across packages
const (
	// RateLimitKeyPrefix + source slug marks a maker site as blocked
	RateLimitKeyPrefix = "lure_rate_limited:"
	// ImageKeyPrefix + storage key memoizes an uploaded image's public URL
	ImageKeyPrefix = "lure_image:"
)
