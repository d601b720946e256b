package domain

import (
	"context"
	"time"
)

// SearchGateway defines the interface for retrieving aggregated product
// listings for a query. Implementations are expected to degrade to a
// secondary data source before failing.
type SearchGateway interface {
	Search(ctx context.Context, query string) (*SearchResult, error)
}

// CacheRepository defines the interface for caching search results
type CacheRepository interface {
	Get(ctx context.Context, key string) (*SearchResult, error)
	Set(ctx context.Context, key string, value *SearchResult, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
