package application

import (
	"context"
	"time"

	"github.com/motorline/dealership-backend/internal/domain/entity"
)

// ObjectStorage is the bucket gateway for listing images.
type ObjectStorage interface {
	// Upload stores data under objectPath and returns its public URL.
	Upload(ctx context.Context, objectPath, contentType string, data []byte) (string, error)
	Delete(ctx context.Context, objectPath string) error
	// PathFromURL maps a public URL back to its object path.
	PathFromURL(url string) (string, bool)
}

// CarIndex is the search index kept alongside the catalog. Indexing is
// best-effort; the database row is the source of truth.
type CarIndex interface {
	Index(ctx context.Context, c *entity.Car) error
	Remove(ctx context.Context, id string) error
	Search(ctx context.Context, query string, size int) ([]map[string]any, error)
}

// ListCache caches the unfiltered admin car list and is invalidated on
// every catalog mutation.
type ListCache interface {
	Get(ctx context.Context) ([]entity.Car, bool)
	Set(ctx context.Context, cars []entity.Car)
	Invalidate(ctx context.Context) error
}

// Decision is the outcome of a quota check for one caller.
type Decision struct {
	Allowed     bool
	RateLimited bool
	Remaining   int
	RetryAfter  time.Duration
}

// DecisionLimiter answers allow/deny for a caller key, once per call.
type DecisionLimiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
}

// Publisher pushes JSON jobs onto the async queue.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}
