package usecase

import (
	"context"
	"time"
)

// SearchCache stores extracted listings by compiled search URL. A miss is
// (false, nil); errors are logged by the caller and treated as a miss.
type SearchCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
}
