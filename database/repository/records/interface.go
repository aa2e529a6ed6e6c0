package recordsRepo

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when no record exists under the requested key.
var ErrNotFound = errors.New("record not found")

// Store is an opaque key-value record store. A write is considered committed
// only once Set returns nil; callers must not proceed to a dependent step
// before that.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
