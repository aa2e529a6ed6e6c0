package booking

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	recordsRepo "tripforge/database/repository/records"
	"tripforge/utils"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Guard deduplicates side-effecting operations by key. Concurrent calls under
// one key collapse into a single in-flight execution; later calls replay the
// stored result of the first success without re-running compute. Failures are
// never cached, so a transient failure can be retried under the same key: at
// most one successful execution per key, independent of client retries,
// network duplication or concurrent submission.
type Guard struct {
	Store  recordsRepo.Store
	TTL    time.Duration // retention of cached results; 0 keeps them forever
	Logger *zap.Logger

	flight singleflight.Group
}

// flightOutcome carries a completed execution through the flight group.
type flightOutcome struct {
	payload  any
	replayed bool
}

// DeriveKey builds the deterministic idempotency key from the itinerary id,
// the customer email and the caller-supplied nonce.
func DeriveKey(itineraryID, email, nonce string) string {
	sum := sha256.Sum256([]byte(itineraryID + "|" + email + "|" + nonce))
	return hex.EncodeToString(sum[:])
}

// Run executes compute under the guard. The second return value reports
// whether the result was replayed from another execution, stored or in-flight.
func Run[T any](ctx context.Context, g *Guard, key string, compute func(context.Context) (T, error)) (T, bool, error) {
	var zero T
	storeKey := utils.IdemKeyPrefix + key

	// Only the goroutine that wins the flight runs this closure; concurrent
	// duplicates of the same key block on it and share its outcome.
	executed := false
	v, err, _ := g.flight.Do(storeKey, func() (any, error) {
		executed = true

		cached, err := g.Store.Get(ctx, storeKey)
		if err == nil {
			var result T
			if err := json.Unmarshal(cached, &result); err != nil {
				return nil, fmt.Errorf("failed to decode idempotency record %s: %w", key, err)
			}
			return flightOutcome{payload: result, replayed: true}, nil
		}
		if err != recordsRepo.ErrNotFound {
			return nil, fmt.Errorf("failed to read idempotency record %s: %w", key, err)
		}

		result, err := compute(ctx)
		if err != nil {
			// Failures are never cached.
			return nil, err
		}

		data, err := json.Marshal(result)
		if err != nil {
			return nil, fmt.Errorf("failed to encode idempotency record %s: %w", key, err)
		}
		if g.TTL > 0 {
			err = g.Store.SetWithTTL(ctx, storeKey, data, g.TTL)
		} else {
			err = g.Store.Set(ctx, storeKey, data)
		}
		if err != nil {
			// The operation itself succeeded; a lost cache entry only weakens
			// dedupe for future retries, it must not fail this call.
			g.Logger.Error("failed to store idempotency record",
				zap.String("key", key), zap.Error(err))
		}
		return flightOutcome{payload: result, replayed: false}, nil
	})
	if err != nil {
		return zero, false, err
	}

	outcome := v.(flightOutcome)
	result, ok := outcome.payload.(T)
	if !ok {
		return zero, false, fmt.Errorf("idempotency record %s holds a mismatched result type", key)
	}
	return result, outcome.replayed || !executed, nil
}
