// Package cache provides a read-through cache gateway over a pluggable
// key-value store. Store failures are treated as cache misses: the fetcher
// still runs and its result is returned even when the write-back fails.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go-stock-dashboard/pkg/logger"
)

// ErrNotFound is returned by a Store when the key has no live entry.
var ErrNotFound = errors.New("cache: key not found")

// Store is the minimal key-value contract the gateway needs.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// Options controls a single Fetch call.
type Options struct {
	// BypassCache skips the read path; the fetcher always runs.
	BypassCache bool
}

// Gateway wraps a Store together with a logger.
type Gateway struct {
	store Store
	log   *logger.Logger
}

// NewGateway creates a cache gateway backed by the given store.
func NewGateway(store Store, log *logger.Logger) *Gateway {
	return &Gateway{store: store, log: log}
}

// Fetch returns the cached value under key when one exists, otherwise invokes
// fetcher, stores the result under key with the given TTL and returns it.
//
// Context cancellation and deadline errors from the store are propagated;
// every other store error is logged and treated as a miss. Concurrent calls
// with the same key and a cold cache each invoke fetcher independently.
func Fetch[T any](ctx context.Context, g *Gateway, key string, ttl time.Duration, opts Options, fetcher func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	if !opts.BypassCache {
		raw, err := g.store.Get(ctx, key)
		switch {
		case err == nil:
			var cached T
			if unmarshalErr := json.Unmarshal([]byte(raw), &cached); unmarshalErr == nil {
				return cached, nil
			}
			g.log.Warn("cache entry is not valid JSON, refetching", logger.StringField("key", key))
		case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
			return zero, err
		case !errors.Is(err, ErrNotFound):
			g.log.Error("cache get failed", logger.ErrorField(err), logger.StringField("key", key))
		}
	}

	value, err := fetcher(ctx)
	if err != nil {
		return zero, err
	}

	payload, err := json.Marshal(value)
	if err != nil {
		g.log.Error("cache value not serializable", logger.ErrorField(err), logger.StringField("key", key))
		return value, nil
	}

	// A nil result is not worth caching; callers treat it as "no data".
	if string(payload) == "null" {
		return value, nil
	}

	if err := g.store.Set(ctx, key, string(payload), ttl); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return zero, err
		}
		g.log.Error("cache set failed", logger.ErrorField(err), logger.StringField("key", key))
	}

	return value, nil
}
