// Package dedupe keeps already-published articles from being posted twice.
//
// The store holds nothing but presence markers: a record under the URL's
// fingerprint means "already published", and records disappear on their own
// when the TTL lapses. There is no deletion path and no payload to update.
package dedupe

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"time"

	"github.com/aersekk/News-bot/internal/logger"
	"github.com/aersekk/News-bot/internal/metrics"
)

// Store is the key-value backend holding presence records.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	SetEx(ctx context.Context, key, value string, ttl time.Duration) error
}

// Result is the outcome of a duplicate check. CheckFailed is kept distinct
// from NotDuplicate so logs and tests can see store failures, even though
// the caller treats both as eligible to publish.
type Result int

const (
	NotDuplicate Result = iota
	Duplicate
	CheckFailed
)

func (r Result) String() string {
	switch r {
	case NotDuplicate:
		return "not-duplicate"
	case Duplicate:
		return "duplicate"
	case CheckFailed:
		return "check-failed"
	default:
		return "unknown"
	}
}

type Deduplicator struct {
	store Store
	ttl   time.Duration
}

func New(store Store, ttl time.Duration) *Deduplicator {
	return &Deduplicator{store: store, ttl: ttl}
}

// Fingerprint maps a URL of any length to a fixed-size dedup key. The raw
// URL never needs to reach the store.
func Fingerprint(url string) string {
	h := sha1.Sum([]byte(url))
	return hex.EncodeToString(h[:])
}

// Check reports whether a presence record exists for the fingerprint.
// A store failure yields CheckFailed: the pipeline would rather re-show an
// item during a store outage than lose it for good.
func (d *Deduplicator) Check(ctx context.Context, fingerprint string) Result {
	value, err := d.store.Get(ctx, fingerprint)
	if err != nil {
		logger.Warn("dedup check failed", "key", fingerprint, "error", err)
		metrics.Global.IncrementCacheFailures()
		return CheckFailed
	}
	if value == "" {
		return NotDuplicate
	}
	return Duplicate
}

// MarkPublished writes the presence record. Best-effort: the publish has
// already happened, so a failed write is logged and otherwise ignored.
func (d *Deduplicator) MarkPublished(ctx context.Context, fingerprint string) {
	if err := d.store.SetEx(ctx, fingerprint, "1", d.ttl); err != nil {
		logger.Warn("failed to mark article as published", "key", fingerprint, "error", err)
		metrics.Global.IncrementCacheFailures()
	}
}
