// Package dedupe tracks already-seen (user, contest) submission pairs.
//
// It is a fast-path cache in front of the store's unique index, which
// remains the authoritative single-submission guard. Entries here may be
// lost on restart; the index catches whatever the cache misses.
package dedupe

import (
	"context"
	"sync"
	"sync/atomic"
)

// Deduper records submission pairs for duplicate pre-checks.
type Deduper interface {
	// SeenAndRecord atomically checks whether the pair was seen and records
	// it if not. Returns true when the pair was already present.
	SeenAndRecord(ctx context.Context, userID, contestID string) bool

	// Unrecord removes a pair, allowing a retry after a failed persist.
	Unrecord(ctx context.Context, userID, contestID string)

	Size() int64
}

const pairSeparator = "\x1f"

func key(userID, contestID string) string {
	return userID + pairSeparator + contestID
}

// inMemoryDeduper bounds memory with two rotating generations: when the
// current generation fills up it becomes the previous one and lookups
// consult both. Eviction therefore drops the oldest half at once.
type inMemoryDeduper struct {
	mu      sync.Mutex
	current map[string]struct{}
	prev    map[string]struct{}
	maxSize int
	size    atomic.Int64
}

// defaultMaxSize bounds one generation.
const defaultMaxSize = 50000

// Option applies a configuration option to the in-memory deduper.
type Option func(*inMemoryDeduper)

// WithMaxSize bounds the number of pairs kept per generation.
func WithMaxSize(n int) Option {
	return func(d *inMemoryDeduper) {
		if n > 0 {
			d.maxSize = n
		}
	}
}

// NewInMemoryDeduper creates a bounded in-memory deduper.
func NewInMemoryDeduper(opts ...Option) Deduper {
	d := &inMemoryDeduper{maxSize: defaultMaxSize}
	for _, opt := range opts {
		opt(d)
	}
	d.current = make(map[string]struct{})
	return d
}

func (d *inMemoryDeduper) SeenAndRecord(_ context.Context, userID, contestID string) bool {
	k := key(userID, contestID)

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.current[k]; ok {
		return true
	}
	if _, ok := d.prev[k]; ok {
		return true
	}

	if len(d.current) >= d.maxSize {
		d.size.Add(-int64(len(d.prev)))
		d.prev = d.current
		d.current = make(map[string]struct{})
	}
	d.current[k] = struct{}{}
	d.size.Add(1)
	return false
}

func (d *inMemoryDeduper) Unrecord(_ context.Context, userID, contestID string) {
	k := key(userID, contestID)

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.current[k]; ok {
		delete(d.current, k)
		d.size.Add(-1)
	}
	if _, ok := d.prev[k]; ok {
		delete(d.prev, k)
		d.size.Add(-1)
	}
}

func (d *inMemoryDeduper) Size() int64 {
	return d.size.Load()
}
