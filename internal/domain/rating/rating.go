// Package rating converts composite contest scores into rating adjustments.
//
// The adjustment is a simplified Elo-style rule: the base delta is drawn
// from a randomized range keyed by performance ratio, then a flat regression
// term pulls ratings toward the 1000-1500 band. Contests have no
// head-to-head opponent, so there is no paired-comparison formula.
package rating

import (
	"math/rand"
	"sync"
	"time"
)

// Rating bounds and defaults.
const (
	DefaultRating = 1000
	FloorRating   = 500

	compositeMax = 300.0

	regressionHigh = 1500
	regressionLow  = 1000
	regressionStep = 200
)

// Engine draws rating deltas. The random source is injectable so tests can
// pin the draw.
type Engine struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithSource sets the random source used for delta draws.
func WithSource(src rand.Source) Option {
	return func(e *Engine) {
		if src != nil {
			e.rng = rand.New(src) //nolint:gosec // rating variance, not cryptography
		}
	}
}

// NewEngine creates an engine seeded from the wall clock unless a source is
// supplied.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())), //nolint:gosec // rating variance, not cryptography
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Delta computes the signed rating change for a composite score against the
// user's current rating. The base delta is uniform within the tier's range:
//
//	ratio >= 0.90: +30..+44
//	ratio >= 0.75: +15..+29
//	ratio >= 0.50:  +5..+14
//	ratio >= 0.30: -15..-5
//	otherwise:     -30..-15
//
// Ratings above 1500 shed one point per full 200 above; ratings below 1000
// gain one point per full 200 below.
func (e *Engine) Delta(currentRating, totalScore int) int {
	ratio := float64(totalScore) / compositeMax

	e.mu.Lock()
	var delta int
	switch {
	case ratio >= 0.90:
		delta = 30 + e.rng.Intn(15)
	case ratio >= 0.75:
		delta = 15 + e.rng.Intn(15)
	case ratio >= 0.50:
		delta = 5 + e.rng.Intn(10)
	case ratio >= 0.30:
		delta = -5 - e.rng.Intn(11)
	default:
		delta = -15 - e.rng.Intn(16)
	}
	e.mu.Unlock()

	if currentRating > regressionHigh {
		delta -= (currentRating - regressionHigh) / regressionStep
	}
	if currentRating < regressionLow {
		delta += (regressionLow - currentRating) / regressionStep
	}
	return delta
}

// Apply returns the new rating after a delta, never below the floor.
func Apply(currentRating, delta int) int {
	next := currentRating + delta
	if next < FloorRating {
		return FloorRating
	}
	return next
}
