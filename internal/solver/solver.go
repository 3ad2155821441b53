// Package solver finds digit assignments for parsed cryptarithmetic
// equations. Each solve races two backtracking searches with opposite digit
// orders and memoizes the outcome in a bounded, time-limited cache.
package solver

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"cryptarithm/internal/equation"
)

const (
	// DefaultTimeout bounds how long a caller waits for a search race.
	DefaultTimeout = 7 * time.Second

	// DefaultCacheSize is the number of distinct equations memoized.
	DefaultCacheSize = 1024

	// DefaultCacheTTL is how long a cached result stays valid.
	DefaultCacheTTL = 120 * time.Second

	// maxLetters is the number of distinct letters a puzzle can use before
	// it exhausts the decimal digit space.
	maxLetters = 10
)

// Mapping assigns a decimal digit to each letter of a puzzle. Distinct
// letters always map to distinct digits and no leading letter maps to 0.
// An empty mapping signals that no solution was found within the search
// bounds; it is a normal outcome, not an error.
type Mapping map[rune]int

func (m Mapping) clone() Mapping {
	out := make(Mapping, len(m))
	for letter, digit := range m {
		out[letter] = digit
	}
	return out
}

// Options configures a Solver. Zero values fall back to the defaults.
type Options struct {
	Timeout   time.Duration
	CacheSize int
	CacheTTL  time.Duration
	Logger    logrus.FieldLogger
}

// Solver solves cryptarithmetic puzzles. It is safe for concurrent use;
// concurrent queries for the same equation share a single search.
type Solver struct {
	opts  Options
	cache *Cache
	group singleflight.Group
	races atomic.Int64
	log   logrus.FieldLogger
}

// New creates a Solver with the given options.
func New(opts Options) *Solver {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.CacheSize <= 0 {
		opts.CacheSize = DefaultCacheSize
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = DefaultCacheTTL
	}
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}

	return &Solver{
		opts:  opts,
		cache: NewCache(opts.CacheSize, opts.CacheTTL),
		log:   opts.Logger,
	}
}

// Solve parses the puzzle text and returns a digit assignment satisfying
// it, or an empty mapping if the puzzle is unsatisfiable or the search
// bounds were exhausted. Parse failures are the only error case.
func (s *Solver) Solve(ctx context.Context, text string) (Mapping, error) {
	eq, err := equation.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse equation: %w", err)
	}
	return s.SolveEquation(ctx, eq), nil
}

// SolveEquation solves an already parsed equation. Results are memoized by
// the equation's canonical key; a cache hit returns without running any
// search, and concurrent misses for the same key are coalesced into one
// search whose result all callers share.
func (s *Solver) SolveEquation(ctx context.Context, eq *equation.Equation) Mapping {
	key := eq.Key()

	if mapping, ok := s.cache.Get(key); ok {
		s.log.WithField("equation", key).Debug("cache hit")
		return mapping
	}

	result, _, _ := s.group.Do(key, func() (interface{}, error) {
		// Another coalesced caller may have stored the result while this
		// one waited for the flight.
		if mapping, ok := s.cache.Get(key); ok {
			return mapping, nil
		}

		s.races.Add(1)
		mapping := s.race(ctx, eq)
		s.cache.Put(key, mapping)
		return mapping, nil
	})

	return result.(Mapping).clone()
}

// Races reports how many search races have been run. Cache hits and
// coalesced duplicate queries do not increment it.
func (s *Solver) Races() int64 {
	return s.races.Load()
}
