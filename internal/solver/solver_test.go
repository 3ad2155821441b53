package solver

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang.org/x/sync/errgroup"
)

func newTestSolver(t *testing.T, opts Options) *Solver {
	t.Helper()
	return New(opts)
}

func TestSolver_Solve_SendMoreMoney(t *testing.T) {
	s := newTestSolver(t, Options{})

	mapping, err := s.Solve(context.Background(), "SEND + MORE = MONEY")
	require.NoError(t, err)

	eq := mustParse(t, "SEND+MORE=MONEY")
	assertValidSolution(t, eq, mapping)
	// The puzzle has a unique solution regardless of which direction wins.
	assert.Equal(t, Mapping{
		'S': 9, 'E': 5, 'N': 6, 'D': 7,
		'M': 1, 'O': 0, 'R': 8, 'Y': 2,
	}, mapping)
}

func TestSolver_Solve_ParseError(t *testing.T) {
	s := newTestSolver(t, Options{})

	mapping, err := s.Solve(context.Background(), "SEND+*MORE=MONEY")
	require.Error(t, err)
	assert.Nil(t, mapping)
	assert.Zero(t, s.Races(), "a parse failure must not start any search")
}

func TestSolver_Solve_Unsatisfiable(t *testing.T) {
	s := newTestSolver(t, Options{})

	mapping, err := s.Solve(context.Background(), "A+A=A")
	require.NoError(t, err)
	assert.Empty(t, mapping)
	assert.NotNil(t, mapping)
}

func TestSolver_Solve_TooManyLetters(t *testing.T) {
	s := newTestSolver(t, Options{})

	// Eleven distinct letters exceed the digit space; the solver must
	// reject without exploring anything.
	start := time.Now()
	mapping, err := s.Solve(context.Background(), "ABC+DEF+GHI=JK")
	require.NoError(t, err)

	assert.Empty(t, mapping)
	assert.Less(t, time.Since(start), time.Second)
}

func TestSolver_Solve_Division(t *testing.T) {
	s := newTestSolver(t, Options{})

	// The search tries divisor assignments that divide by zero on the way;
	// those branches must be absorbed, not abort the solve.
	mapping, err := s.Solve(context.Background(), "AB/C=D")
	require.NoError(t, err)

	eq := mustParse(t, "AB/C=D")
	assertValidSolution(t, eq, mapping)
}

func TestSolver_Solve_Timeout(t *testing.T) {
	s := newTestSolver(t, Options{Timeout: 5 * time.Millisecond})

	// Ten distinct letters, all leading, summing nine distinct digits into
	// one: unsatisfiable, with a full 10! space per direction. The solve
	// must give up at the timeout instead of exhausting it.
	start := time.Now()
	mapping, err := s.Solve(context.Background(), "A+B+C+D+E+F+G+H+I=J")
	require.NoError(t, err)

	assert.Empty(t, mapping)
	assert.Less(t, time.Since(start), time.Second)
}

func TestSolver_Solve_ContextCancelled(t *testing.T) {
	s := newTestSolver(t, Options{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	mapping, err := s.Solve(ctx, "A+B+C+D+E+F+G+H+I=J")
	require.NoError(t, err)
	assert.Empty(t, mapping)
}

func TestSolver_CacheHit(t *testing.T) {
	s := newTestSolver(t, Options{})

	first, err := s.Solve(context.Background(), "SEND+MORE=MONEY")
	require.NoError(t, err)
	require.EqualValues(t, 1, s.Races())

	// Same equation, different spacing: canonical keys match, so the
	// second call must not run another search.
	second, err := s.Solve(context.Background(), "SEND + MORE = MONEY")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.EqualValues(t, 1, s.Races())
}

func TestSolver_CacheStoresNoSolution(t *testing.T) {
	s := newTestSolver(t, Options{})

	first, err := s.Solve(context.Background(), "A+A=A")
	require.NoError(t, err)
	assert.Empty(t, first)
	require.EqualValues(t, 1, s.Races())

	second, err := s.Solve(context.Background(), "A+A=A")
	require.NoError(t, err)
	assert.Empty(t, second)
	assert.EqualValues(t, 1, s.Races(), "the no-solution outcome must be served from cache")
}

func TestSolver_CacheExpiry(t *testing.T) {
	s := newTestSolver(t, Options{CacheTTL: time.Minute})

	_, err := s.Solve(context.Background(), "A+B=C")
	require.NoError(t, err)
	require.EqualValues(t, 1, s.Races())

	// Move the cache's clock past the TTL; the next solve re-searches.
	s.cache.now = func() time.Time { return time.Now().Add(2 * time.Minute) }

	_, err = s.Solve(context.Background(), "A+B=C")
	require.NoError(t, err)
	assert.EqualValues(t, 2, s.Races())
}

// TestSolver_ConcurrentDuplicates checks that concurrent queries for the
// same equation are coalesced into a single search.
func TestSolver_ConcurrentDuplicates(t *testing.T) {
	s := newTestSolver(t, Options{})

	var eg errgroup.Group
	mappings := make([]Mapping, 8)
	for i := range mappings {
		i := i
		eg.Go(func() error {
			m, err := s.Solve(context.Background(), "SEND+MORE=MONEY")
			if err != nil {
				return err
			}
			mappings[i] = m
			return nil
		})
	}
	require.NoError(t, eg.Wait())

	assert.EqualValues(t, 1, s.Races())
	for _, m := range mappings[1:] {
		assert.Equal(t, mappings[0], m)
	}
}

func TestSolver_DefaultOptions(t *testing.T) {
	s := New(Options{})

	assert.Equal(t, DefaultTimeout, s.opts.Timeout)
	assert.Equal(t, DefaultCacheSize, s.opts.CacheSize)
	assert.Equal(t, DefaultCacheTTL, s.opts.CacheTTL)
	assert.NotNil(t, s.log)
}
