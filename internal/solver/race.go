package solver

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"cryptarithm/internal/equation"
)

// digitOrders holds the two opposite digit orders raced against each other.
var digitOrders = [2][]int{
	{9, 8, 7, 6, 5, 4, 3, 2, 1, 0},
	{0, 1, 2, 3, 4, 5, 6, 7, 8, 9},
}

// race runs two backtracking searches over the same equation with opposite
// digit orders and returns the first mapping either finds. Each search owns
// a private state; the only shared values are the single-slot results
// channel and the stop flag. A supervisor goroutine waits for both searches
// and best-effort-sends the empty mapping as the "no solution" sentinel.
// The caller's wait is bounded by the configured timeout and by ctx; on
// timeout or cancellation the stop flag makes both searches exit early and
// the empty mapping is returned.
func (s *Solver) race(ctx context.Context, eq *equation.Equation) Mapping {
	logger := s.log.WithFields(logrus.Fields{
		"solve_id": uuid.NewString(),
		"equation": eq.Key(),
	})

	// A 10-symbol alphabet exhausts the digit space; any further letter
	// makes the puzzle unsatisfiable, so skip the search entirely.
	if len(eq.Letters) > maxLetters {
		logger.WithField("letters", len(eq.Letters)).Debug("more than 10 distinct letters, unsatisfiable")
		return Mapping{}
	}

	results := make(chan Mapping, 1)
	var stop atomic.Bool

	start := time.Now()
	var eg errgroup.Group
	for _, digits := range digitOrders {
		digits := digits
		st := newSearchState(eq)
		eg.Go(func() error {
			st.search(digits, &stop, results)
			return nil
		})
	}

	go func() {
		eg.Wait()
		select {
		case results <- Mapping{}:
		default:
		}
	}()

	select {
	case mapping := <-results:
		stop.Store(true)
		logger.WithFields(logrus.Fields{
			"duration": time.Since(start),
			"solved":   len(mapping) > 0,
		}).Debug("search finished")
		return mapping
	case <-time.After(s.opts.Timeout):
		stop.Store(true)
		logger.WithField("timeout", s.opts.Timeout).Debug("search timed out")
		return Mapping{}
	case <-ctx.Done():
		stop.Store(true)
		logger.WithField("cause", ctx.Err()).Debug("search cancelled")
		return Mapping{}
	}
}
