package solver

import (
	"sync/atomic"

	"cryptarithm/internal/equation"
)

// searchState is the working state one backtracking search owns exclusively:
// the partial mapping, the digits already taken, and the index of the next
// letter to assign. Letters are assigned in ascending order, so the branch
// order for a given digit order is deterministic.
type searchState struct {
	eq      *equation.Equation
	mapping Mapping
	used    [10]bool
	next    int
}

func newSearchState(eq *equation.Equation) *searchState {
	return &searchState{
		eq:      eq,
		mapping: make(Mapping, len(eq.Letters)),
	}
}

// search assigns digits to letters depth-first in the supplied digit order.
// When every letter has a digit it delegates to the evaluator; an evaluation
// error (e.g. division by zero under this assignment) marks the branch as
// failed rather than aborting the search. The first complete valid mapping
// is cloned and sent into results; the send is non-blocking so a search that
// loses the race is a no-op. The stop flag is checked at every node so a
// search abandons its space once the race has been decided.
func (st *searchState) search(digits []int, stop *atomic.Bool, results chan<- Mapping) bool {
	if stop.Load() {
		return false
	}

	if st.next == len(st.eq.Letters) {
		ok, err := equation.Evaluate(st.eq, st.mapping)
		if err != nil || !ok {
			return false
		}
		stop.Store(true)
		select {
		case results <- st.mapping.clone():
		default:
		}
		return true
	}

	letter := st.eq.Letters[st.next]
	st.next++

	for _, digit := range digits {
		if digit == 0 && st.eq.Leading[letter] {
			continue
		}
		if st.used[digit] {
			continue
		}

		st.mapping[letter] = digit
		st.used[digit] = true
		if st.search(digits, stop, results) {
			return true
		}
		delete(st.mapping, letter)
		st.used[digit] = false
	}

	st.next--
	return false
}
