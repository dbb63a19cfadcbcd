package sim

import (
	"fmt"
	"strings"
)

// ValidationError aggregates every post-run consistency violation found in a
// finished store. It is a run-level failure, distinct from the panics raised
// by per-transition invariant breaks.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("simulation failed validation with %d problem(s):\n  %s",
		len(e.Problems), strings.Join(e.Problems, "\n  "))
}

// Validate checks the global conservation and termination invariants after
// the event queue has drained: every book back at its sampled total quantity
// (every lent copy returned), every queue entry served, every loan closed.
// All violations are collected into one report.
func Validate(store *Store, totalQuantities []int) error {
	var problems []string

	for bookID, book := range store.Books {
		if book.AvailableQuantity != totalQuantities[bookID] {
			problems = append(problems, fmt.Sprintf(
				"book %d: available quantity %d != total quantity %d",
				bookID, book.AvailableQuantity, totalQuantities[bookID]))
		}
	}
	for queueID, q := range store.Queues {
		if q.Active() {
			problems = append(problems, fmt.Sprintf(
				"queue %d: never served (user=%d book=%d start=%.4fh)",
				queueID, q.UserID, q.BookID, q.QueueStart))
		}
	}
	for loanID, loan := range store.Loans {
		if loan.Active() {
			problems = append(problems, fmt.Sprintf(
				"loan %d: never returned (user=%d book=%d start=%.4fh)",
				loanID, loan.UserID, loan.BookID, loan.LoanStart))
		}
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}
