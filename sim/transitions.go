// The transition operations below are the only code allowed to mutate the
// Store. Each commits atomically under the single-writer discipline: the
// driver executes one event at a time and every operation leaves the store
// invariants intact. Invariant breaks are programming errors and panic; they
// are never clamped or skipped, since continuing would corrupt the history.

package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Status is the outcome of a borrow request.
type Status string

const (
	StatusLoaned    Status = "loaned"
	StatusQueued    Status = "queued"
	StatusCancelled Status = "cancelled"
)

// Enqueue appends an active queue entry for the user and book and returns its
// id. Eligibility and copy unavailability must already have been checked by
// the caller (RequestBorrow).
func (s *Store) Enqueue(userID, bookID int, now Hours) int {
	s.Queues = append(s.Queues, &QueueEntry{
		UserID:     userID,
		BookID:     bookID,
		QueueStart: now,
	})
	queueID := len(s.Queues) - 1
	logrus.Debugf("[%8.2fh] queue added: queue_id=%d user=%d book=%d", now, queueID, userID, bookID)
	return queueID
}

// Lend takes one copy of the book and appends an open loan, returning the new
// loan id. ref records provenance when the loan serves a queue entry.
func (s *Store) Lend(userID, bookID int, now Hours, ref QueueRef) int {
	book := s.Books[bookID]
	book.AvailableQuantity--
	if book.AvailableQuantity < 0 {
		panic(fmt.Sprintf("lend: book %d available quantity went negative at %.4fh", bookID, now))
	}
	s.Loans = append(s.Loans, &Loan{
		UserID:    userID,
		BookID:    bookID,
		LoanStart: now,
		QueueID:   ref,
	})
	loanID := len(s.Loans) - 1
	logrus.Debugf("[%8.2fh] book loaned: loan_id=%d user=%d book=%d", now, loanID, userID, bookID)
	return loanID
}

// Return closes the loan, puts the copy back, and scans the queue entries in
// creation order (strict FIFO by id) for the first active entry that targets
// the same book and whose user currently passes CanBorrow. If one is found it
// is closed and served by a new loan, whose id is returned with ok=true.
// Otherwise ok is false and the copy stays available for a later scan or a
// direct request. Skipped-but-active entries keep their place for the next
// return of this book.
func (s *Store) Return(loanID int, now Hours) (nextLoanID int, ok bool) {
	loan := s.Loans[loanID]
	if !loan.Active() {
		panic(fmt.Sprintf("return: loan %d already closed", loanID))
	}
	bookID := loan.BookID
	s.Books[bookID].AvailableQuantity++
	loan.LoanEnd = StampAt(now)
	logrus.Debugf("[%8.2fh] book returned: loan_id=%d book=%d", now, loanID, bookID)

	for queueID, q := range s.Queues {
		if !q.Active() {
			continue
		}
		if q.BookID != bookID {
			continue
		}
		if !s.CanBorrow(q.UserID) {
			continue
		}
		q.QueueEnd = StampAt(now)
		next := s.Lend(q.UserID, bookID, now, QueueRef{ID: queueID, Valid: true})
		return next, true
	}
	return 0, false
}

// RequestBorrow is the entry point for an arriving borrow request. The result
// is StatusCancelled when the user is ineligible (no store mutation),
// StatusQueued when no copy is available (one queue entry appended), or
// StatusLoaned with the new loan id.
func (s *Store) RequestBorrow(userID, bookID int, now Hours) (loanID int, status Status) {
	if !s.CanRequestBorrow(userID) {
		return 0, StatusCancelled
	}
	if s.Books[bookID].AvailableQuantity <= 0 {
		s.Enqueue(userID, bookID, now)
		return 0, StatusQueued
	}
	return s.Lend(userID, bookID, now, QueueRef{}), StatusLoaned
}
