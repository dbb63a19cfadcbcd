package sim

const (
	// MaxBorrowBook caps how many loans a user may hold open at once.
	MaxBorrowBook = 2
	// MaxQueueBook caps how many queue entries a user may have waiting at once.
	MaxQueueBook = 2
	// MaxBorrowHours is the absolute ceiling on a sampled borrow duration,
	// independent of the configured bounds.
	MaxBorrowHours Hours = 14 * 24
)

// CanBorrow reports whether the user may take another loan right now.
func (s *Store) CanBorrow(userID int) bool {
	return s.ActiveLoans(userID) < MaxBorrowBook
}

// CanRequestBorrow reports whether the user may issue a borrow request at all
// (either to be loaned directly or to join a queue).
//
// The third condition is the deadlock-avoidance rule: a user already at the
// borrow cap who queues for one more book would, once that queue is served,
// hold more loans than the cap allows. Nothing compels that user to return a
// book first, so the served slot could stay unconsumed forever while other
// users wait on the same copy. Such requests are rejected up front.
func (s *Store) CanRequestBorrow(userID int) bool {
	nQueues := s.ActiveQueues(userID)
	if nQueues >= MaxQueueBook {
		return false
	}
	nLoans := s.ActiveLoans(userID)
	if nLoans >= MaxBorrowBook {
		return false
	}
	if nQueues+nLoans >= MaxBorrowBook {
		return false
	}
	return true
}
