package sim

// Hours is a simulated timestamp: the offset in hours from the start of the
// run. All record timestamps are non-negative Hours.
type Hours = float64

// Stamp is an optional Hours value. Valid reports whether the stamp has been
// assigned; the zero value means "unset". Records never use a numeric
// sentinel for a missing time.
type Stamp struct {
	Hours Hours
	Valid bool
}

// StampAt returns a set Stamp for the given time.
func StampAt(h Hours) Stamp {
	return Stamp{Hours: h, Valid: true}
}

// QueueRef is an optional reference to a queue entry id. It records loan
// provenance when a loan was created by serving a queue entry.
type QueueRef struct {
	ID    int
	Valid bool
}

// Book is one catalog item. AvailableQuantity is mutated in place by lend and
// return transitions and never goes negative.
type Book struct {
	AvailableQuantity int
}

// Loan records one user borrowing one copy of one book. It is created by a
// lend transition and closed (LoanEnd set) by exactly one return transition,
// or never, if the run ends first. QueueID is set when the loan originated
// from a served queue entry.
type Loan struct {
	UserID    int
	BookID    int
	LoanStart Hours
	LoanEnd   Stamp
	QueueID   QueueRef
}

// Active reports whether the loan is still open.
func (l *Loan) Active() bool {
	return !l.LoanEnd.Valid
}

// QueueEntry records one user waiting for a copy of one book. It is created
// when a request finds no copy available and closed (QueueEnd set) when a
// return transition serves it.
type QueueEntry struct {
	UserID     int
	BookID     int
	QueueStart Hours
	QueueEnd   Stamp
}

// Active reports whether the entry is still waiting.
func (q *QueueEntry) Active() bool {
	return !q.QueueEnd.Valid
}

// Store holds the append-only record arenas produced by a run. Record ids are
// arena positions and are stable for the lifetime of the run; records are
// never deleted or reordered. The Store is exclusively owned by the Simulator
// while the run is in progress; afterwards it is a read-only history.
type Store struct {
	Books  []*Book
	Loans  []*Loan
	Queues []*QueueEntry
}

// NewStore initializes one Book per entry of quantities, each starting with
// its full sampled copy count available.
func NewStore(quantities []int) *Store {
	books := make([]*Book, len(quantities))
	for i, qty := range quantities {
		books[i] = &Book{AvailableQuantity: qty}
	}
	return &Store{Books: books}
}

// ActiveLoans returns the number of the user's currently open loans.
func (s *Store) ActiveLoans(userID int) int {
	n := 0
	for _, loan := range s.Loans {
		if loan.UserID == userID && loan.Active() {
			n++
		}
	}
	return n
}

// ActiveQueues returns the number of the user's currently waiting queue entries.
func (s *Store) ActiveQueues(userID int) int {
	n := 0
	for _, q := range s.Queues {
		if q.UserID == userID && q.Active() {
			n++
		}
	}
	return n
}
