package sim

import "github.com/sirupsen/logrus"

// Event is a pending simulation occurrence. Seq is a per-simulator sequence
// number assigned at creation and used to break timestamp ties in insertion
// order; events are never ordered by structural comparison.
type Event interface {
	Time() Hours
	Seq() uint64
	Execute(sim *Simulator)
}

// baseEvent provides the common timestamp and tie-break fields.
type baseEvent struct {
	time Hours
	seq  uint64
}

func (e *baseEvent) Time() Hours { return e.time }
func (e *baseEvent) Seq() uint64 { return e.seq }

// RequestBorrowEvent is the arrival of one user asking for one book.
type RequestBorrowEvent struct {
	baseEvent
	UserID int
	BookID int
}

// Execute runs the borrow request. A direct loan schedules its own return
// event; queued and cancelled requests schedule nothing.
func (e *RequestBorrowEvent) Execute(sim *Simulator) {
	loanID, status := sim.Store.RequestBorrow(e.UserID, e.BookID, e.time)
	sim.Metrics.observeRequest(status)
	logrus.Debugf("[%8.2fh] request_borrow user=%d book=%d -> %s", e.time, e.UserID, e.BookID, status)
	if status == StatusLoaned {
		sim.scheduleReturn(loanID, e.time)
	}
}

// ReturnEvent is the completion of a loan.
type ReturnEvent struct {
	baseEvent
	LoanID int
}

// Execute returns the book. When the return serves a waiting queue entry
// (a cascade), the new loan immediately gets its own return event; this is
// what keeps the simulation populated after the initial arrivals run out.
func (e *ReturnEvent) Execute(sim *Simulator) {
	nextLoanID, ok := sim.Store.Return(e.LoanID, e.time)
	if !ok {
		return
	}
	sim.Metrics.CascadedLoans++
	sim.scheduleReturn(nextLoanID, e.time)
}
