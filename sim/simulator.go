package sim

import (
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/library-sim/library-sim/sim/workload"
)

// Simulator is the driver that owns the record store, the pending event heap,
// and the single deterministic random source for the whole run.
//
// Reproducibility depends on an exact, fixed order of draws from rng:
// arrival gaps for the whole batch, then per-book total quantities, then
// per-arrival (user, book) pairs, then per-loan borrow durations interleaved
// with event execution in popped order. Reordering any of these draws breaks
// bit-for-bit reproducibility and is a regression.
type Simulator struct {
	Clock  Hours
	Config Config

	Store *Store
	// TotalQuantities holds each book's originally sampled copy count,
	// indexed by book id. The validator checks conservation against it.
	TotalQuantities []int
	Metrics         *Metrics

	events  *EventHeap
	rng     *rand.Rand
	nextSeq uint64
}

// Results is the finished transaction history handed to the caller after a
// successful run. The caller must treat it as an immutable record.
type Results struct {
	Books           []*Book
	Queues          []*QueueEntry
	Loans           []*Loan
	TotalQuantities []int
}

// NewSimulator validates the configuration, seeds the random source, samples
// the arrival batch and book quantities, and fills the event heap with one
// request-borrow event per arrival. No simulation state is created when the
// configuration is invalid.
func NewSimulator(cfg Config) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	sim := &Simulator{
		Config:  cfg,
		Metrics: NewMetrics(),
		events:  NewEventHeap(),
		rng:     rand.New(rand.NewSource(cfg.Seed)),
	}
	sim.seedArrivals()
	return sim, nil
}

func (sim *Simulator) seedArrivals() {
	cfg := sim.Config

	arrivalTimes := workload.SampleArrivalTimes(sim.rng, cfg.TotalArrivals(), cfg.ArrivalInterval)
	logrus.Infof("seeded %d arrivals over a %gh horizon (mean interval %gh)",
		len(arrivalTimes), cfg.Horizon(), cfg.ArrivalInterval)

	quantities := make([]int, cfg.NBooks)
	for i := range quantities {
		quantities[i] = cfg.MinBookQty + sim.rng.Intn(cfg.MaxBookQty-cfg.MinBookQty+1)
	}
	sim.TotalQuantities = quantities
	sim.Store = NewStore(quantities)

	for _, t := range arrivalTimes {
		userID := sim.rng.Intn(cfg.NUsers)
		bookID := sim.rng.Intn(cfg.NBooks)
		sim.Schedule(sim.NewRequestBorrowEvent(t, userID, bookID))
	}
}

// NewRequestBorrowEvent creates an arrival event with the next tie-break
// sequence number.
func (sim *Simulator) NewRequestBorrowEvent(t Hours, userID, bookID int) *RequestBorrowEvent {
	return &RequestBorrowEvent{baseEvent: sim.newBaseEvent(t), UserID: userID, BookID: bookID}
}

// NewReturnEvent creates a loan-completion event with the next tie-break
// sequence number.
func (sim *Simulator) NewReturnEvent(t Hours, loanID int) *ReturnEvent {
	return &ReturnEvent{baseEvent: sim.newBaseEvent(t), LoanID: loanID}
}

func (sim *Simulator) newBaseEvent(t Hours) baseEvent {
	sim.nextSeq++
	return baseEvent{time: t, seq: sim.nextSeq}
}

// Schedule adds a pending event to the heap.
func (sim *Simulator) Schedule(ev Event) {
	sim.events.Schedule(ev)
}

// sampleBorrowDuration draws a loan duration uniformly from the configured
// bounds and clamps it to [0, MaxBorrowHours]. The absolute ceiling guards
// against pathological configuration; it is what guarantees termination,
// since every scheduled return fires after a bounded delay and re-arms at
// most one further bounded-delay event.
func (sim *Simulator) sampleBorrowDuration() Hours {
	cfg := sim.Config
	d := cfg.MinBorrowDuration + sim.rng.Float64()*(cfg.MaxBorrowDuration-cfg.MinBorrowDuration)
	if d < 0 {
		d = 0
	}
	if d > MaxBorrowHours {
		d = MaxBorrowHours
	}
	return d
}

// scheduleReturn arms the return event for a freshly created loan.
func (sim *Simulator) scheduleReturn(loanID int, now Hours) {
	sim.Schedule(sim.NewReturnEvent(now+sim.sampleBorrowDuration(), loanID))
}

// Run pops and executes events until the heap drains, observing queue growth
// from cascades, then checks the post-run invariants. A non-nil error is a
// *ValidationError; a failed run must not be exported as a dataset.
func (sim *Simulator) Run() error {
	for sim.events.Len() > 0 {
		ev := sim.events.PopNext()
		sim.Clock = ev.Time()
		ev.Execute(sim)
		sim.Metrics.EventsExecuted++
	}
	logrus.Infof("[%10.2fh] simulation drained after %d events", sim.Clock, sim.Metrics.EventsExecuted)

	return Validate(sim.Store, sim.TotalQuantities)
}

// Results transfers ownership of the finished record arenas to the caller.
func (sim *Simulator) Results() Results {
	return Results{
		Books:           sim.Store.Books,
		Queues:          sim.Store.Queues,
		Loans:           sim.Store.Loans,
		TotalQuantities: sim.TotalQuantities,
	}
}
