// Package sim provides the discrete-event simulation engine that generates a
// synthetic lending-library transaction history.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - store.go: the append-only Book/Loan/Queue record arenas
//   - event.go: the two event kinds that drive the simulation (request-borrow, return)
//   - simulator.go: arrival seeding, the event loop, and result handoff
//
// # Architecture
//
// The engine is single-threaded and batch-oriented. Time is simulated hours;
// it advances only when the driver pops the next pending event. All mutation
// of the record arenas happens inside the transition operations in
// transitions.go, invoked from event execution. After the event queue drains,
// validate.go checks global conservation and termination invariants and the
// finished arenas are handed to the caller as an immutable history.
//
// Arrival times are sampled by sim/workload; the export pipeline that turns
// the finished history into relational tables lives in the export package.
package sim
