// Package export turns the finished transaction history of a simulation run
// into a relational dataset: it ingests catalog metadata from CSV, generates
// synthetic users, converts simulated hour offsets to calendar timestamps,
// applies the observation-window truncation, and persists everything to a
// SQLite file or a PostgreSQL database.
//
// A run that failed post-run validation must never reach this package; the
// export contract assumes an internally consistent history.
package export
