// Tracks run-wide counters and end-of-run summary statistics over the
// produced loan and queue records.

package sim

import (
	"fmt"
	"os"
	"sort"

	jsoniter "github.com/json-iterator/go"
	"gonum.org/v1/gonum/stat"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Metrics aggregates counters while the run is in progress.
type Metrics struct {
	RequestsLoaned    int // borrow requests satisfied directly
	RequestsQueued    int // borrow requests that joined a queue
	RequestsCancelled int // borrow requests rejected by the eligibility rules
	CascadedLoans     int // loans created by a return serving a queue entry
	EventsExecuted    int
}

// NewMetrics creates an empty Metrics.
func NewMetrics() *Metrics {
	return &Metrics{}
}

func (m *Metrics) observeRequest(status Status) {
	switch status {
	case StatusLoaned:
		m.RequestsLoaned++
	case StatusQueued:
		m.RequestsQueued++
	case StatusCancelled:
		m.RequestsCancelled++
	}
}

// DurationStats summarizes a set of record durations in hours.
type DurationStats struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean_hours"`
	Median float64 `json:"median_hours"`
	P95    float64 `json:"p95_hours"`
}

func newDurationStats(durations []float64) DurationStats {
	if len(durations) == 0 {
		return DurationStats{}
	}
	sort.Float64s(durations)
	return DurationStats{
		Count:  len(durations),
		Mean:   stat.Mean(durations, nil),
		Median: stat.Quantile(0.5, stat.Empirical, durations, nil),
		P95:    stat.Quantile(0.95, stat.Empirical, durations, nil),
	}
}

// Summary is the end-of-run report written alongside the exported dataset.
type Summary struct {
	RequestsLoaned    int `json:"requests_loaned"`
	RequestsQueued    int `json:"requests_queued"`
	RequestsCancelled int `json:"requests_cancelled"`
	CascadedLoans     int `json:"cascaded_loans"`
	EventsExecuted    int `json:"events_executed"`

	TotalLoans  int `json:"total_loans"`
	TotalQueues int `json:"total_queues"`

	BorrowDuration DurationStats `json:"borrow_duration"`
	QueueWait      DurationStats `json:"queue_wait"`
}

// Summarize computes the final summary over a finished store.
func (m *Metrics) Summarize(store *Store) Summary {
	borrowDurations := make([]float64, 0, len(store.Loans))
	for _, loan := range store.Loans {
		if loan.LoanEnd.Valid {
			borrowDurations = append(borrowDurations, loan.LoanEnd.Hours-loan.LoanStart)
		}
	}
	queueWaits := make([]float64, 0, len(store.Queues))
	for _, q := range store.Queues {
		if q.QueueEnd.Valid {
			queueWaits = append(queueWaits, q.QueueEnd.Hours-q.QueueStart)
		}
	}
	return Summary{
		RequestsLoaned:    m.RequestsLoaned,
		RequestsQueued:    m.RequestsQueued,
		RequestsCancelled: m.RequestsCancelled,
		CascadedLoans:     m.CascadedLoans,
		EventsExecuted:    m.EventsExecuted,
		TotalLoans:        len(store.Loans),
		TotalQueues:       len(store.Queues),
		BorrowDuration:    newDurationStats(borrowDurations),
		QueueWait:         newDurationStats(queueWaits),
	}
}

// Print displays the summary at the end of the simulation.
func (s Summary) Print() {
	fmt.Println("=== Simulation Summary ===")
	fmt.Printf("Events executed      : %d\n", s.EventsExecuted)
	fmt.Printf("Requests loaned      : %d\n", s.RequestsLoaned)
	fmt.Printf("Requests queued      : %d\n", s.RequestsQueued)
	fmt.Printf("Requests cancelled   : %d\n", s.RequestsCancelled)
	fmt.Printf("Cascaded loans       : %d\n", s.CascadedLoans)
	fmt.Printf("Total loans          : %d\n", s.TotalLoans)
	fmt.Printf("Total queue entries  : %d\n", s.TotalQueues)
	if s.BorrowDuration.Count > 0 {
		fmt.Printf("Borrow duration      : mean %.2fh, median %.2fh, p95 %.2fh\n",
			s.BorrowDuration.Mean, s.BorrowDuration.Median, s.BorrowDuration.P95)
	}
	if s.QueueWait.Count > 0 {
		fmt.Printf("Queue wait           : mean %.2fh, median %.2fh, p95 %.2fh\n",
			s.QueueWait.Mean, s.QueueWait.Median, s.QueueWait.P95)
	}
}

// WriteJSON writes the summary as an indented JSON artifact.
func (s Summary) WriteJSON(path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	return nil
}
