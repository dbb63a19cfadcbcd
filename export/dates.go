package export

import (
	"time"

	"github.com/library-sim/library-sim/sim"
)

// Window maps simulated hour offsets onto calendar time and bounds the
// observation period of the exported dataset. Records are truncated at End:
// the tail of the simulated horizon is cut off so the dataset ends with some
// loans and queues still open, the way a live system would look when sampled.
type Window struct {
	Start time.Time
	End   time.Time
}

// NewWindow builds a window starting at start and ending after
// finishedRatio*numDays days. finishedRatio 1 keeps the whole horizon.
func NewWindow(start time.Time, numDays int, finishedRatio float64) Window {
	observedDays := int(float64(numDays) * finishedRatio)
	return Window{
		Start: start,
		End:   start.AddDate(0, 0, observedDays),
	}
}

// At converts an hour offset to calendar time.
func (w Window) At(h sim.Hours) time.Time {
	return w.Start.Add(time.Duration(h * float64(time.Hour)))
}

// AtStamp converts an optional hour stamp to a nullable timestamp, applying
// the window truncation: an end time past the window is exported as NULL,
// because from inside the observation period that record still looks open.
func (w Window) AtStamp(s sim.Stamp) *time.Time {
	if !s.Valid {
		return nil
	}
	t := w.At(s.Hours)
	if t.After(w.End) {
		return nil
	}
	return &t
}

// Observes reports whether a record starting at the given offset falls inside
// the window at all. Records starting after End are dropped from the export.
func (w Window) Observes(start sim.Hours) bool {
	return !w.At(start).After(w.End)
}
