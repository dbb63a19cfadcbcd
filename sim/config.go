package sim

import "fmt"

// Config holds every parameter of a simulation run. Durations and intervals
// are in simulated hours. The zero value is not runnable; Validate must pass
// before any simulation state is created.
type Config struct {
	NBooks  int `yaml:"n_books"`
	NUsers  int `yaml:"n_users"`
	NumDays int `yaml:"num_days"`

	MinBorrowDuration Hours `yaml:"min_borrow_duration"`
	MaxBorrowDuration Hours `yaml:"max_borrow_duration"`

	MinBookQty int `yaml:"min_book_qty"`
	MaxBookQty int `yaml:"max_book_qty"`

	// ArrivalInterval is the mean time between borrow requests in hours
	// (arrivals form a homogeneous Poisson process at rate 1/ArrivalInterval).
	ArrivalInterval float64 `yaml:"arrival_interval"`

	Seed int64 `yaml:"seed"`
}

// Validate fails fast on any invalid parameter combination. A non-nil error
// is a configuration error: non-retryable, the caller must fix the inputs.
func (c Config) Validate() error {
	if c.NBooks <= 0 {
		return fmt.Errorf("config: n_books must be > 0, got %d", c.NBooks)
	}
	if c.NUsers <= 0 {
		return fmt.Errorf("config: n_users must be > 0, got %d", c.NUsers)
	}
	if c.NumDays <= 0 {
		return fmt.Errorf("config: num_days must be > 0, got %d", c.NumDays)
	}
	if c.MinBorrowDuration < 0 {
		return fmt.Errorf("config: min_borrow_duration must be >= 0, got %g", c.MinBorrowDuration)
	}
	if c.MaxBorrowDuration <= 0 {
		return fmt.Errorf("config: max_borrow_duration must be > 0, got %g", c.MaxBorrowDuration)
	}
	if c.MinBorrowDuration > c.MaxBorrowDuration {
		return fmt.Errorf("config: min_borrow_duration %g exceeds max_borrow_duration %g",
			c.MinBorrowDuration, c.MaxBorrowDuration)
	}
	if c.MinBookQty < 0 {
		return fmt.Errorf("config: min_book_qty must be >= 0, got %d", c.MinBookQty)
	}
	if c.MaxBookQty <= 0 {
		return fmt.Errorf("config: max_book_qty must be > 0, got %d", c.MaxBookQty)
	}
	if c.MinBookQty > c.MaxBookQty {
		return fmt.Errorf("config: min_book_qty %d exceeds max_book_qty %d", c.MinBookQty, c.MaxBookQty)
	}
	if c.ArrivalInterval <= 0 {
		return fmt.Errorf("config: arrival_interval must be > 0, got %g", c.ArrivalInterval)
	}
	return nil
}

// Horizon returns the total simulated duration in hours.
func (c Config) Horizon() Hours {
	return Hours(c.NumDays) * 24
}

// TotalArrivals returns how many borrow requests are seeded for the run:
// the horizon divided by the mean arrival interval, rounded down.
func (c Config) TotalArrivals() int {
	return int(c.Horizon() / c.ArrivalInterval)
}
