package cmd

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/library-sim/library-sim/sim"
)

// Scenario is one named preset in a scenarios YAML file. Durations are in
// days to match the CLI flags; zero-valued fields leave the corresponding
// flag value untouched.
type Scenario struct {
	NBooks          int     `yaml:"n_books"`
	NUsers          int     `yaml:"n_users"`
	NumDays         int     `yaml:"num_days"`
	MinBorrowDays   float64 `yaml:"min_borrow_days"`
	MaxBorrowDays   float64 `yaml:"max_borrow_days"`
	MinBookQty      int     `yaml:"min_book_qty"`
	MaxBookQty      int     `yaml:"max_book_qty"`
	ArrivalInterval float64 `yaml:"arrival_interval"`
	Seed            int64   `yaml:"seed"`
}

// ScenarioFile is the full scenarios YAML structure. All fields must be
// listed so strict KnownFields parsing turns typos into errors.
type ScenarioFile struct {
	Version   string              `yaml:"version"`
	Scenarios map[string]Scenario `yaml:"scenarios"`
}

// LoadScenario reads the named preset from a scenarios YAML file.
func LoadScenario(path, name string) (Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("read scenario file: %w", err)
	}

	var file ScenarioFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		return Scenario{}, fmt.Errorf("parse scenario file %s: %w", path, err)
	}

	scenario, ok := file.Scenarios[name]
	if !ok {
		return Scenario{}, fmt.Errorf("scenario %q not found in %s", name, path)
	}
	return scenario, nil
}

// Apply overrides the non-zero fields of the preset onto cfg.
func (s Scenario) Apply(cfg *sim.Config) {
	if s.NBooks != 0 {
		cfg.NBooks = s.NBooks
	}
	if s.NUsers != 0 {
		cfg.NUsers = s.NUsers
	}
	if s.NumDays != 0 {
		cfg.NumDays = s.NumDays
	}
	if s.MinBorrowDays != 0 {
		cfg.MinBorrowDuration = s.MinBorrowDays * 24
	}
	if s.MaxBorrowDays != 0 {
		cfg.MaxBorrowDuration = s.MaxBorrowDays * 24
	}
	if s.MinBookQty != 0 {
		cfg.MinBookQty = s.MinBookQty
	}
	if s.MaxBookQty != 0 {
		cfg.MaxBookQty = s.MaxBookQty
	}
	if s.ArrivalInterval != 0 {
		cfg.ArrivalInterval = s.ArrivalInterval
	}
	if s.Seed != 0 {
		cfg.Seed = s.Seed
	}
}
