package cmd

import (
	"context"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/library-sim/library-sim/export"
	"github.com/library-sim/library-sim/sim"
)

var (
	// Simulation flags
	seed            int64   // Seed for the run's single random source
	nBooks          int     // Number of catalog items
	nUsers          int     // Number of patrons
	numDays         int     // Simulated horizon in days
	minBorrowDays   float64 // Shortest borrow duration in days
	maxBorrowDays   float64 // Longest borrow duration in days
	minBookQty      int     // Minimum copies per book
	maxBookQty      int     // Maximum copies per book
	arrivalInterval float64 // Mean hours between borrow requests
	logLevel        string  // Log verbosity level
	summaryJSON     string  // Optional path for the JSON run summary

	// Scenario preset flags
	scenarioFile string
	scenarioName string

	// Export flags
	dsn           string
	dbDriver      string
	catalogPath   string
	startDate     string
	finishedRatio float64
	nLibraries    int
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "library-sim",
	Short: "Discrete-event simulator generating synthetic lending-library datasets",
}

// runCmd executes one simulation run and optionally exports the dataset
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the lending-library simulation",
	Run: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		cfg := sim.Config{
			NBooks:            nBooks,
			NUsers:            nUsers,
			NumDays:           numDays,
			MinBorrowDuration: minBorrowDays * 24,
			MaxBorrowDuration: maxBorrowDays * 24,
			MinBookQty:        minBookQty,
			MaxBookQty:        maxBookQty,
			ArrivalInterval:   arrivalInterval,
			Seed:              seed,
		}
		if scenarioName != "" {
			scenario, err := LoadScenario(scenarioFile, scenarioName)
			if err != nil {
				logrus.Fatalf("Failed to load scenario: %v", err)
			}
			scenario.Apply(&cfg)
			logrus.Infof("Applied scenario %q from %s", scenarioName, scenarioFile)
		}

		simulator, err := sim.NewSimulator(cfg)
		if err != nil {
			logrus.Fatalf("Invalid configuration: %v", err)
		}

		startedAt := time.Now()
		if err := simulator.Run(); err != nil {
			// A failed run is not a usable dataset, even partially.
			logrus.Fatalf("Run failed consistency checks, discarding results: %v", err)
		}
		logrus.Infof("Simulation completed in %s", time.Since(startedAt).Round(time.Millisecond))

		summary := simulator.Metrics.Summarize(simulator.Store)
		summary.Print()
		if summaryJSON != "" {
			if err := summary.WriteJSON(summaryJSON); err != nil {
				logrus.Fatalf("Failed to write summary: %v", err)
			}
		}

		if dsn != "" {
			if err := exportRun(cfg, simulator.Results()); err != nil {
				logrus.Fatalf("Export failed: %v", err)
			}
			logrus.Infof("Dataset exported to %s (%s)", dsn, dbDriver)
		}
	},
}

// exportRun assembles the synthetic metadata around the finished history and
// persists everything to the configured database.
func exportRun(cfg sim.Config, results sim.Results) error {
	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return err
	}

	var catalog []export.CatalogBook
	if catalogPath != "" {
		catalog, err = export.LoadCatalog(catalogPath, cfg.NBooks)
		if err != nil {
			return err
		}
	} else {
		catalog = export.SyntheticCatalog(cfg.NBooks, uint64(cfg.Seed))
	}

	libraries := make([]string, nLibraries)
	for i := range libraries {
		libraries[i] = "Library " + string(rune('A'+i%26))
	}

	ds := export.Dataset{
		RunID:      uuid.New(),
		Config:     cfg,
		Results:    results,
		Catalog:    catalog,
		Users:      export.GenerateUsers(cfg.NUsers, uint64(cfg.Seed)),
		Libraries:  libraries,
		LibraryIDs: export.AssignLibraries(cfg.NBooks, nLibraries, cfg.Seed),
		Window:     export.NewWindow(start, cfg.NumDays, finishedRatio),
	}

	exporter, err := export.Open(dbDriver, dsn)
	if err != nil {
		return err
	}
	defer exporter.Close()

	ctx := context.Background()
	if err := exporter.CreateSchema(ctx); err != nil {
		return err
	}
	return exporter.Export(ctx, ds)
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().Int64Var(&seed, "seed", 42, "Seed for the deterministic random source")
	runCmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	runCmd.Flags().StringVar(&summaryJSON, "summary-json", "", "Write the run summary to this JSON file")

	// Simulation configs
	runCmd.Flags().IntVar(&nBooks, "n-books", 300, "Number of catalog items")
	runCmd.Flags().IntVar(&nUsers, "n-users", 300, "Number of patrons")
	runCmd.Flags().IntVar(&numDays, "num-days", 365, "Simulated horizon in days")
	runCmd.Flags().Float64Var(&minBorrowDays, "min-borrow-days", 1, "Shortest borrow duration in days")
	runCmd.Flags().Float64Var(&maxBorrowDays, "max-borrow-days", 14, "Longest borrow duration in days")
	runCmd.Flags().IntVar(&minBookQty, "min-book-qty", 3, "Minimum copies sampled per book")
	runCmd.Flags().IntVar(&maxBookQty, "max-book-qty", 10, "Maximum copies sampled per book")
	runCmd.Flags().Float64Var(&arrivalInterval, "arrival-interval", 0.5, "Mean hours between borrow requests")

	// Scenario presets
	runCmd.Flags().StringVar(&scenarioFile, "scenario-file", "scenarios.yaml", "YAML file with named scenario presets")
	runCmd.Flags().StringVar(&scenarioName, "scenario", "", "Named scenario preset overriding simulation flags")

	// Export configs
	runCmd.Flags().StringVar(&dsn, "dsn", "", "Export target: sqlite file path or Postgres connection string (empty = no export)")
	runCmd.Flags().StringVar(&dbDriver, "driver", export.DriverSQLite, "Database driver (sqlite, pgx)")
	runCmd.Flags().StringVar(&catalogPath, "catalog", "", "Book catalog CSV (empty = synthetic catalog)")
	runCmd.Flags().StringVar(&startDate, "start-date", "2015-01-01", "Calendar date mapped to hour offset 0")
	runCmd.Flags().Float64Var(&finishedRatio, "finished-ratio", 0.9, "Fraction of the horizon kept as the observation window")
	runCmd.Flags().IntVar(&nLibraries, "libraries", 3, "Number of library branches")

	rootCmd.AddCommand(runCmd)
}
