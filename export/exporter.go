package export

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib" // database/sql driver "pgx"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure go sqlite driver "sqlite"

	"github.com/library-sim/library-sim/sim"
)

// Supported database/sql driver names.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "pgx"
)

// insertChunkRows bounds rows per INSERT so the bind-parameter count stays
// well under every target's limit.
const insertChunkRows = 200

var driverDialects = map[string]string{
	DriverSQLite:   "sqlite3",
	DriverPostgres: "postgres",
}

// Exporter writes a finished dataset to a relational store. SQL is built with
// goqu against the driver's dialect and executed through sqlx.
type Exporter struct {
	db      *sqlx.DB
	dialect goqu.DialectWrapper
}

// Open connects to the target database. driver is DriverSQLite (dsn is a file
// path or ":memory:") or DriverPostgres (dsn is a Postgres connection string).
func Open(driver, dsn string) (*Exporter, error) {
	dialectName, ok := driverDialects[driver]
	if !ok {
		return nil, fmt.Errorf("export: unsupported driver %q (want %q or %q)",
			driver, DriverSQLite, DriverPostgres)
	}
	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("export: open %s: %w", driver, err)
	}
	return &Exporter{db: db, dialect: goqu.Dialect(dialectName)}, nil
}

// Close releases the database connection.
func (e *Exporter) Close() error {
	return e.db.Close()
}

// CreateSchema creates the target tables if they do not exist.
func (e *Exporter) CreateSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := e.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("export: create schema: %w", err)
		}
	}
	return nil
}

// Dataset bundles everything one exported run consists of: the simulation
// output plus the synthetic metadata attached to it.
type Dataset struct {
	RunID     uuid.UUID
	Config    sim.Config
	Results   sim.Results
	Catalog   []CatalogBook // one row per simulated book, same order as book ids
	Users     []User        // one row per simulated user id
	Libraries []string
	// LibraryIDs assigns each book a 0-based library id; see AssignLibraries.
	LibraryIDs []int
	Window     Window
}

// AssignLibraries deterministically spreads nBooks over nLibraries, returning
// a 0-based library id per book.
func AssignLibraries(nBooks, nLibraries int, seed int64) []int {
	rng := rand.New(rand.NewSource(seed))
	ids := make([]int, nBooks)
	for i := range ids {
		ids[i] = rng.Intn(nLibraries)
	}
	return ids
}

func (ds Dataset) validate() error {
	if len(ds.Catalog) < ds.Config.NBooks {
		return fmt.Errorf("export: catalog has %d usable books, need %d", len(ds.Catalog), ds.Config.NBooks)
	}
	if len(ds.Users) != ds.Config.NUsers {
		return fmt.Errorf("export: got %d users, need %d", len(ds.Users), ds.Config.NUsers)
	}
	if len(ds.LibraryIDs) != ds.Config.NBooks {
		return fmt.Errorf("export: got %d library assignments, need %d", len(ds.LibraryIDs), ds.Config.NBooks)
	}
	return nil
}

// Export writes the whole dataset in one transaction. All SQL ids are
// 1-based; simulated ids translate by +1. Queue and loan records starting
// after the observation window are dropped, and end times past the window
// become NULL.
func (e *Exporter) Export(ctx context.Context, ds Dataset) error {
	if err := ds.validate(); err != nil {
		return err
	}

	tx, err := e.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("export: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := e.insertRun(ctx, tx, ds); err != nil {
		return err
	}

	categoryNames, categoryIDs := Categories(ds.Catalog[:ds.Config.NBooks])

	categoryRows := make([][]any, len(categoryNames))
	for i, name := range categoryNames {
		categoryRows[i] = []any{i + 1, name}
	}
	if err := e.insertRows(ctx, tx, "categories",
		[]any{"category_id", "category_name"}, categoryRows); err != nil {
		return err
	}

	libraryRows := make([][]any, len(ds.Libraries))
	for i, name := range ds.Libraries {
		libraryRows[i] = []any{i + 1, name}
	}
	if err := e.insertRows(ctx, tx, "libraries",
		[]any{"library_id", "library_name"}, libraryRows); err != nil {
		return err
	}

	bookRows := make([][]any, ds.Config.NBooks)
	for bookID := 0; bookID < ds.Config.NBooks; bookID++ {
		cb := ds.Catalog[bookID]
		bookRows[bookID] = []any{
			bookID + 1, cb.Title, cb.Author,
			categoryIDs[cb.Category] + 1, ds.LibraryIDs[bookID] + 1,
			ds.Results.TotalQuantities[bookID],
		}
	}
	if err := e.insertRows(ctx, tx, "books",
		[]any{"book_id", "title", "author", "category_id", "library_id", "total_quantity"},
		bookRows); err != nil {
		return err
	}

	userRows := make([][]any, len(ds.Users))
	for i, u := range ds.Users {
		userRows[i] = []any{i + 1, u.Name, u.Email}
	}
	if err := e.insertRows(ctx, tx, "users",
		[]any{"user_id", "user_name", "email"}, userRows); err != nil {
		return err
	}

	var queueRows [][]any
	for queueID, q := range ds.Results.Queues {
		if !ds.Window.Observes(q.QueueStart) {
			continue
		}
		queueRows = append(queueRows, []any{
			queueID + 1, q.UserID + 1, q.BookID + 1,
			ds.Window.At(q.QueueStart), ds.Window.AtStamp(q.QueueEnd),
		})
	}
	if err := e.insertRows(ctx, tx, "queues",
		[]any{"queue_id", "user_id", "book_id", "queue_start", "queue_end"},
		queueRows); err != nil {
		return err
	}

	var loanRows [][]any
	for loanID, loan := range ds.Results.Loans {
		if !ds.Window.Observes(loan.LoanStart) {
			continue
		}
		var queueID any
		if loan.QueueID.Valid {
			queueID = loan.QueueID.ID + 1
		}
		loanRows = append(loanRows, []any{
			loanID + 1, loan.UserID + 1, loan.BookID + 1, queueID,
			ds.Window.At(loan.LoanStart), ds.Window.AtStamp(loan.LoanEnd),
		})
	}
	if err := e.insertRows(ctx, tx, "loans",
		[]any{"loan_id", "user_id", "book_id", "queue_id", "loan_start", "loan_end"},
		loanRows); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("export: commit: %w", err)
	}
	return nil
}

func (e *Exporter) insertRun(ctx context.Context, tx *sqlx.Tx, ds Dataset) error {
	query, args, err := e.dialect.Insert("runs").
		Cols("run_id", "created_at", "seed", "n_books", "n_users", "num_days").
		Vals(goqu.Vals{
			ds.RunID.String(), time.Now().UTC(),
			ds.Config.Seed, ds.Config.NBooks, ds.Config.NUsers, ds.Config.NumDays,
		}).
		Prepared(true).ToSQL()
	if err != nil {
		return fmt.Errorf("export: build runs insert: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("export: insert run: %w", err)
	}
	return nil
}

// insertRows writes rows in chunks of insertChunkRows per statement.
func (e *Exporter) insertRows(ctx context.Context, tx *sqlx.Tx, table string, cols []any, rows [][]any) error {
	for start := 0; start < len(rows); start += insertChunkRows {
		end := min(start+insertChunkRows, len(rows))
		insert := e.dialect.Insert(table).Cols(cols...)
		for _, row := range rows[start:end] {
			insert = insert.Vals(goqu.Vals(row))
		}
		query, args, err := insert.Prepared(true).ToSQL()
		if err != nil {
			return fmt.Errorf("export: build %s insert: %w", table, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("export: insert %s: %w", table, err)
		}
	}
	return nil
}
