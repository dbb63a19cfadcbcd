package export

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/library-sim/library-sim/sim"
)

// historyFixture drives the real transitions to produce a small consistent
// history: book 0 has a single copy, user 1 queues behind user 0, and the
// cascaded loan is returned only after the observation window closes.
func historyFixture(t *testing.T) (sim.Config, sim.Results) {
	t.Helper()

	store := sim.NewStore([]int{1, 2})
	loan0, status := store.RequestBorrow(0, 0, 0)
	require.Equal(t, sim.StatusLoaned, status)
	_, status = store.RequestBorrow(1, 0, 5)
	require.Equal(t, sim.StatusQueued, status)
	loan1, ok := store.Return(loan0, 30)
	require.True(t, ok)
	_, ok = store.Return(loan1, 900) // past the 720h window below
	require.False(t, ok)

	cfg := sim.Config{
		NBooks: 2, NUsers: 2, NumDays: 30,
		MinBorrowDuration: 24, MaxBorrowDuration: 96,
		MinBookQty: 1, MaxBookQty: 2,
		ArrivalInterval: 1, Seed: 1,
	}
	results := sim.Results{
		Books:           store.Books,
		Queues:          store.Queues,
		Loans:           store.Loans,
		TotalQuantities: []int{1, 2},
	}
	return cfg, results
}

func testDataset(t *testing.T) Dataset {
	t.Helper()
	cfg, results := historyFixture(t)
	start, err := time.Parse("2006-01-02", "2015-01-01")
	require.NoError(t, err)
	return Dataset{
		RunID:   uuid.New(),
		Config:  cfg,
		Results: results,
		Catalog: []CatalogBook{
			{Title: "Quiet Rivers", Author: "C. Writer", Category: "Fiction"},
			{Title: "Winter Maps", Author: "D. Poet", Category: "Travel"},
		},
		Users:      GenerateUsers(2, 1),
		Libraries:  []string{"Library A"},
		LibraryIDs: []int{0, 0},
		Window:     NewWindow(start, cfg.NumDays, 1.0),
	}
}

func openTestExporter(t *testing.T) *Exporter {
	t.Helper()
	e, err := Open(DriverSQLite, filepath.Join(t.TempDir(), "library.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = e.Close() })
	require.NoError(t, e.CreateSchema(context.Background()))
	return e
}

func TestOpen_RejectsUnknownDriver(t *testing.T) {
	_, err := Open("mysql", "dsn")
	assert.ErrorContains(t, err, "unsupported driver")
}

func TestExport_WritesAllTables(t *testing.T) {
	e := openTestExporter(t)
	ds := testDataset(t)

	require.NoError(t, e.Export(context.Background(), ds))

	counts := map[string]int{}
	for _, table := range []string{"runs", "categories", "libraries", "books", "users", "queues", "loans"} {
		var n int
		require.NoError(t, e.db.Get(&n, "SELECT COUNT(*) FROM "+table))
		counts[table] = n
	}
	assert.Equal(t, map[string]int{
		"runs": 1, "categories": 2, "libraries": 1,
		"books": 2, "users": 2, "queues": 1, "loans": 2,
	}, counts)

	var runID string
	require.NoError(t, e.db.Get(&runID, "SELECT run_id FROM runs"))
	assert.Equal(t, ds.RunID.String(), runID)
}

func TestExport_IdsAreOneBasedInCreationOrder(t *testing.T) {
	e := openTestExporter(t)
	require.NoError(t, e.Export(context.Background(), testDataset(t)))

	var row struct {
		LoanID  int  `db:"loan_id"`
		UserID  int  `db:"user_id"`
		BookID  int  `db:"book_id"`
		QueueID *int `db:"queue_id"`
	}
	require.NoError(t, e.db.Get(&row,
		"SELECT loan_id, user_id, book_id, queue_id FROM loans WHERE loan_id = 1"))
	assert.Equal(t, 1, row.UserID, "simulated user 0 exports as user_id 1")
	assert.Equal(t, 1, row.BookID)
	assert.Nil(t, row.QueueID, "a direct loan has no queue provenance")

	require.NoError(t, e.db.Get(&row,
		"SELECT loan_id, user_id, book_id, queue_id FROM loans WHERE loan_id = 2"))
	assert.Equal(t, 2, row.UserID)
	require.NotNil(t, row.QueueID)
	assert.Equal(t, 1, *row.QueueID, "cascaded loan references the served queue entry")
}

func TestExport_WindowTruncationNullsOpenEnds(t *testing.T) {
	e := openTestExporter(t)
	require.NoError(t, e.Export(context.Background(), testDataset(t)))

	rows, err := e.db.Query("SELECT loan_end FROM loans ORDER BY loan_id")
	require.NoError(t, err)
	defer rows.Close()
	var ends []*time.Time
	for rows.Next() {
		var end *time.Time
		require.NoError(t, rows.Scan(&end))
		ends = append(ends, end)
	}
	require.NoError(t, rows.Err())
	require.Len(t, ends, 2)
	assert.NotNil(t, ends[0], "loan returned inside the window keeps its end date")
	assert.Nil(t, ends[1], "loan returned after the window exports as still open")
}

func TestExport_RejectsUndersizedMetadata(t *testing.T) {
	e := openTestExporter(t)
	ds := testDataset(t)
	ds.Catalog = ds.Catalog[:1]

	err := e.Export(context.Background(), ds)

	assert.ErrorContains(t, err, "catalog")
}
