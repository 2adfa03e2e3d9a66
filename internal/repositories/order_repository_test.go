package repositories

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"print-shop-system/internal/grid"
	"print-shop-system/pkg/database/postgresql"
	apperrors "print-shop-system/pkg/errors"
)

var testPool *pgxpool.Pool

// TestMain connects to the database named by TEST_DATABASE_URL and applies
// the migrations. Without that variable the pool stays nil and the tests
// that need it skip themselves; schema-consistency tests still run.
func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		log.Println("TEST_DATABASE_URL not set, skipping repository integration tests")
		os.Exit(m.Run())
	}

	if err := postgresql.Migrate(dsn); err != nil {
		log.Fatalf("failed to migrate test database: %v", err)
	}

	var err error
	testPool, err = pgxpool.New(context.Background(), dsn)
	if err != nil {
		log.Fatalf("failed to connect to test database: %v", err)
	}
	defer testPool.Close()

	os.Exit(m.Run())
}

func requireDB(t *testing.T) {
	t.Helper()
	if testPool == nil {
		t.Skip("TEST_DATABASE_URL not set")
	}
}

func cleanupTables(t *testing.T) {
	t.Helper()
	requireDB(t)
	_, err := testPool.Exec(context.Background(), `TRUNCATE TABLE orders, customers RESTART IDENTITY CASCADE`)
	require.NoError(t, err)
}

type orderSeed struct {
	log     string
	cust    string
	title   string
	logtype string
	rush    bool
	datin   string
	dueout  string
	datout  string
	deleted bool
}

func seedData(t *testing.T) {
	t.Helper()
	ctx := context.Background()

	customers := [][2]string{
		{"ACME1", "Acme Printing Supply"},
		{"BLUE2", "Blue River Apparel"},
	}
	for _, c := range customers {
		_, err := testPool.Exec(ctx,
			`INSERT INTO customers (cust_id, customer) VALUES ($1, $2)`, c[0], c[1])
		require.NoError(t, err)
	}

	seeds := []orderSeed{
		{log: "TR1001", cust: "ACME1", title: "Storefront banner", logtype: "TR", rush: true, datin: "2026-08-10", dueout: "2026-08-20"},
		{log: "DP1002", cust: "BLUE2", title: "Team hoodies", logtype: "DP", datin: "2026-08-11", dueout: "2026-08-25"},
		{log: "AA1003", cust: "ACME1", title: "Yard signs", logtype: "AA", datin: "2026-08-12", dueout: "2026-09-01", datout: "2026-08-30"},
		{log: "VG1004", cust: "BLUE2", title: "Truck door vinyl", logtype: "VG", datin: "2026-08-13", dueout: "2026-08-22"},
		{log: "TR1005", cust: "ZZZZZ", title: "Orphan customer job", logtype: "TR", datin: "2026-08-14", dueout: "2026-08-18"},
		{log: "GM1006", cust: "ACME1", title: "Deleted job", logtype: "GM", datin: "2026-08-15", dueout: "2026-08-19", deleted: true},
	}
	for _, s := range seeds {
		var datout interface{}
		if s.datout != "" {
			datout = s.datout
		}
		var deletedAt interface{}
		if s.deleted {
			deletedAt = time.Now()
		}
		_, err := testPool.Exec(ctx, `
			INSERT INTO orders (log, cust, title, logtype, rush, datin, dueout, datout, deleted_at)
			VALUES ($1, $2, $3, $4, $5, $6::date, $7::date, $8::date, $9)`,
			s.log, s.cust, s.title, s.logtype, s.rush, s.datin, s.dueout, datout, deletedAt)
		require.NoError(t, err)
	}
}

func TestOrderRepository_ListGrid_ExcludesDeleted(t *testing.T) {
	cleanupTables(t)
	seedData(t)
	repo := NewOrderRepository(testPool)

	orders, total, err := repo.ListGrid(context.Background(), grid.Params{Length: grid.DefaultPageLength})
	require.NoError(t, err)

	assert.Equal(t, uint64(5), total)
	assert.Len(t, orders, 5)
	for _, o := range orders {
		assert.NotEqual(t, "GM1006", o.Log)
	}
}

func TestOrderRepository_ListGrid_JoinsCustomerName(t *testing.T) {
	cleanupTables(t)
	seedData(t)
	repo := NewOrderRepository(testPool)

	order, err := repo.FindByLog(context.Background(), "TR1001")
	require.NoError(t, err)
	assert.Equal(t, "Acme Printing Supply", order.CustomerName.String)

	// a cust code with no matching customer row stays usable, name is NULL
	orphan, err := repo.FindByLog(context.Background(), "TR1005")
	require.NoError(t, err)
	assert.False(t, orphan.CustomerName.Valid)
}

func TestOrderRepository_ListGrid_SearchTotalMatchesRows(t *testing.T) {
	cleanupTables(t)
	seedData(t)
	repo := NewOrderRepository(testPool)

	params := grid.Params{Search: "acme", Length: grid.DefaultPageLength}
	orders, total, err := repo.ListGrid(context.Background(), params)
	require.NoError(t, err)

	// TR1001 and AA1003 match through the joined customer name
	assert.Equal(t, uint64(2), total)
	assert.Len(t, orders, 2)

	_, total, err = repo.ListGrid(context.Background(), grid.Params{Search: "no such thing", Length: grid.DefaultPageLength})
	require.NoError(t, err)
	assert.Equal(t, uint64(0), total)
}

func TestOrderRepository_ListGrid_Pagination(t *testing.T) {
	cleanupTables(t)
	seedData(t)
	repo := NewOrderRepository(testPool)

	page1, total, err := repo.ListGrid(context.Background(), grid.Params{Length: 2})
	require.NoError(t, err)
	assert.Equal(t, uint64(5), total)
	require.Len(t, page1, 2)

	page2, total, err := repo.ListGrid(context.Background(), grid.Params{Start: 2, Length: 2})
	require.NoError(t, err)
	assert.Equal(t, uint64(5), total)
	require.Len(t, page2, 2)
	assert.NotEqual(t, page1[0].ID, page2[0].ID)

	// a start past the end comes back empty but keeps the real total
	empty, total, err := repo.ListGrid(context.Background(), grid.Params{Start: 100, Length: 2})
	require.NoError(t, err)
	assert.Equal(t, uint64(5), total)
	assert.Empty(t, empty)
}

func TestOrderRepository_ListGrid_MultiColumnSort(t *testing.T) {
	cleanupTables(t)
	seedData(t)
	repo := NewOrderRepository(testPool)

	sort, err := grid.ParseSort([]string{"-dueout", "log"})
	require.NoError(t, err)

	orders, _, err := repo.ListGrid(context.Background(), grid.Params{Sort: sort, Length: grid.DefaultPageLength})
	require.NoError(t, err)
	require.Len(t, orders, 5)

	for i := 1; i < len(orders); i++ {
		prev, cur := orders[i-1].Dueout.Time, orders[i].Dueout.Time
		assert.False(t, prev.Before(cur), "dueout must be descending")
		if prev.Equal(cur) {
			assert.Less(t, orders[i-1].Log, orders[i].Log)
		}
	}
}

func TestOrderRepository_UpdateFields(t *testing.T) {
	cleanupTables(t)
	seedData(t)
	repo := NewOrderRepository(testPool)

	order, err := repo.FindByLog(context.Background(), "DP1002")
	require.NoError(t, err)
	require.False(t, order.Rush.Bool)

	updated, err := repo.UpdateFields(context.Background(), order.ID, map[string]interface{}{"rush": true})
	require.NoError(t, err)
	assert.True(t, updated.Rush.Bool)
	assert.Equal(t, "Blue River Apparel", updated.CustomerName.String)

	reread, err := repo.FindByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.True(t, reread.Rush.Bool)
}

func TestOrderRepository_UpdateFields_DeletedRowNotFound(t *testing.T) {
	cleanupTables(t)
	seedData(t)
	repo := NewOrderRepository(testPool)

	var deletedID int64
	err := testPool.QueryRow(context.Background(),
		`SELECT id FROM orders WHERE log = 'GM1006'`).Scan(&deletedID)
	require.NoError(t, err)

	_, err = repo.UpdateFields(context.Background(), deletedID, map[string]interface{}{"title": "resurrected"})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = repo.UpdateFields(context.Background(), 999999, map[string]interface{}{"title": "ghost"})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestOrderRepository_UpdateFields_DuplicateLogConflict(t *testing.T) {
	cleanupTables(t)
	seedData(t)
	repo := NewOrderRepository(testPool)

	order, err := repo.FindByLog(context.Background(), "DP1002")
	require.NoError(t, err)

	_, err = repo.UpdateFields(context.Background(), order.ID, map[string]interface{}{"log": "TR1001"})
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestOrderRepository_SoftDelete(t *testing.T) {
	cleanupTables(t)
	seedData(t)
	repo := NewOrderRepository(testPool)

	order, err := repo.FindByLog(context.Background(), "VG1004")
	require.NoError(t, err)

	require.NoError(t, repo.SoftDelete(context.Background(), order.ID))

	_, err = repo.FindByID(context.Background(), order.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	// second delete of the same row reports not found
	assert.ErrorIs(t, repo.SoftDelete(context.Background(), order.ID), apperrors.ErrNotFound)

	_, total, err := repo.ListGrid(context.Background(), grid.Params{Length: grid.DefaultPageLength})
	require.NoError(t, err)
	assert.Equal(t, uint64(4), total)
}

func TestOrderRepository_Dueouts(t *testing.T) {
	cleanupTables(t)
	seedData(t)
	repo := NewOrderRepository(testPool)

	// open TR/DP/AA/DTF jobs only: AA1003 is done, GM1006 deleted, VG1004
	// is the wrong type
	orders, err := repo.Dueouts(context.Background(), nil, nil)
	require.NoError(t, err)
	require.Len(t, orders, 3)
	assert.Equal(t, "TR1005", orders[0].Log)
	assert.Equal(t, "TR1001", orders[1].Log)
	assert.Equal(t, "DP1002", orders[2].Log)

	start := time.Date(2026, 8, 19, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 21, 0, 0, 0, 0, time.UTC)
	ranged, err := repo.Dueouts(context.Background(), &start, &end)
	require.NoError(t, err)
	require.Len(t, ranged, 1)
	assert.Equal(t, "TR1001", ranged[0].Log)
}

func TestOrderRepository_Create(t *testing.T) {
	cleanupTables(t)
	seedData(t)
	repo := NewOrderRepository(testPool)

	order, err := repo.Create(context.Background(), map[string]interface{}{
		"log":     "PP2001",
		"cust":    "ACME1",
		"title":   "Business cards",
		"logtype": "PP",
		"datin":   time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, "PP2001", order.Log)
	assert.Equal(t, "Acme Printing Supply", order.CustomerName.String)

	_, err = repo.Create(context.Background(), map[string]interface{}{"log": "PP2001"})
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}
