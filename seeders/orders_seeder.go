package seeders

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type orderSeed struct {
	log     string
	cust    string
	title   string
	prior   string
	logtype string
	rush    bool
	datin   string
	dueout  string
	colorf  float64
	printN  float64
}

var orderSeeds = []orderSeed{
	{"TR1001", "ACME1", "Storefront banner 4x8", "A", "TR", true, "2026-08-10", "2026-08-20", 4, 2},
	{"DP1002", "BLUE2", "Team hoodies, front and back", "B", "DP", false, "2026-08-11", "2026-08-25", 2, 120},
	{"AA1003", "CEDAR", "Fall festival yard signs", "C", "AA", false, "2026-08-12", "2026-09-01", 1, 50},
	{"DTF104", "DELTA", "Booster club tees", "A", "DTF", true, "2026-08-13", "2026-08-22", 6, 200},
	{"VG1005", "EVRGN", "Truck door vinyl", "B", "VG", false, "2026-08-14", "2026-09-05", 3, 2},
	{"GM1006", "ACME1", "Window lettering", "C", "GM", false, "2026-08-15", "2026-09-10", 1, 1},
}

func seedOrders(ctx context.Context, db *pgxpool.Pool) error {
	for _, o := range orderSeeds {
		_, err := db.Exec(ctx, `
			INSERT INTO orders (log, cust, title, prior, logtype, rush, datin, dueout, colorf, print_n)
			VALUES ($1, $2, $3, $4, $5, $6, $7::date, $8::date, $9, $10)
			ON CONFLICT (log) DO NOTHING`,
			o.log, o.cust, o.title, o.prior, o.logtype, o.rush, o.datin, o.dueout, o.colorf, o.printN,
		)
		if err != nil {
			return fmt.Errorf("insert order %s: %w", o.log, err)
		}
	}
	return nil
}
