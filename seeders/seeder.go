package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SeedDemoData loads a small set of customers and orders so a fresh install
// has something to show in the grid.
func SeedDemoData(db *pgxpool.Pool) {
	ctx := context.Background()
	log.Println("seeding demo data...")

	if err := seedCustomers(ctx, db); err != nil {
		log.Fatalf("seeding customers failed: %v", err)
	}
	if err := seedOrders(ctx, db); err != nil {
		log.Fatalf("seeding orders failed: %v", err)
	}
	log.Println("demo data seeded")
}
