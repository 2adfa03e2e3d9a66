package main

import (
	"context"
	"flag"
	"log"

	"print-shop-system/pkg/config"
	"print-shop-system/pkg/database/postgresql"
	"print-shop-system/seeders"
)

func main() {
	runDemo := flag.Bool("demo", false, "seed demo customers and orders")
	runMigrations := flag.Bool("migrate", false, "run database migrations first")
	flag.Parse()

	if !*runDemo && !*runMigrations {
		log.Println("nothing to do")
		flag.PrintDefaults()
		return
	}

	cfg := config.New()

	if *runMigrations {
		if err := postgresql.Migrate(cfg.Postgres.DSN); err != nil {
			log.Fatalf("migration failed: %v", err)
		}
		log.Println("migrations applied")
	}

	if *runDemo {
		db, err := postgresql.Connect(context.Background(), cfg.Postgres.DSN)
		if err != nil {
			log.Fatalf("failed to connect: %v", err)
		}
		defer db.Close()

		seeders.SeedDemoData(db)
	}
}
