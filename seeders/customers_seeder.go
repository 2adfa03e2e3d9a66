package seeders

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type customerSeed struct {
	custID string
	name   string
	city   string
	state  string
	email  string
}

var customerSeeds = []customerSeed{
	{"ACME1", "Acme Printing Supply", "Portland", "OR", "orders@acmeprint.example"},
	{"BLUE2", "Blue River Apparel", "Eugene", "OR", "purchasing@blueriver.example"},
	{"CEDAR", "Cedar Hill Church", "Salem", "OR", "office@cedarhill.example"},
	{"DELTA", "Delta Sports Boosters", "Bend", "OR", "boosters@deltasports.example"},
	{"EVRGN", "Evergreen Landscaping", "Corvallis", "OR", "info@evergreenls.example"},
}

func seedCustomers(ctx context.Context, db *pgxpool.Pool) error {
	for _, c := range customerSeeds {
		_, err := db.Exec(ctx, `
			INSERT INTO customers (cust_id, customer, city, state, customer_email)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (cust_id) DO NOTHING`,
			c.custID, c.name, c.city, c.state, c.email,
		)
		if err != nil {
			return fmt.Errorf("insert customer %s: %w", c.custID, err)
		}
	}
	return nil
}
