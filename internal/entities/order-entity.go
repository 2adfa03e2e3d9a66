package entities

import (
	"github.com/aarondl/null/v8"

	"print-shop-system/pkg/types"
)

// Order is one print job row. CustomerName is hydrated from the customers
// table by cust code, it never lives in the orders table itself.
type Order struct {
	ID           int64        `db:"id" json:"id"`
	Log          string       `db:"log" json:"log"`
	Artlo        null.String  `db:"artlo" json:"artlo"`
	Cust         null.String  `db:"cust" json:"cust"`
	CustomerName null.String  `db:"customer" json:"customer"`
	Title        null.String  `db:"title" json:"title"`
	Prior        null.String  `db:"prior" json:"prior"`
	Datin        null.Time    `db:"datin" json:"datin"`
	Dueout       null.Time    `db:"dueout" json:"dueout"`
	Datout       null.Time    `db:"datout" json:"datout"`
	Colorf       null.Float64 `db:"colorf" json:"colorf"`
	PrintN       null.Float64 `db:"print_n" json:"print_n"`
	Logtype      null.String  `db:"logtype" json:"logtype"`
	Rush         null.Bool    `db:"rush" json:"rush"`
	types.BaseEntity
	types.SoftDelete
}
