package entities

import (
	"github.com/aarondl/null/v8"

	"print-shop-system/pkg/types"
)

type Customer struct {
	ID            int64       `db:"id" json:"id"`
	CustID        string      `db:"cust_id" json:"cust_id"`
	Name          null.String `db:"customer" json:"customer"`
	AddressLine1  null.String `db:"address_line_1" json:"address_line_1"`
	AddressLine2  null.String `db:"address_line_2" json:"address_line_2"`
	City          null.String `db:"city" json:"city"`
	State         null.String `db:"state" json:"state"`
	Zip           null.String `db:"zip" json:"zip"`
	Telephone1    null.String `db:"telephone_1" json:"telephone_1"`
	Telephone2    null.String `db:"telephone_2" json:"telephone_2"`
	CustomerEmail null.String `db:"customer_email" json:"customer_email"`
	types.BaseEntity
	types.SoftDelete
}
