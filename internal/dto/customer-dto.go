package dto

import (
	"github.com/aarondl/null/v8"

	"print-shop-system/internal/entities"
)

type CustomerDTO struct {
	ID            int64       `json:"id"`
	CustID        string      `json:"cust_id"`
	Name          null.String `json:"customer"`
	AddressLine1  null.String `json:"address_line_1"`
	AddressLine2  null.String `json:"address_line_2"`
	City          null.String `json:"city"`
	State         null.String `json:"state"`
	Zip           null.String `json:"zip"`
	Telephone1    null.String `json:"telephone_1"`
	Telephone2    null.String `json:"telephone_2"`
	CustomerEmail null.String `json:"customer_email"`
}

func NewCustomerDTO(c entities.Customer) CustomerDTO {
	return CustomerDTO{
		ID:            c.ID,
		CustID:        c.CustID,
		Name:          c.Name,
		AddressLine1:  c.AddressLine1,
		AddressLine2:  c.AddressLine2,
		City:          c.City,
		State:         c.State,
		Zip:           c.Zip,
		Telephone1:    c.Telephone1,
		Telephone2:    c.Telephone2,
		CustomerEmail: c.CustomerEmail,
	}
}

func NewCustomerDTOs(customers []entities.Customer) []CustomerDTO {
	list := make([]CustomerDTO, 0, len(customers))
	for _, c := range customers {
		list = append(list, NewCustomerDTO(c))
	}
	return list
}
