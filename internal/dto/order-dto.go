package dto

import (
	"github.com/aarondl/null/v8"

	"print-shop-system/internal/entities"
	"print-shop-system/internal/grid"
)

// OrderRowDTO is the wire shape of one grid row. Dates are flattened to
// 2006-01-02 strings, null values serialize as JSON null.
type OrderRowDTO struct {
	ID           int64        `json:"id"`
	Log          string       `json:"log"`
	Artlo        null.String  `json:"artlo"`
	Cust         null.String  `json:"cust"`
	CustomerName null.String  `json:"customer"`
	Title        null.String  `json:"title"`
	Prior        null.String  `json:"prior"`
	Datin        *string      `json:"datin"`
	Dueout       *string      `json:"dueout"`
	Datout       *string      `json:"datout"`
	Colorf       null.Float64 `json:"colorf"`
	PrintN       null.Float64 `json:"print_n"`
	Logtype      null.String  `json:"logtype"`
	Rush         null.Bool    `json:"rush"`
}

func formatDate(t null.Time) *string {
	if !t.Valid {
		return nil
	}
	s := t.Time.Format(grid.DateLayout)
	return &s
}

func NewOrderRowDTO(order entities.Order) OrderRowDTO {
	return OrderRowDTO{
		ID:           order.ID,
		Log:          order.Log,
		Artlo:        order.Artlo,
		Cust:         order.Cust,
		CustomerName: order.CustomerName,
		Title:        order.Title,
		Prior:        order.Prior,
		Datin:        formatDate(order.Datin),
		Dueout:       formatDate(order.Dueout),
		Datout:       formatDate(order.Datout),
		Colorf:       order.Colorf,
		PrintN:       order.PrintN,
		Logtype:      order.Logtype,
		Rush:         order.Rush,
	}
}

func NewOrderRowDTOs(orders []entities.Order) []OrderRowDTO {
	rows := make([]OrderRowDTO, 0, len(orders))
	for _, o := range orders {
		rows = append(rows, NewOrderRowDTO(o))
	}
	return rows
}

// GridResponseDTO is the exact envelope the grid frontend consumes.
type GridResponseDTO struct {
	Data  []OrderRowDTO `json:"data"`
	Total uint64        `json:"total"`
}

type CreateOrderDTO struct {
	Log     string   `json:"log" validate:"required,alphanum,min=5,max=7"`
	Artlo   *string  `json:"artlo" validate:"omitempty,art_log"`
	Cust    *string  `json:"cust" validate:"omitempty,alphanum,len=5"`
	Title   *string  `json:"title" validate:"omitempty,max=256"`
	Prior   *string  `json:"prior" validate:"omitempty,max=1"`
	Datin   *string  `json:"datin" validate:"omitempty,short_date"`
	Dueout  *string  `json:"dueout" validate:"omitempty,short_date"`
	Datout  *string  `json:"datout" validate:"omitempty,short_date"`
	Colorf  *float64 `json:"colorf" validate:"omitempty,gte=0"`
	PrintN  *float64 `json:"print_n" validate:"omitempty,gte=0"`
	Logtype *string  `json:"logtype" validate:"omitempty,log_type"`
	Rush    *bool    `json:"rush"`
}

// UpdateOrderDTO carries a full-record edit. Only the fields present in the
// payload are written; date and string fields clear on empty string.
type UpdateOrderDTO struct {
	Log     *string  `json:"log" validate:"omitempty,alphanum,min=5,max=7"`
	Artlo   *string  `json:"artlo" validate:"omitempty,art_log"`
	Cust    *string  `json:"cust"`
	Title   *string  `json:"title"`
	Prior   *string  `json:"prior"`
	Datin   *string  `json:"datin"`
	Dueout  *string  `json:"dueout"`
	Datout  *string  `json:"datout"`
	Colorf  *float64 `json:"colorf" validate:"omitempty,gte=0"`
	PrintN  *float64 `json:"print_n" validate:"omitempty,gte=0"`
	Logtype *string  `json:"logtype"`
	Rush    *bool    `json:"rush"`
}
