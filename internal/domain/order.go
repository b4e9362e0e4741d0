package domain

import "github.com/shopspring/decimal"

// Order is a server-owned snapshot. The client never mutates it.
type Order struct {
	ID          int64           `json:"id"`
	DateCreated string          `json:"date_created"`
	Status      string          `json:"status,omitempty"`
	Total       decimal.Decimal `json:"total"`
	Items       []OrderItem     `json:"items"`
}

type OrderItem struct {
	Name     string          `json:"name"`
	Quantity int             `json:"qty"`
	Price    decimal.Decimal `json:"price"`
}

// ItemTotal is the price at purchase times quantity.
func (i OrderItem) ItemTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
