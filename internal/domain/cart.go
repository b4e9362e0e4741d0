package domain

import "github.com/shopspring/decimal"

// CartLine is one product's quantity within a cart. The JSON field names match
// the shape the backend's checkout endpoint expects ({id, name, price, qty}).
type CartLine struct {
	ProductID int64           `json:"id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"price"`
	Quantity  int             `json:"qty"`
}

// LineTotal is unit price times quantity.
func (l CartLine) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}
