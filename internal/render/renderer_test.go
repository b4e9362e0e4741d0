package render

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NilaRamamoorthy/ecommerce-frontend/internal/domain"
)

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestProductsGrid(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	var sb strings.Builder
	err = r.ProductsGrid(&sb, []ProductView{
		{
			Product:  domain.Product{ID: 7, Name: "Widget", Price: price("9.99"), Category: "tools"},
			ImageURL: "https://shop.example.com/media/widget.png",
		},
	})
	require.NoError(t, err)

	out := sb.String()
	assert.Contains(t, out, "Widget")
	assert.Contains(t, out, "$9.99")
	assert.Contains(t, out, `src="https://shop.example.com/media/widget.png"`)
	assert.Contains(t, out, `value="7"`)
	assert.Contains(t, out, "tools")
}

func TestProductsGrid_EscapesNames(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	var sb strings.Builder
	err = r.ProductsGrid(&sb, []ProductView{
		{Product: domain.Product{ID: 1, Name: `<script>alert("x")</script>`, Price: price("1.00")}},
	})
	require.NoError(t, err)

	assert.NotContains(t, sb.String(), "<script>")
}

func TestCartRows(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	lines := []domain.CartLine{
		{ProductID: 7, Name: "Widget", UnitPrice: price("9.99"), Quantity: 2},
		{ProductID: 8, Name: "Gadget", UnitPrice: price("5.00"), Quantity: 1},
	}

	var sb strings.Builder
	err = r.CartRows(&sb, lines, price("24.98"))
	require.NoError(t, err)

	out := sb.String()
	assert.Contains(t, out, "Widget (x2)")
	assert.Contains(t, out, "$19.98")
	assert.Contains(t, out, "Gadget (x1)")
	assert.Contains(t, out, "$24.98")
	assert.Contains(t, out, "/cart/items/7/remove")
}

func TestOrderCards(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	orders := []domain.Order{
		{
			ID:          3,
			DateCreated: "2026-08-30",
			Total:       price("19.98"),
			Items:       []domain.OrderItem{{Name: "Widget", Quantity: 2, Price: price("9.99")}},
		},
	}

	var sb strings.Builder
	err = r.OrderCards(&sb, orders)
	require.NoError(t, err)

	out := sb.String()
	assert.Contains(t, out, "Order #3")
	assert.Contains(t, out, "Date: 2026-08-30")
	assert.Contains(t, out, "Widget x2 - $19.98")
	assert.Contains(t, out, "Total: $19.98")
}

func TestOrderCards_Empty(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	var sb strings.Builder
	require.NoError(t, r.OrderCards(&sb, nil))
	assert.Contains(t, sb.String(), "No orders yet.")
}

func TestNavLinks(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	var sb strings.Builder
	require.NoError(t, r.NavLinks(&sb, true))
	assert.Contains(t, sb.String(), "Logout")
	assert.NotContains(t, sb.String(), "Signup")

	sb.Reset()
	require.NoError(t, r.NavLinks(&sb, false))
	assert.Contains(t, sb.String(), "Login")
	assert.Contains(t, sb.String(), "Signup")
}
