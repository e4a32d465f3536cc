package orders

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLineTotal(t *testing.T) {
	item := OrderItem{ProductName: "Handloom Saree", Quantity: 3, UnitPrice: 1200}
	assert.Equal(t, 3600.0, item.LineTotal())

	// An explicit stored total wins over the derived one, e.g. after a
	// line-level discount.
	stored := 3000.0
	item.TotalPrice = &stored
	assert.Equal(t, 3000.0, item.LineTotal())
}

func TestOrderTotal(t *testing.T) {
	discounted := 450.0
	items := []OrderItem{
		{Quantity: 2, UnitPrice: 250},
		{Quantity: 1, UnitPrice: 500, TotalPrice: &discounted},
	}
	assert.Equal(t, 950.0, OrderTotal(items))

	// Recomputing does not change the result or the items.
	assert.Equal(t, 950.0, OrderTotal(items))
	assert.Equal(t, 450.0, *items[1].TotalPrice)

	assert.Zero(t, OrderTotal(nil))
}
