package quotation

import (
	"testing"
	"time"

	"studenthub/internal/cart"

	"github.com/stretchr/testify/assert"
)

var date = time.Date(2024, 9, 5, 12, 0, 0, 0, time.UTC)

func TestRender_WithDiscount(t *testing.T) {
	sum := cart.Summary{
		Items: []cart.CartItem{
			{ID: "p1", Name: "Line follower robot", Price: 1500},
			{ID: "p2", Name: "Smart energy meter", Price: 800},
		},
		Count:         2,
		Subtotal:      2300,
		Discount:      230,
		Total:         2070,
		ApplyDiscount: true,
	}

	expected := "YB Patil Hub - Project Quotation\n" +
		"Date: 05/09/2024\n\n" +
		"Items:\n" +
		"- Line follower robot: ₹1500\n" +
		"- Smart energy meter: ₹800\n\n" +
		"Subtotal: ₹2300\n" +
		"Discount (10%): -₹230\n" +
		"Total: ₹2070\n"

	assert.Equal(t, expected, Render(sum, date))
}

func TestRender_NoDiscountLine(t *testing.T) {
	sum := cart.Summary{
		Items:    []cart.CartItem{{ID: "p1", Name: "Robot", Price: 4}},
		Count:    1,
		Subtotal: 4,
		Total:    4,
		// 10% от 4 округляется в 0, строки скидки быть не должно
		ApplyDiscount: true,
	}

	out := Render(sum, date)
	assert.NotContains(t, out, "Discount")
	assert.Contains(t, out, "Subtotal: ₹4\n\nTotal: ₹4\n")
}
