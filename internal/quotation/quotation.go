package quotation

import (
	"fmt"
	"strings"
	"time"

	"studenthub/internal/cart"
)

const (
	Title    = "YB Patil Hub - Project Quotation"
	FileName = "project-quotation.txt"
	dateFmt  = "02/01/2006"
)

// Render текстовая смета по снимку корзины.
// Без скидки на месте ее строки остается пустая строка
func Render(sum cart.Summary, date time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", Title)
	fmt.Fprintf(&b, "Date: %s\n\n", date.Format(dateFmt))

	b.WriteString("Items:\n")
	for _, item := range sum.Items {
		fmt.Fprintf(&b, "- %s: ₹%d\n", item.Name, item.Price)
	}

	fmt.Fprintf(&b, "\nSubtotal: ₹%d\n", sum.Subtotal)
	if sum.Discount > 0 {
		fmt.Fprintf(&b, "Discount (%d%%): -₹%d", cart.DiscountPercent, sum.Discount)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "Total: ₹%d\n", sum.Total)

	return b.String()
}
