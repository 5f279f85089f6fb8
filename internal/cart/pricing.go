package cart

// DiscountPercent студенческая скидка в процентах от подытога
const DiscountPercent = 10

// Subtotal сумма цен всех позиций
func Subtotal(items []CartItem) int64 {
	var sum int64
	for _, item := range items {
		sum += item.Price
	}

	return sum
}

// Discount 10% от подытога с округлением половины вверх (как Math.round).
// Считаем в целых числах, чтобы x.5 не зависел от float
func Discount(subtotal int64, apply bool) int64 {
	if !apply || subtotal <= 0 {
		return 0
	}

	return (subtotal*DiscountPercent + 50) / 100
}

func summarize(items []CartItem, apply bool) Summary {
	copied := make([]CartItem, len(items))
	copy(copied, items)

	subtotal := Subtotal(items)
	discount := Discount(subtotal, apply)

	return Summary{
		Items:         copied,
		Count:         len(items),
		Subtotal:      subtotal,
		Discount:      discount,
		Total:         subtotal - discount,
		ApplyDiscount: apply,
	}
}
