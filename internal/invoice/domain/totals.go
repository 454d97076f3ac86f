package domain

// ComputeTotals derives subtotal, tax amount and grand total from the line
// items and tax specification. Negative quantities or prices count as zero so
// partially filled rows never produce an error during live editing.
func ComputeTotals(items []Item, mode TaxMode, rate float64) (subtotal, taxAmount, grandTotal float64) {
	for _, item := range items {
		subtotal += lineTotal(item)
	}

	switch mode {
	case TaxModeFixed:
		taxAmount = rate
	default:
		taxAmount = subtotal * rate / 100
	}

	grandTotal = subtotal + taxAmount
	return subtotal, taxAmount, grandTotal
}

func lineTotal(item Item) float64 {
	qty := item.Quantity
	if qty < 0 {
		qty = 0
	}
	price := item.Price
	if price < 0 {
		price = 0
	}
	return float64(qty) * price
}
