package product

import "github.com/shopspring/decimal"

// Delta derives the profit of a purchase from what was paid and what was
// refunded. A missing side counts as nothing; if both are missing so is the delta.
func Delta(paid, received decimal.NullDecimal) decimal.NullDecimal {
	switch {
	case paid.Valid && received.Valid:
		return decimal.NewNullDecimal(received.Decimal.Sub(paid.Decimal))
	case paid.Valid:
		return decimal.NewNullDecimal(paid.Decimal.Neg())
	case received.Valid:
		return decimal.NewNullDecimal(received.Decimal)
	}

	return decimal.NullDecimal{}
}

// Totals holds money sums across a collection.
type Totals struct {
	Paid     decimal.Decimal
	Received decimal.Decimal
	Delta    decimal.Decimal
	// Exposure is money paid for products that are not yet complete.
	Exposure decimal.Decimal
}

// Total sums paid, received and delta over products. Absent amounts add zero.
func Total(products []*Product) Totals {
	var t Totals

	for _, p := range products {
		t.Paid = t.Paid.Add(valueOrZero(p.paid))
		t.Received = t.Received.Add(valueOrZero(p.received))
		t.Delta = t.Delta.Add(valueOrZero(p.delta))

		if !p.IsComplete() {
			t.Exposure = t.Exposure.Add(valueOrZero(p.paid))
		}
	}

	return t
}

func valueOrZero(d decimal.NullDecimal) decimal.Decimal {
	if !d.Valid {
		return decimal.Zero
	}

	return d.Decimal
}
