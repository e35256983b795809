package product

import "github.com/shopspring/decimal"

// Summary is the dashboard headline over the whole tracked set.
type Summary struct {
	TotalProducts   int
	CompletedOrders int
	TotalPaid       decimal.Decimal
	TotalReceived   decimal.Decimal
	NetDelta        decimal.Decimal
	// RemainingRefund is the money still at risk of never being refunded.
	RemainingRefund decimal.Decimal
}

// Summarize aggregates every non-blank product. It must be given the full
// collection, never a filtered view.
func Summarize(products []*Product) Summary {
	visible := make([]*Product, 0, len(products))

	var completed int

	for _, p := range products {
		if p.IsBlank() {
			continue
		}

		visible = append(visible, p)

		if p.IsComplete() {
			completed++
		}
	}

	totals := Total(visible)

	return Summary{
		TotalProducts:   len(visible),
		CompletedOrders: completed,
		TotalPaid:       totals.Paid,
		TotalReceived:   totals.Received,
		NetDelta:        totals.Delta,
		RemainingRefund: totals.Exposure,
	}
}

// View is a dashboard snapshot: the headline over every product plus the
// filtered, sorted rows to display.
type View struct {
	Summary  Summary
	Products []*Product
}

// BuildView derives a dashboard view from one snapshot of the collection.
func BuildView(all []*Product, c Criteria) View {
	return View{
		Summary:  Summarize(all),
		Products: Sort(Filter(all, c)),
	}
}
