package product

import (
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Sort returns a copy of products ordered for display: dated products first,
// most recent date first, then by item name in locale order. The sort is
// stable, so products equal on both keys keep their relative order.
func Sort(products []*Product) []*Product {
	// A Collator keeps internal buffers, so each call gets its own.
	coll := collate.New(language.English)

	out := slices.Clone(products)
	slices.SortStableFunc(out, func(a, b *Product) int {
		if c := compareDates(a, b); c != 0 {
			return c
		}

		return coll.CompareString(a.Item, b.Item)
	})

	return out
}

// compareDates orders dated before undated and later dates before earlier ones.
func compareDates(a, b *Product) int {
	switch {
	case a.OrderDate == nil && b.OrderDate == nil:
		return 0
	case a.OrderDate == nil:
		return 1
	case b.OrderDate == nil:
		return -1
	}

	return b.OrderDate.Compare(*a.OrderDate)
}
