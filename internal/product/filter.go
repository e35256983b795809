package product

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidStatusFilter = errors.New("invalid status filter")
	ErrInvalidDeltaFilter  = errors.New("invalid delta filter")
)

// StatusFilter selects products by lifecycle category. The empty value selects all.
//
// The categories are standalone predicates, not the Classify cascade: a product
// may match several of them, or none, whatever its classified status.
type StatusFilter string

const (
	StatusFilterAll            StatusFilter = ""
	StatusFilterNew            StatusFilter = "new"
	StatusFilterReviewNotAdded StatusFilter = "review-not-added"
	StatusFilterReviewPending  StatusFilter = "review-pending"
	StatusFilterPendingRefund  StatusFilter = "pending-refund"
	StatusFilterComplete       StatusFilter = "complete"
	StatusFilterVoid           StatusFilter = "void"
)

// StatusFilters lists the named categories in display order.
var StatusFilters = []StatusFilter{
	StatusFilterAll,
	StatusFilterComplete,
	StatusFilterPendingRefund,
	StatusFilterReviewPending,
	StatusFilterReviewNotAdded,
	StatusFilterNew,
	StatusFilterVoid,
}

// DeltaFilter selects products by the sign of their delta. The empty value selects all.
type DeltaFilter string

const (
	DeltaFilterAll      DeltaFilter = ""
	DeltaFilterPositive DeltaFilter = "positive"
	DeltaFilterNegative DeltaFilter = "negative"
	DeltaFilterZero     DeltaFilter = "zero"
)

var DeltaFilters = []DeltaFilter{
	DeltaFilterAll,
	DeltaFilterPositive,
	DeltaFilterNegative,
	DeltaFilterZero,
}

func ParseStatusFilter(s string) (StatusFilter, error) {
	for _, f := range StatusFilters {
		if string(f) == s {
			return f, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrInvalidStatusFilter, s)
}

func ParseDeltaFilter(s string) (DeltaFilter, error) {
	for _, f := range DeltaFilters {
		if string(f) == s {
			return f, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrInvalidDeltaFilter, s)
}

// Criteria combines the three filter axes. All of them must hold.
type Criteria struct {
	Search string
	Status StatusFilter
	Delta  DeltaFilter
}

// IsZero reports whether the criteria constrain nothing.
func (c Criteria) IsZero() bool {
	return c.Search == "" && c.Status == StatusFilterAll && c.Delta == DeltaFilterAll
}

// Filter returns the products matching c, in their original relative order.
// Blank products never match.
func Filter(products []*Product, c Criteria) []*Product {
	term := strings.ToLower(c.Search)
	out := make([]*Product, 0, len(products))

	for _, p := range products {
		if p.IsBlank() {
			continue
		}

		if !strings.Contains(strings.ToLower(p.Item), term) {
			continue
		}

		if !c.Status.Match(p) || !c.Delta.Match(p) {
			continue
		}

		out = append(out, p)
	}

	return out
}

// Match reports whether p belongs to the category. Unknown categories match everything.
func (f StatusFilter) Match(p *Product) bool {
	switch f {
	case StatusFilterVoid:
		return p.IsVoid
	case StatusFilterNew:
		return !p.IsVoid && p.OrderPlaced && !p.OrderDelivered
	case StatusFilterReviewNotAdded:
		return !p.IsVoid && p.OrderDelivered && !p.ReviewAdded
	case StatusFilterReviewPending:
		return !p.IsVoid && p.ReviewAdded && !p.ReviewLive
	case StatusFilterPendingRefund:
		return !p.IsVoid && p.ReviewSSSent && !p.received.Valid
	case StatusFilterComplete:
		return !p.IsVoid && p.stagesDone() && p.paid.Valid && p.received.Valid
	}

	return true
}

// Match reports whether the sign of p's delta fits the category. Once a sign
// is requested, a product without a delta never matches.
func (f DeltaFilter) Match(p *Product) bool {
	if f == DeltaFilterAll {
		return true
	}

	if !p.delta.Valid {
		return false
	}

	sign := p.delta.Decimal.Sign()

	switch f {
	case DeltaFilterPositive:
		return sign > 0
	case DeltaFilterNegative:
		return sign < 0
	case DeltaFilterZero:
		return sign == 0
	}

	return true
}
