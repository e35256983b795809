package product

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stage names one of the lifecycle flags.
type Stage string

const (
	StageOrderPlaced    Stage = "order_placed"
	StageOrderDelivered Stage = "order_delivered"
	StageReviewAdded    Stage = "review_added"
	StageReviewLive     Stage = "review_live"
	StageReviewSSSent   Stage = "review_ss_sent"
)

// Stages lists the lifecycle flags in their nominal order.
var Stages = []Stage{
	StageOrderPlaced,
	StageOrderDelivered,
	StageReviewAdded,
	StageReviewLive,
	StageReviewSSSent,
}

func (s Stage) Label() string {
	switch s {
	case StageOrderPlaced:
		return "Order Placed"
	case StageOrderDelivered:
		return "Order Delivered"
	case StageReviewAdded:
		return "Review Added"
	case StageReviewLive:
		return "Review Live"
	case StageReviewSSSent:
		return "Review Screenshot Sent"
	}

	return string(s)
}

// Done reports the flag for stage s on p.
func (p *Product) Done(s Stage) bool {
	switch s {
	case StageOrderPlaced:
		return p.OrderPlaced
	case StageOrderDelivered:
		return p.OrderDelivered
	case StageReviewAdded:
		return p.ReviewAdded
	case StageReviewLive:
		return p.ReviewLive
	case StageReviewSSSent:
		return p.ReviewSSSent
	}

	return false
}

// Edit is a single typed change to a product.
type Edit interface {
	apply(p *Product)
}

type SetItem struct{ Item string }

type SetURL struct{ URL string }

// SetOrderDate sets the order date; nil clears it.
type SetOrderDate struct{ Date *time.Time }

type SetStage struct {
	Stage Stage
	Done  bool
}

// SetPaid sets the amount paid; an invalid NullDecimal clears it.
type SetPaid struct{ Amount decimal.NullDecimal }

// SetReceived sets the refunded amount; an invalid NullDecimal clears it.
type SetReceived struct{ Amount decimal.NullDecimal }

// MarkVoid flags the product as abandoned. There is no edit that clears it.
type MarkVoid struct{}

func (e SetItem) apply(p *Product)      { p.Item = e.Item }
func (e SetURL) apply(p *Product)       { p.URL = e.URL }
func (e SetOrderDate) apply(p *Product) { p.OrderDate = DateOf(e.Date) }
func (e SetPaid) apply(p *Product)      { p.SetPaid(e.Amount) }
func (e SetReceived) apply(p *Product)  { p.SetReceived(e.Amount) }
func (MarkVoid) apply(p *Product)       { p.IsVoid = true }

func (e SetStage) apply(p *Product) {
	switch e.Stage {
	case StageOrderPlaced:
		p.OrderPlaced = e.Done
	case StageOrderDelivered:
		p.OrderDelivered = e.Done
	case StageReviewAdded:
		p.ReviewAdded = e.Done
	case StageReviewLive:
		p.ReviewLive = e.Done
	case StageReviewSSSent:
		p.ReviewSSSent = e.Done
	}
}

// Apply runs edits against p in order.
func Apply(p *Product, edits ...Edit) {
	for _, e := range edits {
		e.apply(p)
	}
}
