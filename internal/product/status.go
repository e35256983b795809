package product

// Status is the single lifecycle state shown for a product.
type Status string

const (
	StatusVoid           Status = "void"
	StatusComplete       Status = "complete"
	StatusPendingRefund  Status = "pending-refund"
	StatusReviewPending  Status = "review-pending"
	StatusReviewNotAdded Status = "review-not-added"
	StatusNew            Status = "new"
	StatusSendScreenshot Status = "send-screenshot"
	StatusNotStarted     Status = "not-started"
)

// Statuses lists every status in classification order.
var Statuses = []Status{
	StatusVoid,
	StatusComplete,
	StatusPendingRefund,
	StatusReviewPending,
	StatusReviewNotAdded,
	StatusNew,
	StatusSendScreenshot,
	StatusNotStarted,
}

// Label returns the display name of the status.
func (s Status) Label() string {
	switch s {
	case StatusVoid:
		return "Void"
	case StatusComplete:
		return "Complete"
	case StatusPendingRefund:
		return "Pending Refund"
	case StatusReviewPending:
		return "Review Pending"
	case StatusReviewNotAdded:
		return "Review Not Added"
	case StatusNew:
		return "New"
	case StatusSendScreenshot:
		return "Send Screenshot"
	case StatusNotStarted:
		return "Not Started"
	}

	return "Unknown"
}

type statusRule struct {
	status Status
	match  func(p *Product) bool
}

// statusRules is evaluated top to bottom and the first match wins. Several
// rules can hold at once, so the order decides the outcome and must not change.
var statusRules = []statusRule{
	{StatusVoid, func(p *Product) bool {
		return p.IsVoid
	}},
	{StatusComplete, func(p *Product) bool {
		return p.IsComplete()
	}},
	{StatusPendingRefund, func(p *Product) bool {
		return p.ReviewSSSent && !p.received.Valid
	}},
	{StatusReviewPending, func(p *Product) bool {
		return p.ReviewAdded && !p.ReviewLive
	}},
	{StatusReviewNotAdded, func(p *Product) bool {
		return p.OrderDelivered && !p.ReviewAdded
	}},
	{StatusNew, func(p *Product) bool {
		return p.OrderPlaced && !p.OrderDelivered
	}},
	{StatusSendScreenshot, func(p *Product) bool {
		return p.ReviewLive && !p.ReviewSSSent
	}},
}

// Classify returns the lifecycle status of p.
func Classify(p *Product) Status {
	for _, r := range statusRules {
		if r.match(p) {
			return r.status
		}
	}

	return StatusNotStarted
}
