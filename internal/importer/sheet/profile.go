package sheet

import "github.com/MrJamesThe3rd/refundtrack/internal/product"

// Profile describes the column layout of one family of tracking spreadsheets.
// Header names are compared case-insensitively.
type Profile struct {
	Name        string
	ItemCol     string
	DateCol     string
	PaidCol     string
	ReceivedCol string

	// Optional columns. Missing ones leave the product defaults in place.
	URLCol    string
	StageCols map[product.Stage]string
	VoidCol   string
}

// requiredCols returns the column names that must be present for this profile to match.
func (p Profile) requiredCols() []string {
	return []string{p.ItemCol, p.DateCol, p.PaidCol, p.ReceivedCol}
}

// profiles is tried in order during detection. The first entry is the layout
// written by the CSV export, so exported files always import back.
var profiles = []Profile{
	{
		Name:        "tracker",
		ItemCol:     "Item",
		DateCol:     "Order Date",
		PaidCol:     "Paid",
		ReceivedCol: "Received",
		URLCol:      "URL",
		StageCols: map[product.Stage]string{
			product.StageOrderPlaced:    "Order Placed",
			product.StageOrderDelivered: "Order Delivered",
			product.StageReviewAdded:    "Review Added",
			product.StageReviewLive:     "Review Live",
			product.StageReviewSSSent:   "Review SS Sent",
		},
		VoidCol: "Void",
	},
	{
		Name:        "sheet",
		ItemCol:     "Product",
		DateCol:     "Date",
		PaidCol:     "Amount Paid",
		ReceivedCol: "Refund",
		URLCol:      "Link",
		StageCols: map[product.Stage]string{
			product.StageOrderPlaced:    "Ordered",
			product.StageOrderDelivered: "Delivered",
			product.StageReviewAdded:    "Reviewed",
			product.StageReviewLive:     "Live",
			product.StageReviewSSSent:   "SS Sent",
		},
		VoidCol: "Cancelled",
	},
}
