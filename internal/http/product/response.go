package product

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/refundtrack/internal/product"
)

type productResponse struct {
	ID             uuid.UUID           `json:"id"`
	Item           string              `json:"item"`
	URL            string              `json:"url,omitempty"`
	OrderDate      *string             `json:"order_date"`
	OrderPlaced    bool                `json:"order_placed"`
	OrderDelivered bool                `json:"order_delivered"`
	ReviewAdded    bool                `json:"review_added"`
	ReviewLive     bool                `json:"review_live"`
	ReviewSSSent   bool                `json:"review_ss_sent"`
	IsVoid         bool                `json:"is_void"`
	Paid           decimal.NullDecimal `json:"paid"`
	Received       decimal.NullDecimal `json:"received"`
	Delta          decimal.NullDecimal `json:"delta"`
	Status         product.Status      `json:"status"`
	StatusLabel    string              `json:"status_label"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      *time.Time          `json:"updated_at,omitempty"`
}

type summaryResponse struct {
	TotalProducts   int             `json:"total_products"`
	CompletedOrders int             `json:"completed_orders"`
	TotalPaid       decimal.Decimal `json:"total_paid"`
	TotalReceived   decimal.Decimal `json:"total_received"`
	NetDelta        decimal.Decimal `json:"net_delta"`
	RemainingRefund decimal.Decimal `json:"remaining_refund"`
}

type dashboardResponse struct {
	Summary  summaryResponse   `json:"summary"`
	Products []productResponse `json:"products"`
}

func toResponse(p *product.Product) productResponse {
	status := product.Classify(p)

	resp := productResponse{
		ID:             p.ID,
		Item:           p.Item,
		URL:            p.URL,
		OrderPlaced:    p.OrderPlaced,
		OrderDelivered: p.OrderDelivered,
		ReviewAdded:    p.ReviewAdded,
		ReviewLive:     p.ReviewLive,
		ReviewSSSent:   p.ReviewSSSent,
		IsVoid:         p.IsVoid,
		Paid:           p.Paid(),
		Received:       p.Received(),
		Delta:          p.Delta(),
		Status:         status,
		StatusLabel:    status.Label(),
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}

	if p.OrderDate != nil {
		resp.OrderDate = new(p.OrderDate.Format(time.DateOnly))
	}

	return resp
}

func toResponseList(products []*product.Product) []productResponse {
	resp := make([]productResponse, len(products))
	for i, p := range products {
		resp[i] = toResponse(p)
	}

	return resp
}

func toDashboardResponse(v *product.View) dashboardResponse {
	return dashboardResponse{
		Summary: summaryResponse{
			TotalProducts:   v.Summary.TotalProducts,
			CompletedOrders: v.Summary.CompletedOrders,
			TotalPaid:       v.Summary.TotalPaid,
			TotalReceived:   v.Summary.TotalReceived,
			NetDelta:        v.Summary.NetDelta,
			RemainingRefund: v.Summary.RemainingRefund,
		},
		Products: toResponseList(v.Products),
	}
}
