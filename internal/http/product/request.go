package product

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/refundtrack/internal/product"
)

// dateField is an order date that tells apart a missing field, an explicit
// null and a value.
type dateField struct {
	Set   bool
	Value *time.Time
}

func (d *dateField) UnmarshalJSON(b []byte) error {
	d.Set = true

	var s *string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("order_date: %w", err)
	}

	if s == nil || strings.TrimSpace(*s) == "" {
		d.Value = nil
		return nil
	}

	d.Value = product.ParseDate(*s)
	if d.Value == nil {
		return fmt.Errorf("order_date: unrecognised date %q", *s)
	}

	return nil
}

// amountField is a money amount that tells apart a missing field from an explicit null.
type amountField struct {
	Set   bool
	Value decimal.NullDecimal
}

func (a *amountField) UnmarshalJSON(b []byte) error {
	a.Set = true

	return a.Value.UnmarshalJSON(b)
}

type createProductRequest struct {
	Item      string      `json:"item"`
	URL       string      `json:"url"`
	OrderDate dateField   `json:"order_date"`
	Paid      amountField `json:"paid"`
	Received  amountField `json:"received"`
}

func (req createProductRequest) params() product.CreateParams {
	return product.CreateParams{
		Item:      strings.TrimSpace(req.Item),
		URL:       strings.TrimSpace(req.URL),
		OrderDate: req.OrderDate.Value,
		Paid:      req.Paid.Value,
		Received:  req.Received.Value,
	}
}

// updateProductRequest is a partial edit. Absent fields are left alone; a
// null amount or date clears it. Delta is never accepted from clients.
type updateProductRequest struct {
	Item           *string     `json:"item,omitempty"`
	URL            *string     `json:"url,omitempty"`
	OrderDate      dateField   `json:"order_date"`
	OrderPlaced    *bool       `json:"order_placed,omitempty"`
	OrderDelivered *bool       `json:"order_delivered,omitempty"`
	ReviewAdded    *bool       `json:"review_added,omitempty"`
	ReviewLive     *bool       `json:"review_live,omitempty"`
	ReviewSSSent   *bool       `json:"review_ss_sent,omitempty"`
	Paid           amountField `json:"paid"`
	Received       amountField `json:"received"`
}

func (req updateProductRequest) edits() []product.Edit {
	var edits []product.Edit

	if req.Item != nil {
		edits = append(edits, product.SetItem{Item: strings.TrimSpace(*req.Item)})
	}

	if req.URL != nil {
		edits = append(edits, product.SetURL{URL: strings.TrimSpace(*req.URL)})
	}

	if req.OrderDate.Set {
		edits = append(edits, product.SetOrderDate{Date: req.OrderDate.Value})
	}

	stages := []struct {
		stage product.Stage
		done  *bool
	}{
		{product.StageOrderPlaced, req.OrderPlaced},
		{product.StageOrderDelivered, req.OrderDelivered},
		{product.StageReviewAdded, req.ReviewAdded},
		{product.StageReviewLive, req.ReviewLive},
		{product.StageReviewSSSent, req.ReviewSSSent},
	}

	for _, s := range stages {
		if s.done != nil {
			edits = append(edits, product.SetStage{Stage: s.stage, Done: *s.done})
		}
	}

	if req.Paid.Set {
		edits = append(edits, product.SetPaid{Amount: req.Paid.Value})
	}

	if req.Received.Set {
		edits = append(edits, product.SetReceived{Amount: req.Received.Value})
	}

	return edits
}
