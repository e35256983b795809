package ocr

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/refundtrack/internal/product"
	"github.com/MrJamesThe3rd/refundtrack/internal/receipt"
)

var ErrNotConfigured = errors.New("receipt extraction is not configured")

// Client talks to an external receipt OCR service. It sends the image as the
// request body and expects the extracted order back as JSON.
type Client struct {
	url    string
	token  string
	client *http.Client
}

func New(url, token string, timeout time.Duration) *Client {
	return &Client{
		url:    url,
		token:  token,
		client: &http.Client{Timeout: timeout},
	}
}

type response struct {
	OrderDate  *string     `json:"order_date"`
	OrderTotal amountField `json:"order_total"`
	Items      []struct {
		Name  string      `json:"name"`
		Price amountField `json:"price"`
	} `json:"items"`
}

// amountField accepts a JSON number, a string such as "$12.99", or null.
type amountField struct {
	decimal.NullDecimal
}

func (a *amountField) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		a.NullDecimal = product.ParseAmount(s)
		return nil
	}

	// Numbers and null; anything else reads as absent.
	a.NullDecimal = product.ParseAmount(string(b))

	return nil
}

func (c *Client) Extract(ctx context.Context, image io.Reader, contentType string) (*receipt.Extraction, error) {
	if c.url == "" {
		return nil, ErrNotConfigured
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, image)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	req.Header.Set("Accept", "application/json")

	if c.token != "" {
		req.Header.Set("Authorization", "Token "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling ocr service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("ocr service returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var r response
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return nil, fmt.Errorf("decoding ocr response: %w", err)
	}

	ex := &receipt.Extraction{
		OrderTotal: r.OrderTotal.NullDecimal,
		Items:      make([]receipt.Item, 0, len(r.Items)),
	}

	if r.OrderDate != nil {
		ex.OrderDate = product.ParseDate(*r.OrderDate)
	}

	for _, it := range r.Items {
		ex.Items = append(ex.Items, receipt.Item{Name: it.Name, Price: it.Price.NullDecimal})
	}

	return ex, nil
}
