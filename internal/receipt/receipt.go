package receipt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/refundtrack/internal/product"
)

var ErrNoItems = errors.New("no items found on receipt")

// Extraction is the best-effort result of reading an order receipt. Any field may be missing.
type Extraction struct {
	OrderDate  *time.Time
	OrderTotal decimal.NullDecimal
	Items      []Item
}

type Item struct {
	Name  string
	Price decimal.NullDecimal
}

// Extractor reads an order receipt image.
type Extractor interface {
	Extract(ctx context.Context, image io.Reader, contentType string) (*Extraction, error)
}

// Renamer maps a raw listing title to the name the user prefers.
type Renamer interface {
	Rename(ctx context.Context, rawItem string) (string, error)
}

// ToCreateParams turns each named item into the params of a default product.
// A missing or zero price leaves paid absent. Negative prices such as
// discount lines are kept.
func (e *Extraction) ToCreateParams() []product.CreateParams {
	var out []product.CreateParams

	for _, it := range e.Items {
		name := strings.TrimSpace(it.Name)
		if name == "" {
			continue
		}

		p := product.CreateParams{
			Item:      name,
			OrderDate: e.OrderDate,
		}

		if it.Price.Valid && !it.Price.Decimal.IsZero() {
			p.Paid = it.Price
		}

		out = append(out, p)
	}

	return out
}

// Creator persists the products built from a receipt.
type Creator interface {
	CreateBatch(ctx context.Context, params []product.CreateParams) ([]*product.Product, error)
}

type Service struct {
	extractor Extractor
	renamer   Renamer
	creator   Creator
}

func NewService(extractor Extractor, renamer Renamer, creator Creator) *Service {
	return &Service{extractor: extractor, renamer: renamer, creator: creator}
}

// Import extracts the receipt and creates one product per item found on it.
func (s *Service) Import(ctx context.Context, image io.Reader, contentType string) ([]*product.Product, error) {
	ex, err := s.extractor.Extract(ctx, image, contentType)
	if err != nil {
		return nil, fmt.Errorf("extract receipt: %w", err)
	}

	params := ex.ToCreateParams()
	if len(params) == 0 {
		return nil, ErrNoItems
	}

	if s.renamer != nil {
		for i := range params {
			name, err := s.renamer.Rename(ctx, params[i].Item)
			if err != nil {
				return nil, fmt.Errorf("rename item: %w", err)
			}

			params[i].Item = name
		}
	}

	return s.creator.CreateBatch(ctx, params)
}
