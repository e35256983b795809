package product

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound  = errors.New("product not found")
	ErrEmptyItem = errors.New("item cannot be empty")
)

// Product is one tracked purchase moving through the buy, review, refund workflow.
//
// The money fields are unexported so that delta can only change together with
// paid or received.
type Product struct {
	ID        uuid.UUID
	Item      string
	URL       string
	OrderDate *time.Time

	OrderPlaced    bool
	OrderDelivered bool
	ReviewAdded    bool
	ReviewLive     bool
	ReviewSSSent   bool

	IsVoid bool

	paid     decimal.NullDecimal
	received decimal.NullDecimal
	delta    decimal.NullDecimal

	CreatedAt time.Time
	UpdatedAt *time.Time
}

// CreateParams describes a product about to be tracked, whether typed in by
// hand, extracted from a receipt or read from a spreadsheet.
type CreateParams struct {
	Item      string
	URL       string
	OrderDate *time.Time
	Paid      decimal.NullDecimal
	Received  decimal.NullDecimal
	// Edits are applied on top of the defaults, e.g. stage flags read from a spreadsheet row.
	Edits []Edit
}

// New returns the default state of a freshly tracked purchase: the order is
// placed, every later stage is pending. params.Edits run last.
func New(params CreateParams) *Product {
	p := &Product{
		Item:        params.Item,
		URL:         params.URL,
		OrderDate:   DateOf(params.OrderDate),
		OrderPlaced: true,
	}
	p.SetAmounts(params.Paid, params.Received)

	Apply(p, params.Edits...)

	return p
}

func (p *Product) Paid() decimal.NullDecimal     { return p.paid }
func (p *Product) Received() decimal.NullDecimal { return p.received }
func (p *Product) Delta() decimal.NullDecimal    { return p.delta }

func (p *Product) SetPaid(paid decimal.NullDecimal) {
	p.SetAmounts(paid, p.received)
}

func (p *Product) SetReceived(received decimal.NullDecimal) {
	p.SetAmounts(p.paid, received)
}

// MoneyPlaces is the number of decimal places amounts are kept at. Storage
// columns use the same scale.
const MoneyPlaces = 2

// SetAmounts replaces both amounts, rounded to cents, and recomputes delta
// from the rounded values.
func (p *Product) SetAmounts(paid, received decimal.NullDecimal) {
	p.paid = RoundAmount(paid)
	p.received = RoundAmount(received)
	p.delta = Delta(p.paid, p.received)
}

// RoundAmount rounds a present amount to MoneyPlaces, half away from zero.
func RoundAmount(d decimal.NullDecimal) decimal.NullDecimal {
	if !d.Valid {
		return d
	}

	return decimal.NewNullDecimal(d.Decimal.Round(MoneyPlaces))
}

// IsBlank reports whether the product has no usable item name. Blank products
// stay in storage but are hidden from every dashboard view.
func (p *Product) IsBlank() bool {
	return strings.TrimSpace(p.Item) == ""
}

// stagesDone reports whether every lifecycle flag is set.
func (p *Product) stagesDone() bool {
	return p.OrderPlaced && p.OrderDelivered && p.ReviewAdded && p.ReviewLive && p.ReviewSSSent
}

// IsComplete is the full-completion predicate: every stage done and both
// amounts known. It ignores IsVoid.
func (p *Product) IsComplete() bool {
	return p.stagesDone() && p.paid.Valid && p.received.Valid
}

// DateOf truncates t to a calendar date in UTC. Nil stays nil.
func DateOf(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}

	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)

	return &d
}
