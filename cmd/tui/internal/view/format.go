package view

import (
	"context"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/refundtrack/internal/product"
)

const dbTimeout = 5 * time.Second

var (
	positiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	negativeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	faintStyle    = lipgloss.NewStyle().Faint(true)
)

// statusColors follows the dashboard badges: green when done, red for void,
// yellow while waiting on someone else.
var statusColors = map[product.Status]lipgloss.Color{
	product.StatusComplete:       "42",
	product.StatusVoid:           "203",
	product.StatusPendingRefund:  "214",
	product.StatusReviewPending:  "220",
	product.StatusReviewNotAdded: "117",
	product.StatusNew:            "75",
	product.StatusSendScreenshot: "177",
	product.StatusNotStarted:     "245",
}

// FormatAmount renders an amount with two decimals, or "-" when absent.
func FormatAmount(d decimal.NullDecimal) string {
	if !d.Valid {
		return "-"
	}

	return d.Decimal.StringFixed(2)
}

// FormatDelta renders a delta with an explicit sign.
func FormatDelta(d decimal.NullDecimal) string {
	if !d.Valid {
		return "-"
	}

	if d.Decimal.IsPositive() {
		return "+" + d.Decimal.StringFixed(2)
	}

	return d.Decimal.StringFixed(2)
}

// FormatDate formats an order date as YYYY-MM-DD, or an empty string when unknown.
func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}

	return t.Format(time.DateOnly)
}

func deltaStyle(d decimal.Decimal) lipgloss.Style {
	switch d.Sign() {
	case 1:
		return positiveStyle
	case -1:
		return negativeStyle
	}

	return lipgloss.NewStyle()
}

func statusBadge(s product.Status) string {
	return lipgloss.NewStyle().Foreground(statusColors[s]).Render(s.Label())
}

// DbCtx returns a context with a standard timeout for database operations.
func DbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), dbTimeout)
}
