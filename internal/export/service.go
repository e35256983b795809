package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/refundtrack/internal/product"
)

// Header is the column layout of exported files. The sheet importer reads it back.
var Header = []string{
	"Item", "URL", "Order Date",
	"Order Placed", "Order Delivered", "Review Added", "Review Live", "Review SS Sent",
	"Paid", "Received", "Delta", "Status", "Void",
}

type Dashboard interface {
	Dashboard(ctx context.Context, c product.Criteria) (*product.View, error)
}

// Service writes dashboard views out as CSV or as a plain-text report.
type Service struct {
	products Dashboard
}

func NewService(products Dashboard) *Service {
	return &Service{products: products}
}

// Export writes the rows visible under c, in display order, as CSV.
func (s *Service) Export(ctx context.Context, c product.Criteria, w io.Writer) error {
	view, err := s.products.Dashboard(ctx, c)
	if err != nil {
		return fmt.Errorf("building dashboard: %w", err)
	}

	return WriteCSV(w, view.Products)
}

func WriteCSV(w io.Writer, products []*product.Product) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, p := range products {
		record := []string{p.Item, p.URL, formatDate(p.OrderDate)}

		for _, stage := range product.Stages {
			record = append(record, strconv.FormatBool(p.Done(stage)))
		}

		record = append(record,
			formatAmount(p.Paid()),
			formatAmount(p.Received()),
			formatAmount(p.Delta()),
			product.Classify(p).Label(),
			strconv.FormatBool(p.IsVoid),
		)

		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing product %s: %w", p.ID, err)
		}
	}

	cw.Flush()

	return cw.Error()
}

// WriteReport writes the text report for the rows visible under c.
func (s *Service) WriteReport(ctx context.Context, c product.Criteria, w io.Writer) error {
	view, err := s.products.Dashboard(ctx, c)
	if err != nil {
		return fmt.Errorf("building dashboard: %w", err)
	}

	_, err = io.WriteString(w, s.Report(view))

	return err
}

// Report renders the summary cards and the rows as text, one product per line.
func (s *Service) Report(view *product.View) string {
	var sb strings.Builder

	sum := view.Summary
	fmt.Fprintf(&sb, "Products: %d | Completed: %d\n", sum.TotalProducts, sum.CompletedOrders)
	fmt.Fprintf(&sb, "Paid: %s | Received: %s | Remaining: %s | Net: %s\n\n",
		sum.TotalPaid.StringFixed(2), sum.TotalReceived.StringFixed(2),
		sum.RemainingRefund.StringFixed(2), signed(sum.NetDelta))

	for _, p := range view.Products {
		date := formatDate(p.OrderDate)
		if date == "" {
			date = "----------"
		}

		delta := "-"
		if d := p.Delta(); d.Valid {
			delta = signed(d.Decimal)
		}

		fmt.Fprintf(&sb, "* %s | %s | %s | %s\n", date, p.Item, delta, product.Classify(p).Label())
	}

	return sb.String()
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}

	return t.Format(time.DateOnly)
}

func formatAmount(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}

	return d.Decimal.StringFixed(2)
}

func signed(d decimal.Decimal) string {
	if d.IsPositive() {
		return "+" + d.StringFixed(2)
	}

	return d.StringFixed(2)
}
