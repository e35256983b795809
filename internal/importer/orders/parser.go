package orders

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	enc "github.com/MrJamesThe3rd/refundtrack/internal/encoding"
	"github.com/MrJamesThe3rd/refundtrack/internal/importer/sheet"
	"github.com/MrJamesThe3rd/refundtrack/internal/product"
)

// Parser reads Amazon order history exports and produces one product per
// ordered line item. Refund amounts are never present in these files.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]product.CreateParams, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	data, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = sheet.DetectComma(data)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	profile, cols, headerIdx := detectProfile(rows)
	if profile == nil {
		return nil, fmt.Errorf("no matching order history format found")
	}

	return parseRows(profile, cols, rows[headerIdx+1:]), nil
}

// colIndex maps column names to their index in the row.
type colIndex map[string]int

// detectProfile scans rows for a header that matches a known profile.
// Returns the matched profile, column index map, and header row index.
func detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.TrimSpace(cell)
			if name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

// matchesProfile checks if all required columns of a profile are present.
func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

func parseRows(p *Profile, cols colIndex, rows [][]string) []product.CreateParams {
	var out []product.CreateParams

	for _, row := range rows {
		item := cellValue(row, cols, p.ItemCol)
		if item == "" {
			continue
		}

		params := product.CreateParams{
			Item:      item,
			OrderDate: parseDate(p, cellValue(row, cols, p.DateCol)),
			Paid:      positive(parseAmount(p.Decimal, cellValue(row, cols, p.TotalCol))),
		}

		if asin := cellValue(row, cols, p.ASINCol); asin != "" && p.URLBase != "" {
			params.URL = p.URLBase + asin
		}

		status := cellValue(row, cols, p.StatusCol)
		shipment := cellValue(row, cols, p.ShipmentStatusCol)

		if oneOf(status, p.DeliveredValues) || oneOf(shipment, p.DeliveredValues) {
			params.Edits = append(params.Edits, product.SetStage{Stage: product.StageOrderDelivered, Done: true})
		}

		if oneOf(status, p.CancelledValues) {
			params.Edits = append(params.Edits, product.MarkVoid{})
		}

		out = append(out, params)
	}

	return out
}

// parseDate tries the profile's layouts first, then the general date formats.
func parseDate(p *Profile, s string) *time.Time {
	if s == "" {
		return nil
	}

	for _, layout := range p.DateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}

	return product.ParseDate(s)
}

// positive drops zero and negative totals. Free and fully discounted items
// have nothing to refund.
func positive(d decimal.NullDecimal) decimal.NullDecimal {
	if !d.Valid || !d.Decimal.IsPositive() {
		return decimal.NullDecimal{}
	}

	return d
}

func oneOf(s string, values []string) bool {
	for _, v := range values {
		if strings.EqualFold(s, v) {
			return true
		}
	}

	return false
}

// cellValue safely gets a trimmed cell value for the named column.
func cellValue(row []string, cols colIndex, name string) string {
	if name == "" {
		return ""
	}

	idx, ok := cols[name]
	if !ok || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
