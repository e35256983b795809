package product

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayouts are the order date spellings accepted from receipts,
// spreadsheets and API clients.
var DateLayouts = []string{
	time.DateOnly,
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"01/02/2006",
	"1/2/2006",
	time.RFC3339,
}

// ParseDate reads an order date in any of DateLayouts. Empty or unrecognised
// input yields nil.
func ParseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	for _, layout := range DateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return DateOf(&t)
		}
	}

	return nil
}

// ParseAmount reads a money amount such as "12.99", "$1,299.00" or "-4". Blank,
// placeholder or unparseable input yields an absent amount.
func ParseAmount(s string) decimal.NullDecimal {
	s = strings.TrimSpace(s)

	neg := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		neg = true
		s = s[1 : len(s)-1]
	}

	s = strings.NewReplacer("$", "", "€", "", "£", "", ",", "", " ", "").Replace(s)

	if s == "" || s == "-" {
		return decimal.NullDecimal{}
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}
	}

	if neg {
		d = d.Neg()
	}

	return decimal.NewNullDecimal(d)
}

// ParseCommaAmount reads an amount written with a decimal comma, such as
// "12,50" or "1.234,56 €". Dots are thousands separators.
func ParseCommaAmount(s string) decimal.NullDecimal {
	clean := strings.NewReplacer("€", "", "EUR", "", " ", "", "\u00a0", "", ".", "").Replace(strings.TrimSpace(s))
	clean = strings.ReplaceAll(clean, ",", ".")

	if clean == "" || clean == "-" {
		return decimal.NullDecimal{}
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.NullDecimal{}
	}

	return decimal.NewNullDecimal(d)
}
