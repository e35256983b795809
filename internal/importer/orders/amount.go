package orders

import (
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/refundtrack/internal/product"
)

// parseAmount reads a money cell in the profile's decimal style. Unreadable
// cells give an absent amount.
func parseAmount(mode decimalMode, s string) decimal.NullDecimal {
	if mode == decimalComma {
		return product.ParseCommaAmount(s)
	}

	return product.ParseAmount(s)
}
