package importer

import (
	"io"

	"github.com/MrJamesThe3rd/refundtrack/internal/product"
)

// Format names a supported spreadsheet layout family.
type Format string

const (
	FormatSheet  Format = "sheet"
	FormatOrders Format = "orders"
)

type Importer interface {
	Parse(r io.Reader) ([]product.CreateParams, error)
}
