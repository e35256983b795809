package importer

import (
	"fmt"
	"io"

	"github.com/MrJamesThe3rd/refundtrack/internal/importer/orders"
	"github.com/MrJamesThe3rd/refundtrack/internal/importer/sheet"
	"github.com/MrJamesThe3rd/refundtrack/internal/product"
)

type Service struct {
	importers map[Format]Importer
}

func NewService() *Service {
	return &Service{
		importers: map[Format]Importer{
			FormatSheet:  sheet.NewParser(),
			FormatOrders: orders.NewParser(),
		},
	}
}

// Import parses r with the importer registered for format. An empty format
// means the tracking sheet.
func (s *Service) Import(format Format, r io.Reader) ([]product.CreateParams, error) {
	if format == "" {
		format = FormatSheet
	}

	imp, ok := s.importers[format]
	if !ok {
		return nil, fmt.Errorf("unknown import format: %s", format)
	}

	return imp.Parse(r)
}
