package orders

// decimalMode says how a marketplace writes money amounts.
type decimalMode int

const (
	// decimalDot is "1,234.56" as used by amazon.com and amazon.co.uk.
	decimalDot decimalMode = iota
	// decimalComma is "1.234,56" as used by amazon.de, .fr, .it and .es.
	decimalComma
)

// Profile describes the column layout of one Amazon order history export.
type Profile struct {
	Name        string
	DateCol     string
	DateLayouts []string
	ItemCol     string
	TotalCol    string
	Decimal     decimalMode

	// Optional columns.
	ASINCol           string
	StatusCol         string
	ShipmentStatusCol string

	// URLBase is prefixed to the ASIN to build the listing URL.
	URLBase string
	// CancelledValues and DeliveredValues are matched case-insensitively
	// against the order and shipment status cells.
	CancelledValues []string
	DeliveredValues []string
}

// requiredCols returns the column names that must be present for this profile to match.
func (p Profile) requiredCols() []string {
	return []string{p.DateCol, p.ItemCol, p.TotalCol}
}

// profiles is tried in order during detection. More specific profiles come
// first so that a shared column name does not cause a false match.
var profiles = []Profile{
	{
		Name:              "retail-order-history",
		DateCol:           "Order Date",
		DateLayouts:       []string{"2006-01-02T15:04:05Z07:00", "2006-01-02 15:04:05 MST", "01/02/2006"},
		ItemCol:           "Product Name",
		TotalCol:          "Total Owed",
		Decimal:           decimalDot,
		ASINCol:           "ASIN",
		StatusCol:         "Order Status",
		ShipmentStatusCol: "Shipment Status",
		URLBase:           "https://www.amazon.com/dp/",
		CancelledValues:   []string{"Cancelled"},
		DeliveredValues:   []string{"Closed", "Shipped", "Delivered"},
	},
	{
		Name:            "items-report",
		DateCol:         "Order Date",
		DateLayouts:     []string{"01/02/06", "01/02/2006", "1/2/06"},
		ItemCol:         "Title",
		TotalCol:        "Item Total",
		Decimal:         decimalDot,
		ASINCol:         "ASIN/ISBN",
		StatusCol:       "Order Status",
		URLBase:         "https://www.amazon.com/dp/",
		CancelledValues: []string{"Cancelled"},
		DeliveredValues: []string{"Shipped"},
	},
	{
		Name:              "bestellverlauf",
		DateCol:           "Bestelldatum",
		DateLayouts:       []string{"02.01.2006", "2006-01-02T15:04:05Z07:00"},
		ItemCol:           "Produktname",
		TotalCol:          "Gesamtbetrag",
		Decimal:           decimalComma,
		ASINCol:           "ASIN",
		StatusCol:         "Bestellstatus",
		ShipmentStatusCol: "Versandstatus",
		URLBase:           "https://www.amazon.de/dp/",
		CancelledValues:   []string{"Storniert"},
		DeliveredValues:   []string{"Zugestellt", "Versandt", "Abgeschlossen"},
	},
}
