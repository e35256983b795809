package orders_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/MrJamesThe3rd/refundtrack/internal/importer/orders"
	"github.com/MrJamesThe3rd/refundtrack/internal/product"
)

func date(y, m, d int) *time.Time {
	return new(time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC))
}

func assertPaid(t *testing.T, want string, p *product.Product) {
	t.Helper()

	require.True(t, p.Paid().Valid, "paid should be set")
	assert.True(t, decimal.RequireFromString(want).Equal(p.Paid().Decimal), p.Paid().Decimal.String())
}

func TestParser_RetailOrderHistory(t *testing.T) {
	csv := `"Website","Order ID","Order Date","Currency","Unit Price","Total Owed","ASIN","Quantity","Order Status","Shipment Status","Product Name"
"Amazon.com","111-1","2024-01-15T18:30:00Z","USD","24.99","26.49","B01ABCDEF","1","Closed","Shipped","Running Shoes"
"Amazon.com","111-2","2024-02-01T09:00:00.000Z","USD","9.99","10.00","B02ABCDEF","1","New","Not Available","Coffee Mug"
"Amazon.com","111-3","2024-02-03T09:00:00Z","USD","5.00","0","B03ABCDEF","1","Cancelled","Not Available","Old Charger"
"Amazon.com","111-4","2024-02-04T09:00:00Z","USD","1.00","1.00","B04ABCDEF","1","Closed","Shipped",""
`

	p := orders.NewParser()
	params, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, params, 3)

	shoes := product.New(params[0])
	assert.Equal(t, "Running Shoes", shoes.Item)
	assert.Equal(t, "https://www.amazon.com/dp/B01ABCDEF", shoes.URL)
	assert.Equal(t, date(2024, 1, 15), shoes.OrderDate)
	assertPaid(t, "26.49", shoes)
	assert.True(t, shoes.OrderDelivered)
	assert.False(t, shoes.Received().Valid)
	assert.Equal(t, product.StatusReviewNotAdded, product.Classify(shoes))

	mug := product.New(params[1])
	assert.Equal(t, date(2024, 2, 1), mug.OrderDate)
	assert.False(t, mug.OrderDelivered)
	assert.Equal(t, product.StatusNew, product.Classify(mug))

	charger := product.New(params[2])
	assert.True(t, charger.IsVoid)
	assert.False(t, charger.Paid().Valid)
}

func TestParser_ItemsReport(t *testing.T) {
	csv := `Order Date,Order ID,Title,Category,ASIN/ISBN,Order Status,Item Total
01/15/24,111-1,Desk Lamp,Home,B05ABCDEF,Shipped,"$1,032.99"
02/01/24,111-2,Phone Case,Wireless,B06ABCDEF,Cancelled,$8.00
`

	p := orders.NewParser()
	params, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, params, 2)

	lamp := product.New(params[0])
	assert.Equal(t, date(2024, 1, 15), lamp.OrderDate)
	assertPaid(t, "1032.99", lamp)
	assert.True(t, lamp.OrderDelivered)

	phoneCase := product.New(params[1])
	assert.Equal(t, product.StatusVoid, product.Classify(phoneCase))
}

func TestParser_Bestellverlauf_Windows1252(t *testing.T) {
	csv := "Bestelldatum;Produktname;Gesamtbetrag;ASIN;Bestellstatus;Versandstatus\n" +
		"15.01.2024;Küchenwaage;\"1.234,56\";B07ABCDEF;Abgeschlossen;Zugestellt\n" +
		"16.01.2024;Großes Kissen;\"12,90\";B08ABCDEF;Storniert;\n"

	encoded, err := charmap.Windows1252.NewEncoder().String(csv)
	require.NoError(t, err)

	p := orders.NewParser()
	params, err := p.Parse(bytes.NewReader([]byte(encoded)))
	require.NoError(t, err)
	require.Len(t, params, 2)

	scale := product.New(params[0])
	assert.Equal(t, "Küchenwaage", scale.Item)
	assert.Equal(t, "https://www.amazon.de/dp/B07ABCDEF", scale.URL)
	assert.Equal(t, date(2024, 1, 15), scale.OrderDate)
	assertPaid(t, "1234.56", scale)
	assert.True(t, scale.OrderDelivered)

	pillow := product.New(params[1])
	assert.Equal(t, "Großes Kissen", pillow.Item)
	assertPaid(t, "12.90", pillow)
	assert.True(t, pillow.IsVoid)
}

func TestParser_NoMatchingFormat(t *testing.T) {
	p := orders.NewParser()
	_, err := p.Parse(strings.NewReader("Date,Description,Amount\n2024-01-01,x,1\n"))
	assert.ErrorContains(t, err, "no matching order history format")
}

func TestParser_HeaderOnly(t *testing.T) {
	p := orders.NewParser()
	params, err := p.Parse(strings.NewReader("Order Date,Title,Item Total\n"))
	require.NoError(t, err)
	assert.Empty(t, params)
}

func TestParser_BadCellsAreAbsent(t *testing.T) {
	csv := `Order Date,Title,Item Total
someday,Mystery Box,n/a
`

	p := orders.NewParser()
	params, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, params, 1)

	box := product.New(params[0])
	assert.Nil(t, box.OrderDate)
	assert.False(t, box.Paid().Valid)
}

func TestParser_EuroSignStripped(t *testing.T) {
	csv := "Bestelldatum;Produktname;Gesamtbetrag\n15.01.2024;Tasse;\"7,50 €\"\n"

	p := orders.NewParser()
	params, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, params, 1)

	assertPaid(t, "7.50", product.New(params[0]))
}
