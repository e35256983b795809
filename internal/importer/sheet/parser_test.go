package sheet_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/MrJamesThe3rd/refundtrack/internal/importer/sheet"
	"github.com/MrJamesThe3rd/refundtrack/internal/product"
)

func date(y, m, d int) *time.Time {
	return new(time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC))
}

func amount(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

func TestParser_Tracker(t *testing.T) {
	csv := `Item,URL,Order Date,Order Placed,Order Delivered,Review Added,Review Live,Review SS Sent,Paid,Received,Delta,Status,Void
Running Shoes,https://amazon.com/dp/B01,2024-01-15,true,true,true,true,true,20.00,25.00,5.00,Complete,false
Coffee Mug,,2024-02-01,true,false,false,false,false,10.00,,-10.00,New,false
,,2024-02-02,true,false,false,false,false,3.00,,-3.00,New,false
Old Charger,,,true,false,false,false,false,5.00,,-5.00,Void,true
`

	p := sheet.NewParser()
	params, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, params, 3)

	shoes := product.New(params[0])
	assert.Equal(t, "Running Shoes", shoes.Item)
	assert.Equal(t, "https://amazon.com/dp/B01", shoes.URL)
	assert.Equal(t, date(2024, 1, 15), shoes.OrderDate)
	assert.Equal(t, product.StatusComplete, product.Classify(shoes))
	assert.True(t, decimal.RequireFromString("5").Equal(shoes.Delta().Decimal))

	mug := product.New(params[1])
	assert.Equal(t, product.StatusNew, product.Classify(mug))
	assert.False(t, mug.Received().Valid)

	charger := product.New(params[2])
	assert.Nil(t, charger.OrderDate)
	assert.True(t, charger.IsVoid)
}

func TestParser_Sheet(t *testing.T) {
	csv := `Amazon tracker 2024
exported from sheets

Product;Link;Date;Amount Paid;Refund;Delivered;Reviewed;Live;SS Sent
Desk Lamp;;January 15, 2024;$32.99;;x;;;
Phone Case;;02/03/2024;$8.00;$8.00;x;x;x;x
`

	p := sheet.NewParser()
	params, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, params, 2)

	assert.Equal(t, "Desk Lamp", params[0].Item)
	assert.Equal(t, date(2024, 1, 15), params[0].OrderDate)
	assert.Equal(t, amount("32.99"), params[0].Paid)

	lamp := product.New(params[0])
	assert.True(t, lamp.OrderPlaced, "no Ordered column keeps the default")
	assert.Equal(t, product.StatusReviewNotAdded, product.Classify(lamp))

	phone := product.New(params[1])
	assert.Equal(t, product.StatusComplete, product.Classify(phone))
	assert.True(t, phone.Delta().Decimal.IsZero())
}

func TestParser_Windows1252(t *testing.T) {
	csv := "Item;Order Date;Paid;Received\nCrème Brûlée Torch;2024-03-01;24.99;\n"

	encoded, err := charmap.Windows1252.NewEncoder().Bytes([]byte(csv))
	require.NoError(t, err)

	p := sheet.NewParser()
	params, err := p.Parse(bytes.NewReader(encoded))
	require.NoError(t, err)
	require.Len(t, params, 1)

	assert.Equal(t, "Crème Brûlée Torch", params[0].Item)
	assert.Equal(t, amount("24.99"), params[0].Paid)
}

func TestParser_BadValuesBecomeAbsent(t *testing.T) {
	csv := "Item,Order Date,Paid,Received\nMystery Box,sometime,n/a,-\n"

	p := sheet.NewParser()
	params, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, params, 1)

	assert.Nil(t, params[0].OrderDate)
	assert.False(t, params[0].Paid.Valid)
	assert.False(t, params[0].Received.Valid)
	assert.Empty(t, params[0].Edits)
}

func TestParser_UnknownLayout(t *testing.T) {
	p := sheet.NewParser()
	_, err := p.Parse(strings.NewReader("Date,Description,Amount\n2024-01-01,Coffee,-3.00\n"))
	assert.Error(t, err)
}

func TestParser_SemicolonCommaDecimal(t *testing.T) {
	csv := "Item;Order Date;Paid;Received\n" +
		"Mug;2024-01-15;12,50;\n" +
		"Television;2024-01-16;1.299,00;1.299,00\n" +
		"Lamp;2024-01-17;$8.00;8\n"

	p := sheet.NewParser()
	params, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, params, 3)

	assert.True(t, decimal.RequireFromString("12.50").Equal(params[0].Paid.Decimal), params[0].Paid.Decimal.String())
	assert.False(t, params[0].Received.Valid)

	assert.True(t, decimal.RequireFromString("1299").Equal(params[1].Paid.Decimal), params[1].Paid.Decimal.String())
	assert.True(t, product.New(params[1]).Delta().Decimal.IsZero())

	assert.True(t, decimal.RequireFromString("8").Equal(params[2].Paid.Decimal), params[2].Paid.Decimal.String())
	assert.True(t, decimal.RequireFromString("8").Equal(params[2].Received.Decimal))
}

func TestParser_CommaSeparatedKeepsThousands(t *testing.T) {
	csv := "Item,Order Date,Paid,Received\nTelevision,2024-01-16,\"$1,299.00\",\n"

	p := sheet.NewParser()
	params, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, params, 1)

	assert.True(t, decimal.RequireFromString("1299").Equal(params[0].Paid.Decimal), params[0].Paid.Decimal.String())
}
