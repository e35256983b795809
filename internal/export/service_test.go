package export_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/refundtrack/internal/export"
	"github.com/MrJamesThe3rd/refundtrack/internal/importer/sheet"
	"github.com/MrJamesThe3rd/refundtrack/internal/product"
)

func amount(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

type stubDashboard struct {
	all []*product.Product
	err error
}

func (s stubDashboard) Dashboard(_ context.Context, c product.Criteria) (*product.View, error) {
	if s.err != nil {
		return nil, s.err
	}

	v := product.BuildView(s.all, c)

	return &v, nil
}

func sample() []*product.Product {
	shoes := product.New(product.CreateParams{
		Item:      "Running Shoes",
		URL:       "https://amazon.com/dp/B01",
		OrderDate: new(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)),
		Paid:      amount("20"),
		Received:  amount("25"),
	})
	product.Apply(shoes,
		product.SetStage{Stage: product.StageOrderDelivered, Done: true},
		product.SetStage{Stage: product.StageReviewAdded, Done: true},
		product.SetStage{Stage: product.StageReviewLive, Done: true},
		product.SetStage{Stage: product.StageReviewSSSent, Done: true},
	)

	mug := product.New(product.CreateParams{Item: "Coffee, Mug", Paid: amount("10")})

	charger := product.New(product.CreateParams{
		Item:      "Old Charger",
		OrderDate: new(time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC)),
	})
	product.Apply(charger, product.MarkVoid{})

	return []*product.Product{mug, shoes, charger}
}

func TestService_Export(t *testing.T) {
	svc := export.NewService(stubDashboard{all: sample()})

	var buf bytes.Buffer
	require.NoError(t, svc.Export(context.Background(), product.Criteria{}, &buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)

	assert.Equal(t, strings.Join(export.Header, ","), lines[0])
	assert.Equal(t, "Running Shoes,https://amazon.com/dp/B01,2024-01-15,true,true,true,true,true,20.00,25.00,5.00,Complete,false", lines[1])
	assert.Equal(t, "Old Charger,,2023-12-01,true,false,false,false,false,,,,Void,true", lines[2])
	assert.Equal(t, `"Coffee, Mug",,,true,false,false,false,false,10.00,,-10.00,New,false`, lines[3])
}

func TestService_Export_Error(t *testing.T) {
	svc := export.NewService(stubDashboard{err: errors.New("db down")})

	var buf bytes.Buffer
	assert.Error(t, svc.Export(context.Background(), product.Criteria{}, &buf))
	assert.Empty(t, buf.String())
}

func TestWriteCSV_RoundTrip(t *testing.T) {
	original := product.Sort(sample())

	var buf bytes.Buffer
	require.NoError(t, export.WriteCSV(&buf, original))

	params, err := sheet.NewParser().Parse(&buf)
	require.NoError(t, err)
	require.Len(t, params, len(original))

	for i, p := range params {
		got := product.New(p)
		want := original[i]

		assert.Equal(t, want.Item, got.Item)
		assert.Equal(t, want.URL, got.URL)
		assert.Equal(t, want.OrderDate, got.OrderDate)
		assert.Equal(t, want.IsVoid, got.IsVoid)
		assert.Equal(t, product.Classify(want), product.Classify(got))
		assert.Equal(t, want.Delta().Valid, got.Delta().Valid)
		assert.True(t, want.Delta().Decimal.Equal(got.Delta().Decimal))
	}
}

func TestService_Report(t *testing.T) {
	svc := export.NewService(nil)
	view := product.BuildView(sample(), product.Criteria{})

	body := svc.Report(&view)

	expected := []string{
		"Products: 3 | Completed: 1",
		"Paid: 30.00 | Received: 25.00 | Remaining: 10.00 | Net: -5.00",
		"* 2024-01-15 | Running Shoes | +5.00 | Complete",
		"* 2023-12-01 | Old Charger | - | Void",
		"* ---------- | Coffee, Mug | -10.00 | New",
	}

	for _, s := range expected {
		assert.Contains(t, body, s)
	}
}
