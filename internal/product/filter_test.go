package product_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/refundtrack/internal/product"
)

func items(products []*product.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.Item
	}

	return out
}

func fixture() []*product.Product {
	return []*product.Product{
		build("Running Shoes", allDone, amount("20"), amount("25")),
		build("", flags{placed: true}, amount("3"), decimal.NullDecimal{}),
		build("Coffee Mug", flags{placed: true}, amount("10"), decimal.NullDecimal{}),
		build("Desk Lamp", flags{placed: true, delivered: true}, decimal.NullDecimal{}, decimal.NullDecimal{}),
		build("   ", flags{placed: true}, decimal.NullDecimal{}, decimal.NullDecimal{}),
		build("Phone Case", flags{placed: true, delivered: true, added: true}, amount("8"), amount("8")),
		build("Old Charger", flags{placed: true, void: true}, amount("5"), decimal.NullDecimal{}),
		build("Shoe Rack", flags{placed: true, delivered: true, added: true, live: true, ssSent: true}, amount("30"), decimal.NullDecimal{}),
	}
}

func TestFilter(t *testing.T) {
	type args struct {
		criteria product.Criteria
	}

	type testCase struct {
		name string
		args args
		want []string
	}

	tests := []testCase{
		{
			name: "NoCriteriaDropsBlanksOnly",
			args: args{criteria: product.Criteria{}},
			want: []string{"Running Shoes", "Coffee Mug", "Desk Lamp", "Phone Case", "Old Charger", "Shoe Rack"},
		},
		{
			name: "SearchIsCaseInsensitive",
			args: args{criteria: product.Criteria{Search: "SHOE"}},
			want: []string{"Running Shoes", "Shoe Rack"},
		},
		{
			name: "SearchNoMatch",
			args: args{criteria: product.Criteria{Search: "tablet"}},
			want: []string{},
		},
		{
			name: "StatusNew",
			args: args{criteria: product.Criteria{Status: product.StatusFilterNew}},
			want: []string{"Coffee Mug"},
		},
		{
			name: "StatusReviewNotAdded",
			args: args{criteria: product.Criteria{Status: product.StatusFilterReviewNotAdded}},
			want: []string{"Desk Lamp"},
		},
		{
			name: "StatusReviewPending",
			args: args{criteria: product.Criteria{Status: product.StatusFilterReviewPending}},
			want: []string{"Phone Case"},
		},
		{
			name: "StatusPendingRefund",
			args: args{criteria: product.Criteria{Status: product.StatusFilterPendingRefund}},
			want: []string{"Shoe Rack"},
		},
		{
			name: "StatusComplete",
			args: args{criteria: product.Criteria{Status: product.StatusFilterComplete}},
			want: []string{"Running Shoes"},
		},
		{
			name: "StatusVoid",
			args: args{criteria: product.Criteria{Status: product.StatusFilterVoid}},
			want: []string{"Old Charger"},
		},
		{
			name: "DeltaPositive",
			args: args{criteria: product.Criteria{Delta: product.DeltaFilterPositive}},
			want: []string{"Running Shoes"},
		},
		{
			name: "DeltaNegativeSkipsNullDelta",
			args: args{criteria: product.Criteria{Delta: product.DeltaFilterNegative}},
			want: []string{"Coffee Mug", "Old Charger", "Shoe Rack"},
		},
		{
			name: "DeltaZero",
			args: args{criteria: product.Criteria{Delta: product.DeltaFilterZero}},
			want: []string{"Phone Case"},
		},
		{
			name: "AxesCombine",
			args: args{criteria: product.Criteria{Search: "shoe", Status: product.StatusFilterPendingRefund, Delta: product.DeltaFilterNegative}},
			want: []string{"Shoe Rack"},
		},
		{
			name: "UnknownStatusMatchesAll",
			args: args{criteria: product.Criteria{Status: "not-started"}},
			want: []string{"Running Shoes", "Coffee Mug", "Desk Lamp", "Phone Case", "Old Charger", "Shoe Rack"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := product.Filter(fixture(), tt.args.criteria)
			assert.Equal(t, tt.want, items(got))
		})
	}
}

func TestFilter_NullDeltaPassesOnlyWithoutDeltaCategory(t *testing.T) {
	lamp := build("Desk Lamp", flags{placed: true, delivered: true}, decimal.NullDecimal{}, decimal.NullDecimal{})

	assert.Len(t, product.Filter([]*product.Product{lamp}, product.Criteria{}), 1)

	for _, f := range []product.DeltaFilter{product.DeltaFilterPositive, product.DeltaFilterNegative, product.DeltaFilterZero} {
		assert.Empty(t, product.Filter([]*product.Product{lamp}, product.Criteria{Delta: f}), f)
	}
}

func TestFilter_Idempotent(t *testing.T) {
	criteria := []product.Criteria{
		{},
		{Search: "o"},
		{Status: product.StatusFilterNew},
		{Delta: product.DeltaFilterNegative},
		{Search: "s", Status: product.StatusFilterComplete, Delta: product.DeltaFilterPositive},
	}

	for _, c := range criteria {
		once := product.Filter(fixture(), c)
		twice := product.Filter(once, c)
		assert.Equal(t, items(once), items(twice), "%+v", c)
	}
}

// The filter categories and the classifier are separate definitions. A product
// labelled Send Screenshot or Not Started has no category of its own and may
// fall into none of them.
func TestFilter_IndependentOfClassify(t *testing.T) {
	named := []product.StatusFilter{
		product.StatusFilterNew,
		product.StatusFilterReviewNotAdded,
		product.StatusFilterReviewPending,
		product.StatusFilterPendingRefund,
		product.StatusFilterComplete,
		product.StatusFilterVoid,
	}

	t.Run("SendScreenshot", func(t *testing.T) {
		p := build("Tripod", flags{placed: true, delivered: true, added: true, live: true}, amount("15"), decimal.NullDecimal{})
		require.Equal(t, product.StatusSendScreenshot, product.Classify(p))

		for _, f := range named {
			assert.False(t, f.Match(p), f)
		}
	})

	t.Run("NotStarted", func(t *testing.T) {
		p := build("Cable", flags{}, decimal.NullDecimal{}, decimal.NullDecimal{})
		require.Equal(t, product.StatusNotStarted, product.Classify(p))

		for _, f := range named {
			assert.False(t, f.Match(p), f)
		}
	})

	t.Run("SeveralCategories", func(t *testing.T) {
		p := build("Headphones", flags{placed: true, added: true, ssSent: true}, amount("40"), decimal.NullDecimal{})
		require.Equal(t, product.StatusPendingRefund, product.Classify(p))

		assert.True(t, product.StatusFilterNew.Match(p))
		assert.True(t, product.StatusFilterReviewPending.Match(p))
		assert.True(t, product.StatusFilterPendingRefund.Match(p))
	})
}

func TestParseStatusFilter(t *testing.T) {
	for _, f := range product.StatusFilters {
		got, err := product.ParseStatusFilter(string(f))
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}

	_, err := product.ParseStatusFilter("not-started")
	assert.True(t, errors.Is(err, product.ErrInvalidStatusFilter))
}

func TestParseDeltaFilter(t *testing.T) {
	for _, f := range product.DeltaFilters {
		got, err := product.ParseDeltaFilter(string(f))
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}

	_, err := product.ParseDeltaFilter("huge")
	assert.ErrorIs(t, err, product.ErrInvalidDeltaFilter)
}

func TestCriteria_IsZero(t *testing.T) {
	assert.True(t, product.Criteria{}.IsZero())
	assert.False(t, product.Criteria{Search: "x"}.IsZero())
	assert.False(t, product.Criteria{Delta: product.DeltaFilterZero}.IsZero())
}
