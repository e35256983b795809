package product_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/refundtrack/internal/product"
)

func TestParseDate(t *testing.T) {
	type args struct {
		s string
	}

	type testCase struct {
		name string
		args args
		want *time.Time
	}

	tests := []testCase{
		{name: "ISO", args: args{s: "2024-01-15"}, want: day(2024, 1, 15)},
		{name: "Receipt", args: args{s: "January 15, 2024"}, want: day(2024, 1, 15)},
		{name: "ShortMonth", args: args{s: "Mar 3, 2024"}, want: day(2024, 3, 3)},
		{name: "US", args: args{s: "02/29/2024"}, want: day(2024, 2, 29)},
		{name: "USNoPadding", args: args{s: "7/4/2023"}, want: day(2023, 7, 4)},
		{name: "Timestamp", args: args{s: "2024-01-15T23:30:00-05:00"}, want: day(2024, 1, 15)},
		{name: "Empty", args: args{s: "  "}, want: nil},
		{name: "Garbage", args: args{s: "last tuesday"}, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, product.ParseDate(tt.args.s))
		})
	}
}

func TestParseAmount(t *testing.T) {
	type args struct {
		s string
	}

	type testCase struct {
		name string
		args args
		want string
	}

	tests := []testCase{
		{name: "Plain", args: args{s: "12.99"}, want: "12.99"},
		{name: "Dollar", args: args{s: "$1,299.00"}, want: "1299"},
		{name: "Negative", args: args{s: "-4"}, want: "-4"},
		{name: "Accounting", args: args{s: "($3.50)"}, want: "-3.5"},
		{name: "Zero", args: args{s: "0"}, want: "0"},
		{name: "Blank", args: args{s: ""}, want: ""},
		{name: "Dash", args: args{s: " - "}, want: ""},
		{name: "NotANumber", args: args{s: "NaN"}, want: ""},
		{name: "Text", args: args{s: "pending"}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertAmount(t, tt.want, product.ParseAmount(tt.args.s))
		})
	}
}

func TestParseCommaAmount(t *testing.T) {
	type args struct {
		s string
	}

	type testCase struct {
		name string
		args args
		want string
	}

	tests := []testCase{
		{name: "Cents", args: args{s: "12,50"}, want: "12.5"},
		{name: "Thousands", args: args{s: "1.299,00"}, want: "1299"},
		{name: "Euro", args: args{s: "24,99 €"}, want: "24.99"},
		{name: "Negative", args: args{s: "-3,10"}, want: "-3.1"},
		{name: "Blank", args: args{s: " "}, want: ""},
		{name: "Text", args: args{s: "offen"}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertAmount(t, tt.want, product.ParseCommaAmount(tt.args.s))
		})
	}
}
